package analyze

import (
	"testing"

	"github.com/suporteware/chatminer/internal/taxonomy"
	"github.com/suporteware/chatminer/internal/transcript"
)

func conversation(msgs ...transcript.Message) *transcript.Conversation {
	return &transcript.Conversation{
		ID:         "conv-1",
		SourceFile: "conv-1.json",
		Contact:    transcript.Contact{Name: "Cliente"},
		Messages:   msgs,
	}
}

func TestAnalyze_ResolvedAccessIssue(t *testing.T) {
	an := New(taxonomy.Default(), Options{})

	conv := conversation(
		customer("não consigo acessar minha conta, esqueci a senha"),
		support("para resolver, acesse o link de redefinição de senha"),
		customer("muito obrigado, funcionou"),
	)

	res := an.Analyze(conv)

	if len(res.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(res.Issues))
	}
	issue := res.Issues[0]
	if issue.Category != "access_issues" {
		t.Errorf("category = %q, want access_issues", issue.Category)
	}
	if !issue.Resolved {
		t.Error("expected issue to be resolved")
	}
	if len(issue.Solutions) != 1 {
		t.Fatalf("expected 1 solution message, got %d", len(issue.Solutions))
	}
	if issue.Solutions[0].Text != "para resolver, acesse o link de redefinição de senha" {
		t.Errorf("solution = %q", issue.Solutions[0].Text)
	}
	if issue.Text != "não consigo acessar minha conta, esqueci a senha" {
		t.Errorf("representative text = %q", issue.Text)
	}
	if res.Refund != nil {
		t.Error("did not expect a refund case")
	}
}

func TestAnalyze_ShortMessagesSkipped(t *testing.T) {
	an := New(taxonomy.Default(), Options{MinIssueLen: 10})

	conv := conversation(
		customer("erro"), // below threshold, cannot open an issue
		support("tente novamente, verifique sua conexão"),
	)

	res := an.Analyze(conv)
	if len(res.Issues) != 0 {
		t.Errorf("expected no issues from short messages, got %+v", res.Issues)
	}
}

func TestAnalyze_CategoryChangeSplitsIssues(t *testing.T) {
	an := New(taxonomy.Default(), Options{})

	conv := conversation(
		customer("não consigo acessar, minha senha não entra"),
		customer("o login continua bloqueado para mim"),
		customer("agora deu erro no pagamento da fatura"),
		support("verifique o cartão cadastrado para resolver"),
	)

	res := an.Analyze(conv)

	if len(res.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %+v", len(res.Issues), res.Issues)
	}
	if res.Issues[0].Category != "access_issues" {
		t.Errorf("issue[0] category = %q, want access_issues", res.Issues[0].Category)
	}
	// Earliest representative text is kept for the run.
	if res.Issues[0].Text != "não consigo acessar, minha senha não entra" {
		t.Errorf("issue[0] text = %q", res.Issues[0].Text)
	}
	if res.Issues[1].Category != "payment_issues" {
		t.Errorf("issue[1] category = %q, want payment_issues", res.Issues[1].Category)
	}
}

func TestAnalyze_NoSolutionLanguageDropsIssues(t *testing.T) {
	an := New(taxonomy.Default(), Options{})

	conv := conversation(
		customer("não consigo acessar minha conta de jeito nenhum"),
		support("ok, vou olhar"), // no advisory phrase
	)

	res := an.Analyze(conv)
	if len(res.Issues) != 0 {
		t.Errorf("expected issues without solutions to be dropped, got %+v", res.Issues)
	}
}

func TestAnalyze_SolutionsAreConversationScoped(t *testing.T) {
	an := New(taxonomy.Default(), Options{})

	conv := conversation(
		customer("minha senha está bloqueada, não entra"),
		support("tente redefinir a senha"),
		customer("também deu erro no pagamento com cartão"),
		support("verifique os dados do cartão"),
	)

	res := an.Analyze(conv)
	if len(res.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(res.Issues))
	}
	// Both issues carry the full set of solution messages from the
	// conversation, not just the segment-adjacent ones.
	for i, issue := range res.Issues {
		if len(issue.Solutions) != 2 {
			t.Errorf("issue[%d] has %d solutions, want 2", i, len(issue.Solutions))
		}
	}
}

func TestAnalyze_TieBreakAssignsEarliestCategory(t *testing.T) {
	an := New(taxonomy.Default(), Options{})

	conv := conversation(
		customer("quero reembolso, o curso não funciona"),
		support("tente limpar o cache para resolver"),
	)

	res := an.Analyze(conv)
	if len(res.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(res.Issues))
	}
	// technical_issues and refund_requests tie at one keyword each;
	// technical_issues is declared first.
	if res.Issues[0].Category != "technical_issues" {
		t.Errorf("category = %q, want technical_issues", res.Issues[0].Category)
	}
}

func TestAnalyze_PriorityFollowsUrgentFlag(t *testing.T) {
	an := New(taxonomy.Default(), Options{})

	conv := conversation(
		customer("o aplicativo trava com erro direto"),
		customer("como encontro o material da aula três?"),
		support("acesse a área de conteúdos e verifique o módulo"),
	)

	res := an.Analyze(conv)
	if len(res.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(res.Issues))
	}
	if res.Issues[0].Category != "technical_issues" || res.Issues[0].Priority != PriorityHigh {
		t.Errorf("issue[0] = %s/%s, want technical_issues/high", res.Issues[0].Category, res.Issues[0].Priority)
	}
	if res.Issues[1].Priority != PriorityMedium {
		t.Errorf("issue[1] priority = %s, want medium", res.Issues[1].Priority)
	}
}

func TestAnalyze_RefundCase(t *testing.T) {
	an := New(taxonomy.Default(), Options{})

	conv := conversation(
		customer("quero reembolso, estou muito decepcionado"),
		customer("o curso é muito básico, esperava mais, não gostei"),
		support("posso te oferecer material extra e um desconto especial"),
		customer("ok, vou continuar então, obrigado"),
	)

	res := an.Analyze(conv)

	rc := res.Refund
	if rc == nil {
		t.Fatal("expected a refund case")
	}
	if rc.ReasonCategory != "content_quality" {
		t.Errorf("reason = %q, want content_quality", rc.ReasonCategory)
	}
	if !rc.Retained {
		t.Error("expected customer to be retained")
	}
	if len(rc.Attempts) != 2 {
		t.Errorf("expected 2 retention attempts, got %d: %+v", len(rc.Attempts), rc.Attempts)
	}
	if len(rc.SentimentJourney) != 3 {
		t.Fatalf("expected 3 journey samples, got %d", len(rc.SentimentJourney))
	}
	if rc.SentimentJourney[0].Sentiment != "negative" {
		t.Errorf("journey start = %s, want negative", rc.SentimentJourney[0].Sentiment)
	}
	if rc.SentimentJourney[2].Sentiment != "positive" {
		t.Errorf("journey end = %s, want positive", rc.SentimentJourney[2].Sentiment)
	}
	if rc.FirstComplaint != "quero reembolso, estou muito decepcionado" {
		t.Errorf("first complaint = %q", rc.FirstComplaint)
	}
}

func TestAnalyze_RefundReasonFallsBackToUnspecified(t *testing.T) {
	an := New(taxonomy.Default(), Options{})

	conv := conversation(
		customer("quero reembolso e pronto"),
		support("posso saber o motivo?"),
	)

	res := an.Analyze(conv)
	if res.Refund == nil {
		t.Fatal("expected a refund case")
	}
	if res.Refund.ReasonCategory != "unspecified" {
		t.Errorf("reason = %q, want unspecified", res.Refund.ReasonCategory)
	}
}
