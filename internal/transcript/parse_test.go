package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse_EnvelopeSchema(t *testing.T) {
	payload := `{
		"head": {"name": "Maria Silva", "member": "+55 11 99999-0000"},
		"body": [
			{"position": "left", "type": "text", "msg": "não consigo acessar o curso", "time": "2024/03/10 14:22:01"},
			{"position": "right", "type": "text", "msg": "vou verificar seu acesso", "time": "2024/03/10 14:25:40"},
			{"position": "left", "type": "image", "msg": "", "time": "2024/03/10 14:26:02", "mediaName": "print.jpg", "mediaSize": "120 KB"}
		]
	}`
	path := writeFile(t, "conv.json", payload)

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if conv.Contact.Name != "Maria Silva" {
		t.Errorf("contact name = %q, want Maria Silva", conv.Contact.Name)
	}
	if conv.Contact.Member != "+55 11 99999-0000" {
		t.Errorf("contact member = %q", conv.Contact.Member)
	}
	if conv.SourceFile != path {
		t.Errorf("source file = %q, want %q", conv.SourceFile, path)
	}
	if conv.ID == "" {
		t.Error("expected a generated conversation id")
	}
	if len(conv.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conv.Messages))
	}

	if conv.Messages[0].Side != SideCustomer {
		t.Errorf("msg[0] side = %v, want customer (position left)", conv.Messages[0].Side)
	}
	if conv.Messages[1].Side != SideSupport {
		t.Errorf("msg[1] side = %v, want support (position right)", conv.Messages[1].Side)
	}

	wantTS := time.Date(2024, 3, 10, 14, 22, 1, 0, time.UTC)
	if !conv.Messages[0].Timestamp.Equal(wantTS) {
		t.Errorf("msg[0] timestamp = %v, want %v", conv.Messages[0].Timestamp, wantTS)
	}
	if conv.Messages[0].RawTime != "2024/03/10 14:22:01" {
		t.Errorf("msg[0] raw time = %q", conv.Messages[0].RawTime)
	}

	media := conv.Messages[2]
	if media.Kind != KindMedia {
		t.Errorf("msg[2] kind = %v, want media", media.Kind)
	}
	if media.Media == nil || media.Media.Name != "print.jpg" || media.Media.Size != "120 KB" {
		t.Errorf("msg[2] media = %+v", media.Media)
	}
}

func TestParse_EnvelopeWithCallbackWrapper(t *testing.T) {
	payload := `contentCallbackFunc({"head":{"name":"João"},"body":[{"position":"left","type":"text","msg":"oi","time":"2024/01/05 09:00:00"}]})`
	path := writeFile(t, "wrapped.json", payload)

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Contact.Name != "João" {
		t.Errorf("contact name = %q, want João", conv.Contact.Name)
	}
	if len(conv.Messages) != 1 || conv.Messages[0].Text != "oi" {
		t.Fatalf("messages = %+v", conv.Messages)
	}
}

func TestParse_FlatSchema(t *testing.T) {
	payload := `{
		"messages": [
			{"fromMe": false, "body": "quero cancelar minha assinatura", "timestamp": "2024-05-01T10:00:00Z"},
			{"fromMe": true, "body": "posso oferecer um desconto", "timestamp": "2024-05-01T10:05:00Z"},
			{"fromMe": false, "body": "vou continuar então", "timestamp": 1714557000}
		]
	}`
	path := writeFile(t, "flat.json", payload)

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(conv.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(conv.Messages))
	}
	if conv.Messages[0].Side != SideCustomer {
		t.Errorf("msg[0] side = %v, want customer (fromMe false)", conv.Messages[0].Side)
	}
	if conv.Messages[1].Side != SideSupport {
		t.Errorf("msg[1] side = %v, want support (fromMe true)", conv.Messages[1].Side)
	}
	if conv.Messages[0].Timestamp.IsZero() {
		t.Error("expected RFC3339 timestamp to parse")
	}
	if conv.Messages[2].Timestamp.IsZero() {
		t.Error("expected unix timestamp to parse")
	}
	// Contact is optional in the flat schema.
	if conv.Contact.Name != "Unknown" {
		t.Errorf("contact name = %q, want Unknown", conv.Contact.Name)
	}
}

func TestParse_MissingOptionalFieldsDefault(t *testing.T) {
	payload := `{"messages":[{"fromMe":false,"body":"alguma coisa"}]}`
	path := writeFile(t, "sparse.json", payload)

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := conv.Messages[0]
	if m.RawTime != "" || !m.Timestamp.IsZero() {
		t.Errorf("expected empty timestamp defaults, got %q %v", m.RawTime, m.Timestamp)
	}
	if m.Kind != KindText || m.Media != nil {
		t.Errorf("expected plain text message, got kind=%v media=%+v", m.Kind, m.Media)
	}
}

func TestParse_UnparseableTimestampKeepsRawString(t *testing.T) {
	payload := `{"messages":[{"fromMe":false,"body":"oi","timestamp":"ontem de manhã"}]}`
	path := writeFile(t, "rawts.json", payload)

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := conv.Messages[0]
	if m.RawTime != "ontem de manhã" {
		t.Errorf("raw time = %q, want verbatim source string", m.RawTime)
	}
	if !m.Timestamp.IsZero() {
		t.Errorf("timestamp = %v, want zero", m.Timestamp)
	}
}

func TestParse_FormatErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "isso não é json"},
		{"no message list", `{"head":{"name":"X"},"other":[]}`},
		{"truncated wrapper", `contentCallbackFunc({"body":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.json", tt.payload)
			_, err := ParseFile(path)

			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FormatError, got %v", err)
			}
			if fe.Path != path {
				t.Errorf("error path = %q, want %q", fe.Path, path)
			}
		})
	}
}

func TestParse_EmptyConversation(t *testing.T) {
	for _, payload := range []string{
		`{"body":[]}`,
		`{"messages":[]}`,
	} {
		path := writeFile(t, "empty.json", payload)
		_, err := ParseFile(path)
		if !errors.Is(err, ErrEmptyConversation) {
			t.Errorf("payload %s: expected ErrEmptyConversation, got %v", payload, err)
		}
	}
}

func TestParse_FileNotFound(t *testing.T) {
	_, err := ParseFile("/nonexistent/conv.json")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestConversation_SideFilters(t *testing.T) {
	conv := &Conversation{
		Messages: []Message{
			{Side: SideCustomer, Text: "a"},
			{Side: SideSupport, Text: "b"},
			{Side: SideCustomer, Text: "c"},
		},
	}

	customer := conv.CustomerMessages()
	if len(customer) != 2 || customer[0].Text != "a" || customer[1].Text != "c" {
		t.Errorf("customer messages = %+v", customer)
	}
	support := conv.SupportMessages()
	if len(support) != 1 || support[0].Text != "b" {
		t.Errorf("support messages = %+v", support)
	}
}
