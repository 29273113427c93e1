package analyze

import (
	"unicode/utf8"

	"github.com/suporteware/chatminer/internal/classify"
	"github.com/suporteware/chatminer/internal/taxonomy"
	"github.com/suporteware/chatminer/internal/transcript"
)

// Options are the tunable thresholds of the engine. Zero values fall back to
// the defaults below.
type Options struct {
	// ResolutionWindow is how many trailing customer messages the resolution
	// detector inspects.
	ResolutionWindow int
	// RetentionWindow is how many trailing customer messages the retention
	// outcome detector inspects.
	RetentionWindow int
	// MinIssueLen is the minimum character count for a customer message to
	// open or continue an issue.
	MinIssueLen int
}

const (
	defaultResolutionWindow = 5
	defaultRetentionWindow  = 3
	defaultMinIssueLen      = 10
)

func (o Options) withDefaults() Options {
	if o.ResolutionWindow == 0 {
		o.ResolutionWindow = defaultResolutionWindow
	}
	if o.RetentionWindow == 0 {
		o.RetentionWindow = defaultRetentionWindow
	}
	if o.MinIssueLen == 0 {
		o.MinIssueLen = defaultMinIssueLen
	}
	return o
}

// Analyzer applies the full rule set to one conversation at a time. It holds
// no mutable state and is safe for concurrent use.
type Analyzer struct {
	tax  *taxonomy.Taxonomy
	opts Options
}

func New(tax *taxonomy.Taxonomy, opts Options) *Analyzer {
	return &Analyzer{tax: tax, opts: opts.withDefaults()}
}

// Analyze produces everything one conversation contributes to the corpus:
// its segmented issues and, when refund intent is present, its refund case.
func (a *Analyzer) Analyze(conv *transcript.Conversation) Result {
	res := Result{Conversation: conv}
	res.Issues = a.segment(conv)
	if HasRefundIntent(conv.Messages, a.tax) {
		rc := a.buildRefundCase(conv)
		res.Refund = &rc
	}
	return res
}

// segment groups consecutive same-category customer messages into issues.
// The conversation's solution messages are attached to every issue; issues
// with no solution language anywhere in the conversation are dropped.
func (a *Analyzer) segment(conv *transcript.Conversation) []Issue {
	solutions := a.solutionMessages(conv)
	resolved := Resolved(conv.Messages, a.tax, a.opts.ResolutionWindow)

	var issues []Issue
	var open *Issue

	flush := func() {
		if open != nil {
			issues = append(issues, *open)
			open = nil
		}
	}

	for _, m := range conv.Messages {
		if m.Side != transcript.SideCustomer || m.Kind != transcript.KindText {
			continue
		}
		if utf8.RuneCountInString(m.Text) <= a.opts.MinIssueLen {
			continue
		}

		category := classify.Classify(m.Text, a.tax)
		// Default-category messages (greetings, thanks, chatter) are
		// transparent: they neither open an issue nor close the current one.
		if category == a.tax.DefaultTag {
			continue
		}
		if open != nil && open.Category != category {
			flush()
		}
		if open == nil {
			open = &Issue{
				ConversationID: conv.ID,
				SourceFile:     conv.SourceFile,
				Category:       category,
				Text:           m.Text,
				RawTime:        m.RawTime,
				Solutions:      solutions,
				Resolved:       resolved,
				Priority:       a.priorityFor(category),
			}
		}
	}
	flush()

	// Solution-oriented filter: an issue without any matched solution
	// message does not belong in the knowledge base.
	if len(solutions) == 0 {
		return nil
	}
	return issues
}

// solutionMessages collects support messages containing advisory phrases.
// The scan is conversation-scoped, not linked to a specific issue segment.
func (a *Analyzer) solutionMessages(conv *transcript.Conversation) []SolutionMessage {
	var out []SolutionMessage
	for _, m := range conv.Messages {
		if m.Side != transcript.SideSupport || m.Kind != transcript.KindText {
			continue
		}
		if classify.ContainsAny(m.Text, a.tax.SolutionIndicators) {
			out = append(out, SolutionMessage{Text: m.Text, RawTime: m.RawTime})
		}
	}
	return out
}

func (a *Analyzer) priorityFor(tag string) Priority {
	if c := a.tax.CategoryByTag(tag); c != nil && c.Urgent {
		return PriorityHigh
	}
	return PriorityMedium
}

// buildRefundCase analyzes a refund-seeking conversation: reason category,
// sentiment journey, retention attempts and outcome.
func (a *Analyzer) buildRefundCase(conv *transcript.Conversation) RefundCase {
	rc := RefundCase{
		ConversationID:   conv.ID,
		SourceFile:       conv.SourceFile,
		ReasonCategory:   a.refundReason(conv),
		SentimentJourney: SentimentJourney(conv.Messages, a.tax),
		Attempts:         MatchStrategies(conv.Messages, a.tax),
		Retained:         Retained(conv.Messages, a.tax, a.opts.RetentionWindow),
	}
	for _, m := range conv.Messages {
		if m.Side == transcript.SideCustomer && m.Kind == transcript.KindText {
			rc.FirstComplaint = m.Text
			break
		}
	}
	return rc
}

// refundReason sums per-message keyword scores across all customer messages
// for each reason category. The highest total wins, ties resolving to the
// earliest declared reason; all-zero falls back to the unspecified tag.
func (a *Analyzer) refundReason(conv *transcript.Conversation) string {
	best, bestScore := "", 0
	for _, reason := range a.tax.RefundReasons {
		total := 0
		for _, m := range conv.Messages {
			if m.Side != transcript.SideCustomer {
				continue
			}
			total += classify.Score(m.Text, reason.Keywords)
		}
		if total > bestScore {
			best, bestScore = reason.Tag, total
		}
	}
	if bestScore == 0 {
		return a.tax.UnspecifiedTag
	}
	return best
}
