package analyze

import (
	"github.com/suporteware/chatminer/internal/classify"
	"github.com/suporteware/chatminer/internal/taxonomy"
	"github.com/suporteware/chatminer/internal/transcript"
)

// Resolved reports whether the conversation's issue was resolved. It scans
// only the trailing window of customer messages, newest first, and returns
// true on the first one containing a resolution indicator. The window bias
// keeps the signal on the conversation's outcome rather than its middle.
func Resolved(msgs []transcript.Message, tax *taxonomy.Taxonomy, window int) bool {
	customer := filterSide(msgs, transcript.SideCustomer)
	if window > 0 && len(customer) > window {
		customer = customer[len(customer)-window:]
	}
	for i := len(customer) - 1; i >= 0; i-- {
		if classify.ContainsAny(customer[i].Text, tax.ResolutionIndicators) {
			return true
		}
	}
	return false
}

// Retained decides whether a refund-seeking customer agreed to stay. It scans
// the last window customer messages in chronological order; the first message
// matching either phrase set decides the outcome. A message matching both
// sets counts as insistence. An exhausted window defaults to not retained.
func Retained(msgs []transcript.Message, tax *taxonomy.Taxonomy, window int) bool {
	customer := filterSide(msgs, transcript.SideCustomer)
	if window > 0 && len(customer) > window {
		customer = customer[len(customer)-window:]
	}
	for _, m := range customer {
		insists := classify.ContainsAny(m.Text, tax.RefundInsistence)
		positive := classify.ContainsAny(m.Text, tax.RetentionPositive)
		switch {
		case insists:
			return false
		case positive:
			return true
		}
	}
	return false
}

// HasRefundIntent reports whether any message in the conversation contains a
// refund-intent phrase.
func HasRefundIntent(msgs []transcript.Message, tax *taxonomy.Taxonomy) bool {
	for _, m := range msgs {
		if classify.ContainsAny(m.Text, tax.RefundIntent) {
			return true
		}
	}
	return false
}

// MatchStrategies scans support messages for retention-technique language.
// Attribution is multi-label: every strategy set is tested against every
// message, emitting one attempt per satisfied strategy.
func MatchStrategies(msgs []transcript.Message, tax *taxonomy.Taxonomy) []RetentionAttempt {
	var attempts []RetentionAttempt
	for _, m := range msgs {
		if m.Side != transcript.SideSupport {
			continue
		}
		for _, st := range tax.Strategies {
			if classify.ContainsAny(m.Text, st.Keywords) {
				attempts = append(attempts, RetentionAttempt{
					Strategy: st.Tag,
					Text:     m.Text,
					RawTime:  m.RawTime,
				})
			}
		}
	}
	return attempts
}

// SentimentJourney tags every customer text message in order, one sample per
// message.
func SentimentJourney(msgs []transcript.Message, tax *taxonomy.Taxonomy) []SentimentSample {
	var journey []SentimentSample
	idx := 0
	for _, m := range msgs {
		if m.Side != transcript.SideCustomer || m.Kind != transcript.KindText {
			continue
		}
		journey = append(journey, SentimentSample{
			MessageIndex: idx,
			Sentiment:    classify.TagSentiment(m.Text, tax.Sentiment),
			Text:         m.Text,
			RawTime:      m.RawTime,
		})
		idx++
	}
	return journey
}

func filterSide(msgs []transcript.Message, side transcript.Side) []transcript.Message {
	var out []transcript.Message
	for _, m := range msgs {
		if m.Side == side {
			out = append(out, m)
		}
	}
	return out
}
