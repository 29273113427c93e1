package classify

import "github.com/suporteware/chatminer/internal/taxonomy"

// SentimentLabel is the per-message sentiment tag.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// TagSentiment scores text against the three sentiment keyword sets and
// returns the winning label. Precedence on equal counts is fixed: negative
// beats positive, positive beats neutral. Text matching no set at all is
// neutral.
func TagSentiment(text string, lex taxonomy.Sentiment) SentimentLabel {
	neg := Score(text, lex.Negative)
	pos := Score(text, lex.Positive)
	neu := Score(text, lex.Neutral)

	if neg == 0 && pos == 0 && neu == 0 {
		return SentimentNeutral
	}
	if neg >= pos && neg >= neu {
		return SentimentNegative
	}
	if pos >= neu {
		return SentimentPositive
	}
	return SentimentNeutral
}
