// Package analyze walks canonical conversations and produces the structured
// findings the aggregator consumes: issues, refund cases, sentiment journeys
// and retention attempts.
package analyze

import (
	"github.com/suporteware/chatminer/internal/classify"
	"github.com/suporteware/chatminer/internal/transcript"
)

// Priority marks how urgent an issue category is considered.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// SolutionMessage is one support message carrying solution language.
type SolutionMessage struct {
	Text    string
	RawTime string
}

// Issue is a contiguous run of same-category customer messages within one
// conversation, with the conversation's solution messages attached.
type Issue struct {
	ConversationID string
	SourceFile     string
	Category       string
	Text           string // earliest customer message of the run
	RawTime        string
	Solutions      []SolutionMessage
	Resolved       bool
	Priority       Priority
}

// SentimentSample is one point on a conversation's sentiment journey: the
// tag for the i-th customer text message.
type SentimentSample struct {
	MessageIndex int
	Sentiment    classify.SentimentLabel
	Text         string
	RawTime      string
}

// RetentionAttempt records one support message matching a named retention
// strategy. A single message may produce several attempts.
type RetentionAttempt struct {
	Strategy string
	Text     string
	RawTime  string
}

// RefundCase is the analysis of one refund-seeking conversation.
type RefundCase struct {
	ConversationID   string
	SourceFile       string
	ReasonCategory   string
	SentimentJourney []SentimentSample
	Attempts         []RetentionAttempt
	Retained         bool
	FirstComplaint   string // first customer message, for exemplar lists
}

// Result is everything one conversation contributes to the aggregate. A
// conversation either contributes a whole Result or nothing at all.
type Result struct {
	Conversation *transcript.Conversation
	Issues       []Issue
	Refund       *RefundCase
}
