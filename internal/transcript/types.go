// Package transcript normalizes archived WhatsApp export files into a
// canonical Conversation, hiding the differences between the flat
// messages/fromMe schema and the enveloped body/position schema.
package transcript

import "time"

// Side is who authored a message.
type Side int

const (
	SideCustomer Side = iota
	SideSupport
)

func (s Side) String() string {
	if s == SideSupport {
		return "support"
	}
	return "customer"
}

// Kind distinguishes text messages from media attachments.
type Kind int

const (
	KindText Kind = iota
	KindMedia
)

func (k Kind) String() string {
	if k == KindMedia {
		return "media"
	}
	return "text"
}

// Media holds optional attachment metadata from the enveloped schema.
type Media struct {
	Name string
	Size string
}

// Message is a single turn in a conversation. RawTime keeps the source
// timestamp string verbatim; Timestamp is zero when it could not be parsed.
// Ordering within the conversation is authoritative for all windowed
// heuristics.
type Message struct {
	Side      Side
	Text      string
	RawTime   string
	Timestamp time.Time
	Kind      Kind
	Media     *Media
}

// Contact identifies the customer in one conversation.
type Contact struct {
	Name   string
	Member string // external id, e.g. phone number; may be empty
}

// Conversation is the canonical form of one transcript file. It is owned by
// exactly one source file and never merged across files.
type Conversation struct {
	ID         string
	SourceFile string
	Contact    Contact
	Messages   []Message
}

// CustomerMessages returns the customer-side messages in order.
func (c *Conversation) CustomerMessages() []Message {
	return c.bySide(SideCustomer)
}

// SupportMessages returns the support-side messages in order.
func (c *Conversation) SupportMessages() []Message {
	return c.bySide(SideSupport)
}

func (c *Conversation) bySide(side Side) []Message {
	var out []Message
	for _, m := range c.Messages {
		if m.Side == side {
			out = append(out, m)
		}
	}
	return out
}
