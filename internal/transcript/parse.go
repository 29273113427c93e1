package transcript

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// callbackPrefix is the JSONP-style wrapper some exports carry around the
// envelope payload. It must be stripped before decoding.
const callbackPrefix = "contentCallbackFunc("

// envelopeTimeLayout is the timestamp format used by the enveloped schema.
const envelopeTimeLayout = "2006/01/02 15:04:05"

// probe is used to sniff which schema a file uses. Exactly one of Messages or
// Body is populated in valid files.
type probe struct {
	Head     *envHead      `json:"head"`
	Body     []envMessage  `json:"body"`
	Messages []flatMessage `json:"messages"`
}

type envHead struct {
	Name   string `json:"name"`
	Member string `json:"member"`
}

type envMessage struct {
	Position  string `json:"position"`
	Type      string `json:"type"`
	Msg       string `json:"msg"`
	Time      string `json:"time"`
	MediaName string `json:"mediaName"`
	MediaSize string `json:"mediaSize"`
}

type flatMessage struct {
	FromMe    bool            `json:"fromMe"`
	Body      string          `json:"body"`
	Timestamp json.RawMessage `json:"timestamp"`
}

// ParseFile reads one transcript file and returns its canonical Conversation.
// It sniffs the schema (flat vs. enveloped), strips the optional callback
// wrapper, and tolerates missing optional fields. It returns a *FormatError
// when the payload cannot be decoded or has no message list, and
// ErrEmptyConversation when the message list is empty.
func ParseFile(path string) (*Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "read file", Err: err}
	}
	return Parse(path, data)
}

// Parse decodes a raw transcript payload. path is used for error reporting
// and as the conversation's source file.
func Parse(path string, data []byte) (*Conversation, error) {
	data = stripCallback(data)

	var p probe
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &FormatError{Path: path, Reason: "decode json", Err: err}
	}

	conv := &Conversation{
		ID:         uuid.New().String(),
		SourceFile: path,
		Contact:    Contact{Name: "Unknown"},
	}
	if p.Head != nil {
		if p.Head.Name != "" {
			conv.Contact.Name = p.Head.Name
		}
		conv.Contact.Member = p.Head.Member
	}

	switch {
	case p.Body != nil:
		for _, m := range p.Body {
			conv.Messages = append(conv.Messages, fromEnvelope(m))
		}
	case p.Messages != nil:
		for _, m := range p.Messages {
			conv.Messages = append(conv.Messages, fromFlat(m))
		}
	default:
		return nil, &FormatError{Path: path, Reason: "no message list field"}
	}

	if len(conv.Messages) == 0 {
		return nil, ErrEmptyConversation
	}
	return conv, nil
}

// stripCallback removes a JSONP-style text wrapper, leaving the inner JSON
// object. Payloads without a wrapper pass through unchanged.
func stripCallback(data []byte) []byte {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte(callbackPrefix)) {
		trimmed = trimmed[len(callbackPrefix):]
		trimmed = bytes.TrimSuffix(bytes.TrimSpace(trimmed), []byte(")"))
		return trimmed
	}
	// Generic form: callbackName({...}).
	start := bytes.Index(trimmed, []byte("({"))
	end := bytes.LastIndex(trimmed, []byte("})"))
	if start != -1 && end != -1 && end > start && !bytes.HasPrefix(trimmed, []byte("{")) {
		return trimmed[start+1 : end+1]
	}
	return trimmed
}

// fromEnvelope maps an enveloped message: position left is the customer,
// right is the support side.
func fromEnvelope(m envMessage) Message {
	msg := Message{
		Side:    SideCustomer,
		Text:    m.Msg,
		RawTime: m.Time,
	}
	if m.Position == "right" {
		msg.Side = SideSupport
	}
	if m.Type != "" && m.Type != "text" {
		msg.Kind = KindMedia
	}
	if m.MediaName != "" || m.MediaSize != "" {
		msg.Media = &Media{Name: m.MediaName, Size: m.MediaSize}
	}
	if ts, err := time.Parse(envelopeTimeLayout, m.Time); err == nil {
		msg.Timestamp = ts
	}
	return msg
}

// fromFlat maps a flat message: fromMe true is the support side.
func fromFlat(m flatMessage) Message {
	msg := Message{
		Side: SideCustomer,
		Text: m.Body,
	}
	if m.FromMe {
		msg.Side = SideSupport
	}
	msg.RawTime, msg.Timestamp = parseFlatTimestamp(m.Timestamp)
	return msg
}

// parseFlatTimestamp accepts the timestamp encodings seen in flat exports:
// RFC3339 strings, unix seconds as a JSON number, or an arbitrary string kept
// verbatim when unparseable.
func parseFlatTimestamp(raw json.RawMessage) (string, time.Time) {
	if raw == nil {
		return "", time.Time{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return s, ts
		}
		if ts, err := time.Parse(envelopeTimeLayout, s); err == nil {
			return s, ts
		}
		return s, time.Time{}
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10), time.Unix(n, 0).UTC()
	}

	return strings.TrimSpace(string(raw)), time.Time{}
}
