package transcript

import (
	"errors"
	"fmt"
)

// ErrEmptyConversation is returned for files that decode cleanly but carry no
// messages. The runner skips these and keeps going.
var ErrEmptyConversation = errors.New("transcript: conversation has no messages")

// FormatError reports a file that could not be decoded or lacks a
// recognizable message list. It wraps the underlying decode error when one
// exists.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcript: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("transcript: %s: %s", e.Path, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }
