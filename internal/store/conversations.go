package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/suporteware/chatminer/internal/analyze"
	"github.com/suporteware/chatminer/internal/classify"
)

// WriteResult persists one conversation with its messages and issues in a
// single transaction. Tables: conversations, messages, issues. A failed write
// leaves no partial rows behind.
func (s *Store) WriteResult(ctx context.Context, res analyze.Result) error {
	conv := res.Conversation

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	convID, err := uuid.Parse(conv.ID)
	if err != nil {
		convID = uuid.New()
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO conversations (id, contact_name, contact_number, file_name, created_at)
		VALUES ($1, $2, $3, $4, now())`,
		convID, conv.Contact.Name, conv.Contact.Member, conv.SourceFile,
	)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}

	for _, m := range conv.Messages {
		category := classify.Classify(m.Text, s.tax)
		sentiment := classify.TagSentiment(m.Text, s.tax.Sentiment)

		var mediaName, mediaSize string
		if m.Media != nil {
			mediaName, mediaSize = m.Media.Name, m.Media.Size
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO messages (id, conversation_id, message_text, message_type, position, raw_time, media_name, media_size, category, sentiment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())`,
			uuid.New(), convID, m.Text, m.Kind.String(), m.Side.String(), m.RawTime,
			mediaName, mediaSize, category, string(sentiment),
		)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}

	for _, issue := range res.Issues {
		status := "open"
		if issue.Resolved {
			status = "resolved"
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO issues (id, conversation_id, issue_type, description, status, priority, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, now())`,
			uuid.New(), convID, issue.Category, issue.Text, status, string(issue.Priority),
		)
		if err != nil {
			return fmt.Errorf("insert issue: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
