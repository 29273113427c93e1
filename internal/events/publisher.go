// Package events publishes run lifecycle events to NATS so downstream
// consumers (dashboard refresh, alerting) know when fresh analysis exists.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectRunCompleted announces one finished batch analysis.
const SubjectRunCompleted = "chatminer.run.completed"

// RunCompleted is the payload published after a successful batch.
type RunCompleted struct {
	RunID         string  `json:"run_id"`
	CompletedAt   string  `json:"completed_at"`
	Files         int     `json:"files"`
	Processed     int     `json:"processed"`
	Skipped       int     `json:"skipped"`
	TotalIssues   int     `json:"total_issues"`
	TotalResolved int     `json:"total_resolved"`
	OverallRate   float64 `json:"overall_rate"`
	RefundCases   int     `json:"refund_cases"`
	RetentionRate float64 `json:"retention_rate"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) PublishRunCompleted(evt RunCompleted) error {
	if evt.CompletedAt == "" {
		evt.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := p.conn.Publish(SubjectRunCompleted, payload); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectRunCompleted, err)
	}
	p.logger.Info("run event published", "subject", SubjectRunCompleted, "run_id", evt.RunID)
	return nil
}

func (p *Publisher) Close() {
	p.conn.Close()
}
