// Package notify sends outbound SMS. LogSender is a placeholder that only
// logs; it makes no delivery attempt and always reports success. QueueSender
// hands messages to RabbitMQ for a provider worker to deliver.
package notify

import (
	"context"
	"log/slog"
)

// Result reports the outcome of a send.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
}

// SMSSender sends a text message to a phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) (Result, error)
}

// LogSender logs the message it was asked to send.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

// SendSMS never fails.
func (s *LogSender) SendSMS(ctx context.Context, to, message string) (Result, error) {
	s.log.InfoContext(ctx, "sending SMS",
		slog.String("to", to),
		slog.String("message", message),
		slog.Bool("stub", true),
	)
	return Result{Success: true}, nil
}
