package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"academy_portal/internal/lib/sl"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Message is the JSON body published for each SMS.
type Message struct {
	ID          string    `json:"id"`
	To          string    `json:"to"`
	Message     string    `json:"message"`
	RequestedAt time.Time `json:"requested_at"`
}

// Publisher is the part of *amqp.Channel the sender uses.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// QueueSender publishes SMS requests to a durable queue via the default exchange.
type QueueSender struct {
	mu    sync.Mutex // amqp channels are not safe for concurrent publishing
	ch    Publisher
	queue string
	log   *slog.Logger
}

func NewQueueSender(ch Publisher, queue string, log *slog.Logger) *QueueSender {
	return &QueueSender{ch: ch, queue: queue, log: log}
}

// SendSMS reports success once the broker has accepted the message; delivery
// to the handset is up to the consumer.
func (s *QueueSender) SendSMS(ctx context.Context, to, message string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("failed to queue SMS: %w", err)
	}

	msg := Message{
		ID:          uuid.NewString(),
		To:          to,
		Message:     message,
		RequestedAt: time.Now().UTC(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode SMS: %w", err)
	}

	s.mu.Lock()
	err = s.ch.Publish("", s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    msg.ID,
		Timestamp:    msg.RequestedAt,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
	s.mu.Unlock()
	if err != nil {
		s.log.ErrorContext(ctx, "failed to publish SMS", slog.String("to", to), sl.Err(err))
		return Result{}, fmt.Errorf("failed to publish SMS: %w", err)
	}

	s.log.DebugContext(ctx, "SMS queued", slog.String("to", to), slog.String("message_id", msg.ID))
	return Result{Success: true, MessageID: msg.ID}, nil
}

// DialQueue connects to RabbitMQ, declares the durable queue and returns a
// sender plus a function closing the channel and connection.
func DialQueue(url, queue string, log *slog.Logger) (*QueueSender, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	closeFn := func() error {
		if err := ch.Close(); err != nil {
			_ = conn.Close()
			return err
		}
		return conn.Close()
	}
	return NewQueueSender(ch, queue, log), closeFn, nil
}
