// Package events публикует доменные события сервиса в RabbitMQ.
// Публикация best-effort: ошибка логируется вызывающей стороной и не влияет на ответ клиенту.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/oforha-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
)

// Ключи маршрутизации событий.
const (
	AccountCreated         = "account.created"
	SubscriberSubscribed   = "subscriber.subscribed"
	SubscriberResubscribed = "subscriber.resubscribed"
	SubscriberUnsubscribed = "subscriber.unsubscribed"
	FormSubmitted          = "form.submitted"
)

// Publisher публикует событие с ключом маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Event — тело сообщения.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// AMQP публикует события в обменник RabbitMQ.
type AMQP struct {
	mu       sync.Mutex
	ch       rabbitmq.Channel
	exchange string
}

// NewAMQP создаёт издателя поверх открытого канала.
func NewAMQP(ch rabbitmq.Channel, exchange string) *AMQP {
	return &AMQP{ch: ch, exchange: exchange}
}

func (p *AMQP) Publish(ctx context.Context, routingKey string, payload any) error {
	const op = "events.Publish"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	event := Event{
		Type:       routingKey,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	if err := rabbitmq.PublishMessage(p.ch, p.exchange, routingKey, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Noop отбрасывает события. Используется без настроенного брокера.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

// FailureCounter учитывает неудачные публикации.
type FailureCounter interface {
	EventFailed(event string)
}

type instrumented struct {
	next    Publisher
	counter FailureCounter
}

// Instrument оборачивает издателя счётчиком ошибок публикации.
func Instrument(p Publisher, counter FailureCounter) Publisher {
	return &instrumented{next: p, counter: counter}
}

func (i *instrumented) Publish(ctx context.Context, routingKey string, payload any) error {
	err := i.next.Publish(ctx, routingKey, payload)
	if err != nil {
		i.counter.EventFailed(routingKey)
	}
	return err
}

// Emit публикует событие и только логирует ошибку.
func Emit(ctx context.Context, log *slog.Logger, p Publisher, routingKey string, payload any) {
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		log.Warn("failed to publish event", slog.String("event", routingKey), sl.Err(err))
	}
}
