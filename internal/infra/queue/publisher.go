package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends JSON messages to topic exchanges over one shared channel.
type Publisher struct {
	conn *amqp.Connection
	log  *zap.Logger

	mu       sync.Mutex
	ch       *amqp.Channel
	declared map[string]bool
}

func NewPublisher(conn *amqp.Connection, log *zap.Logger) *Publisher {
	return &Publisher{
		conn:     conn,
		log:      log.Named("mq.publisher"),
		declared: map[string]bool{},
	}
}

// channel returns the live channel, reopening it after a broker-side close.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p.ch = ch
	p.declared = map[string]bool{}
	return ch, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, exchange, routingKey string, data interface{}) error {
	body, err := sonic.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	if !p.declared[exchange] {
		if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange %s: %w", exchange, err)
		}
		p.declared[exchange] = true
	}

	err = ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
	}
	p.log.Debug("published", zap.String("exchange", exchange), zap.String("routing_key", routingKey))
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return nil
	}
	return p.ch.Close()
}
