// Package natsbus публикует команды рассылок дашборда в NATS.
// Используется вместо RabbitMQ, когда в окружении есть только NATS.
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher публикует JSON-сообщения в subject prefix + "." + routingKey.
type Publisher struct {
	conn   *nats.Conn
	prefix string
}

// Connect подключается к NATS с автоматическим переподключением.
func Connect(url, prefix string, opts ...nats.Option) (*Publisher, error) {
	const op = "natsbus.Connect"

	defaults := []nats.Option{
		nats.Name("dashboard-shell"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{conn: nc, prefix: prefix}, nil
}

// Subject возвращает subject для ключа маршрутизации.
func (p *Publisher) Subject(routingKey string) string {
	if p.prefix == "" {
		return routingKey
	}
	return p.prefix + "." + routingKey
}

// Publish сериализует message в JSON и публикует его.
func (p *Publisher) Publish(ctx context.Context, routingKey string, message any) error {
	const op = "natsbus.Publish"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := p.conn.Publish(p.Subject(routingKey), data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close сбрасывает буфер и закрывает соединение.
func (p *Publisher) Close() error {
	err := p.conn.Drain()
	if err != nil {
		p.conn.Close()
	}
	return err
}
