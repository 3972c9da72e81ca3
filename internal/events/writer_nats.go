package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NatsWriter publishes the json encoded cloud event on the topic subject.
type NatsWriter struct {
	conn *nats.Conn
}

func NewNatsWriter(url string) (*NatsWriter, error) {
	opts := []nats.Option{
		nats.Name("job-triage"),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return &NatsWriter{conn: conn}, nil
}

func (n *NatsWriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := n.conn.Publish(topic, data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", e.ID(), err)
	}

	zap.S().Named("nats_writer").Debugw("event published", "subject", topic, "id", e.ID())
	return nil
}

// Close flushes the pending messages before closing the connection.
func (n *NatsWriter) Close(ctx context.Context) error {
	if err := n.conn.FlushWithContext(ctx); err != nil && !n.conn.IsClosed() {
		zap.S().Named("nats_writer").Warnw("failed to flush nats connection", "error", err)
	}
	n.conn.Close()
	return nil
}
