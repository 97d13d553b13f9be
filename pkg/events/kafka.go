package events

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the sink needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DefaultPublishTimeout bounds one Publish when KafkaSink.Timeout is zero.
const DefaultPublishTimeout = 5 * time.Second

// KafkaSink publishes events as JSON messages keyed by kind.
type KafkaSink struct {
	writer MessageWriter
	// Timeout bounds each write so an unreachable broker cannot stall the
	// session that publishes.
	Timeout time.Duration
}

// NewKafkaSink creates a sink writing to topic on the given brokers.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

// NewKafkaSinkWithWriter wraps an existing writer.
func NewKafkaSinkWithWriter(w MessageWriter) *KafkaSink {
	return &KafkaSink{writer: w}
}

func (k *KafkaSink) Publish(ctx context.Context, ev Event) error {
	data, err := sonic.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", ev.Kind, err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.Kind),
		Value: data,
		Time:  ev.At,
	}
	timeout := k.Timeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: publish %s: %w", ev.Kind, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (k *KafkaSink) Close() error {
	if k.writer == nil {
		return nil
	}
	return k.writer.Close()
}
