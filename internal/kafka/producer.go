package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer is a thin async wrapper around a kafka writer. Writes are
// fire-and-forget; delivery failures are logged, never propagated to the
// request path that triggered them.
type Producer struct {
	w   *kafka.Writer
	log *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	p := &Producer{log: log}
	p.w = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				p.log.Warn("kafka: delivery failed",
					zap.String("topic", topic),
					zap.Int("messages", len(messages)),
					zap.Error(err))
			}
		},
	}
	return p
}

func (p *Producer) Publish(ctx context.Context, key, value []byte) {
	err := p.w.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.log.Warn("kafka: enqueue failed", zap.Error(err))
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}
