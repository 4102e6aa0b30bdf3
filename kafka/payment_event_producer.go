package kafka

import (
	"context"
	"encoding/json"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PaymentEventProducer publishes terminal payment events keyed by order
// reference so replays of the same settlement land on the same partition.
type PaymentEventProducer struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

// NewPaymentEventProducer creates a producer for the given brokers and topic.
func NewPaymentEventProducer(brokers []string, topic string, logger *zap.Logger) *PaymentEventProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	logger.Info("Kafka payment event producer initialized",
		zap.String("topic", topic),
		zap.Strings("brokers", brokers),
	)
	return &PaymentEventProducer{writer: w, topic: topic, logger: logger}
}

// SendPaymentEvent marshals and publishes a payment event.
func (p *PaymentEventProducer) SendPaymentEvent(event models.PaymentEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderReference),
		Value: data,
	}

	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		p.logger.Error("Failed to send payment event",
			zap.String("type", event.Type),
			zap.String("order_reference", event.OrderReference),
			zap.Error(err),
		)
		return err
	}

	p.logger.Info("Payment event sent",
		zap.String("type", event.Type),
		zap.String("order_reference", event.OrderReference),
	)
	return nil
}

// Close closes the underlying writer.
func (p *PaymentEventProducer) Close() {
	_ = p.writer.Close()
	p.logger.Info("Kafka producer closed")
}
