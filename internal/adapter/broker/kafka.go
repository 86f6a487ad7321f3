// Package broker implements the external topic gateway on Kafka.
package broker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jcmexdev/storefront/internal/core/ports"
)

var _ ports.BrokerGateway = (*KafkaPublisher)(nil)

// KafkaPublisher publishes JSON payloads. One writer serves every topic; the
// topic is set per message.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher parses a comma-separated broker list. An empty list
// yields a disabled publisher (Enabled() == false); the caller decides
// whether to wire the subscriber at all.
func NewKafkaPublisher(brokersCSV string) *KafkaPublisher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return &KafkaPublisher{}
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) Enabled() bool {
	return p.writer != nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: data,
		Time:  time.Now().UTC(),
	})
}

func (p *KafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
