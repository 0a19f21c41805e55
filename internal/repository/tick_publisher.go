package repository

import (
	"context"

	"SimMarket/internal/domain/models"
	pkgkafka "SimMarket/pkg/kafka"
)

// KafkaTickPublisher fans tick snapshots out on a Kafka topic, keyed by
// symbol so per-symbol ordering survives partitioning.
type KafkaTickPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaTickPublisher(producer *pkgkafka.Producer, topic string) *KafkaTickPublisher {
	return &KafkaTickPublisher{producer: producer, topic: topic}
}

func (p *KafkaTickPublisher) PublishTick(ctx context.Context, snap models.StockSnapshot) error {
	return p.producer.Publish(ctx, p.topic, []byte(snap.Symbol), map[string]interface{}{
		"symbol":             snap.Symbol,
		"currentPrice":       snap.CurrentPrice,
		"lastDayTradedPrice": snap.LastDayTradedPrice,
	})
}

func (p *KafkaTickPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
