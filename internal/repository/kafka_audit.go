package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domrepo "github.com/Manzely360/3omla-cloud-sub001/internal/domain/repository"
	pkgkafka "github.com/Manzely360/3omla-cloud-sub001/pkg/kafka"
)

// KafkaAuditTrail publishes submission outcomes to the audit topic. Keyed by
// timestamp day so a day's events land on the same partition, in order.
type KafkaAuditTrail struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaAuditTrail(producer *pkgkafka.Producer, topic string) *KafkaAuditTrail {
	return &KafkaAuditTrail{producer: producer, topic: topic}
}

func (a *KafkaAuditTrail) Publish(ctx context.Context, event interface{}) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	key := []byte(time.Now().UTC().Format("2006-01-02"))
	return a.producer.Publish(ctx, a.topic, key, value)
}

var _ domrepo.AuditTrail = (*KafkaAuditTrail)(nil)
