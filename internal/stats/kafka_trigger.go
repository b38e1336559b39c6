package stats

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type refreshEvent struct {
	TenantID    uint      `json:"tenant_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// KafkaTrigger publishes a refresh request keyed by tenant so requests for
// one shop stay ordered on a partition.
type KafkaTrigger struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaTrigger(brokers []string, topic string) *KafkaTrigger {
	return &KafkaTrigger{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:  brokers,
			Topic:    topic,
			Balancer: &kafka.Hash{},
		}),
		now: time.Now,
	}
}

func (t *KafkaTrigger) Refresh(ctx context.Context, tenantID uint) error {
	payload, err := json.Marshal(refreshEvent{TenantID: tenantID, RequestedAt: t.now().UTC()})
	if err != nil {
		return err
	}

	return t.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(tenantID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("shop.statistics.refresh")},
		},
	})
}

func (t *KafkaTrigger) Close() error {
	return t.writer.Close()
}
