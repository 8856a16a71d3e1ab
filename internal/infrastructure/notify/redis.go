package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shopstock/internal/domain/inventory"
)

// Compile-time check.
var _ inventory.Notifier = (*RedisSink)(nil)

// lowStockMessage is the payload published to the notification channel.
type lowStockMessage struct {
	ProductName  string    `json:"productName"`
	CurrentStock int64     `json:"currentStock"`
	Threshold    int64     `json:"threshold"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// RedisSink publishes low-stock notifications to a Redis channel.
// Downstream consumers (mail, ops dashboards) subscribe to it; this
// service does not care whether anyone is listening.
type RedisSink struct {
	client  *redis.Client
	channel string
}

// NewRedisSink creates a Redis-backed notification sink.
func NewRedisSink(client *redis.Client, channel string) *RedisSink {
	return &RedisSink{
		client:  client,
		channel: channel,
	}
}

// NotifyLowStock publishes one JSON message to the configured channel.
func (s *RedisSink) NotifyLowStock(ctx context.Context, productName string, currentStock, threshold int64) error {
	payload, err := json.Marshal(lowStockMessage{
		ProductName:  productName,
		CurrentStock: currentStock,
		Threshold:    threshold,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := s.client.Publish(ctx, s.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", s.channel, err)
	}

	return nil
}
