// Package events publishes pool lifecycle notifications over Redis pub/sub.
// Delivery is best-effort: a lost event never fails a reservation.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const Channel = "promo:events"

const (
	TypePoolLowStock    = "pool.low_stock"
	TypePoolExhausted   = "pool.exhausted"
	TypeCampaignExpired = "campaign.expired"
)

type Event struct {
	Type       string    `json:"type"`
	CampaignID uuid.UUID `json:"campaign_id"`
	Available  int       `json:"available,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	client *redis.Client
}

// NewPublisher accepts a nil client, which turns publishing into a no-op.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) PoolLowStock(ctx context.Context, campaignID uuid.UUID, available int) {
	p.publish(Event{Type: TypePoolLowStock, CampaignID: campaignID, Available: available, OccurredAt: time.Now().UTC()})
}

func (p *Publisher) PoolExhausted(ctx context.Context, campaignID uuid.UUID) {
	p.publish(Event{Type: TypePoolExhausted, CampaignID: campaignID, OccurredAt: time.Now().UTC()})
}

func (p *Publisher) CampaignExpired(ctx context.Context, campaignID uuid.UUID) {
	p.publish(Event{Type: TypeCampaignExpired, CampaignID: campaignID, OccurredAt: time.Now().UTC()})
}

// publish fires asynchronously with its own deadline so a slow broker
// never holds up the request path.
func (p *Publisher) publish(evt Event) {
	if p.client == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		slog.Warn("failed to encode event", "type", evt.Type, "error", err.Error())
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := p.client.Publish(ctx, Channel, payload).Err(); err != nil {
			slog.Debug("event publish failed",
				"type", evt.Type,
				"campaign_id", evt.CampaignID.String(),
				"error", err.Error())
		}
	}()
}
