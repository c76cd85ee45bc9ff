// Package cache memoizes the campaign list in Redis so a fleet of engine
// processes shares one load of the definitions between invalidations.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/registry"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const campaignsKey = "promo:campaigns"

type CampaignCache struct {
	client *redis.Client
	inner  registry.Source
	ttl    time.Duration
}

// New wraps a campaign source. A nil client disables caching and every
// read falls through to the source.
func New(client *redis.Client, inner registry.Source, ttl time.Duration) *CampaignCache {
	return &CampaignCache{client: client, inner: inner, ttl: ttl}
}

func (c *CampaignCache) ListAll(ctx context.Context) ([]*campaign.Campaign, error) {
	if c.client == nil {
		return c.inner.ListAll(ctx)
	}

	if payload, err := c.client.Get(ctx, campaignsKey).Bytes(); err == nil {
		if campaigns, ok := decodeCampaigns(payload); ok {
			return campaigns, nil
		}
	} else if err != redis.Nil {
		slog.Warn("campaign cache read failed, falling back to store", "error", err.Error())
	}

	campaigns, err := c.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := encodeCampaigns(campaigns); err == nil {
		if err := c.client.Set(ctx, campaignsKey, payload, c.ttl).Err(); err != nil {
			slog.Warn("campaign cache write failed", "error", err.Error())
		}
	}
	return campaigns, nil
}

func (c *CampaignCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, campaignsKey).Err(); err != nil {
		slog.Warn("campaign cache invalidation failed", "error", err.Error())
	}
}

// cachedCampaign is the wire form; rules are stored as text and recompiled
// on read so the cache never carries compiled state.
type cachedCampaign struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	RuleText         string    `json:"rule_text"`
	DiscountKind     string    `json:"discount_kind"`
	Percent          float64   `json:"percent,omitempty"`
	AmountCents      int64     `json:"amount_cents,omitempty"`
	BuyX             int       `json:"buy_x,omitempty"`
	GetY             int       `json:"get_y,omitempty"`
	CapCents         int64     `json:"cap_cents,omitempty"`
	Priority         int       `json:"priority"`
	ExclusivityGroup string    `json:"exclusivity_group,omitempty"`
	Compounding      bool      `json:"compounding,omitempty"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	Status           string    `json:"status"`
	MaxConcurrent    int       `json:"max_concurrent"`
	PoolSize         int       `json:"pool_size,omitempty"`
	PerCustomerLimit int       `json:"per_customer_limit,omitempty"`
}

func encodeCampaigns(campaigns []*campaign.Campaign) ([]byte, error) {
	rows := make([]cachedCampaign, len(campaigns))
	for i, c := range campaigns {
		d := c.Discount()
		row := cachedCampaign{
			ID:               c.ID(),
			Name:             c.Name(),
			RuleText:         c.RuleText(),
			DiscountKind:     string(d.Kind()),
			Percent:          d.Percent(),
			AmountCents:      d.AmountCents(),
			BuyX:             d.BuyX(),
			GetY:             d.GetY(),
			CapCents:         d.CapCents(),
			Priority:         c.Priority(),
			ExclusivityGroup: c.ExclusivityGroup(),
			Compounding:      c.Compounding(),
			StartsAt:         c.StartsAt(),
			EndsAt:           c.EndsAt(),
			Status:           string(c.Status()),
			MaxConcurrent:    c.MaxConcurrent(),
		}
		if pool := c.Pool(); pool != nil {
			row.PoolSize = pool.Size()
			row.PerCustomerLimit = pool.PerCustomerLimit()
		}
		rows[i] = row
	}
	return json.Marshal(rows)
}

func decodeCampaigns(payload []byte) ([]*campaign.Campaign, bool) {
	var rows []cachedCampaign
	if err := json.Unmarshal(payload, &rows); err != nil {
		slog.Warn("discarding undecodable campaign cache entry", "error", err.Error())
		return nil, false
	}

	out := make([]*campaign.Campaign, 0, len(rows))
	for _, row := range rows {
		c, err := rebuildCampaign(row)
		if err != nil {
			slog.Warn("discarding stale campaign cache entry",
				"campaign_id", row.ID.String(),
				"error", err.Error())
			return nil, false
		}
		out = append(out, c)
	}
	return out, true
}

func rebuildCampaign(row cachedCampaign) (*campaign.Campaign, error) {
	var (
		discount campaign.Discount
		err      error
	)
	switch campaign.DiscountKind(row.DiscountKind) {
	case campaign.DiscountPercent:
		discount, err = campaign.NewPercentDiscount(row.Percent, row.CapCents)
	case campaign.DiscountFixed:
		discount, err = campaign.NewFixedDiscount(row.AmountCents, row.CapCents)
	case campaign.DiscountBuyXGetY:
		discount, err = campaign.NewBuyXGetYDiscount(row.BuyX, row.GetY, row.CapCents)
	default:
		err = campaign.ErrInvalidDiscountKind
	}
	if err != nil {
		return nil, err
	}

	status, err := campaign.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	params := campaign.Params{
		ID:               row.ID,
		Name:             row.Name,
		RuleText:         row.RuleText,
		Discount:         discount,
		Priority:         row.Priority,
		ExclusivityGroup: row.ExclusivityGroup,
		Compounding:      row.Compounding,
		StartsAt:         row.StartsAt,
		EndsAt:           row.EndsAt,
		Status:           status,
		MaxConcurrent:    row.MaxConcurrent,
	}
	if row.PoolSize > 0 {
		pool, err := campaign.NewPoolSpec(row.PoolSize, row.PerCustomerLimit)
		if err != nil {
			return nil, err
		}
		params.Pool = &pool
	}
	return campaign.New(params)
}
