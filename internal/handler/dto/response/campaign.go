package response

import (
	"time"

	"promo-engine/internal/domain/campaign"

	"github.com/google/uuid"
)

type PoolResponse struct {
	Size             int `json:"size"`
	PerCustomerLimit int `json:"perCustomerLimit"`
}

type CampaignResponse struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	RuleText         string        `json:"ruleText"`
	DiscountKind     string        `json:"discountKind"`
	Priority         int           `json:"priority"`
	ExclusivityGroup string        `json:"exclusivityGroup,omitempty"`
	Compounding      bool          `json:"compounding,omitempty"`
	StartsAt         time.Time     `json:"startsAt"`
	EndsAt           time.Time     `json:"endsAt"`
	Status           string        `json:"status"`
	MaxConcurrent    int           `json:"maxConcurrent"`
	Pool             *PoolResponse `json:"pool,omitempty"`
}

func FromCampaign(c *campaign.Campaign) *CampaignResponse {
	resp := &CampaignResponse{
		ID:               c.ID(),
		Name:             c.Name(),
		RuleText:         c.RuleText(),
		DiscountKind:     string(c.Discount().Kind()),
		Priority:         c.Priority(),
		ExclusivityGroup: c.ExclusivityGroup(),
		Compounding:      c.Compounding(),
		StartsAt:         c.StartsAt(),
		EndsAt:           c.EndsAt(),
		Status:           string(c.Status()),
		MaxConcurrent:    c.MaxConcurrent(),
	}
	if pool := c.Pool(); pool != nil {
		resp.Pool = &PoolResponse{
			Size:             pool.Size(),
			PerCustomerLimit: pool.PerCustomerLimit(),
		}
	}
	return resp
}
