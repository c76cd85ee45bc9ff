package request

import (
	"time"

	"promo-engine/internal/usecase"

	"github.com/google/uuid"
)

type PoolRequest struct {
	Size             int `json:"size" binding:"required,min=1"`
	PerCustomerLimit int `json:"per_customer_limit" binding:"min=0"`
}

type UpsertCampaignRequest struct {
	ID               *uuid.UUID   `json:"id,omitempty"`
	Name             string       `json:"name" binding:"required"`
	RuleText         string       `json:"rule_text" binding:"required"`
	DiscountKind     string       `json:"discount_kind" binding:"required"`
	Percent          float64      `json:"percent,omitempty"`
	AmountCents      int64        `json:"amount_cents,omitempty"`
	BuyX             int          `json:"buy_x,omitempty"`
	GetY             int          `json:"get_y,omitempty"`
	CapCents         int64        `json:"cap_cents,omitempty"`
	Priority         int          `json:"priority"`
	ExclusivityGroup string       `json:"exclusivity_group,omitempty"`
	Compounding      bool         `json:"compounding,omitempty"`
	StartsAt         time.Time    `json:"starts_at" binding:"required"`
	EndsAt           time.Time    `json:"ends_at" binding:"required"`
	Status           string       `json:"status" binding:"required"`
	MaxConcurrent    int          `json:"max_concurrent,omitempty"`
	Pool             *PoolRequest `json:"pool,omitempty"`
}

func (r UpsertCampaignRequest) ToInput() usecase.UpsertCampaignInput {
	input := usecase.UpsertCampaignInput{
		ID:               r.ID,
		Name:             r.Name,
		RuleText:         r.RuleText,
		DiscountKind:     r.DiscountKind,
		Percent:          r.Percent,
		AmountCents:      r.AmountCents,
		BuyX:             r.BuyX,
		GetY:             r.GetY,
		CapCents:         r.CapCents,
		Priority:         r.Priority,
		ExclusivityGroup: r.ExclusivityGroup,
		Compounding:      r.Compounding,
		StartsAt:         r.StartsAt,
		EndsAt:           r.EndsAt,
		Status:           r.Status,
		MaxConcurrent:    r.MaxConcurrent,
	}
	if r.Pool != nil {
		input.Pool = &usecase.PoolInput{
			Size:             r.Pool.Size,
			PerCustomerLimit: r.Pool.PerCustomerLimit,
		}
	}
	return input
}

type ReserveCouponRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	HolderID   string    `json:"holder_id" binding:"required"`
}
