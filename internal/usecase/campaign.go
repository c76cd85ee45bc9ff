package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/domain/condition"
	"promo-engine/internal/infra"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/config"
	"promo-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCampaignValidation = errs.New("invalid campaign definition")
	ErrRuleSyntax         = errs.New("invalid rule text")
	ErrCampaignNotFound   = errs.New("campaign not found")
)

type PoolInput struct {
	Size             int
	PerCustomerLimit int
}

type UpsertCampaignInput struct {
	ID               *uuid.UUID
	Name             string
	RuleText         string
	DiscountKind     string
	Percent          float64
	AmountCents      int64
	BuyX             int
	GetY             int
	CapCents         int64
	Priority         int
	ExclusivityGroup string
	Compounding      bool
	StartsAt         time.Time
	EndsAt           time.Time
	Status           string
	MaxConcurrent    int
	Pool             *PoolInput
}

type CampaignUseCase interface {
	Upsert(ctx context.Context, input UpsertCampaignInput) (*campaign.Campaign, error)
	Expire(ctx context.Context, id uuid.UUID) error
}

type campaignUseCaseImpl struct {
	campaigns CampaignStore
	coupons   CouponStore
	registry  SnapshotProvider
	cache     CampaignCacheInvalidator
	publisher EventPublisher
	clock     clock.Clock
	couponCfg config.CouponConfig
}

func NewCampaignUseCase(
	campaigns CampaignStore,
	coupons CouponStore,
	registry SnapshotProvider,
	cache CampaignCacheInvalidator,
	publisher EventPublisher,
	clk clock.Clock,
	couponCfg config.CouponConfig,
) CampaignUseCase {
	return &campaignUseCaseImpl{
		campaigns: campaigns,
		coupons:   coupons,
		registry:  registry,
		cache:     cache,
		publisher: publisher,
		clock:     clk,
		couponCfg: couponCfg,
	}
}

// Upsert validates and persists a campaign definition, provisioning its
// coupon pool on first activation. Rules are compiled here so a definition
// that does not parse never reaches the registry.
func (u *campaignUseCaseImpl) Upsert(ctx context.Context, input UpsertCampaignInput) (*campaign.Campaign, error) {
	params, err := u.buildParams(input)
	if err != nil {
		return nil, err
	}

	c, err := campaign.New(params)
	if err != nil {
		if errors.Is(err, condition.ErrSyntax) {
			return nil, errs.Mark(err, ErrRuleSyntax)
		}
		return nil, errs.Mark(err, ErrCampaignValidation)
	}

	if err := u.campaigns.Save(ctx, c); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, ErrCampaignValidation)
		}
		return nil, errs.Mark(err, ErrStoreUnavailable)
	}

	if c.HasCouponPool() {
		pool := c.Pool()
		err := u.coupons.CreatePool(ctx, CreatePoolParams{
			CampaignID:       c.ID(),
			Size:             pool.Size(),
			PerCustomerLimit: pool.PerCustomerLimit(),
			Codes:            GenerateCodes(pool.Size()),
			ExpiresAt:        u.clock.Now().Add(u.couponCfg.CodeTTL),
			Now:              u.clock.Now(),
		})
		if err != nil {
			return nil, errs.Mark(err, ErrStoreUnavailable)
		}
	}

	u.invalidate(ctx)
	return c, nil
}

// Expire transitions a campaign to expired and retires its remaining
// available codes. Idempotent: expiring an expired campaign is a no-op.
func (u *campaignUseCaseImpl) Expire(ctx context.Context, id uuid.UUID) error {
	changed, err := u.campaigns.UpdateStatus(ctx, id, campaign.StatusExpired)
	if err != nil {
		return errs.Mark(err, ErrStoreUnavailable)
	}
	if !changed {
		if _, err := u.campaigns.FindByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCampaignNotFound
			}
			return errs.Mark(err, ErrStoreUnavailable)
		}
		// Already expired.
		return nil
	}

	if err := u.coupons.RetirePool(ctx, id, u.clock.Now()); err != nil {
		// The campaign is already out of rotation; unredeemed codes will
		// also be rejected by their own expiry check.
		slog.Warn("failed to retire coupon pool for expired campaign",
			"campaign_id", id.String(),
			"error", err.Error())
	}

	u.publisher.CampaignExpired(ctx, id)
	u.invalidate(ctx)
	return nil
}

func (u *campaignUseCaseImpl) buildParams(input UpsertCampaignInput) (campaign.Params, error) {
	kind, err := campaign.ParseDiscountKind(input.DiscountKind)
	if err != nil {
		return campaign.Params{}, errs.Mark(err, ErrCampaignValidation)
	}

	var discount campaign.Discount
	switch kind {
	case campaign.DiscountPercent:
		discount, err = campaign.NewPercentDiscount(input.Percent, input.CapCents)
	case campaign.DiscountFixed:
		discount, err = campaign.NewFixedDiscount(input.AmountCents, input.CapCents)
	case campaign.DiscountBuyXGetY:
		discount, err = campaign.NewBuyXGetYDiscount(input.BuyX, input.GetY, input.CapCents)
	}
	if err != nil {
		return campaign.Params{}, errs.Mark(err, ErrCampaignValidation)
	}

	status, err := campaign.ParseStatus(input.Status)
	if err != nil {
		return campaign.Params{}, errs.Mark(err, ErrCampaignValidation)
	}

	params := campaign.Params{
		Name:             input.Name,
		RuleText:         input.RuleText,
		Discount:         discount,
		Priority:         input.Priority,
		ExclusivityGroup: input.ExclusivityGroup,
		Compounding:      input.Compounding,
		StartsAt:         input.StartsAt,
		EndsAt:           input.EndsAt,
		Status:           status,
		MaxConcurrent:    input.MaxConcurrent,
	}
	if input.ID != nil {
		params.ID = *input.ID
	}
	if input.Pool != nil {
		pool, err := campaign.NewPoolSpec(input.Pool.Size, input.Pool.PerCustomerLimit)
		if err != nil {
			return campaign.Params{}, errs.Mark(err, ErrCampaignValidation)
		}
		params.Pool = &pool
	}
	return params, nil
}

func (u *campaignUseCaseImpl) invalidate(ctx context.Context) {
	u.cache.Invalidate(ctx)
	u.registry.Invalidate()
}
