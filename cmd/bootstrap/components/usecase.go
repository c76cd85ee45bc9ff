package components

import (
	"promo-engine/internal/domain/resolver"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/config"
	"promo-engine/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewResolverConfig,
		NewCouponUseCase,
		NewCampaignUseCase,
		NewEvaluateUseCase,
		NewAuditUseCase,
	),
)

// NewResolverConfig fails startup on an unknown truncation policy instead
// of silently falling back.
func NewResolverConfig(cfg config.Config) (resolver.Config, error) {
	policy, err := resolver.ParseTruncationPolicy(cfg.Resolver.Truncation)
	if err != nil {
		return resolver.Config{}, err
	}
	return resolver.Config{
		FloorCents:     cfg.Resolver.FloorCents,
		GlobalCapCents: cfg.Resolver.GlobalCapCents,
		Truncation:     policy,
	}, nil
}

func NewCouponUseCase(store usecase.CouponStore, publisher usecase.EventPublisher, clk clock.Clock, cfg config.Config) usecase.CouponUseCase {
	return usecase.NewCouponUseCase(store, publisher, clk, cfg.Coupon)
}

func NewCampaignUseCase(
	campaigns usecase.CampaignStore,
	coupons usecase.CouponStore,
	snapshots usecase.SnapshotProvider,
	campaignCache usecase.CampaignCacheInvalidator,
	publisher usecase.EventPublisher,
	clk clock.Clock,
	cfg config.Config,
) usecase.CampaignUseCase {
	return usecase.NewCampaignUseCase(campaigns, coupons, snapshots, campaignCache, publisher, clk, cfg.Coupon)
}

func NewEvaluateUseCase(
	snapshots usecase.SnapshotProvider,
	coupons usecase.CouponUseCase,
	audit usecase.AuditStore,
	clk clock.Clock,
	resolverCfg resolver.Config,
) usecase.EvaluateUseCase {
	return usecase.NewEvaluateUseCase(snapshots, coupons, audit, clk, resolverCfg)
}

func NewAuditUseCase(store usecase.AuditStore, clk clock.Clock, cfg config.Config) usecase.AuditUseCase {
	return usecase.NewAuditUseCase(store, clk, cfg.Audit)
}
