package components

import (
	"promo-engine/internal/infra/cache"
	"promo-engine/internal/infra/events"
	repo_impl "promo-engine/internal/infra/repository"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/config"
	"promo-engine/internal/registry"
	"promo-engine/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewCampaignRepository,
		NewCouponRepository,
		NewAuditRepository,
		NewCampaignCache,
		NewRegistry,
		NewEventPublisher,
		fx.Annotate(
			func(r *repo_impl.CampaignRepository) *repo_impl.CampaignRepository { return r },
			fx.As(new(usecase.CampaignStore)),
		),
		fx.Annotate(
			func(r *repo_impl.CouponRepository) *repo_impl.CouponRepository { return r },
			fx.As(new(usecase.CouponStore)),
		),
		fx.Annotate(
			func(r *repo_impl.AuditRepository) *repo_impl.AuditRepository { return r },
			fx.As(new(usecase.AuditStore)),
		),
		fx.Annotate(
			func(r *registry.Registry) *registry.Registry { return r },
			fx.As(new(usecase.SnapshotProvider)),
		),
		fx.Annotate(
			func(c *cache.CampaignCache) *cache.CampaignCache { return c },
			fx.As(new(usecase.CampaignCacheInvalidator)),
		),
		fx.Annotate(
			func(p *events.Publisher) *events.Publisher { return p },
			fx.As(new(usecase.EventPublisher)),
		),
	),
)

func NewCampaignRepository(pool *pgxpool.Pool, cfg config.Config) *repo_impl.CampaignRepository {
	return repo_impl.NewCampaignRepository(pool, cfg.DB.QueryTimeout)
}

func NewCouponRepository(pool *pgxpool.Pool, cfg config.Config) *repo_impl.CouponRepository {
	return repo_impl.NewCouponRepository(pool, cfg.DB.QueryTimeout)
}

func NewAuditRepository(pool *pgxpool.Pool, cfg config.Config) *repo_impl.AuditRepository {
	return repo_impl.NewAuditRepository(pool, cfg.DB.QueryTimeout)
}

// The registry reads through the Redis cache; invalidation drops the
// cached list so the next refresh hits the store.
func NewCampaignCache(client *redis.Client, repo *repo_impl.CampaignRepository, cfg config.Config) *cache.CampaignCache {
	return cache.New(client, repo, cfg.Cache.CampaignTTL)
}

func NewRegistry(campaignCache *cache.CampaignCache, clk clock.Clock, cfg config.Config) *registry.Registry {
	return registry.New(campaignCache, clk, cfg.Cache.CampaignTTL)
}

func NewEventPublisher(client *redis.Client) *events.Publisher {
	return events.NewPublisher(client)
}
