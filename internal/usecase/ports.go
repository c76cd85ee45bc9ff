package usecase

import (
	"context"
	"time"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/registry"

	"github.com/google/uuid"
)

// Write-side ports implemented by internal/infra/repository. Reservation
// state transitions happen inside the store so they stay atomic across
// engine processes.

type CampaignStore interface {
	Save(ctx context.Context, c *campaign.Campaign) error
	FindByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error)
	// UpdateStatus reports whether a row actually transitioned.
	UpdateStatus(ctx context.Context, id uuid.UUID, status campaign.Status) (bool, error)
}

type ReserveCodeParams struct {
	Code          string
	CustomerID    uuid.UUID
	HolderID      string
	ReservationID uuid.UUID
	Now           time.Time
	TTL           time.Duration
}

type ReservedCode struct {
	ReservationID uuid.UUID
	Code          string
	CampaignID    uuid.UUID
	CustomerID    uuid.UUID
	HolderID      string
	ReservedUntil time.Time
}

type CreatePoolParams struct {
	CampaignID       uuid.UUID
	Size             int
	PerCustomerLimit int
	Codes            []string
	ExpiresAt        time.Time
	Now              time.Time
}

type PoolCounts struct {
	Total     int
	Available int
	Reserved  int
	Redeemed  int
}

type CouponStore interface {
	// CreatePool is idempotent: an existing pool for the campaign is left
	// untouched (pool size is fixed at creation).
	CreatePool(ctx context.Context, params CreatePoolParams) error
	RetirePool(ctx context.Context, campaignID uuid.UUID, now time.Time) error
	// ReserveCode performs the conditional status transition. Failures are
	// reported as repository error kinds for the use case to translate.
	ReserveCode(ctx context.Context, params ReserveCodeParams) (*ReservedCode, error)
	ConfirmReservation(ctx context.Context, reservationID uuid.UUID, now time.Time) error
	ReleaseReservation(ctx context.Context, reservationID uuid.UUID, now time.Time) error
	PoolCounts(ctx context.Context, campaignID uuid.UUID) (*PoolCounts, error)
}

type AuditStore interface {
	Insert(ctx context.Context, d *Decision) error
	List(ctx context.Context, f AuditFilter) ([]*Decision, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SnapshotProvider hands out consistent registry snapshots. Satisfied by
// *registry.Registry.
type SnapshotProvider interface {
	Current(ctx context.Context) (*registry.Snapshot, error)
	Invalidate()
}

// CampaignCacheInvalidator drops the memoized campaign list after writes.
type CampaignCacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// EventPublisher is best-effort: implementations must never block the
// evaluation or reservation path.
type EventPublisher interface {
	PoolLowStock(ctx context.Context, campaignID uuid.UUID, available int)
	PoolExhausted(ctx context.Context, campaignID uuid.UUID)
	CampaignExpired(ctx context.Context, campaignID uuid.UUID)
}
