package usecase

import (
	"context"
	"log/slog"
	"time"

	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/config"
	"promo-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidCursor    = errs.New("invalid pagination cursor")
	ErrAuditWriteFailed = errs.New("failed to record evaluation decision")
	ErrAuditQueryFailed = errs.New("failed to query decision trail")
)

// Decision is one append-only audit record: everything needed to answer
// "why did order X get discount Y".
type Decision struct {
	ID                 uuid.UUID
	OrderID            string
	OccurredAt         time.Time
	SnapshotVersion    uint64
	MatchedCampaignIDs []uuid.UUID
	AppliedCampaignIDs []uuid.UUID
	Rejections         []DecisionRejection
	TotalDiscountCents int64
	CouponCode         string
}

type DecisionRejection struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	Reason     string    `json:"reason"`
}

// AuditFilter is the store-level query shape. AfterTime/AfterID carry the
// decoded keyset position; zero values mean "from the newest".
type AuditFilter struct {
	OrderID    string
	CampaignID *uuid.UUID
	From       *time.Time
	To         *time.Time
	AfterTime  time.Time
	AfterID    uuid.UUID
	Limit      int
}

type AuditQuery struct {
	OrderID    string
	CampaignID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Cursor     string
	Limit      int
}

type AuditPage struct {
	Decisions  []*Decision
	NextCursor string
}

type AuditUseCase interface {
	Query(ctx context.Context, q AuditQuery) (*AuditPage, error)
	PruneExpired(ctx context.Context) (int64, error)
}

type auditUseCaseImpl struct {
	store AuditStore
	clock clock.Clock
	cfg   config.AuditConfig
}

func NewAuditUseCase(store AuditStore, clk clock.Clock, cfg config.AuditConfig) AuditUseCase {
	return &auditUseCaseImpl{store: store, clock: clk, cfg: cfg}
}

func (u *auditUseCaseImpl) Query(ctx context.Context, q AuditQuery) (*AuditPage, error) {
	filter := AuditFilter{
		OrderID:    q.OrderID,
		CampaignID: q.CampaignID,
		From:       q.From,
		To:         q.To,
		Limit:      ValidateLimit(q.Limit),
	}
	if q.Cursor != "" {
		afterTime, afterID, err := DecodeAfterCursor(q.Cursor)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidCursor)
		}
		filter.AfterTime = afterTime
		filter.AfterID = afterID
	}

	// Fetch one extra row to decide whether a next page exists.
	filter.Limit++
	decisions, err := u.store.List(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, ErrAuditQueryFailed)
	}

	page := &AuditPage{Decisions: decisions}
	if len(decisions) == filter.Limit {
		page.Decisions = decisions[:filter.Limit-1]
		last := page.Decisions[len(page.Decisions)-1]
		page.NextCursor = EncodeAfterCursor(last.OccurredAt, last.ID)
	}
	return page, nil
}

// PruneExpired deletes decisions past the retention window. Runs on a
// timer from the bootstrap lifecycle.
func (u *auditUseCaseImpl) PruneExpired(ctx context.Context) (int64, error) {
	cutoff := u.clock.Now().Add(-u.cfg.Retention)
	deleted, err := u.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, errs.Wrap(err, "failed to prune expired decisions")
	}
	if deleted > 0 {
		slog.Info("pruned expired audit decisions", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}
