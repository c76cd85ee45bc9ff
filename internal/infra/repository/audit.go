package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"promo-engine/internal/infra"
	"promo-engine/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewAuditRepository(pool *pgxpool.Pool, timeout time.Duration) *AuditRepository {
	return &AuditRepository{pool: pool, timeout: timeout}
}

func (r *AuditRepository) Insert(ctx context.Context, d *usecase.Decision) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rejections, err := json.Marshal(d.Rejections)
	if err != nil {
		return infra.WrapRepoErr("failed to encode rejections", err)
	}

	var couponCode *string
	if d.CouponCode != "" {
		couponCode = &d.CouponCode
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_decisions (
			id, order_id, occurred_at, snapshot_version,
			matched_campaign_ids, applied_campaign_ids, rejections,
			total_discount_cents, coupon_code
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.OrderID, d.OccurredAt, int64(d.SnapshotVersion),
		d.MatchedCampaignIDs, d.AppliedCampaignIDs, rejections,
		d.TotalDiscountCents, couponCode)
	if err != nil {
		return infra.WrapRepoErr("failed to insert decision", err)
	}
	return nil
}

// List pages newest-first by (occurred_at, id) keyset.
func (r *AuditRepository) List(ctx context.Context, f usecase.AuditFilter) ([]*usecase.Decision, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.OrderID != "" {
		add("order_id = $%d", f.OrderID)
	}
	if f.CampaignID != nil {
		add("$%d = ANY(matched_campaign_ids)", *f.CampaignID)
	}
	if f.From != nil {
		add("occurred_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("occurred_at < $%d", *f.To)
	}
	if !f.AfterTime.IsZero() {
		args = append(args, f.AfterTime, f.AfterID)
		conds = append(conds, fmt.Sprintf("(occurred_at, id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `
		SELECT id, order_id, occurred_at, snapshot_version,
		       matched_campaign_ids, applied_campaign_ids, rejections,
		       total_discount_cents, coupon_code
		FROM audit_decisions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY occurred_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list decisions", err)
	}
	defer rows.Close()

	var out []*usecase.Decision
	for rows.Next() {
		var (
			d          usecase.Decision
			version    int64
			rejections []byte
			couponCode *string
		)
		if err := rows.Scan(&d.ID, &d.OrderID, &d.OccurredAt, &version,
			&d.MatchedCampaignIDs, &d.AppliedCampaignIDs, &rejections,
			&d.TotalDiscountCents, &couponCode); err != nil {
			return nil, infra.WrapRepoErr("failed to scan decision row", err)
		}
		d.SnapshotVersion = uint64(version)
		if err := json.Unmarshal(rejections, &d.Rejections); err != nil {
			return nil, infra.WrapRepoErr("failed to decode rejections", err)
		}
		if couponCode != nil {
			d.CouponCode = *couponCode
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate decision rows", err)
	}
	return out, nil
}

func (r *AuditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		DELETE FROM audit_decisions WHERE occurred_at < $1`, cutoff)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired decisions", err)
	}
	return tag.RowsAffected(), nil
}

var (
	_ usecase.AuditStore    = (*AuditRepository)(nil)
	_ usecase.CouponStore   = (*CouponRepository)(nil)
	_ usecase.CampaignStore = (*CampaignRepository)(nil)
)
