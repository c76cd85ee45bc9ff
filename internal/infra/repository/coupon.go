package repository

import (
	"context"
	"errors"
	"time"

	"promo-engine/internal/infra"
	"promo-engine/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CouponRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewCouponRepository(pool *pgxpool.Pool, timeout time.Duration) *CouponRepository {
	return &CouponRepository{pool: pool, timeout: timeout}
}

func (r *CouponRepository) CreatePool(ctx context.Context, params usecase.CreatePoolParams) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin pool creation", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO coupon_pools (campaign_id, total_size, per_customer_limit)
		VALUES ($1, $2, $3)
		ON CONFLICT (campaign_id) DO NOTHING`,
		params.CampaignID, params.Size, params.PerCustomerLimit)
	if err != nil {
		return infra.WrapRepoErr("failed to create coupon pool", err)
	}
	if tag.RowsAffected() == 0 {
		// Pool already provisioned; size is fixed at creation.
		return nil
	}

	rows := make([][]any, len(params.Codes))
	for i, code := range params.Codes {
		rows[i] = []any{uuid.New(), params.CampaignID, code, "available", params.ExpiresAt}
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"coupon_codes"},
		[]string{"id", "campaign_id", "code", "status", "expires_at"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return infra.WrapRepoErr("failed to seed coupon codes", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit pool creation", err)
	}
	return nil
}

// RetirePool marks the pool retired and expires its remaining available
// codes. Reserved and redeemed codes keep their state for auditability.
func (r *CouponRepository) RetirePool(ctx context.Context, campaignID uuid.UUID, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin pool retirement", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE coupon_pools SET retired_at = $2
		WHERE campaign_id = $1 AND retired_at IS NULL`, campaignID, now); err != nil {
		return infra.WrapRepoErr("failed to retire coupon pool", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE coupon_codes SET status = 'expired', updated_at = $2
		WHERE campaign_id = $1 AND status = 'available'`, campaignID, now); err != nil {
		return infra.WrapRepoErr("failed to expire available codes", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit pool retirement", err)
	}
	return nil
}

type couponCodeRow struct {
	ID               uuid.UUID
	CampaignID       uuid.UUID
	Status           string
	ReservationID    *uuid.UUID
	ReservedBy       *string
	ReservedCustomer *uuid.UUID
	ReservedUntil    *time.Time
	ExpiresAt        time.Time
	PerCustomerLimit int
}

// ReserveCode is the single cross-process synchronization point. The
// usage-counter upsert and the status CAS run in one transaction: the
// counter's row lock serializes same-customer attempts, and the CAS on
// status = 'available' serializes attempts on the same code. Either guard
// failing rolls the whole attempt back.
func (r *CouponRepository) ReserveCode(ctx context.Context, params usecase.ReserveCodeParams) (*usecase.ReservedCode, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to begin reservation", err)
	}
	defer tx.Rollback(ctx)

	row, err := r.lookupCode(ctx, tx, params.Code)
	if err != nil {
		return nil, err
	}

	if row.Status == "redeemed" {
		return nil, infra.WrapRepoErr("coupon already redeemed", nil, infra.KindRedeemed)
	}
	if row.Status == "expired" || !params.Now.Before(row.ExpiresAt) {
		return nil, infra.WrapRepoErr("coupon expired", nil, infra.KindExpired)
	}

	if row.Status == "reserved" {
		if row.ReservedUntil != nil && params.Now.Before(*row.ReservedUntil) {
			if row.ReservedBy != nil && *row.ReservedBy == params.HolderID &&
				row.ReservedCustomer != nil && *row.ReservedCustomer == params.CustomerID {
				// Same holder retrying: hand back the live reservation.
				return &usecase.ReservedCode{
					ReservationID: *row.ReservationID,
					Code:          params.Code,
					CampaignID:    row.CampaignID,
					CustomerID:    params.CustomerID,
					HolderID:      params.HolderID,
					ReservedUntil: *row.ReservedUntil,
				}, nil
			}
			return nil, infra.WrapRepoErr("coupon held by another reservation", nil, infra.KindConflict)
		}
		// Hold lapsed: reclaim it before taking a new one. The status guard
		// makes this safe against a concurrent reclaimer.
		if err := r.reclaimStale(ctx, tx, row, params.Now); err != nil {
			return nil, err
		}
	}

	// A hold that lapsed on some other code of this campaign must not keep
	// counting against the customer. Return those codes and their usage
	// before checking the limit.
	if err := r.reclaimCustomerLapsed(ctx, tx, row.CampaignID, params.CustomerID, params.Now); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO coupon_usages (campaign_id, customer_id, held, redeemed)
		VALUES ($1, $2, 1, 0)
		ON CONFLICT (campaign_id, customer_id) DO UPDATE
		SET held = coupon_usages.held + 1
		WHERE coupon_usages.held + coupon_usages.redeemed < $3`,
		row.CampaignID, params.CustomerID, row.PerCustomerLimit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count coupon usage", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, infra.WrapRepoErr("per-customer usage limit reached", nil, infra.KindUsageLimit)
	}

	reservedUntil := params.Now.Add(params.TTL)
	tag, err = tx.Exec(ctx, `
		UPDATE coupon_codes
		SET status = 'reserved',
		    reservation_id = $2,
		    reserved_by = $3,
		    reserved_customer = $4,
		    reserved_until = $5,
		    updated_at = $6
		WHERE id = $1 AND status = 'available'`,
		row.ID, params.ReservationID, params.HolderID, params.CustomerID, reservedUntil, params.Now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reserve coupon code", err)
	}
	if tag.RowsAffected() == 0 {
		// Lost the race; the rollback also reverts the usage increment.
		return nil, infra.WrapRepoErr("coupon held by another reservation", nil, infra.KindConflict)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, infra.WrapRepoErr("failed to commit reservation", err)
	}

	return &usecase.ReservedCode{
		ReservationID: params.ReservationID,
		Code:          params.Code,
		CampaignID:    row.CampaignID,
		CustomerID:    params.CustomerID,
		HolderID:      params.HolderID,
		ReservedUntil: reservedUntil,
	}, nil
}

// ConfirmReservation transitions reserved to redeemed. Confirming an
// already-redeemed reservation is a no-op so retries stay safe.
func (r *CouponRepository) ConfirmReservation(ctx context.Context, reservationID uuid.UUID, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin confirmation", err)
	}
	defer tx.Rollback(ctx)

	var campaignID, customerID uuid.UUID
	err = tx.QueryRow(ctx, `
		WITH target AS (
			SELECT id, campaign_id, reserved_customer
			FROM coupon_codes
			WHERE reservation_id = $1 AND status = 'reserved' AND reserved_until > $2
			FOR UPDATE
		)
		UPDATE coupon_codes cc
		SET status = 'redeemed',
		    redeemed_by = t.reserved_customer,
		    redeemed_at = $2,
		    updated_at = $2
		FROM target t
		WHERE cc.id = t.id
		RETURNING t.campaign_id, t.reserved_customer`,
		reservationID, now).Scan(&campaignID, &customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.classifyMissedConfirm(ctx, tx, reservationID, now)
		}
		return infra.WrapRepoErr("failed to confirm reservation", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE coupon_usages
		SET held = held - 1, redeemed = redeemed + 1
		WHERE campaign_id = $1 AND customer_id = $2 AND held > 0`,
		campaignID, customerID); err != nil {
		return infra.WrapRepoErr("failed to move usage from held to redeemed", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit confirmation", err)
	}
	return nil
}

// ReleaseReservation returns a held code to the pool. Unknown, lapsed and
// already-released reservations are all no-ops.
func (r *CouponRepository) ReleaseReservation(ctx context.Context, reservationID uuid.UUID, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin release", err)
	}
	defer tx.Rollback(ctx)

	var campaignID, customerID uuid.UUID
	err = tx.QueryRow(ctx, `
		WITH target AS (
			SELECT id, campaign_id, reserved_customer
			FROM coupon_codes
			WHERE reservation_id = $1 AND status = 'reserved'
			FOR UPDATE
		)
		UPDATE coupon_codes cc
		SET status = 'available',
		    reservation_id = NULL,
		    reserved_by = NULL,
		    reserved_customer = NULL,
		    reserved_until = NULL,
		    updated_at = $2
		FROM target t
		WHERE cc.id = t.id
		RETURNING t.campaign_id, t.reserved_customer`,
		reservationID, now).Scan(&campaignID, &customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return infra.WrapRepoErr("failed to release reservation", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE coupon_usages SET held = held - 1
		WHERE campaign_id = $1 AND customer_id = $2 AND held > 0`,
		campaignID, customerID); err != nil {
		return infra.WrapRepoErr("failed to decrement held usage", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit release", err)
	}
	return nil
}

func (r *CouponRepository) PoolCounts(ctx context.Context, campaignID uuid.UUID) (*usecase.PoolCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var counts usecase.PoolCounts
	err := r.pool.QueryRow(ctx, `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'available'),
		       count(*) FILTER (WHERE status = 'reserved'),
		       count(*) FILTER (WHERE status = 'redeemed')
		FROM coupon_codes
		WHERE campaign_id = $1`, campaignID).
		Scan(&counts.Total, &counts.Available, &counts.Reserved, &counts.Redeemed)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count pool codes", err)
	}
	if counts.Total == 0 {
		return nil, infra.WrapRepoErr("coupon pool not found", nil, infra.KindNotFound)
	}
	return &counts, nil
}

func (r *CouponRepository) lookupCode(ctx context.Context, tx pgx.Tx, code string) (*couponCodeRow, error) {
	var row couponCodeRow
	err := tx.QueryRow(ctx, `
		SELECT cc.id, cc.campaign_id, cc.status,
		       cc.reservation_id, cc.reserved_by, cc.reserved_customer, cc.reserved_until,
		       cc.expires_at, cp.per_customer_limit
		FROM coupon_codes cc
		JOIN coupon_pools cp ON cp.campaign_id = cc.campaign_id
		WHERE cc.code = $1`, code).
		Scan(&row.ID, &row.CampaignID, &row.Status,
			&row.ReservationID, &row.ReservedBy, &row.ReservedCustomer, &row.ReservedUntil,
			&row.ExpiresAt, &row.PerCustomerLimit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to look up coupon code", err)
	}
	return &row, nil
}

// reclaimStale returns a lapsed hold to the pool lazily, on the next
// touch of the code. No background sweeper is needed.
func (r *CouponRepository) reclaimStale(ctx context.Context, tx pgx.Tx, row *couponCodeRow, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE coupon_codes
		SET status = 'available',
		    reservation_id = NULL,
		    reserved_by = NULL,
		    reserved_customer = NULL,
		    reserved_until = NULL,
		    updated_at = $2
		WHERE id = $1 AND status = 'reserved' AND reserved_until <= $2`,
		row.ID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to reclaim lapsed reservation", err)
	}
	if tag.RowsAffected() == 0 {
		// A concurrent attempt re-reserved it first.
		return infra.WrapRepoErr("coupon held by another reservation", nil, infra.KindConflict)
	}
	if row.ReservedCustomer != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE coupon_usages SET held = held - 1
			WHERE campaign_id = $1 AND customer_id = $2 AND held > 0`,
			row.CampaignID, *row.ReservedCustomer); err != nil {
			return infra.WrapRepoErr("failed to release lapsed usage", err)
		}
	}
	row.Status = "available"
	return nil
}

// reclaimCustomerLapsed releases every lapsed hold the customer has in the
// campaign so the usage counter only reflects live holds and redemptions.
func (r *CouponRepository) reclaimCustomerLapsed(ctx context.Context, tx pgx.Tx, campaignID, customerID uuid.UUID, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE coupon_codes
		SET status = 'available',
		    reservation_id = NULL,
		    reserved_by = NULL,
		    reserved_customer = NULL,
		    reserved_until = NULL,
		    updated_at = $3
		WHERE campaign_id = $1 AND reserved_customer = $2
		  AND status = 'reserved' AND reserved_until <= $3`,
		campaignID, customerID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to reclaim lapsed reservations", err)
	}
	if n := tag.RowsAffected(); n > 0 {
		if _, err := tx.Exec(ctx, `
			UPDATE coupon_usages SET held = greatest(held - $3, 0)
			WHERE campaign_id = $1 AND customer_id = $2`,
			campaignID, customerID, n); err != nil {
			return infra.WrapRepoErr("failed to release lapsed usage", err)
		}
	}
	return nil
}

func (r *CouponRepository) classifyMissedConfirm(ctx context.Context, tx pgx.Tx, reservationID uuid.UUID, now time.Time) error {
	var status string
	var reservedUntil *time.Time
	err := tx.QueryRow(ctx, `
		SELECT status, reserved_until FROM coupon_codes
		WHERE reservation_id = $1`, reservationID).Scan(&status, &reservedUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to classify confirmation failure", err)
	}
	switch {
	case status == "redeemed":
		// Retry of a successful confirm.
		return nil
	case status == "reserved" && reservedUntil != nil && !now.Before(*reservedUntil):
		return infra.WrapRepoErr("reservation lapsed before confirmation", nil, infra.KindExpired)
	default:
		return infra.WrapRepoErr("reservation no longer held", nil, infra.KindNotFound)
	}
}
