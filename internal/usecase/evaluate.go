package usecase

import (
	"context"
	"log/slog"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/domain/order"
	"promo-engine/internal/domain/resolver"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidOrder = errs.New("invalid order context")

// EvaluationResult is the full outcome of one order evaluation: the
// resolver verdict plus any coupon reservation taken along the way.
type EvaluationResult struct {
	DecisionID      uuid.UUID
	SnapshotVersion uint64
	Matched         []uuid.UUID
	Resolution      resolver.Result
	// Reservation is set when the presented coupon code was reserved.
	Reservation *Reservation
	// CouponError carries the terminal failure for the presented code, if
	// any. The rest of the evaluation still completes.
	CouponError string
}

type EvaluateUseCase interface {
	Evaluate(ctx context.Context, octx order.Context) (*EvaluationResult, error)
}

type evaluateUseCaseImpl struct {
	snapshots SnapshotProvider
	coupons   CouponUseCase
	audit     AuditStore
	clock     clock.Clock
	cfg       resolver.Config
}

func NewEvaluateUseCase(
	snapshots SnapshotProvider,
	coupons CouponUseCase,
	audit AuditStore,
	clk clock.Clock,
	cfg resolver.Config,
) EvaluateUseCase {
	return &evaluateUseCaseImpl{
		snapshots: snapshots,
		coupons:   coupons,
		audit:     audit,
		clock:     clk,
		cfg:       cfg,
	}
}

// Evaluate runs one order through a single registry snapshot: candidate
// matching, optional coupon reservation, conflict resolution, then the
// audit record. A failed audit write fails the evaluation and releases
// the reservation, so no discount is granted without a trace.
func (u *evaluateUseCaseImpl) Evaluate(ctx context.Context, octx order.Context) (*EvaluationResult, error) {
	if octx.OrderID == "" {
		return nil, errs.Mark(errs.New("order id is required"), ErrInvalidOrder)
	}
	if octx.SubtotalCents < 0 {
		return nil, errs.Mark(errs.New("subtotal cannot be negative"), ErrInvalidOrder)
	}
	if octx.OccurredAt.IsZero() {
		octx.OccurredAt = u.clock.Now()
	}

	snap, err := u.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}

	candidates := snap.Candidates(octx.ConditionContext())
	matchedIDs := make([]uuid.UUID, 0, len(candidates))
	matched := make([]*campaign.Campaign, 0, len(candidates))
	for _, cand := range candidates {
		if !cand.Matched {
			continue
		}
		matchedIDs = append(matchedIDs, cand.Campaign.ID())
		matched = append(matched, cand.Campaign)
	}

	reservation, couponErr, err := u.reserveCoupon(ctx, octx, matched)
	if err != nil {
		return nil, err
	}

	// Pool-backed campaigns participate only when their code was reserved
	// for this order; everything else rides on the rule match alone.
	eligible := matched[:0:0]
	for _, c := range matched {
		if c.HasCouponPool() && (reservation == nil || reservation.CampaignID != c.ID()) {
			continue
		}
		eligible = append(eligible, c)
	}

	resolution := resolver.Resolve(eligible, octx, u.cfg)

	decision := &Decision{
		ID:                 uuid.New(),
		OrderID:            octx.OrderID,
		OccurredAt:         octx.OccurredAt,
		SnapshotVersion:    snap.Version(),
		MatchedCampaignIDs: matchedIDs,
		AppliedCampaignIDs: appliedIDs(resolution),
		Rejections:         rejections(resolution),
		TotalDiscountCents: resolution.TotalDiscountCents,
	}
	if reservation != nil {
		decision.CouponCode = reservation.Code
	}

	if err := u.audit.Insert(ctx, decision); err != nil {
		u.compensateReservation(ctx, reservation)
		return nil, errs.Mark(err, ErrAuditWriteFailed)
	}

	return &EvaluationResult{
		DecisionID:      decision.ID,
		SnapshotVersion: snap.Version(),
		Matched:         matchedIDs,
		Resolution:      resolution,
		Reservation:     reservation,
		CouponError:     couponErr,
	}, nil
}

// reserveCoupon attempts the hold for a presented code. Terminal coupon
// failures degrade the evaluation instead of aborting it; only store
// unavailability propagates.
func (u *evaluateUseCaseImpl) reserveCoupon(ctx context.Context, octx order.Context, matched []*campaign.Campaign) (*Reservation, string, error) {
	if octx.CouponCode == "" {
		return nil, "", nil
	}

	reservation, err := u.coupons.Reserve(ctx, octx.CouponCode, octx.CustomerID, octx.OrderID)
	if err != nil {
		if IsTerminalCouponErr(err) {
			return nil, err.Error(), nil
		}
		return nil, "", err
	}

	for _, c := range matched {
		if c.ID() == reservation.CampaignID {
			return reservation, "", nil
		}
	}

	// The code belongs to a campaign whose rule did not match this order.
	// Hand the hold back immediately.
	if err := u.coupons.Release(ctx, reservation.ID); err != nil {
		slog.Warn("failed to release reservation for non-matching campaign",
			"reservation_id", reservation.ID.String(),
			"error", err.Error())
	}
	return nil, "coupon campaign does not match this order", nil
}

func (u *evaluateUseCaseImpl) compensateReservation(ctx context.Context, reservation *Reservation) {
	if reservation == nil {
		return
	}
	if err := u.coupons.Release(ctx, reservation.ID); err != nil {
		// The TTL reclaims the hold if this release also fails.
		slog.Warn("failed to release reservation after audit failure",
			"reservation_id", reservation.ID.String(),
			"error", err.Error())
	}
}

func appliedIDs(r resolver.Result) []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Applied))
	for i, a := range r.Applied {
		ids[i] = a.CampaignID
	}
	return ids
}

func rejections(r resolver.Result) []DecisionRejection {
	out := make([]DecisionRejection, len(r.Rejected))
	for i, rej := range r.Rejected {
		out[i] = DecisionRejection{
			CampaignID: rej.CampaignID,
			Reason:     string(rej.Reason),
		}
	}
	return out
}
