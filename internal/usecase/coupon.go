package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"time"

	"promo-engine/internal/infra"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/config"
	"promo-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCouponNotFound         = errs.New("coupon not found")
	ErrAlreadyRedeemed        = errs.New("coupon already redeemed")
	ErrAlreadyReservedByOther = errs.New("coupon reserved by another holder")
	ErrUsageLimitExceeded     = errs.New("coupon usage limit exceeded")
	ErrCouponExpired          = errs.New("coupon expired")
	ErrReservationNotFound    = errs.New("reservation not found")
	ErrStoreUnavailable       = errs.New("durable store unavailable")
)

type Reservation struct {
	ID         uuid.UUID
	Code       string
	CampaignID uuid.UUID
	CustomerID uuid.UUID
	HolderID   string
	ExpiresAt  time.Time
}

type CouponUseCase interface {
	Reserve(ctx context.Context, code string, customerID uuid.UUID, holderID string) (*Reservation, error)
	Confirm(ctx context.Context, reservationID uuid.UUID) error
	Release(ctx context.Context, reservationID uuid.UUID) error
}

type couponUseCaseImpl struct {
	store     CouponStore
	publisher EventPublisher
	clock     clock.Clock
	cfg       config.CouponConfig
}

func NewCouponUseCase(store CouponStore, publisher EventPublisher, clk clock.Clock, cfg config.CouponConfig) CouponUseCase {
	return &couponUseCaseImpl{
		store:     store,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
	}
}

// Reserve places a TTL-bounded hold on a code. All failures are terminal
// for this attempt; the caller may retry with new input.
func (u *couponUseCaseImpl) Reserve(ctx context.Context, code string, customerID uuid.UUID, holderID string) (*Reservation, error) {
	now := u.clock.Now()
	reserved, err := u.store.ReserveCode(ctx, ReserveCodeParams{
		Code:          code,
		CustomerID:    customerID,
		HolderID:      holderID,
		ReservationID: uuid.New(),
		Now:           now,
		TTL:           u.cfg.ReservationTTL,
	})
	if err != nil {
		return nil, translateCouponErr(err)
	}

	u.notifyStockLevel(ctx, reserved.CampaignID)

	return &Reservation{
		ID:         reserved.ReservationID,
		Code:       reserved.Code,
		CampaignID: reserved.CampaignID,
		CustomerID: reserved.CustomerID,
		HolderID:   reserved.HolderID,
		ExpiresAt:  reserved.ReservedUntil,
	}, nil
}

func (u *couponUseCaseImpl) Confirm(ctx context.Context, reservationID uuid.UUID) error {
	if err := u.store.ConfirmReservation(ctx, reservationID, u.clock.Now()); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return ErrReservationNotFound
		case infra.IsKind(err, infra.KindExpired):
			return errs.Mark(err, ErrCouponExpired)
		default:
			return errs.Mark(err, ErrStoreUnavailable)
		}
	}
	return nil
}

// Release is idempotent: releasing an unknown or already-released
// reservation is a no-op.
func (u *couponUseCaseImpl) Release(ctx context.Context, reservationID uuid.UUID) error {
	if err := u.store.ReleaseReservation(ctx, reservationID, u.clock.Now()); err != nil {
		return errs.Mark(err, ErrStoreUnavailable)
	}
	return nil
}

func (u *couponUseCaseImpl) notifyStockLevel(ctx context.Context, campaignID uuid.UUID) {
	counts, err := u.store.PoolCounts(ctx, campaignID)
	if err != nil {
		slog.Debug("failed to read pool counts after reservation",
			"campaign_id", campaignID.String(),
			"error", err.Error())
		return
	}
	switch {
	case counts.Available == 0:
		u.publisher.PoolExhausted(ctx, campaignID)
	case counts.Available < u.cfg.LowStockThreshold:
		u.publisher.PoolLowStock(ctx, campaignID, counts.Available)
	}
}

func translateCouponErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrCouponNotFound
	case infra.IsKind(err, infra.KindRedeemed):
		return ErrAlreadyRedeemed
	case infra.IsKind(err, infra.KindConflict):
		return ErrAlreadyReservedByOther
	case infra.IsKind(err, infra.KindUsageLimit):
		return ErrUsageLimitExceeded
	case infra.IsKind(err, infra.KindExpired):
		return ErrCouponExpired
	default:
		return errs.Mark(err, ErrStoreUnavailable)
	}
}

// IsTerminalCouponErr reports whether a reservation failure is user-facing
// and non-retryable, as opposed to store unavailability.
func IsTerminalCouponErr(err error) bool {
	for _, sentinel := range []error{
		ErrCouponNotFound,
		ErrAlreadyRedeemed,
		ErrAlreadyReservedByOther,
		ErrUsageLimitExceeded,
		ErrCouponExpired,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCodes produces unambiguous random codes. Collisions are left to
// the store's unique constraint; at 32^12 the chance is negligible.
func GenerateCodes(n int) []string {
	codes := make([]string, n)
	for i := range codes {
		buf := make([]byte, 12)
		_, _ = rand.Read(buf)
		for j, b := range buf {
			buf[j] = codeAlphabet[int(b)%len(codeAlphabet)]
		}
		codes[i] = string(buf)
	}
	return codes
}
