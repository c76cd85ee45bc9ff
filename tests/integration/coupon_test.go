//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/infra"
	"promo-engine/internal/infra/repository"
	"promo-engine/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queryTimeout = 3 * time.Second

type couponFixture struct {
	campaigns *repository.CampaignRepository
	coupons   *repository.CouponRepository
	now       time.Time
}

func newCouponFixture(t *testing.T) *couponFixture {
	t.Helper()
	pool, _ := setupDatabase(t)
	return &couponFixture{
		campaigns: repository.NewCampaignRepository(pool, queryTimeout),
		coupons:   repository.NewCouponRepository(pool, queryTimeout),
		now:       time.Now().UTC().Truncate(time.Microsecond),
	}
}

// seedPool persists an active campaign and provisions its pool with the
// given codes.
func (f *couponFixture) seedPool(t *testing.T, codes []string, perCustomerLimit int) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	discount, err := campaign.NewPercentDiscount(10, 0)
	require.NoError(t, err)
	pool, err := campaign.NewPoolSpec(len(codes), perCustomerLimit)
	require.NoError(t, err)

	c, err := campaign.New(campaign.Params{
		Name:     "Pool Campaign " + uuid.NewString()[:8],
		RuleText: "subtotal >= 0",
		Discount: discount,
		StartsAt: f.now.Add(-time.Hour),
		EndsAt:   f.now.Add(24 * time.Hour),
		Status:   campaign.StatusActive,
		Pool:     &pool,
	})
	require.NoError(t, err)
	require.NoError(t, f.campaigns.Save(ctx, c))

	require.NoError(t, f.coupons.CreatePool(ctx, usecase.CreatePoolParams{
		CampaignID:       c.ID(),
		Size:             len(codes),
		PerCustomerLimit: perCustomerLimit,
		Codes:            codes,
		ExpiresAt:        f.now.Add(30 * 24 * time.Hour),
		Now:              f.now,
	}))
	return c.ID()
}

func (f *couponFixture) reserveParams(code string, customerID uuid.UUID, holderID string) usecase.ReserveCodeParams {
	return usecase.ReserveCodeParams{
		Code:          code,
		CustomerID:    customerID,
		HolderID:      holderID,
		ReservationID: uuid.New(),
		Now:           f.now,
		TTL:           15 * time.Minute,
	}
}

func TestReserveCode_ConcurrentHoldersSingleCode(t *testing.T) {
	f := newCouponFixture(t)
	campaignID := f.seedPool(t, []string{"RACE0001CODE"}, 5)
	ctx := context.Background()

	const attempts = 8
	results := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.coupons.ReserveCode(ctx,
				f.reserveParams("RACE0001CODE", uuid.New(), uuid.NewString()))
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case infra.IsKind(err, infra.KindConflict):
			conflicted++
		default:
			t.Fatalf("unexpected reservation error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one holder may win the code")
	assert.Equal(t, attempts-1, conflicted)

	counts, err := f.coupons.PoolCounts(ctx, campaignID)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Available)
	assert.Equal(t, 1, counts.Reserved)
}

func TestReserveCode_ConcurrentSameCustomerUsageLimit(t *testing.T) {
	f := newCouponFixture(t)
	f.seedPool(t, []string{"LIMIT001CODE", "LIMIT002CODE"}, 1)
	ctx := context.Background()

	customerID := uuid.New()
	codes := []string{"LIMIT001CODE", "LIMIT002CODE"}
	results := make([]error, len(codes))

	var wg sync.WaitGroup
	for i, code := range codes {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			_, results[i] = f.coupons.ReserveCode(ctx,
				f.reserveParams(code, customerID, uuid.NewString()))
		}(i, code)
	}
	wg.Wait()

	var succeeded, limited int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case infra.IsKind(err, infra.KindUsageLimit):
			limited++
		default:
			t.Fatalf("unexpected reservation error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "the usage counter must admit exactly one hold")
	assert.Equal(t, 1, limited)
}

func TestReserveCode_SameHolderRetryReturnsLiveHold(t *testing.T) {
	f := newCouponFixture(t)
	f.seedPool(t, []string{"RETRY001CODE"}, 5)
	ctx := context.Background()

	customerID := uuid.New()
	first, err := f.coupons.ReserveCode(ctx, f.reserveParams("RETRY001CODE", customerID, "order-1"))
	require.NoError(t, err)

	second, err := f.coupons.ReserveCode(ctx, f.reserveParams("RETRY001CODE", customerID, "order-1"))
	require.NoError(t, err)
	assert.Equal(t, first.ReservationID, second.ReservationID)

	_, err = f.coupons.ReserveCode(ctx, f.reserveParams("RETRY001CODE", uuid.New(), "order-2"))
	assert.True(t, infra.IsKind(err, infra.KindConflict))
}

func TestReservationLifecycle(t *testing.T) {
	f := newCouponFixture(t)
	campaignID := f.seedPool(t, []string{"LIFE0001CODE"}, 5)
	ctx := context.Background()

	customerID := uuid.New()
	reserved, err := f.coupons.ReserveCode(ctx, f.reserveParams("LIFE0001CODE", customerID, "order-1"))
	require.NoError(t, err)
	require.Equal(t, campaignID, reserved.CampaignID)

	t.Run("release returns the code to the pool", func(t *testing.T) {
		require.NoError(t, f.coupons.ReleaseReservation(ctx, reserved.ReservationID, f.now))

		// Releasing again is a no-op.
		require.NoError(t, f.coupons.ReleaseReservation(ctx, reserved.ReservationID, f.now))

		counts, err := f.coupons.PoolCounts(ctx, campaignID)
		require.NoError(t, err)
		assert.Equal(t, 1, counts.Available)
	})

	t.Run("another customer can take the released code", func(t *testing.T) {
		reserved, err = f.coupons.ReserveCode(ctx, f.reserveParams("LIFE0001CODE", uuid.New(), "order-2"))
		require.NoError(t, err)
	})

	t.Run("confirm redeems and is idempotent", func(t *testing.T) {
		require.NoError(t, f.coupons.ConfirmReservation(ctx, reserved.ReservationID, f.now))
		require.NoError(t, f.coupons.ConfirmReservation(ctx, reserved.ReservationID, f.now))

		counts, err := f.coupons.PoolCounts(ctx, campaignID)
		require.NoError(t, err)
		assert.Equal(t, 1, counts.Redeemed)
	})

	t.Run("redeemed codes cannot be reserved again", func(t *testing.T) {
		_, err := f.coupons.ReserveCode(ctx, f.reserveParams("LIFE0001CODE", uuid.New(), "order-3"))
		assert.True(t, infra.IsKind(err, infra.KindRedeemed))
	})

	t.Run("releasing a redeemed reservation never goes backwards", func(t *testing.T) {
		require.NoError(t, f.coupons.ReleaseReservation(ctx, reserved.ReservationID, f.now))

		counts, err := f.coupons.PoolCounts(ctx, campaignID)
		require.NoError(t, err)
		assert.Equal(t, 1, counts.Redeemed)
	})
}

func TestReserveCode_LapsedHoldIsReclaimed(t *testing.T) {
	f := newCouponFixture(t)
	f.seedPool(t, []string{"STALE001CODE"}, 5)
	ctx := context.Background()

	first := f.reserveParams("STALE001CODE", uuid.New(), "order-1")
	first.TTL = time.Minute
	_, err := f.coupons.ReserveCode(ctx, first)
	require.NoError(t, err)

	// Before the TTL lapses the hold wins.
	blocked := f.reserveParams("STALE001CODE", uuid.New(), "order-2")
	_, err = f.coupons.ReserveCode(ctx, blocked)
	require.True(t, infra.IsKind(err, infra.KindConflict))

	// After the TTL the next touch reclaims the hold lazily.
	late := f.reserveParams("STALE001CODE", uuid.New(), "order-3")
	late.Now = f.now.Add(2 * time.Minute)
	reclaimed, err := f.coupons.ReserveCode(ctx, late)
	require.NoError(t, err)
	assert.Equal(t, late.ReservationID, reclaimed.ReservationID)
}

func TestReserveCode_LapsedHoldFreesUsageLimit(t *testing.T) {
	f := newCouponFixture(t)
	f.seedPool(t, []string{"SLOT0001CODE", "SLOT0002CODE"}, 1)
	ctx := context.Background()

	customerID := uuid.New()
	first := f.reserveParams("SLOT0001CODE", customerID, "order-1")
	first.TTL = time.Minute
	_, err := f.coupons.ReserveCode(ctx, first)
	require.NoError(t, err)

	// While the hold is live the limit applies to other codes.
	blocked := f.reserveParams("SLOT0002CODE", customerID, "order-2")
	_, err = f.coupons.ReserveCode(ctx, blocked)
	require.True(t, infra.IsKind(err, infra.KindUsageLimit))

	// Once it lapses the customer gets the slot back without touching the
	// lapsed code itself.
	late := f.reserveParams("SLOT0002CODE", customerID, "order-3")
	late.Now = f.now.Add(2 * time.Minute)
	_, err = f.coupons.ReserveCode(ctx, late)
	require.NoError(t, err)

	// The lapsed code went back to the pool as a side effect.
	reclaimed := f.reserveParams("SLOT0001CODE", uuid.New(), "order-4")
	reclaimed.Now = f.now.Add(2 * time.Minute)
	_, err = f.coupons.ReserveCode(ctx, reclaimed)
	require.NoError(t, err)
}

func TestConfirmReservation_LapsedHold(t *testing.T) {
	f := newCouponFixture(t)
	f.seedPool(t, []string{"LAPSE001CODE"}, 5)
	ctx := context.Background()

	params := f.reserveParams("LAPSE001CODE", uuid.New(), "order-1")
	params.TTL = time.Minute
	reserved, err := f.coupons.ReserveCode(ctx, params)
	require.NoError(t, err)

	err = f.coupons.ConfirmReservation(ctx, reserved.ReservationID, f.now.Add(2*time.Minute))
	assert.True(t, infra.IsKind(err, infra.KindExpired))

	err = f.coupons.ConfirmReservation(ctx, uuid.New(), f.now)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestRetirePool(t *testing.T) {
	f := newCouponFixture(t)
	campaignID := f.seedPool(t, []string{"RETIRE01CODE", "RETIRE02CODE"}, 5)
	ctx := context.Background()

	reserved, err := f.coupons.ReserveCode(ctx, f.reserveParams("RETIRE01CODE", uuid.New(), "order-1"))
	require.NoError(t, err)

	require.NoError(t, f.coupons.RetirePool(ctx, campaignID, f.now))

	// Remaining available codes are expired; the live hold keeps its state.
	counts, err := f.coupons.PoolCounts(ctx, campaignID)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Available)
	assert.Equal(t, 1, counts.Reserved)

	_, err = f.coupons.ReserveCode(ctx, f.reserveParams("RETIRE02CODE", uuid.New(), "order-2"))
	assert.True(t, infra.IsKind(err, infra.KindExpired))

	// The held code can still be confirmed.
	require.NoError(t, f.coupons.ConfirmReservation(ctx, reserved.ReservationID, f.now))
}
