//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/domain/order"
	"promo-engine/internal/domain/resolver"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/registry"
	"promo-engine/internal/usecase"
	usecasemock "promo-engine/tests/mock/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubSource struct {
	campaigns []*campaign.Campaign
}

func (s stubSource) ListAll(context.Context) ([]*campaign.Campaign, error) {
	return s.campaigns, nil
}

func percentDiscount(t *testing.T, percent float64) campaign.Discount {
	t.Helper()
	d, err := campaign.NewPercentDiscount(percent, 0)
	require.NoError(t, err)
	return d
}

type campaignOpts struct {
	rule     string
	priority int
	pool     *campaign.PoolSpec
}

func newActiveCampaign(t *testing.T, name string, opts campaignOpts) *campaign.Campaign {
	t.Helper()
	rule := opts.rule
	if rule == "" {
		rule = "subtotal >= 0"
	}
	c, err := campaign.New(campaign.Params{
		Name:     name,
		RuleText: rule,
		Discount: percentDiscount(t, 10),
		Priority: opts.priority,
		StartsAt: testNow.Add(-time.Hour),
		EndsAt:   testNow.Add(time.Hour),
		Status:   campaign.StatusActive,
		Pool:     opts.pool,
	})
	require.NoError(t, err)
	return c
}

func buildSnapshot(t *testing.T, campaigns ...*campaign.Campaign) *registry.Snapshot {
	t.Helper()
	reg := registry.New(stubSource{campaigns: campaigns}, clock.NewMockClock(testNow), time.Minute)
	snap, err := reg.Refresh(context.Background())
	require.NoError(t, err)
	return snap
}

func resolverConfig() resolver.Config {
	return resolver.Config{Truncation: resolver.TruncateLowestPriorityFirst}
}

func baseOrder() order.Context {
	return order.Context{
		OrderID:       "order-42",
		CustomerID:    uuid.New(),
		SubtotalCents: 10000,
		OccurredAt:    testNow,
	}
}

type evaluateFixture struct {
	uc        usecase.EvaluateUseCase
	snapshots *usecasemock.MockSnapshotProvider
	coupons   *usecasemock.MockCouponUseCase
	audit     *usecasemock.MockAuditStore
}

func newEvaluateFixture(t *testing.T) evaluateFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	snapshots := usecasemock.NewMockSnapshotProvider(ctrl)
	coupons := usecasemock.NewMockCouponUseCase(ctrl)
	audit := usecasemock.NewMockAuditStore(ctrl)
	uc := usecase.NewEvaluateUseCase(snapshots, coupons, audit, clock.NewMockClock(testNow), resolverConfig())
	return evaluateFixture{uc: uc, snapshots: snapshots, coupons: coupons, audit: audit}
}

func TestEvaluateValidation(t *testing.T) {
	f := newEvaluateFixture(t)

	t.Run("missing order id", func(t *testing.T) {
		octx := baseOrder()
		octx.OrderID = ""
		_, err := f.uc.Evaluate(context.Background(), octx)
		assert.ErrorIs(t, err, usecase.ErrInvalidOrder)
	})

	t.Run("negative subtotal", func(t *testing.T) {
		octx := baseOrder()
		octx.SubtotalCents = -1
		_, err := f.uc.Evaluate(context.Background(), octx)
		assert.ErrorIs(t, err, usecase.ErrInvalidOrder)
	})
}

func TestEvaluateWithoutCoupon(t *testing.T) {
	f := newEvaluateFixture(t)

	matching := newActiveCampaign(t, "Summer Sale", campaignOpts{rule: "subtotal >= 5000", priority: 10})
	nonMatching := newActiveCampaign(t, "Big Spender", campaignOpts{rule: "subtotal >= 50000", priority: 20})
	snap := buildSnapshot(t, matching, nonMatching)

	f.snapshots.EXPECT().Current(gomock.Any()).Return(snap, nil)

	var inserted *usecase.Decision
	f.audit.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *usecase.Decision) error {
			inserted = d
			return nil
		})

	result, err := f.uc.Evaluate(context.Background(), baseOrder())
	require.NoError(t, err)

	assert.Equal(t, snap.Version(), result.SnapshotVersion)
	assert.Equal(t, []uuid.UUID{matching.ID()}, result.Matched)
	require.Len(t, result.Resolution.Applied, 1)
	assert.Equal(t, matching.ID(), result.Resolution.Applied[0].CampaignID)
	assert.Equal(t, int64(1000), result.Resolution.TotalDiscountCents)
	assert.Nil(t, result.Reservation)
	assert.Empty(t, result.CouponError)

	require.NotNil(t, inserted)
	assert.Equal(t, "order-42", inserted.OrderID)
	assert.Equal(t, result.DecisionID, inserted.ID)
	assert.Equal(t, []uuid.UUID{matching.ID()}, inserted.AppliedCampaignIDs)
	assert.Empty(t, inserted.CouponCode)
}

func TestEvaluatePoolCampaignNeedsReservedCode(t *testing.T) {
	f := newEvaluateFixture(t)

	pool, err := campaign.NewPoolSpec(100, 1)
	require.NoError(t, err)
	pooled := newActiveCampaign(t, "Coupon Only", campaignOpts{priority: 20, pool: &pool})
	open := newActiveCampaign(t, "Everyone", campaignOpts{priority: 10})
	snap := buildSnapshot(t, pooled, open)

	t.Run("without a code the pool campaign is skipped", func(t *testing.T) {
		f.snapshots.EXPECT().Current(gomock.Any()).Return(snap, nil)
		f.audit.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		result, err := f.uc.Evaluate(context.Background(), baseOrder())
		require.NoError(t, err)

		assert.ElementsMatch(t, []uuid.UUID{pooled.ID(), open.ID()}, result.Matched)
		require.Len(t, result.Resolution.Applied, 1)
		assert.Equal(t, open.ID(), result.Resolution.Applied[0].CampaignID)
	})

	t.Run("with a reserved code the pool campaign applies", func(t *testing.T) {
		octx := baseOrder()
		octx.CouponCode = "SAVE10"

		reservation := &usecase.Reservation{
			ID:         uuid.New(),
			Code:       "SAVE10",
			CampaignID: pooled.ID(),
			CustomerID: octx.CustomerID,
			HolderID:   octx.OrderID,
			ExpiresAt:  testNow.Add(15 * time.Minute),
		}

		f.snapshots.EXPECT().Current(gomock.Any()).Return(snap, nil)
		f.coupons.EXPECT().Reserve(gomock.Any(), "SAVE10", octx.CustomerID, octx.OrderID).Return(reservation, nil)

		var inserted *usecase.Decision
		f.audit.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, d *usecase.Decision) error {
				inserted = d
				return nil
			})

		result, err := f.uc.Evaluate(context.Background(), octx)
		require.NoError(t, err)

		require.NotNil(t, result.Reservation)
		assert.Equal(t, reservation.ID, result.Reservation.ID)
		require.Len(t, result.Resolution.Applied, 2)
		assert.Equal(t, pooled.ID(), result.Resolution.Applied[0].CampaignID)
		assert.Equal(t, "SAVE10", inserted.CouponCode)
	})
}

func TestEvaluateCouponDegradation(t *testing.T) {
	t.Run("terminal coupon failure degrades instead of aborting", func(t *testing.T) {
		f := newEvaluateFixture(t)
		open := newActiveCampaign(t, "Everyone", campaignOpts{})
		snap := buildSnapshot(t, open)

		octx := baseOrder()
		octx.CouponCode = "GONE"

		f.snapshots.EXPECT().Current(gomock.Any()).Return(snap, nil)
		f.coupons.EXPECT().Reserve(gomock.Any(), "GONE", octx.CustomerID, octx.OrderID).
			Return(nil, usecase.ErrCouponNotFound)
		f.audit.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		result, err := f.uc.Evaluate(context.Background(), octx)
		require.NoError(t, err)

		assert.Nil(t, result.Reservation)
		assert.Equal(t, usecase.ErrCouponNotFound.Error(), result.CouponError)
		require.Len(t, result.Resolution.Applied, 1)
	})

	t.Run("store unavailability propagates", func(t *testing.T) {
		f := newEvaluateFixture(t)
		snap := buildSnapshot(t, newActiveCampaign(t, "Everyone", campaignOpts{}))

		octx := baseOrder()
		octx.CouponCode = "SAVE10"

		f.snapshots.EXPECT().Current(gomock.Any()).Return(snap, nil)
		f.coupons.EXPECT().Reserve(gomock.Any(), "SAVE10", octx.CustomerID, octx.OrderID).
			Return(nil, usecase.ErrStoreUnavailable)

		_, err := f.uc.Evaluate(context.Background(), octx)
		assert.ErrorIs(t, err, usecase.ErrStoreUnavailable)
	})

	t.Run("code for a non-matching campaign is released", func(t *testing.T) {
		f := newEvaluateFixture(t)
		open := newActiveCampaign(t, "Everyone", campaignOpts{})
		snap := buildSnapshot(t, open)

		octx := baseOrder()
		octx.CouponCode = "OTHER"

		reservation := &usecase.Reservation{ID: uuid.New(), Code: "OTHER", CampaignID: uuid.New()}

		f.snapshots.EXPECT().Current(gomock.Any()).Return(snap, nil)
		f.coupons.EXPECT().Reserve(gomock.Any(), "OTHER", octx.CustomerID, octx.OrderID).Return(reservation, nil)
		f.coupons.EXPECT().Release(gomock.Any(), reservation.ID).Return(nil)
		f.audit.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		result, err := f.uc.Evaluate(context.Background(), octx)
		require.NoError(t, err)

		assert.Nil(t, result.Reservation)
		assert.Equal(t, "coupon campaign does not match this order", result.CouponError)
	})
}

func TestEvaluateAuditFailureReleasesReservation(t *testing.T) {
	f := newEvaluateFixture(t)

	pool, err := campaign.NewPoolSpec(10, 1)
	require.NoError(t, err)
	pooled := newActiveCampaign(t, "Coupon Only", campaignOpts{pool: &pool})
	snap := buildSnapshot(t, pooled)

	octx := baseOrder()
	octx.CouponCode = "SAVE10"

	reservation := &usecase.Reservation{ID: uuid.New(), Code: "SAVE10", CampaignID: pooled.ID()}

	f.snapshots.EXPECT().Current(gomock.Any()).Return(snap, nil)
	f.coupons.EXPECT().Reserve(gomock.Any(), "SAVE10", octx.CustomerID, octx.OrderID).Return(reservation, nil)
	f.audit.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("write timeout"))
	f.coupons.EXPECT().Release(gomock.Any(), reservation.ID).Return(nil)

	_, err = f.uc.Evaluate(context.Background(), octx)
	assert.ErrorIs(t, err, usecase.ErrAuditWriteFailed)
}

func TestEvaluateSnapshotLoadFailure(t *testing.T) {
	f := newEvaluateFixture(t)

	f.snapshots.EXPECT().Current(gomock.Any()).Return(nil, registry.ErrLoadFailed)

	_, err := f.uc.Evaluate(context.Background(), baseOrder())
	assert.ErrorIs(t, err, registry.ErrLoadFailed)
}
