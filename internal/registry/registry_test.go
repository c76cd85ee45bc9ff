//go:build unit

package registry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/domain/condition"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/registry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	windowStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	midWindow   = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
)

type stubSource struct {
	campaigns []*campaign.Campaign
	err       error
	calls     int
}

func (s *stubSource) ListAll(_ context.Context) ([]*campaign.Campaign, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*campaign.Campaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out, nil
}

type faultyPredicate struct{}

func (faultyPredicate) Eval(_ *condition.Context) (bool, error) {
	return false, errors.New("boom")
}

func newCampaign(t *testing.T, name string, priority int, startsAt time.Time, opts ...func(*campaign.Params)) *campaign.Campaign {
	t.Helper()
	discount, err := campaign.NewFixedDiscount(100, 0)
	require.NoError(t, err)
	p := campaign.Params{
		ID:       uuid.New(),
		Name:     name,
		RuleText: "subtotal >= 0",
		Discount: discount,
		Priority: priority,
		StartsAt: startsAt,
		EndsAt:   windowEnd,
		Status:   campaign.StatusActive,
	}
	for _, opt := range opts {
		opt(&p)
	}
	c, err := campaign.New(p)
	require.NoError(t, err)
	return c
}

func TestRegistrySnapshot(t *testing.T) {
	clk := clock.NewMockClock(midWindow)

	t.Run("orders by priority then start then id", func(t *testing.T) {
		early := newCampaign(t, "early", 100, windowStart)
		late := newCampaign(t, "late", 100, windowStart.Add(24*time.Hour))
		top := newCampaign(t, "top", 200, windowStart)

		src := &stubSource{campaigns: []*campaign.Campaign{late, top, early}}
		reg := registry.New(src, clk, 5*time.Minute)

		snap, err := reg.Refresh(context.Background())
		require.NoError(t, err)

		got := snap.Campaigns()
		require.Len(t, got, 3)
		assert.Equal(t, "top", got[0].Name())
		assert.Equal(t, "early", got[1].Name())
		assert.Equal(t, "late", got[2].Name())
	})

	t.Run("refresh bumps the version", func(t *testing.T) {
		src := &stubSource{}
		reg := registry.New(src, clk, 5*time.Minute)

		first, err := reg.Refresh(context.Background())
		require.NoError(t, err)
		second, err := reg.Refresh(context.Background())
		require.NoError(t, err)

		assert.Greater(t, second.Version(), first.Version())
	})

	t.Run("current reuses a fresh snapshot", func(t *testing.T) {
		src := &stubSource{}
		reg := registry.New(src, clk, 5*time.Minute)

		_, err := reg.Current(context.Background())
		require.NoError(t, err)
		_, err = reg.Current(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, src.calls)
	})

	t.Run("invalidate forces a reload", func(t *testing.T) {
		src := &stubSource{}
		reg := registry.New(src, clk, 5*time.Minute)

		_, err := reg.Current(context.Background())
		require.NoError(t, err)
		reg.Invalidate()
		_, err = reg.Current(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, src.calls)
	})

	t.Run("load failure without a previous snapshot surfaces", func(t *testing.T) {
		src := &stubSource{err: errors.New("connection refused")}
		reg := registry.New(src, clk, 5*time.Minute)

		_, err := reg.Current(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, registry.ErrLoadFailed)
	})

	t.Run("load failure serves the previous snapshot", func(t *testing.T) {
		src := &stubSource{campaigns: []*campaign.Campaign{newCampaign(t, "kept", 10, windowStart)}}
		reg := registry.New(src, clk, 5*time.Minute)

		first, err := reg.Refresh(context.Background())
		require.NoError(t, err)

		src.err = errors.New("connection refused")
		again, err := reg.Refresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first.Version(), again.Version())
	})
}

func TestSnapshotCandidates(t *testing.T) {
	clk := clock.NewMockClock(midWindow)

	cctx := &condition.Context{
		Subtotal:        10000,
		ItemCount:       2,
		CustomerSegment: "vip",
		Now:             midWindow,
	}

	t.Run("filters by time window and status before evaluating", func(t *testing.T) {
		inWindow := newCampaign(t, "in-window", 100, windowStart)
		notStarted := newCampaign(t, "not-started", 100, midWindow.Add(time.Hour))
		paused := newCampaign(t, "paused", 100, windowStart, func(p *campaign.Params) {
			p.Status = campaign.StatusPaused
		})

		src := &stubSource{campaigns: []*campaign.Campaign{inWindow, notStarted, paused}}
		reg := registry.New(src, clk, 5*time.Minute)
		snap, err := reg.Refresh(context.Background())
		require.NoError(t, err)

		candidates := snap.Candidates(cctx)
		require.Len(t, candidates, 1)
		assert.Equal(t, inWindow.ID(), candidates[0].Campaign.ID())
		assert.True(t, candidates[0].Matched)
	})

	t.Run("reports unmatched campaigns", func(t *testing.T) {
		matched := newCampaign(t, "matched", 100, windowStart)
		unmatched := newCampaign(t, "unmatched", 50, windowStart, func(p *campaign.Params) {
			p.RuleText = "subtotal >= 99999"
		})

		src := &stubSource{campaigns: []*campaign.Campaign{matched, unmatched}}
		reg := registry.New(src, clk, 5*time.Minute)
		snap, err := reg.Refresh(context.Background())
		require.NoError(t, err)

		candidates := snap.Candidates(cctx)
		require.Len(t, candidates, 2)
		assert.True(t, candidates[0].Matched)
		assert.False(t, candidates[1].Matched)
	})

	t.Run("a faulty predicate is isolated from its siblings", func(t *testing.T) {
		healthy := newCampaign(t, "healthy", 100, windowStart)
		faulty := newCampaign(t, "faulty", 200, windowStart, func(p *campaign.Params) {
			p.Predicate = faultyPredicate{}
		})

		src := &stubSource{campaigns: []*campaign.Campaign{healthy, faulty}}
		reg := registry.New(src, clk, 5*time.Minute)
		snap, err := reg.Refresh(context.Background())
		require.NoError(t, err)

		candidates := snap.Candidates(cctx)
		require.Len(t, candidates, 1)
		assert.Equal(t, healthy.ID(), candidates[0].Campaign.ID())
	})
}
