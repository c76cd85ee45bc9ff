//go:build unit

package resolver_test

import (
	"testing"
	"time"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/domain/order"
	"promo-engine/internal/domain/resolver"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type campaignOpts struct {
	name        string
	priority    int
	group       string
	compounding bool
	discount    campaign.Discount
}

func buildCampaign(t *testing.T, opts campaignOpts) *campaign.Campaign {
	t.Helper()
	c, err := campaign.New(campaign.Params{
		ID:               uuid.New(),
		Name:             opts.name,
		RuleText:         "subtotal >= 0",
		Discount:         opts.discount,
		Priority:         opts.priority,
		ExclusivityGroup: opts.group,
		Compounding:      opts.compounding,
		StartsAt:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:           campaign.StatusActive,
	})
	require.NoError(t, err)
	return c
}

func percent(t *testing.T, pct float64) campaign.Discount {
	t.Helper()
	d, err := campaign.NewPercentDiscount(pct, 0)
	require.NoError(t, err)
	return d
}

func fixed(t *testing.T, amount int64) campaign.Discount {
	t.Helper()
	d, err := campaign.NewFixedDiscount(amount, 0)
	require.NoError(t, err)
	return d
}

func bxgy(t *testing.T, buyX, getY int) campaign.Discount {
	t.Helper()
	d, err := campaign.NewBuyXGetYDiscount(buyX, getY, 0)
	require.NoError(t, err)
	return d
}

func orderWithSubtotal(subtotal int64) order.Context {
	return order.Context{
		OrderID:       "order-1",
		CustomerID:    uuid.New(),
		SubtotalCents: subtotal,
		OccurredAt:    time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestResolve(t *testing.T) {
	cfg := resolver.Config{Truncation: resolver.TruncateLowestPriorityFirst}

	t.Run("exclusive and stackable campaigns combine", func(t *testing.T) {
		// B: priority 200, exclusivity group "seasonal", flat 500 off.
		// A: priority 100, stackable, 10% off. Subtotal 10000.
		b := buildCampaign(t, campaignOpts{name: "B", priority: 200, group: "seasonal", discount: fixed(t, 500)})
		a := buildCampaign(t, campaignOpts{name: "A", priority: 100, discount: percent(t, 10)})

		result := resolver.Resolve([]*campaign.Campaign{b, a}, orderWithSubtotal(10000), cfg)

		require.Len(t, result.Applied, 2)
		assert.Equal(t, b.ID(), result.Applied[0].CampaignID)
		assert.Equal(t, int64(500), result.Applied[0].DiscountCents)
		assert.Equal(t, a.ID(), result.Applied[1].CampaignID)
		// Non-compounding: 10% of the original 10000, not of 9500.
		assert.Equal(t, int64(1000), result.Applied[1].DiscountCents)
		assert.Equal(t, int64(1500), result.TotalDiscountCents)
		assert.Empty(t, result.Rejected)
	})

	t.Run("shared exclusivity group keeps only the higher priority", func(t *testing.T) {
		c := buildCampaign(t, campaignOpts{name: "C", priority: 50, group: "flash", discount: fixed(t, 300)})
		d := buildCampaign(t, campaignOpts{name: "D", priority: 40, group: "flash", discount: fixed(t, 900)})

		result := resolver.Resolve([]*campaign.Campaign{c, d}, orderWithSubtotal(10000), cfg)

		require.Len(t, result.Applied, 1)
		assert.Equal(t, c.ID(), result.Applied[0].CampaignID)
		require.Len(t, result.Rejected, 1)
		assert.Equal(t, d.ID(), result.Rejected[0].CampaignID)
		assert.Equal(t, resolver.ReasonExclusivityConflict, result.Rejected[0].Reason)
	})

	t.Run("distinct exclusivity groups do not conflict", func(t *testing.T) {
		c1 := buildCampaign(t, campaignOpts{name: "seasonal", priority: 90, group: "seasonal", discount: fixed(t, 200)})
		c2 := buildCampaign(t, campaignOpts{name: "flash", priority: 80, group: "flash", discount: fixed(t, 200)})

		result := resolver.Resolve([]*campaign.Campaign{c1, c2}, orderWithSubtotal(10000), cfg)
		assert.Len(t, result.Applied, 2)
		assert.Empty(t, result.Rejected)
	})

	t.Run("discount floor rejects campaigns that would break it", func(t *testing.T) {
		big := buildCampaign(t, campaignOpts{name: "big", priority: 100, discount: fixed(t, 900)})
		small := buildCampaign(t, campaignOpts{name: "small", priority: 50, discount: fixed(t, 150)})

		floored := resolver.Config{FloorCents: 100, Truncation: resolver.TruncateLowestPriorityFirst}
		result := resolver.Resolve([]*campaign.Campaign{big, small}, orderWithSubtotal(1000), floored)

		require.Len(t, result.Applied, 1)
		assert.Equal(t, big.ID(), result.Applied[0].CampaignID)
		require.Len(t, result.Rejected, 1)
		assert.Equal(t, small.ID(), result.Rejected[0].CampaignID)
		assert.Equal(t, resolver.ReasonDiscountFloor, result.Rejected[0].Reason)
	})

	t.Run("total discount never exceeds subtotal", func(t *testing.T) {
		c1 := buildCampaign(t, campaignOpts{name: "half", priority: 100, discount: percent(t, 50)})
		c2 := buildCampaign(t, campaignOpts{name: "most", priority: 90, discount: percent(t, 60)})

		result := resolver.Resolve([]*campaign.Campaign{c1, c2}, orderWithSubtotal(1000), cfg)

		assert.LessOrEqual(t, result.TotalDiscountCents, int64(1000))
		require.Len(t, result.Rejected, 1)
		assert.Equal(t, resolver.ReasonDiscountFloor, result.Rejected[0].Reason)
	})

	t.Run("compounding discount applies to the running total", func(t *testing.T) {
		flat := buildCampaign(t, campaignOpts{name: "flat", priority: 100, discount: fixed(t, 2000)})
		comp := buildCampaign(t, campaignOpts{name: "comp", priority: 50, compounding: true, discount: percent(t, 10)})

		result := resolver.Resolve([]*campaign.Campaign{flat, comp}, orderWithSubtotal(10000), cfg)

		require.Len(t, result.Applied, 2)
		// 10% of the remaining 8000, not the original 10000.
		assert.Equal(t, int64(800), result.Applied[1].DiscountCents)
		assert.Equal(t, int64(2800), result.TotalDiscountCents)
	})

	t.Run("resolution is deterministic", func(t *testing.T) {
		b := buildCampaign(t, campaignOpts{name: "B", priority: 200, group: "seasonal", discount: fixed(t, 500)})
		a := buildCampaign(t, campaignOpts{name: "A", priority: 100, discount: percent(t, 10)})
		d := buildCampaign(t, campaignOpts{name: "D", priority: 40, group: "seasonal", discount: fixed(t, 900)})
		octx := orderWithSubtotal(10000)

		first := resolver.Resolve([]*campaign.Campaign{b, a, d}, octx, cfg)
		for range 10 {
			again := resolver.Resolve([]*campaign.Campaign{b, a, d}, octx, cfg)
			assert.Empty(t, cmp.Diff(first, again))
		}
	})
}

// The cap truncation order is a policy choice, not behavior inherited from
// the rule definitions: lowest-priority-first is the configured default.
func TestResolveGlobalCap(t *testing.T) {
	t.Run("lowest priority truncated first", func(t *testing.T) {
		high := buildCampaign(t, campaignOpts{name: "high", priority: 100, discount: fixed(t, 600)})
		low := buildCampaign(t, campaignOpts{name: "low", priority: 50, discount: fixed(t, 500)})

		cfg := resolver.Config{GlobalCapCents: 800, Truncation: resolver.TruncateLowestPriorityFirst}
		result := resolver.Resolve([]*campaign.Campaign{high, low}, orderWithSubtotal(10000), cfg)

		require.Len(t, result.Applied, 2)
		assert.Equal(t, int64(600), result.Applied[0].DiscountCents)
		assert.False(t, result.Applied[0].Truncated)
		assert.Equal(t, int64(200), result.Applied[1].DiscountCents)
		assert.True(t, result.Applied[1].Truncated)
		assert.Equal(t, int64(800), result.TotalDiscountCents)
	})

	t.Run("truncation can consume multiple campaigns", func(t *testing.T) {
		c1 := buildCampaign(t, campaignOpts{name: "c1", priority: 100, discount: fixed(t, 400)})
		c2 := buildCampaign(t, campaignOpts{name: "c2", priority: 90, discount: fixed(t, 400)})
		c3 := buildCampaign(t, campaignOpts{name: "c3", priority: 80, discount: fixed(t, 400)})

		cfg := resolver.Config{GlobalCapCents: 500, Truncation: resolver.TruncateLowestPriorityFirst}
		result := resolver.Resolve([]*campaign.Campaign{c1, c2, c3}, orderWithSubtotal(10000), cfg)

		assert.Equal(t, int64(400), result.Applied[0].DiscountCents)
		assert.Equal(t, int64(100), result.Applied[1].DiscountCents)
		assert.True(t, result.Applied[1].Truncated)
		assert.Equal(t, int64(0), result.Applied[2].DiscountCents)
		assert.True(t, result.Applied[2].Truncated)
		assert.Equal(t, int64(500), result.TotalDiscountCents)
	})

	t.Run("proportional truncation scales every campaign", func(t *testing.T) {
		c1 := buildCampaign(t, campaignOpts{name: "c1", priority: 100, discount: fixed(t, 600)})
		c2 := buildCampaign(t, campaignOpts{name: "c2", priority: 50, discount: fixed(t, 200)})

		cfg := resolver.Config{GlobalCapCents: 400, Truncation: resolver.TruncateProportional}
		result := resolver.Resolve([]*campaign.Campaign{c1, c2}, orderWithSubtotal(10000), cfg)

		assert.Equal(t, int64(300), result.Applied[0].DiscountCents)
		assert.Equal(t, int64(100), result.Applied[1].DiscountCents)
		assert.True(t, result.Applied[0].Truncated)
		assert.True(t, result.Applied[1].Truncated)
		assert.Equal(t, int64(400), result.TotalDiscountCents)
	})

	t.Run("proportional remainder never inflates an entry", func(t *testing.T) {
		// No qualifying items, so the freebie is applied at 0 cents.
		freebie := buildCampaign(t, campaignOpts{name: "freebie", priority: 200, discount: bxgy(t, 2, 1)})
		c1 := buildCampaign(t, campaignOpts{name: "c1", priority: 100, discount: fixed(t, 500)})
		c2 := buildCampaign(t, campaignOpts{name: "c2", priority: 50, discount: fixed(t, 200)})

		cfg := resolver.Config{GlobalCapCents: 400, Truncation: resolver.TruncateProportional}
		result := resolver.Resolve([]*campaign.Campaign{freebie, c1, c2}, orderWithSubtotal(10000), cfg)

		require.Len(t, result.Applied, 3)
		// The rounding remainder must not lift the freebie to a cent.
		assert.Equal(t, int64(0), result.Applied[0].DiscountCents)
		assert.False(t, result.Applied[0].Truncated)
		assert.Equal(t, int64(286), result.Applied[1].DiscountCents)
		assert.True(t, result.Applied[1].Truncated)
		assert.Equal(t, int64(114), result.Applied[2].DiscountCents)
		assert.True(t, result.Applied[2].Truncated)
		assert.Equal(t, int64(400), result.TotalDiscountCents)
	})

	t.Run("cap of zero means unlimited", func(t *testing.T) {
		c1 := buildCampaign(t, campaignOpts{name: "c1", priority: 100, discount: fixed(t, 4000)})
		cfg := resolver.Config{Truncation: resolver.TruncateLowestPriorityFirst}
		result := resolver.Resolve([]*campaign.Campaign{c1}, orderWithSubtotal(10000), cfg)
		assert.Equal(t, int64(4000), result.TotalDiscountCents)
	})
}

func TestParseTruncationPolicy(t *testing.T) {
	_, err := resolver.ParseTruncationPolicy("random")
	assert.ErrorIs(t, err, resolver.ErrInvalidTruncationPolicy)

	p, err := resolver.ParseTruncationPolicy("proportional")
	require.NoError(t, err)
	assert.Equal(t, resolver.TruncateProportional, p)
}
