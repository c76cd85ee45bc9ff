// Package resolver selects the final combination of matched campaigns for
// one order under priority and exclusivity rules. Resolution is a pure
// function of its inputs: no clock, no randomness, no I/O.
package resolver

import (
	"errors"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/domain/order"

	"github.com/google/uuid"
)

var ErrInvalidTruncationPolicy = errors.New("invalid truncation policy")

type RejectionReason string

const (
	ReasonExclusivityConflict RejectionReason = "exclusivity_conflict"
	ReasonDiscountFloor       RejectionReason = "discount_floor"
)

type TruncationPolicy string

const (
	TruncateLowestPriorityFirst TruncationPolicy = "lowest_priority_first"
	TruncateProportional        TruncationPolicy = "proportional"
)

func ParseTruncationPolicy(s string) (TruncationPolicy, error) {
	switch TruncationPolicy(s) {
	case TruncateLowestPriorityFirst, TruncateProportional:
		return TruncationPolicy(s), nil
	}
	return "", ErrInvalidTruncationPolicy
}

type Config struct {
	// FloorCents is the minimum the order subtotal may be discounted down to.
	FloorCents int64
	// GlobalCapCents bounds the total discount per order; 0 means unlimited.
	GlobalCapCents int64
	Truncation     TruncationPolicy
}

type Applied struct {
	CampaignID    uuid.UUID
	CampaignName  string
	DiscountCents int64
	Truncated     bool
}

type Rejection struct {
	CampaignID   uuid.UUID
	CampaignName string
	Reason       RejectionReason
}

type Result struct {
	Applied            []Applied
	Rejected           []Rejection
	TotalDiscountCents int64
}

// Resolve walks the matched campaigns in registry order (priority desc,
// earliest start, then id). Non-compounding discounts are computed against
// the original subtotal; compounding ones against the running total.
func Resolve(matched []*campaign.Campaign, octx order.Context, cfg Config) Result {
	result := Result{
		Applied:  make([]Applied, 0, len(matched)),
		Rejected: make([]Rejection, 0),
	}

	occupied := make(map[string]struct{})
	remaining := octx.SubtotalCents

	for _, c := range matched {
		if group := c.ExclusivityGroup(); group != "" {
			if _, taken := occupied[group]; taken {
				result.Rejected = append(result.Rejected, Rejection{
					CampaignID:   c.ID(),
					CampaignName: c.Name(),
					Reason:       ReasonExclusivityConflict,
				})
				continue
			}
		}

		base := octx.SubtotalCents
		if c.Compounding() {
			base = remaining
		}
		amount := c.Discount().Amount(base, octx.Items)

		if remaining-amount < cfg.FloorCents {
			result.Rejected = append(result.Rejected, Rejection{
				CampaignID:   c.ID(),
				CampaignName: c.Name(),
				Reason:       ReasonDiscountFloor,
			})
			continue
		}

		if group := c.ExclusivityGroup(); group != "" {
			occupied[group] = struct{}{}
		}
		remaining -= amount
		result.TotalDiscountCents += amount
		result.Applied = append(result.Applied, Applied{
			CampaignID:    c.ID(),
			CampaignName:  c.Name(),
			DiscountCents: amount,
		})
	}

	if cfg.GlobalCapCents > 0 && result.TotalDiscountCents > cfg.GlobalCapCents {
		truncate(&result, cfg)
	}

	return result
}

func truncate(result *Result, cfg Config) {
	excess := result.TotalDiscountCents - cfg.GlobalCapCents

	switch cfg.Truncation {
	case TruncateProportional:
		truncateProportional(result, cfg.GlobalCapCents)
	default:
		truncateLowestPriorityFirst(result, excess)
	}
	result.TotalDiscountCents = cfg.GlobalCapCents
}

// Applied entries are in priority order, so cutting from the tail removes
// discount from the lowest-priority accepted campaigns first.
func truncateLowestPriorityFirst(result *Result, excess int64) {
	for i := len(result.Applied) - 1; i >= 0 && excess > 0; i-- {
		cut := min(excess, result.Applied[i].DiscountCents)
		if cut == 0 {
			continue
		}
		result.Applied[i].DiscountCents -= cut
		result.Applied[i].Truncated = true
		excess -= cut
	}
}

func truncateProportional(result *Result, capCents int64) {
	total := result.TotalDiscountCents
	originals := make([]int64, len(result.Applied))
	var allocated int64
	for i := range result.Applied {
		originals[i] = result.Applied[i].DiscountCents
		result.Applied[i].DiscountCents = originals[i] * capCents / total
		allocated += result.Applied[i].DiscountCents
	}
	// Integer division leaves a remainder; hand it out from the highest
	// priority down so the outcome stays deterministic. No entry may end
	// up above its pre-cap amount.
	for i := 0; allocated < capCents && i < len(result.Applied); i++ {
		if result.Applied[i].DiscountCents < originals[i] {
			result.Applied[i].DiscountCents++
			allocated++
		}
	}
	for i := range result.Applied {
		if result.Applied[i].DiscountCents < originals[i] {
			result.Applied[i].Truncated = true
		}
	}
}
