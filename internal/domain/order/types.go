// Package order defines the order context supplied by the calling service.
// The engine never computes prices; line items arrive pre-priced.
package order

import (
	"time"

	"promo-engine/internal/domain/condition"

	"github.com/google/uuid"
)

type LineItem struct {
	ProductID      string
	CategoryID     string
	UnitPriceCents int64
	Quantity       int
}

type Context struct {
	OrderID         string
	CustomerID      uuid.UUID
	CustomerSegment string
	SubtotalCents   int64
	Items           []LineItem
	FirstOrder      bool
	CouponCode      string
	OccurredAt      time.Time
}

func (c Context) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c Context) Categories() []string {
	seen := make(map[string]struct{}, len(c.Items))
	out := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		if _, ok := seen[it.CategoryID]; ok {
			continue
		}
		seen[it.CategoryID] = struct{}{}
		out = append(out, it.CategoryID)
	}
	return out
}

// ConditionContext projects the order into the read-only view the condition
// language evaluates against.
func (c Context) ConditionContext() *condition.Context {
	return &condition.Context{
		Subtotal:        c.SubtotalCents,
		ItemCount:       c.ItemCount(),
		Categories:      c.Categories(),
		CustomerSegment: c.CustomerSegment,
		FirstOrder:      c.FirstOrder,
		Now:             c.OccurredAt,
	}
}
