package request

import (
	"strings"
	"time"

	"promo-engine/internal/domain/order"

	"github.com/google/uuid"
)

type LineItemRequest struct {
	ProductID      string `json:"product_id" binding:"required"`
	CategoryID     string `json:"category_id"`
	UnitPriceCents int64  `json:"unit_price_cents" binding:"min=0"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
}

type EvaluateRequest struct {
	OrderID         string            `json:"order_id" binding:"required"`
	CustomerID      uuid.UUID         `json:"customer_id" binding:"required"`
	CustomerSegment string            `json:"customer_segment"`
	SubtotalCents   int64             `json:"subtotal_cents" binding:"min=0"`
	Items           []LineItemRequest `json:"items"`
	FirstOrder      bool              `json:"first_order"`
	CouponCode      *string           `json:"coupon_code,omitempty"`
	OccurredAt      *time.Time        `json:"occurred_at,omitempty"`
}

func (r EvaluateRequest) ToOrderContext() order.Context {
	items := make([]order.LineItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = order.LineItem{
			ProductID:      it.ProductID,
			CategoryID:     it.CategoryID,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
		}
	}

	octx := order.Context{
		OrderID:         r.OrderID,
		CustomerID:      r.CustomerID,
		CustomerSegment: r.CustomerSegment,
		SubtotalCents:   r.SubtotalCents,
		Items:           items,
		FirstOrder:      r.FirstOrder,
	}
	if r.CouponCode != nil {
		octx.CouponCode = strings.TrimSpace(*r.CouponCode)
	}
	if r.OccurredAt != nil {
		octx.OccurredAt = *r.OccurredAt
	}
	return octx
}
