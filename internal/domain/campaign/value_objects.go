package campaign

import (
	"errors"

	"promo-engine/internal/domain/order"
)

var (
	ErrInvalidStatus          = errors.New("invalid campaign status")
	ErrInvalidDiscountKind    = errors.New("invalid discount kind")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
	ErrInvalidDiscountAmount  = errors.New("fixed discount amount must be positive")
	ErrInvalidDiscountQty     = errors.New("buy-x-get-y quantities must be positive")
	ErrInvalidPoolSize        = errors.New("coupon pool size must be positive")
	ErrInvalidUsageLimit      = errors.New("per-customer usage limit must be positive")
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusExpired   Status = "expired"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusActive, StatusPaused, StatusExpired:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

type DiscountKind string

const (
	DiscountPercent  DiscountKind = "percent"
	DiscountFixed    DiscountKind = "fixed_amount"
	DiscountBuyXGetY DiscountKind = "buy_x_get_y"
)

func ParseDiscountKind(s string) (DiscountKind, error) {
	switch DiscountKind(s) {
	case DiscountPercent, DiscountFixed, DiscountBuyXGetY:
		return DiscountKind(s), nil
	}
	return "", ErrInvalidDiscountKind
}

// Discount describes how much a campaign takes off an order. CapCents bounds
// the computed amount when positive.
type Discount struct {
	kind        DiscountKind
	percent     float64
	amountCents int64
	buyX        int
	getY        int
	capCents    int64
}

func NewPercentDiscount(percent float64, capCents int64) (Discount, error) {
	if percent <= 0 || percent > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{kind: DiscountPercent, percent: percent, capCents: capCents}, nil
}

func NewFixedDiscount(amountCents, capCents int64) (Discount, error) {
	if amountCents <= 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{kind: DiscountFixed, amountCents: amountCents, capCents: capCents}, nil
}

func NewBuyXGetYDiscount(buyX, getY int, capCents int64) (Discount, error) {
	if buyX < 1 || getY < 1 {
		return Discount{}, ErrInvalidDiscountQty
	}
	return Discount{kind: DiscountBuyXGetY, buyX: buyX, getY: getY, capCents: capCents}, nil
}

func (d Discount) Kind() DiscountKind { return d.kind }
func (d Discount) Percent() float64   { return d.percent }
func (d Discount) AmountCents() int64 { return d.amountCents }
func (d Discount) BuyX() int          { return d.buyX }
func (d Discount) GetY() int          { return d.getY }
func (d Discount) CapCents() int64    { return d.capCents }

// Amount computes the discount against baseCents. For buy-X-get-Y the
// cheapest interpretation is per line item: every full group of X+Y units
// makes Y units free at that item's unit price.
func (d Discount) Amount(baseCents int64, items []order.LineItem) int64 {
	if baseCents <= 0 {
		return 0
	}

	var amount int64
	switch d.kind {
	case DiscountPercent:
		amount = int64(float64(baseCents) * d.percent / 100.0)
	case DiscountFixed:
		amount = d.amountCents
	case DiscountBuyXGetY:
		group := d.buyX + d.getY
		for _, it := range items {
			free := int64(it.Quantity/group) * int64(d.getY)
			amount += free * it.UnitPriceCents
		}
	}

	if d.capCents > 0 && amount > d.capCents {
		amount = d.capCents
	}
	if amount < 0 {
		return 0
	}
	return amount
}

// PoolSpec configures the finite coupon pool a campaign issues codes from.
type PoolSpec struct {
	size             int
	perCustomerLimit int
}

func NewPoolSpec(size, perCustomerLimit int) (PoolSpec, error) {
	if size < 1 {
		return PoolSpec{}, ErrInvalidPoolSize
	}
	if perCustomerLimit == 0 {
		perCustomerLimit = 1
	}
	if perCustomerLimit < 1 {
		return PoolSpec{}, ErrInvalidUsageLimit
	}
	return PoolSpec{size: size, perCustomerLimit: perCustomerLimit}, nil
}

func (p PoolSpec) Size() int             { return p.size }
func (p PoolSpec) PerCustomerLimit() int { return p.perCustomerLimit }
