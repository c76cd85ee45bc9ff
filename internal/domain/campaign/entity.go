package campaign

import (
	"errors"
	"strings"
	"time"

	"promo-engine/internal/domain/condition"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("campaign name cannot be empty")
	ErrInvalidTimeRange = errors.New("campaign start must precede end")
)

// DefaultMaxConcurrent is the soft admission limit on simultaneous
// applications of one campaign across the system.
const DefaultMaxConcurrent = 10

// Predicate is the evaluable form of a campaign's condition expression.
// condition.Predicate satisfies it; tests may substitute their own.
type Predicate interface {
	Eval(ctx *condition.Context) (bool, error)
}

type Campaign struct {
	id               uuid.UUID
	name             string
	ruleText         string
	predicate        Predicate
	discount         Discount
	priority         int
	exclusivityGroup string // empty means stackable
	compounding      bool
	startsAt         time.Time
	endsAt           time.Time
	status           Status
	maxConcurrent    int
	pool             *PoolSpec
}

type Params struct {
	ID               uuid.UUID
	Name             string
	RuleText         string
	Discount         Discount
	Priority         int
	ExclusivityGroup string
	Compounding      bool
	StartsAt         time.Time
	EndsAt           time.Time
	Status           Status
	MaxConcurrent    int
	Pool             *PoolSpec

	// Predicate overrides compilation of RuleText when set.
	Predicate Predicate
}

// New validates the definition and compiles the rule text. A campaign whose
// expression does not compile never enters the registry.
func New(p Params) (*Campaign, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !p.StartsAt.Before(p.EndsAt) {
		return nil, ErrInvalidTimeRange
	}
	if _, err := ParseStatus(string(p.Status)); err != nil {
		return nil, err
	}

	pred := p.Predicate
	if pred == nil {
		compiled, err := condition.Compile(p.RuleText)
		if err != nil {
			return nil, err
		}
		pred = compiled
	}

	maxConcurrent := p.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Campaign{
		id:               id,
		name:             name,
		ruleText:         p.RuleText,
		predicate:        pred,
		discount:         p.Discount,
		priority:         p.Priority,
		exclusivityGroup: p.ExclusivityGroup,
		compounding:      p.Compounding,
		startsAt:         p.StartsAt,
		endsAt:           p.EndsAt,
		status:           p.Status,
		maxConcurrent:    maxConcurrent,
		pool:             p.Pool,
	}, nil
}

func (c *Campaign) ID() uuid.UUID            { return c.id }
func (c *Campaign) Name() string             { return c.name }
func (c *Campaign) RuleText() string         { return c.ruleText }
func (c *Campaign) Predicate() Predicate     { return c.predicate }
func (c *Campaign) Discount() Discount       { return c.discount }
func (c *Campaign) Priority() int            { return c.priority }
func (c *Campaign) ExclusivityGroup() string { return c.exclusivityGroup }
func (c *Campaign) Compounding() bool        { return c.compounding }
func (c *Campaign) StartsAt() time.Time      { return c.startsAt }
func (c *Campaign) EndsAt() time.Time        { return c.endsAt }
func (c *Campaign) Status() Status           { return c.status }
func (c *Campaign) MaxConcurrent() int       { return c.maxConcurrent }
func (c *Campaign) Pool() *PoolSpec          { return c.pool }

func (c *Campaign) IsStackable() bool {
	return c.exclusivityGroup == ""
}

func (c *Campaign) HasCouponPool() bool {
	return c.pool != nil
}

// EvaluableAt reports whether the campaign may be evaluated: active status
// and t inside [startsAt, endsAt).
func (c *Campaign) EvaluableAt(t time.Time) bool {
	if c.status != StatusActive {
		return false
	}
	return !t.Before(c.startsAt) && t.Before(c.endsAt)
}
