package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CampaignRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewCampaignRepository(pool *pgxpool.Pool, timeout time.Duration) *CampaignRepository {
	return &CampaignRepository{pool: pool, timeout: timeout}
}

type campaignRow struct {
	ID                  uuid.UUID
	Name                string
	RuleText            string
	DiscountKind        string
	DiscountPercent     float64
	DiscountAmountCents int64
	DiscountBuyX        int
	DiscountGetY        int
	DiscountCapCents    int64
	Priority            int
	ExclusivityGroup    *string
	Compounding         bool
	StartsAt            time.Time
	EndsAt              time.Time
	Status              string
	MaxConcurrent       int
	PoolSize            *int
	PerCustomerLimit    *int
}

const campaignColumns = `
	c.id, c.name, c.rule_text,
	c.discount_kind, c.discount_percent, c.discount_amount_cents,
	c.discount_buy_x, c.discount_get_y, c.discount_cap_cents,
	c.priority, c.exclusivity_group, c.compounding,
	c.starts_at, c.ends_at, c.status, c.max_concurrent,
	p.total_size, p.per_customer_limit`

// ListAll loads every campaign definition, including non-active ones so
// the registry can observe status transitions. A stored rule that no
// longer compiles is logged and skipped rather than poisoning the load.
func (r *CampaignRepository) ListAll(ctx context.Context) ([]*campaign.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns c
		LEFT JOIN coupon_pools p ON p.campaign_id = c.id
		ORDER BY c.priority DESC, c.starts_at ASC, c.id ASC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list campaigns", err)
	}
	defer rows.Close()

	var out []*campaign.Campaign
	for rows.Next() {
		var row campaignRow
		if err := scanCampaign(rows, &row); err != nil {
			return nil, infra.WrapRepoErr("failed to scan campaign row", err)
		}
		c, err := buildCampaign(row)
		if err != nil {
			slog.Warn("skipping campaign with invalid stored definition",
				"campaign_id", row.ID.String(),
				"error", err.Error())
			continue
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate campaign rows", err)
	}
	return out, nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns c
		LEFT JOIN coupon_pools p ON p.campaign_id = c.id
		WHERE c.id = $1`, id)

	var cr campaignRow
	if err := scanCampaign(row, &cr); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find campaign", err)
	}

	c, err := buildCampaign(cr)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to rebuild campaign from row", err)
	}
	return c, nil
}

func (r *CampaignRepository) Save(ctx context.Context, c *campaign.Campaign) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	d := c.Discount()
	var group *string
	if g := c.ExclusivityGroup(); g != "" {
		group = &g
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO campaigns (
			id, name, rule_text,
			discount_kind, discount_percent, discount_amount_cents,
			discount_buy_x, discount_get_y, discount_cap_cents,
			priority, exclusivity_group, compounding,
			starts_at, ends_at, status, max_concurrent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			rule_text = EXCLUDED.rule_text,
			discount_kind = EXCLUDED.discount_kind,
			discount_percent = EXCLUDED.discount_percent,
			discount_amount_cents = EXCLUDED.discount_amount_cents,
			discount_buy_x = EXCLUDED.discount_buy_x,
			discount_get_y = EXCLUDED.discount_get_y,
			discount_cap_cents = EXCLUDED.discount_cap_cents,
			priority = EXCLUDED.priority,
			exclusivity_group = EXCLUDED.exclusivity_group,
			compounding = EXCLUDED.compounding,
			starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at,
			status = EXCLUDED.status,
			max_concurrent = EXCLUDED.max_concurrent,
			updated_at = now()`,
		c.ID(), c.Name(), c.RuleText(),
		string(d.Kind()), d.Percent(), d.AmountCents(),
		d.BuyX(), d.GetY(), d.CapCents(),
		c.Priority(), group, c.Compounding(),
		c.StartsAt(), c.EndsAt(), string(c.Status()), c.MaxConcurrent())
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr("campaign violates a unique constraint", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to save campaign", err)
	}
	return nil
}

// UpdateStatus reports whether a row transitioned; updating to the
// current status affects nothing.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status campaign.Status) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE campaigns
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status <> $2`, id, string(status))
	if err != nil {
		return false, infra.WrapRepoErr("failed to update campaign status", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanCampaign(row pgx.Row, cr *campaignRow) error {
	return row.Scan(
		&cr.ID, &cr.Name, &cr.RuleText,
		&cr.DiscountKind, &cr.DiscountPercent, &cr.DiscountAmountCents,
		&cr.DiscountBuyX, &cr.DiscountGetY, &cr.DiscountCapCents,
		&cr.Priority, &cr.ExclusivityGroup, &cr.Compounding,
		&cr.StartsAt, &cr.EndsAt, &cr.Status, &cr.MaxConcurrent,
		&cr.PoolSize, &cr.PerCustomerLimit)
}

func buildCampaign(row campaignRow) (*campaign.Campaign, error) {
	var (
		discount campaign.Discount
		err      error
	)
	switch campaign.DiscountKind(row.DiscountKind) {
	case campaign.DiscountPercent:
		discount, err = campaign.NewPercentDiscount(row.DiscountPercent, row.DiscountCapCents)
	case campaign.DiscountFixed:
		discount, err = campaign.NewFixedDiscount(row.DiscountAmountCents, row.DiscountCapCents)
	case campaign.DiscountBuyXGetY:
		discount, err = campaign.NewBuyXGetYDiscount(row.DiscountBuyX, row.DiscountGetY, row.DiscountCapCents)
	default:
		err = campaign.ErrInvalidDiscountKind
	}
	if err != nil {
		return nil, err
	}

	status, err := campaign.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	params := campaign.Params{
		ID:            row.ID,
		Name:          row.Name,
		RuleText:      row.RuleText,
		Discount:      discount,
		Priority:      row.Priority,
		Compounding:   row.Compounding,
		StartsAt:      row.StartsAt,
		EndsAt:        row.EndsAt,
		Status:        status,
		MaxConcurrent: row.MaxConcurrent,
	}
	if row.ExclusivityGroup != nil {
		params.ExclusivityGroup = *row.ExclusivityGroup
	}
	if row.PoolSize != nil {
		limit := 1
		if row.PerCustomerLimit != nil {
			limit = *row.PerCustomerLimit
		}
		pool, err := campaign.NewPoolSpec(*row.PoolSize, limit)
		if err != nil {
			return nil, err
		}
		params.Pool = &pool
	}
	return campaign.New(params)
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
