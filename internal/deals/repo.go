package deals

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain/deal"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// ListActive returns deals inside their validity window at now, with their
// product sets and per-item scopes attached.
func (r *Repo) ListActive(ctx context.Context, now time.Time) ([]deal.Deal, error) {
	return r.list(ctx, `
		SELECT id, title, kind, value, starts_at, ends_at, is_banner
		FROM deals
		WHERE is_active = true AND starts_at <= $1 AND ends_at > $1
		ORDER BY ends_at ASC
	`, now)
}

// ListBanner returns the active deals flagged for the storefront banner.
func (r *Repo) ListBanner(ctx context.Context, now time.Time) ([]deal.Deal, error) {
	return r.list(ctx, `
		SELECT id, title, kind, value, starts_at, ends_at, is_banner
		FROM deals
		WHERE is_active = true AND is_banner = true AND starts_at <= $1 AND ends_at > $1
		ORDER BY ends_at ASC
	`, now)
}

// ActiveForSelection returns the first active deal covering the selection,
// or nil when none applies.
func (r *Repo) ActiveForSelection(ctx context.Context, now time.Time, productID int64, variantID, flavorID *int64) (*deal.Deal, error) {
	ds, err := r.ListActive(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range ds {
		if ds[i].Covers(productID, variantID, flavorID) {
			return &ds[i], nil
		}
	}
	return nil, nil
}

func (r *Repo) list(ctx context.Context, q string, now time.Time) ([]deal.Deal, error) {
	rows, err := r.db.Query(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []deal.Deal
	for rows.Next() {
		var d deal.Deal
		if err := rows.Scan(&d.ID, &d.Title, &d.Kind, &d.Value, &d.StartsAt, &d.EndsAt, &d.IsBanner); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachScopes(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) attachScopes(ctx context.Context, ds []deal.Deal) error {
	if len(ds) == 0 {
		return nil
	}
	idx := make(map[int64]*deal.Deal, len(ds))
	ids := make([]int64, 0, len(ds))
	for i := range ds {
		idx[ds[i].ID] = &ds[i]
		ids = append(ids, ds[i].ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT deal_id, product_id
		FROM deal_products
		WHERE deal_id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	if err := scanInto(rows, func(rows pgx.Rows) error {
		var dealID, productID int64
		if err := rows.Scan(&dealID, &productID); err != nil {
			return err
		}
		if d := idx[dealID]; d != nil {
			d.ProductIDs = append(d.ProductIDs, productID)
		}
		return nil
	}); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT deal_id, product_id, variant_id, flavor_id
		FROM deal_items
		WHERE deal_id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	return scanInto(rows, func(rows pgx.Rows) error {
		var dealID int64
		var it deal.Item
		if err := rows.Scan(&dealID, &it.ProductID, &it.VariantID, &it.FlavorID); err != nil {
			return err
		}
		if d := idx[dealID]; d != nil {
			d.Items = append(d.Items, it)
		}
		return nil
	})
}

func scanInto(rows pgx.Rows, scan func(pgx.Rows) error) error {
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
