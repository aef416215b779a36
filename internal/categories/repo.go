package categories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain/category"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListActive(ctx context.Context) ([]category.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, slug, is_active, sort_order, created_at, updated_at
		FROM categories
		WHERE is_active = true
		ORDER BY sort_order ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
