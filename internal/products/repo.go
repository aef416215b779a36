package products

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain/product"
)

var ErrNotFound = errors.New("product not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListPublic(ctx context.Context, categorySlug *string) ([]product.Product, error) {
	q := `
		SELECT
		  p.id, p.category_id, c.name as category_name, p.name, COALESCE(p.description,''),
		  p.price, p.stock_qty, p.has_stock, COALESCE(p.intensity, 0), p.is_active,
		  p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.is_active = true AND c.is_active = true
	`
	args := []any{}
	if categorySlug != nil && *categorySlug != "" {
		q += " AND c.slug = $1 "
		args = append(args, *categorySlug)
	}
	q += " ORDER BY p.created_at DESC "

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachDetails(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) GetPublic(ctx context.Context, id int64) (product.Product, error) {
	var p product.Product
	err := r.db.QueryRow(ctx, `
		SELECT
		  p.id, p.category_id, c.name as category_name, p.name, COALESCE(p.description,''),
		  p.price, p.stock_qty, p.has_stock, COALESCE(p.intensity, 0), p.is_active,
		  p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND p.is_active = true AND c.is_active = true
	`, id).Scan(
		&p.ID, &p.CategoryID, &p.Category, &p.Name, &p.Description,
		&p.Price, &p.StockQty, &p.HasStock, &p.Intensity, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return product.Product{}, ErrNotFound
	}
	if err != nil {
		return product.Product{}, err
	}

	ps := []product.Product{p}
	if err := r.attachDetails(ctx, ps); err != nil {
		return product.Product{}, err
	}
	return ps[0], nil
}

// ListRelated returns other active products from the same category.
func (r *Repo) ListRelated(ctx context.Context, id int64, limit int) ([]product.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
		  p.id, p.category_id, c.name as category_name, p.name, COALESCE(p.description,''),
		  p.price, p.stock_qty, p.has_stock, COALESCE(p.intensity, 0), p.is_active,
		  p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = (SELECT category_id FROM products WHERE id = $1)
		  AND p.id <> $1 AND p.is_active = true AND c.is_active = true
		ORDER BY p.created_at DESC
		LIMIT $2
	`, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachDetails(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProducts(rows pgx.Rows) ([]product.Product, error) {
	var out []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Category, &p.Name, &p.Description,
			&p.Price, &p.StockQty, &p.HasStock, &p.Intensity, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// attachDetails loads variants, flavors, images, and review tags for the
// given products and normalizes each one for pricing.
func (r *Repo) attachDetails(ctx context.Context, ps []product.Product) error {
	if len(ps) == 0 {
		return nil
	}
	idx := make(map[int64]*product.Product, len(ps))
	ids := make([]int64, 0, len(ps))
	for i := range ps {
		idx[ps[i].ID] = &ps[i]
		ids = append(ids, ps[i].ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, size_value, size_unit, price, stock_qty
		FROM product_variants
		WHERE product_id = ANY($1)
		ORDER BY size_value ASC, id ASC
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var v product.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SizeValue, &v.SizeUnit, &v.Price, &v.StockQty); err != nil {
			rows.Close()
			return err
		}
		if p := idx[v.ProductID]; p != nil {
			p.Variants = append(p.Variants, v)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, product_id, name, price, stock_qty, is_active
		FROM product_flavors
		WHERE product_id = ANY($1)
		ORDER BY name ASC, id ASC
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var f product.Flavor
		if err := rows.Scan(&f.ID, &f.ProductID, &f.Name, &f.Price, &f.StockQty, &f.IsActive); err != nil {
			rows.Close()
			return err
		}
		if p := idx[f.ProductID]; p != nil {
			p.Flavors = append(p.Flavors, f)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT product_id, url
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY sort_order ASC, id ASC
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var pid int64
		var url string
		if err := rows.Scan(&pid, &url); err != nil {
			rows.Close()
			return err
		}
		if p := idx[pid]; p != nil {
			p.Images = append(p.Images, url)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT product_id, tag_id
		FROM product_review_tags
		WHERE product_id = ANY($1)
		ORDER BY tag_id ASC
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var pid, tagID int64
		if err := rows.Scan(&pid, &tagID); err != nil {
			rows.Close()
			return err
		}
		if p := idx[pid]; p != nil {
			p.ReviewTagIDs = append(p.ReviewTagIDs, tagID)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range ps {
		product.Normalize(&ps[i])
	}
	return nil
}
