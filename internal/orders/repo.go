package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"storefront/internal/checkout"
	"storefront/internal/domain/order"
	"storefront/internal/pricing"
)

var ErrNotFound = errors.New("order not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Create inserts the order and its items in one transaction and returns the
// stored order with its server-assigned id, reference, status, and totals.
func (r *Repo) Create(ctx context.Context, userID int64, req checkout.OrderRequest) (order.Order, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return order.Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	reference := uuid.NewString()

	var o order.Order
	var subtotal, tax, total float64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (reference, user_id, status, payment_method, notes, subtotal, tax, total_amount)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, reference, user_id, status, payment_method, COALESCE(notes,''),
		          subtotal, tax, total_amount, created_at, updated_at
	`, reference, userID, order.StatusPending, req.PaymentMethod, req.Notes,
		pricing.RoundMoney(req.Subtotal).InexactFloat64(),
		pricing.RoundMoney(req.Tax).InexactFloat64(),
		pricing.RoundMoney(req.TotalAmount).InexactFloat64(),
	).Scan(
		&o.ID, &o.Reference, &o.UserID, &o.Status, &o.PaymentMethod, &o.Notes,
		&subtotal, &tax, &total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return order.Order{}, err
	}
	o.Subtotal = decimal.NewFromFloat(subtotal)
	o.Tax = decimal.NewFromFloat(tax)
	o.TotalAmount = decimal.NewFromFloat(total)

	for _, it := range req.Items {
		item := it
		item.OrderID = o.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, name, variant_id, flavor_id, size, flavor, intensity, quantity, unit_price)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			RETURNING id
		`, o.ID, it.ProductID, it.Name, it.VariantID, it.FlavorID, it.Size, it.Flavor,
			it.Intensity, it.Quantity, pricing.RoundMoney(it.UnitPrice).InexactFloat64(),
		).Scan(&item.ID)
		if err != nil {
			return order.Order{}, err
		}
		o.Items = append(o.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, err
	}
	return o, nil
}

// ListByUser returns the user's order history, newest first, without items.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, reference, user_id, status, payment_method, COALESCE(notes,''),
		       subtotal, tax, total_amount, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetByUser returns one of the user's orders with its items, for the
// confirmation view.
func (r *Repo) GetByUser(ctx context.Context, userID, orderID int64) (order.Order, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, reference, user_id, status, payment_method, COALESCE(notes,''),
		       subtotal, tax, total_amount, created_at, updated_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`, orderID, userID)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, ErrNotFound
	}
	if err != nil {
		return order.Order{}, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, name, variant_id, flavor_id,
		       COALESCE(size,''), COALESCE(flavor,''), intensity, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, o.ID)
	if err != nil {
		return order.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var it order.Item
		var unitPrice float64
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.VariantID, &it.FlavorID,
			&it.Size, &it.Flavor, &it.Intensity, &it.Quantity, &unitPrice,
		); err != nil {
			return order.Order{}, err
		}
		it.UnitPrice = decimal.NewFromFloat(unitPrice)
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func scanOrder(row pgx.Row) (order.Order, error) {
	var o order.Order
	var subtotal, tax, total float64
	err := row.Scan(
		&o.ID, &o.Reference, &o.UserID, &o.Status, &o.PaymentMethod, &o.Notes,
		&subtotal, &tax, &total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return order.Order{}, err
	}
	o.Subtotal = decimal.NewFromFloat(subtotal)
	o.Tax = decimal.NewFromFloat(tax)
	o.TotalAmount = decimal.NewFromFloat(total)
	return o, nil
}
