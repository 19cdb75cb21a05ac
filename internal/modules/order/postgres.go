package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateOrder inserts the order and all its items inside a single transaction.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, brand_id, customer_id, customer_name, phone, address, area,
		   subtotal, delivery_charge, total, payment_method, status, shipping_address)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		o.ID, o.BrandID, o.CustomerID, o.CustomerName, o.Phone, o.Address, o.Area,
		o.Subtotal, o.DeliveryCharge, o.Total, o.PaymentMethod, o.Status,
		nullableJSON(o.ShippingAddress))
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, product_id, name, image_url, unit_price, quantity,
			   selected_size, selected_color, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			item.ID, o.ID, item.ProductID, item.Name, item.ImageURL,
			item.UnitPrice, item.Quantity, item.SelectedSize, item.SelectedColor,
			item.LineTotal)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return tx.Commit()
}

const orderColumns = `id, brand_id, customer_id, customer_name, phone, address, area,
	subtotal, delivery_charge, total, payment_method, status, shipping_address,
	created_at, updated_at`

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, uid))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListByBrand(ctx context.Context, brandID string, status string) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE brand_id=$1`
	args := []interface{}{brandID}
	if status != "" {
		query += ` AND status=$2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrderRows(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

func (r *postgresRepo) CountPendingByPhone(ctx context.Context, phone string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE phone=$1 AND status='PENDING'`,
		phone).Scan(&count)
	return count, err
}

func (r *postgresRepo) Stats(ctx context.Context, brandID string) (*BrandStats, error) {
	stats := &BrandStats{OrdersByStatus: make(map[Status]int)}

	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM orders WHERE brand_id=$1 GROUP BY status`, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
		stats.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0), COUNT(DISTINCT customer_id)
		FROM orders WHERE brand_id=$1 AND status <> 'CANCELLED'`, brandID).
		Scan(&stats.Revenue, &stats.Customers)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.brand_id=$1 AND o.status <> 'CANCELLED'`, brandID).
		Scan(&stats.UnitsSold)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *postgresRepo) GetBrand(ctx context.Context, id uuid.UUID) (*BrandRef, error) {
	b := &BrandRef{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug FROM brands WHERE id=$1`, id).
		Scan(&b.ID, &b.Name, &b.Slug)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, brandID, productID uuid.UUID) (*ProductSnapshot, error) {
	p := &ProductSnapshot{}
	var variants []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, unit_price, COALESCE(image_url, ''), is_pack, weight_grams, variants
		FROM products
		WHERE id=$1 AND brand_id=$2 AND is_active = TRUE`,
		productID, brandID).
		Scan(&p.ID, &p.Name, &p.UnitPrice, &p.ImageURL, &p.IsPack, &p.WeightGrams, &variants)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

// GetOrCreateCustomer upserts on the canonical phone number in one
// statement so two concurrent checkouts for the same new phone cannot both
// insert. Email is only overwritten when the new submission carries one.
func (r *postgresRepo) GetOrCreateCustomer(ctx context.Context, phone, name, email string) (uuid.UUID, string, error) {
	var id uuid.UUID
	var currentEmail sql.NullString
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (id, name, phone, email)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		ON CONFLICT (phone) DO UPDATE SET
		  name = EXCLUDED.name,
		  email = COALESCE(EXCLUDED.email, customers.email),
		  updated_at = NOW()
		RETURNING id, email`,
		uuid.New(), name, phone, email).
		Scan(&id, &currentEmail)
	if err != nil {
		return uuid.Nil, "", err
	}
	return id, currentEmail.String, nil
}

func (r *postgresRepo) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET quantity = quantity - $1, updated_at=$2 WHERE id=$3`,
		qty, time.Now(), productID)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row *sql.Row) (*Order, error)        { return scanOrderFrom(row) }
func scanOrderRows(rows *sql.Rows) (*Order, error)  { return scanOrderFrom(rows) }

func scanOrderFrom(s rowScanner) (*Order, error) {
	o := &Order{}
	var shippingAddr []byte
	err := s.Scan(
		&o.ID, &o.BrandID, &o.CustomerID, &o.CustomerName, &o.Phone, &o.Address, &o.Area,
		&o.Subtotal, &o.DeliveryCharge, &o.Total, &o.PaymentMethod, &o.Status,
		&shippingAddr, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.ShippingAddress = shippingAddr
	return o, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, COALESCE(image_url, ''), unit_price,
		       quantity, COALESCE(selected_size, ''), COALESCE(selected_color, ''), line_total
		FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*OrderItem
	for rows.Next() {
		item := &OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.ImageURL, &item.UnitPrice, &item.Quantity,
			&item.SelectedSize, &item.SelectedColor, &item.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
