package customer

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL customer repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	c := &Customer{}
	query := `
		SELECT id, name, phone, COALESCE(email, ''), created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	err = r.db.QueryRowContext(ctx, query, parsedID).Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) GetByPhone(ctx context.Context, phone string) (*Customer, error) {
	c := &Customer{}
	query := `
		SELECT id, name, phone, COALESCE(email, ''), created_at, updated_at
		FROM customers
		WHERE phone = $1
	`
	err := r.db.QueryRowContext(ctx, query, phone).Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) ListByBrand(ctx context.Context, brandID string) ([]*BrandCustomer, error) {
	query := `
		SELECT c.id, c.name, c.phone, COALESCE(c.email, ''), c.created_at, c.updated_at,
		       COUNT(o.id), COALESCE(SUM(o.total), 0), MAX(o.created_at)
		FROM customers c
		JOIN orders o ON o.customer_id = c.id
		WHERE o.brand_id = $1 AND o.status <> 'CANCELLED'
		GROUP BY c.id
		ORDER BY MAX(o.created_at) DESC
	`
	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*BrandCustomer
	for rows.Next() {
		bc := &BrandCustomer{}
		if err := rows.Scan(
			&bc.ID,
			&bc.Name,
			&bc.Phone,
			&bc.Email,
			&bc.CreatedAt,
			&bc.UpdatedAt,
			&bc.OrderCount,
			&bc.TotalSpent,
			&bc.LastOrder,
		); err != nil {
			return nil, err
		}
		customers = append(customers, bc)
	}
	return customers, rows.Err()
}
