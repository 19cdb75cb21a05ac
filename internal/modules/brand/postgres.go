package brand

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL brand repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, b *Brand) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO brands (id, name, slug, custom_domain)
		VALUES ($1, $2, $3, NULLIF($4, ''))`,
		b.ID, b.Name, b.Slug, b.CustomDomain)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Brand, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanBrand(r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, COALESCE(custom_domain, ''), created_at, updated_at
		FROM brands WHERE id = $1`, uid))
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*Brand, error) {
	return scanBrand(r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, COALESCE(custom_domain, ''), created_at, updated_at
		FROM brands WHERE slug = $1`, slug))
}

func (r *postgresRepo) List(ctx context.Context) ([]*Brand, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, slug, COALESCE(custom_domain, ''), created_at, updated_at
		FROM brands ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []*Brand
	for rows.Next() {
		b := &Brand{}
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.CustomDomain, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func scanBrand(row *sql.Row) (*Brand, error) {
	b := &Brand{}
	err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.CustomDomain, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}
