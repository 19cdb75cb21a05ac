package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id, brand_id, name, description, category, unit_price, quantity,
	image_url, sizes, colors, variants, is_pack, weight_grams, is_active, created_at, updated_at`

// Create inserts the product and its gallery images inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products
		  (id, brand_id, name, description, category, unit_price, quantity,
		   image_url, sizes, colors, variants, is_pack, weight_grams, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		p.ID, p.BrandID, p.Name, p.Description, p.Category, p.UnitPrice, p.Quantity,
		p.ImageURL, pq.Array(p.Sizes), pq.Array(p.Colors), nullableJSON(p.Variants),
		p.IsPack, p.WeightGrams, p.IsActive)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	for _, img := range p.Images {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_images (id, product_id, url, position)
			VALUES ($1,$2,$3,$4)`,
			img.ID, p.ID, img.URL, img.Position)
		if err != nil {
			return fmt.Errorf("insert product_image: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, uid))
	if err != nil {
		return nil, err
	}
	p.Images, err = r.listImages(ctx, p.ID)
	return p, err
}

func (r *postgresRepo) ListByBrand(ctx context.Context, brandID string, category string, activeOnly bool) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE brand_id = $1`
	args := []interface{}{brandID}
	if category != "" {
		query += fmt.Sprintf(` AND category = $%d`, len(args)+1)
		args = append(args, category)
	}
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProductRows(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET
		  name=$1, description=$2, category=$3, unit_price=$4, image_url=$5,
		  sizes=$6, colors=$7, variants=$8, is_pack=$9, weight_grams=$10,
		  is_active=$11, updated_at=$12
		WHERE id=$13`,
		p.Name, p.Description, p.Category, p.UnitPrice, p.ImageURL,
		pq.Array(p.Sizes), pq.Array(p.Colors), nullableJSON(p.Variants),
		p.IsPack, p.WeightGrams, p.IsActive, time.Now(), p.ID)
	return err
}

func (r *postgresRepo) SetStock(ctx context.Context, id string, qty int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET quantity=$1, updated_at=$2 WHERE id=$3`,
		qty, time.Now(), id)
	return err
}

// DecrementStock is best-effort: the subtraction is unconditional, so two
// concurrent checkouts near the last unit can drive quantity negative. That
// race is a known business trade-off reconciled manually, not a bug fixed
// here.
func (r *postgresRepo) DecrementStock(ctx context.Context, id string, qty int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET quantity = quantity - $1, updated_at=$2 WHERE id=$3`,
		qty, time.Now(), id)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row *sql.Row) (*Product, error)      { return scanProductFrom(row) }
func scanProductRows(rows *sql.Rows) (*Product, error) { return scanProductFrom(rows) }

func scanProductFrom(s rowScanner) (*Product, error) {
	p := &Product{}
	var variants []byte
	err := s.Scan(
		&p.ID, &p.BrandID, &p.Name, &p.Description, &p.Category, &p.UnitPrice, &p.Quantity,
		&p.ImageURL, pq.Array(&p.Sizes), pq.Array(&p.Colors), &variants,
		&p.IsPack, &p.WeightGrams, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

func (r *postgresRepo) listImages(ctx context.Context, productID uuid.UUID) ([]*ProductImage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, url, position
		FROM product_images WHERE product_id=$1 ORDER BY position ASC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*ProductImage
	for rows.Next() {
		img := &ProductImage{}
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Position); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
