package brand

import "context"

// Repository defines data access for brands.
type Repository interface {
	// Create persists a new brand.
	Create(ctx context.Context, b *Brand) error

	// GetByID retrieves a brand by UUID.
	GetByID(ctx context.Context, id string) (*Brand, error)

	// GetBySlug retrieves a brand by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*Brand, error)

	// List returns all registered brands.
	List(ctx context.Context) ([]*Brand, error)
}
