package customer

import "context"

// Repository defines data access for customers.
type Repository interface {
	// GetByID retrieves a customer by UUID.
	GetByID(ctx context.Context, id string) (*Customer, error)

	// GetByPhone retrieves a customer by canonical phone number.
	GetByPhone(ctx context.Context, phone string) (*Customer, error)

	// ListByBrand returns every customer who has ordered from the brand,
	// with order count and lifetime value.
	ListByBrand(ctx context.Context, brandID string) ([]*BrandCustomer, error)
}
