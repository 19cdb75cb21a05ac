package customer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines customer business logic for the admin console. Customers
// are created by the checkout pipeline, never through this surface.
type Service interface {
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	GetByPhone(ctx context.Context, phone string) (*Customer, error)
	ListBrandCustomers(ctx context.Context, brandID string) ([]*BrandCustomer, error)
}

type service struct{ repo Repository }

// NewService creates a new customer service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByPhone(ctx context.Context, phone string) (*Customer, error) {
	return s.repo.GetByPhone(ctx, phone)
}

func (s *service) ListBrandCustomers(ctx context.Context, brandID string) ([]*BrandCustomer, error) {
	if _, err := uuid.Parse(brandID); err != nil {
		return nil, fmt.Errorf("invalid brand_id: %w", err)
	}
	return s.repo.ListByBrand(ctx, brandID)
}
