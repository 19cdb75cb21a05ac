package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	RegisterProduct(ctx context.Context, req RegisterProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, brandID, category string, activeOnly bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req RegisterProductRequest) (*Product, error)
	SetStock(ctx context.Context, id string, qty int) error

	// Inventory returns the admin console's stock view for one brand.
	Inventory(ctx context.Context, brandID string) ([]*InventoryRow, error)
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) RegisterProduct(ctx context.Context, req RegisterProductRequest) (*Product, error) {
	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		return nil, fmt.Errorf("invalid brand_id: %w", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.UnitPrice <= 0 {
		return nil, fmt.Errorf("unit_price must be > 0")
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity must be >= 0")
	}

	p := &Product{
		ID:          uuid.New(),
		BrandID:     brandID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Variants:    req.Variants,
		IsPack:      req.IsPack,
		WeightGrams: req.WeightGrams,
		IsActive:    true,
	}
	for i, url := range req.ImageURLs {
		p.Images = append(p.Images, &ProductImage{
			ID:        uuid.New(),
			ProductID: p.ID,
			URL:       url,
			Position:  i,
		})
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to persist product: %w", err)
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, brandID, category string, activeOnly bool) ([]*Product, error) {
	if _, err := uuid.Parse(brandID); err != nil {
		return nil, fmt.Errorf("invalid brand_id: %w", err)
	}
	return s.repo.ListByBrand(ctx, brandID, category, activeOnly)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req RegisterProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if strings.TrimSpace(req.Name) != "" {
		p.Name = strings.TrimSpace(req.Name)
	}
	if req.UnitPrice > 0 {
		p.UnitPrice = req.UnitPrice
	}
	p.Description = req.Description
	p.Category = req.Category
	p.ImageURL = req.ImageURL
	p.Sizes = req.Sizes
	p.Colors = req.Colors
	p.Variants = req.Variants
	p.IsPack = req.IsPack
	p.WeightGrams = req.WeightGrams
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) SetStock(ctx context.Context, id string, qty int) error {
	if qty < 0 {
		return fmt.Errorf("quantity must be >= 0")
	}
	return s.repo.SetStock(ctx, id, qty)
}

func (s *service) Inventory(ctx context.Context, brandID string) ([]*InventoryRow, error) {
	products, err := s.ListProducts(ctx, brandID, "", false)
	if err != nil {
		return nil, err
	}
	rows := make([]*InventoryRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &InventoryRow{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  p.Category,
			UnitPrice: p.UnitPrice,
			Quantity:  p.Quantity,
			IsActive:  p.IsActive,
			Variants:  p.Variants,
		})
	}
	return rows, nil
}
