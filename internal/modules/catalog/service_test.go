package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	products map[string]*Product
}

func newMockRepo() *mockRepo { return &mockRepo{products: map[string]*Product{}} }

func (m *mockRepo) Create(_ context.Context, p *Product) error {
	m.products[p.ID.String()] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRepo) ListByBrand(_ context.Context, brandID string, category string, activeOnly bool) ([]*Product, error) {
	var out []*Product
	for _, p := range m.products {
		if p.BrandID.String() != brandID {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, p *Product) error {
	m.products[p.ID.String()] = p
	return nil
}

func (m *mockRepo) SetStock(_ context.Context, id string, qty int) error {
	if p, ok := m.products[id]; ok {
		p.Quantity = qty
		return nil
	}
	return sql.ErrNoRows
}

func (m *mockRepo) DecrementStock(_ context.Context, id string, qty int) error {
	if p, ok := m.products[id]; ok {
		p.Quantity -= qty
		return nil
	}
	return sql.ErrNoRows
}

func TestService_RegisterProduct(t *testing.T) {
	s := NewService(newMockRepo())
	brandID := uuid.New()

	p, err := s.RegisterProduct(context.Background(), RegisterProductRequest{
		BrandID:   brandID.String(),
		Name:      "Panjabi — Navy",
		UnitPrice: 1250,
		Quantity:  40,
		Sizes:     []string{"M", "L", "XL"},
		ImageURLs: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	})

	require.NoError(t, err)
	assert.Equal(t, brandID, p.BrandID)
	assert.True(t, p.IsActive)
	require.Len(t, p.Images, 2)
	assert.Equal(t, 0, p.Images[0].Position)
	assert.Equal(t, 1, p.Images[1].Position)
}

func TestService_RegisterProduct_Validation(t *testing.T) {
	s := NewService(newMockRepo())
	ctx := context.Background()
	brandID := uuid.New().String()

	_, err := s.RegisterProduct(ctx, RegisterProductRequest{BrandID: "nope", Name: "X", UnitPrice: 10})
	assert.ErrorContains(t, err, "invalid brand_id")

	_, err = s.RegisterProduct(ctx, RegisterProductRequest{BrandID: brandID, UnitPrice: 10})
	assert.ErrorContains(t, err, "name is required")

	_, err = s.RegisterProduct(ctx, RegisterProductRequest{BrandID: brandID, Name: "X"})
	assert.ErrorContains(t, err, "unit_price")

	_, err = s.RegisterProduct(ctx, RegisterProductRequest{BrandID: brandID, Name: "X", UnitPrice: 10, Quantity: -1})
	assert.ErrorContains(t, err, "quantity")
}

func TestService_Inventory(t *testing.T) {
	repo := newMockRepo()
	s := NewService(repo)
	ctx := context.Background()
	brandID := uuid.New()

	_, err := s.RegisterProduct(ctx, RegisterProductRequest{
		BrandID: brandID.String(), Name: "A", UnitPrice: 100, Quantity: 7,
	})
	require.NoError(t, err)
	_, err = s.RegisterProduct(ctx, RegisterProductRequest{
		BrandID: brandID.String(), Name: "B", UnitPrice: 200, Quantity: 0,
	})
	require.NoError(t, err)

	rows, err := s.Inventory(ctx, brandID.String())
	require.NoError(t, err)
	assert.Len(t, rows, 2, "inventory view includes out-of-stock products")
}

func TestService_SetStock_RejectsNegative(t *testing.T) {
	s := NewService(newMockRepo())

	err := s.SetStock(context.Background(), uuid.New().String(), -5)
	assert.ErrorContains(t, err, "quantity must be >= 0")
}
