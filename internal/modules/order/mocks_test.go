package order

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/asifjoardar/dokan-backend/internal/email"
)

// mockRepo is an in-memory Repository that records writes so tests can
// assert on exactly what was persisted.
type mockRepo struct {
	mu sync.Mutex

	brands    map[uuid.UUID]*BrandRef
	products  map[uuid.UUID]*ProductSnapshot
	customers map[string]uuid.UUID // phone → id
	emails    map[string]string    // phone → email
	orders    map[uuid.UUID]*Order
	stock     map[uuid.UUID]int

	createOrderErr    error
	decrementErr      error
	DecrementCalls    []uuid.UUID
	CreatedOrderCount int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		brands:    map[uuid.UUID]*BrandRef{},
		products:  map[uuid.UUID]*ProductSnapshot{},
		customers: map[string]uuid.UUID{},
		emails:    map[string]string{},
		orders:    map[uuid.UUID]*Order{},
		stock:     map[uuid.UUID]int{},
	}
}

func (m *mockRepo) addBrand(name, slug string) uuid.UUID {
	id := uuid.New()
	m.brands[id] = &BrandRef{ID: id, Name: name, Slug: slug}
	return id
}

func (m *mockRepo) addProduct(p ProductSnapshot, stock int) uuid.UUID {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.products[p.ID] = &p
	m.stock[p.ID] = stock
	return p.ID
}

func (m *mockRepo) CreateOrder(_ context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createOrderErr != nil {
		return m.createOrderErr
	}
	m.orders[o.ID] = o
	m.CreatedOrderCount++
	return nil
}

func (m *mockRepo) GetOrderByID(_ context.Context, id string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	if o, ok := m.orders[uid]; ok {
		return o, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRepo) ListByBrand(_ context.Context, brandID string, status string) ([]*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Order
	for _, o := range m.orders {
		if o.BrandID.String() != brandID {
			continue
		}
		if status != "" && string(o.Status) != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	if o, ok := m.orders[uid]; ok {
		o.Status = status
		return nil
	}
	return sql.ErrNoRows
}

func (m *mockRepo) CountPendingByPhone(_ context.Context, phone string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, o := range m.orders {
		if o.Phone == phone && o.Status == StatusPending {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) Stats(_ context.Context, brandID string) (*BrandStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &BrandStats{OrdersByStatus: map[Status]int{}}
	seen := map[uuid.UUID]bool{}
	for _, o := range m.orders {
		if o.BrandID.String() != brandID {
			continue
		}
		stats.TotalOrders++
		stats.OrdersByStatus[o.Status]++
		if o.Status != StatusCancelled {
			stats.Revenue += o.Total
			seen[o.CustomerID] = true
			for _, item := range o.Items {
				stats.UnitsSold += item.Quantity
			}
		}
	}
	stats.Customers = len(seen)
	return stats, nil
}

func (m *mockRepo) GetBrand(_ context.Context, id uuid.UUID) (*BrandRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.brands[id]; ok {
		return b, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRepo) GetProduct(_ context.Context, _, productID uuid.UUID) (*ProductSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[productID]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockRepo) GetOrCreateCustomer(_ context.Context, phone, name, email string) (uuid.UUID, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.customers[phone]
	if !ok {
		id = uuid.New()
		m.customers[phone] = id
	}
	if email != "" {
		m.emails[phone] = email
	}
	return id, m.emails[phone], nil
}

func (m *mockRepo) DecrementStock(_ context.Context, productID uuid.UUID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DecrementCalls = append(m.DecrementCalls, productID)
	if m.decrementErr != nil {
		return m.decrementErr
	}
	m.stock[productID] -= qty
	return nil
}

// mockMailer records confirmations and can be told to fail.
type mockMailer struct {
	mu    sync.Mutex
	sent  []email.Confirmation
	to    []string
	fail  error
}

func (m *mockMailer) SendOrderConfirmation(to string, c email.Confirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	m.sent = append(m.sent, c)
	return m.fail
}

func (m *mockMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
