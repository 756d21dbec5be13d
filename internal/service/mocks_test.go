package service

import (
	"context"
	"sort"
	"time"

	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"
	"github.com/nuttaponsrpn/Kiki-POS/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockProductRepository struct {
	disabled  bool
	products  map[uuid.UUID]*domain.Product
	listErr   error
	createErr error
	updateErr error
	deleteErr error
	stockErr  error
	setStock  map[uuid.UUID][]int // log of SetStock writes per product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
		setStock: make(map[uuid.UUID][]int),
	}
}

func (m *mockProductRepository) add(p domain.Product) {
	cp := p
	m.products[p.ID] = &cp
}

func (m *mockProductRepository) Enabled() bool {
	return !m.disabled
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	if m.disabled {
		return nil, nil
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	list := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if m.disabled {
		return nil, nil
	}
	if m.createErr != nil {
		return nil, m.createErr
	}
	cp := *product
	cp.CreatedAt = time.Now()
	m.products[cp.ID] = &cp
	return &cp, nil
}

func (m *mockProductRepository) Update(ctx context.Context, id uuid.UUID, updates domain.ProductUpdate) (*domain.Product, error) {
	if m.disabled {
		return nil, nil
	}
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if updates.Name != nil {
		p.Name = *updates.Name
	}
	if updates.Price != nil {
		p.Price = *updates.Price
	}
	if updates.Stock != nil {
		p.Stock = *updates.Stock
	}
	if updates.Category != nil {
		p.Category = updates.Category
	}
	if updates.ImageURL != nil {
		p.ImageURL = updates.ImageURL
	}
	if updates.Barcode != nil {
		p.Barcode = updates.Barcode
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.disabled {
		return nil
	}
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.disabled {
		return nil, nil
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepository) GetStock(ctx context.Context, id uuid.UUID) (int, error) {
	if m.disabled {
		return 0, nil
	}
	if m.stockErr != nil {
		return 0, m.stockErr
	}
	p, ok := m.products[id]
	if !ok {
		return 0, repository.ErrProductNotFound
	}
	return p.Stock, nil
}

func (m *mockProductRepository) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	if m.disabled {
		return nil
	}
	p, ok := m.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Stock = stock
	m.setStock[id] = append(m.setStock[id], stock)
	return nil
}

type mockOrderRepository struct {
	disabled  bool
	orders    []*domain.Order
	listErr   error
	createErr error
	deleteErr error
	deleted   []uuid.UUID
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{}
}

func (m *mockOrderRepository) Enabled() bool {
	return !m.disabled
}

func (m *mockOrderRepository) ListWithItems(ctx context.Context) ([]*domain.Order, error) {
	if m.disabled {
		return nil, nil
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	list := make([]*domain.Order, len(m.orders))
	copy(list, m.orders)
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (m *mockOrderRepository) ListWithItemsInRange(ctx context.Context, start time.Time, end *time.Time) ([]*domain.Order, error) {
	if m.disabled {
		return nil, nil
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	list := []*domain.Order{}
	for _, o := range m.orders {
		if o.CreatedAt.Before(start) {
			continue
		}
		if end != nil && o.CreatedAt.After(*end) {
			continue
		}
		list = append(list, o)
	}
	return list, nil
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if m.disabled {
		return nil
	}
	if m.createErr != nil {
		return m.createErr
	}
	order.CreatedAt = time.Now()
	cp := *order
	m.orders = append(m.orders, &cp)
	return nil
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.disabled {
		return nil
	}
	if m.deleteErr != nil {
		return m.deleteErr
	}
	next := m.orders[:0]
	for _, o := range m.orders {
		if o.ID != id {
			next = append(next, o)
		}
	}
	m.orders = next
	m.deleted = append(m.deleted, id)
	return nil
}
