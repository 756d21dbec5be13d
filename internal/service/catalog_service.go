package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"
	"github.com/nuttaponsrpn/Kiki-POS/internal/repository"
	"github.com/nuttaponsrpn/Kiki-POS/internal/state"

	"github.com/google/uuid"
)

// CatalogService defines the interface for product catalog management.
// Fetch failures land in the error field instead of being returned; every
// mutation is remote-call-first, local-state-second, with no optimistic
// update and no retries.
type CatalogService interface {
	Fetch(ctx context.Context)
	Create(ctx context.Context, name string, price float64, stock int, category, imageURL, barcode *string) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, updates domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Products() []domain.Product
	Error() string
	Subscribe(fn func([]domain.Product)) func()
}

type catalogService struct {
	productRepo repository.ProductRepository
	products    *state.Value[[]domain.Product]
	fetchErr    *state.Value[string]
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		products:    state.NewValue([]domain.Product{}),
		fetchErr:    state.NewValue(""),
	}
}

// Fetch loads all products ordered by name into the shared product list.
// A remote failure is recorded in the error field and the list is left as is.
func (s *catalogService) Fetch(ctx context.Context) {
	list, err := s.productRepo.List(ctx)
	if err != nil {
		s.fetchErr.Set(err.Error())
		return
	}

	products := make([]domain.Product, 0, len(list))
	for _, p := range list {
		products = append(products, *p)
	}

	s.fetchErr.Set("")
	s.products.Set(products)
}

// Create persists a new product and appends it to the local list
func (s *catalogService) Create(ctx context.Context, name string, price float64, stock int, category, imageURL, barcode *string) (*domain.Product, error) {
	product := &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		Stock:     stock,
		Category:  category,
		ImageURL:  imageURL,
		Barcode:   barcode,
		CreatedAt: time.Now(),
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	if created == nil {
		// store disabled
		return nil, nil
	}

	s.products.Update(func(products []domain.Product) []domain.Product {
		next := make([]domain.Product, len(products), len(products)+1)
		copy(next, products)
		return append(next, *created)
	})

	return created, nil
}

// Update persists a partial update and replaces the matching local entry
func (s *catalogService) Update(ctx context.Context, id uuid.UUID, updates domain.ProductUpdate) (*domain.Product, error) {
	updated, err := s.productRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	s.products.Update(func(products []domain.Product) []domain.Product {
		next := make([]domain.Product, len(products))
		copy(next, products)
		for i := range next {
			if next[i].ID == id {
				next[i] = *updated
				break
			}
		}
		return next
	})

	return updated, nil
}

// Delete removes the product remotely, then from the local list
func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.products.Update(func(products []domain.Product) []domain.Product {
		next := make([]domain.Product, 0, len(products))
		for _, p := range products {
			if p.ID != id {
				next = append(next, p)
			}
		}
		return next
	})

	return nil
}

// Find resolves a product by ID, checking the local list before falling back
// to the store. The fallback covers products created after the last fetch.
func (s *catalogService) Find(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	for _, p := range s.products.Get() {
		if p.ID == id {
			return &p, nil
		}
	}
	return s.productRepo.FindByID(ctx, id)
}

// Products returns the shared product list
func (s *catalogService) Products() []domain.Product {
	return s.products.Get()
}

// Error returns the last fetch error message, empty when the last fetch succeeded
func (s *catalogService) Error() string {
	return s.fetchErr.Get()
}

// Subscribe registers fn against the shared product list
func (s *catalogService) Subscribe(fn func([]domain.Product)) func() {
	return s.products.Subscribe(fn)
}
