package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"
	"github.com/nuttaponsrpn/Kiki-POS/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFetch_SortedByName(t *testing.T) {
	repo := newMockProductRepository()
	repo.add(domain.Product{ID: uuid.New(), Name: "Brownie", Price: 45, Stock: 5})
	repo.add(domain.Product{ID: uuid.New(), Name: "Americano", Price: 60, Stock: 10})

	svc := NewCatalogService(repo)
	svc.Fetch(context.Background())

	products := svc.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "Americano", products[0].Name)
	assert.Equal(t, "Brownie", products[1].Name)
	assert.Empty(t, svc.Error())
}

func TestCatalogFetch_FailureKeepsPreviousList(t *testing.T) {
	repo := newMockProductRepository()
	repo.add(domain.Product{ID: uuid.New(), Name: "Latte", Price: 70, Stock: 3})

	svc := NewCatalogService(repo)
	svc.Fetch(context.Background())
	require.Len(t, svc.Products(), 1)

	repo.listErr = errors.New("store unreachable")
	svc.Fetch(context.Background())

	assert.Equal(t, "store unreachable", svc.Error())
	assert.Len(t, svc.Products(), 1)

	// a later successful fetch clears the error
	repo.listErr = nil
	svc.Fetch(context.Background())
	assert.Empty(t, svc.Error())
}

func TestCatalogCreate_AppendsToLocalList(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewCatalogService(repo)

	category := "coffee"
	created, err := svc.Create(context.Background(), "Americano", 60, 10, &category, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "Americano", created.Name)
	require.NotNil(t, created.Category)
	assert.Equal(t, "coffee", *created.Category)
	assert.False(t, created.CreatedAt.IsZero())

	require.Len(t, svc.Products(), 1)
	assert.Equal(t, created.ID, svc.Products()[0].ID)
}

func TestCatalogCreate_NilWhenStoreDisabled(t *testing.T) {
	repo := newMockProductRepository()
	repo.disabled = true
	svc := NewCatalogService(repo)

	created, err := svc.Create(context.Background(), "Americano", 60, 10, nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, created)
	assert.Empty(t, svc.Products())
}

func TestCatalogUpdate_ReplacesLocalEntry(t *testing.T) {
	repo := newMockProductRepository()
	product := domain.Product{ID: uuid.New(), Name: "Latte", Price: 70, Stock: 3}
	repo.add(product)

	svc := NewCatalogService(repo)
	svc.Fetch(context.Background())

	newPrice := 75.0
	updated, err := svc.Update(context.Background(), product.ID, domain.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	require.NotNil(t, updated)

	// untouched fields keep their values
	assert.Equal(t, "Latte", updated.Name)
	assert.InDelta(t, 75, updated.Price, 1e-9)
	assert.InDelta(t, 75, svc.Products()[0].Price, 1e-9)
}

func TestCatalogUpdate_UnknownProduct(t *testing.T) {
	svc := NewCatalogService(newMockProductRepository())

	name := "Ghost"
	_, err := svc.Update(context.Background(), uuid.New(), domain.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestCatalogDelete_RemoteFirstThenLocal(t *testing.T) {
	repo := newMockProductRepository()
	product := domain.Product{ID: uuid.New(), Name: "Mocha", Price: 75, Stock: 1}
	repo.add(product)

	svc := NewCatalogService(repo)
	svc.Fetch(context.Background())

	require.NoError(t, svc.Delete(context.Background(), product.ID))
	assert.Empty(t, svc.Products())
}

func TestCatalogDelete_FailureLeavesLocalList(t *testing.T) {
	repo := newMockProductRepository()
	product := domain.Product{ID: uuid.New(), Name: "Mocha", Price: 75, Stock: 1}
	repo.add(product)

	svc := NewCatalogService(repo)
	svc.Fetch(context.Background())

	repo.deleteErr = errors.New("connection reset")
	err := svc.Delete(context.Background(), product.ID)
	require.Error(t, err)
	assert.Len(t, svc.Products(), 1)
}

func TestCatalogFind_LocalListThenStore(t *testing.T) {
	repo := newMockProductRepository()
	fetched := domain.Product{ID: uuid.New(), Name: "Latte", Price: 70, Stock: 3}
	repo.add(fetched)

	svc := NewCatalogService(repo)
	svc.Fetch(context.Background())

	// created after the fetch, so only the store knows it
	late := domain.Product{ID: uuid.New(), Name: "Cortado", Price: 65, Stock: 4}
	repo.add(late)

	found, err := svc.Find(context.Background(), fetched.ID)
	require.NoError(t, err)
	assert.Equal(t, fetched.ID, found.ID)

	found, err = svc.Find(context.Background(), late.ID)
	require.NoError(t, err)
	assert.Equal(t, late.ID, found.ID)

	_, err = svc.Find(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestCatalogProducts_SnapshotIsImmutableAcrossMutations(t *testing.T) {
	repo := newMockProductRepository()
	product := domain.Product{ID: uuid.New(), Name: "Latte", Price: 70, Stock: 3}
	repo.add(product)

	svc := NewCatalogService(repo)
	svc.Fetch(context.Background())

	snapshot := svc.Products()
	require.Len(t, snapshot, 1)

	newPrice := 99.0
	_, err := svc.Update(context.Background(), product.ID, domain.ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), product.ID))

	// mutations never write through an already-returned slice
	assert.InDelta(t, 70, snapshot[0].Price, 1e-9)
}

func TestCatalogSubscribe_NotifiedOnMutation(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewCatalogService(repo)

	var seen [][]domain.Product
	cancel := svc.Subscribe(func(products []domain.Product) {
		seen = append(seen, products)
	})
	defer cancel()

	_, err := svc.Create(context.Background(), "Americano", 60, 10, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Len(t, seen[0], 1)

	cancel()
	_, err = svc.Create(context.Background(), "Brownie", 45, 5, nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}
