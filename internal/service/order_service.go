package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"
	"github.com/nuttaponsrpn/Kiki-POS/internal/repository"
	"github.com/nuttaponsrpn/Kiki-POS/internal/state"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// OrderService manages order history. Deletion restores stock for each line
// item with a sequential read-then-write per product, then deletes the order
// row; a failed delete does not roll the restorations back. Fetch failures
// land in the error field instead of being returned.
type OrderService interface {
	FetchOrders(ctx context.Context)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	PlaceOrder(ctx context.Context, paymentMethod string) (*domain.Order, error)
	Orders() []domain.Order
	Error() string
	Subscribe(fn func([]domain.Order)) func()
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cart        CartService
	orders      *state.Value[[]domain.Order]
	fetchErr    *state.Value[string]
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cart CartService,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cart:        cart,
		orders:      state.NewValue([]domain.Order{}),
		fetchErr:    state.NewValue(""),
	}
}

// FetchOrders loads all orders with nested items, newest first
func (s *orderService) FetchOrders(ctx context.Context) {
	list, err := s.orderRepo.ListWithItems(ctx)
	if err != nil {
		s.fetchErr.Set(err.Error())
		return
	}

	orders := make([]domain.Order, 0, len(list))
	for _, o := range list {
		orders = append(orders, *o)
	}

	s.fetchErr.Set("")
	s.orders.Set(orders)
}

// DeleteOrder restores stock for every line item that still references a
// product, then deletes the order. The restoration writes are one product at
// a time with no transaction: if the delete fails the already-restored stock
// stays restored and the order stays in the visible list.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if !s.orderRepo.Enabled() {
		return nil
	}

	var order *domain.Order
	for _, o := range s.orders.Get() {
		if o.ID == id {
			order = &o
			break
		}
	}

	if order != nil {
		for _, item := range order.Items {
			if item.ProductID == nil {
				continue
			}

			stock, err := s.productRepo.GetStock(ctx, *item.ProductID)
			if err != nil {
				// product gone or unreadable; skip it like the lookup miss
				continue
			}

			// read-modify-write; concurrent deletions can lose updates
			_ = s.productRepo.SetStock(ctx, *item.ProductID, stock+item.Quantity)
		}
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.orders.Update(func(orders []domain.Order) []domain.Order {
		next := make([]domain.Order, 0, len(orders))
		for _, o := range orders {
			if o.ID != id {
				next = append(next, o)
			}
		}
		return next
	})

	return nil
}

// PlaceOrder turns the current cart into a persisted order: the order and
// its items are inserted with price-at-sale snapshots, each product's stock
// is decremented sequentially, and the cart is cleared. Same non-atomic
// style as deletion.
func (s *orderService) PlaceOrder(ctx context.Context, paymentMethod string) (*domain.Order, error) {
	if !s.orderRepo.Enabled() {
		return nil, nil
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &domain.Order{
		ID:            uuid.New(),
		TotalAmount:   s.cart.Total(),
		PaymentMethod: paymentMethod,
	}

	for _, item := range items {
		productID := item.Product.ID
		order.Items = append(order.Items, domain.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   &productID,
			Quantity:    item.Quantity,
			PriceAtSale: item.Product.Price,
			ProductName: &item.Product.Name,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	for _, item := range items {
		stock, err := s.productRepo.GetStock(ctx, item.Product.ID)
		if err != nil {
			continue
		}
		_ = s.productRepo.SetStock(ctx, item.Product.ID, stock-item.Quantity)
	}

	s.cart.ClearCart()

	s.orders.Update(func(orders []domain.Order) []domain.Order {
		return append([]domain.Order{*order}, orders...)
	})

	return order, nil
}

// Orders returns the shared order list
func (s *orderService) Orders() []domain.Order {
	return s.orders.Get()
}

// Error returns the last fetch error message, empty when the last fetch succeeded
func (s *orderService) Error() string {
	return s.fetchErr.Get()
}

// Subscribe registers fn against the shared order list
func (s *orderService) Subscribe(fn func([]domain.Order)) func() {
	return s.orders.Subscribe(fn)
}
