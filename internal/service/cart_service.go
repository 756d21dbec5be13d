package service

import (
	"github.com/nuttaponsrpn/Kiki-POS/internal/alert"
	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"
	"github.com/nuttaponsrpn/Kiki-POS/internal/state"

	"github.com/google/uuid"
)

// CartService manages the process-wide cart. Quantities are capped at the
// product's recorded stock; a ceiling hit raises an alert through the
// notifier and leaves the cart untouched. The cart lives only in memory.
type CartService interface {
	AddToCart(product domain.Product)
	UpdateQuantity(productID uuid.UUID, delta int)
	RemoveFromCart(productID uuid.UUID)
	ClearCart()
	Items() []domain.CartItem
	Total() float64
	Subscribe(fn func([]domain.CartItem)) func()
}

type cartService struct {
	items    *state.Value[[]domain.CartItem]
	notifier *alert.Notifier
}

// NewCartService creates a new instance of CartService
func NewCartService(notifier *alert.Notifier) CartService {
	return &cartService{
		items:    state.NewValue([]domain.CartItem{}),
		notifier: notifier,
	}
}

// AddToCart adds one unit of the product, respecting the stock ceiling
func (s *cartService) AddToCart(product domain.Product) {
	ceilingHit := false

	s.items.Update(func(items []domain.CartItem) []domain.CartItem {
		for i := range items {
			if items[i].Product.ID == product.ID {
				if items[i].Quantity >= items[i].Product.Stock {
					ceilingHit = true
					return items
				}
				next := make([]domain.CartItem, len(items))
				copy(next, items)
				next[i].Quantity++
				return next
			}
		}

		if product.Stock <= 0 {
			ceilingHit = true
			return items
		}
		next := make([]domain.CartItem, len(items), len(items)+1)
		copy(next, items)
		return append(next, domain.CartItem{Product: product, Quantity: 1})
	})

	if ceilingHit {
		s.notifyOutOfStock(product.Name)
	}
}

// UpdateQuantity adjusts the quantity of a cart entry by delta. A result
// above the stock ceiling aborts with an alert; zero or below removes the
// entry.
func (s *cartService) UpdateQuantity(productID uuid.UUID, delta int) {
	ceilingHit := false
	name := ""

	s.items.Update(func(items []domain.CartItem) []domain.CartItem {
		for i := range items {
			if items[i].Product.ID != productID {
				continue
			}

			quantity := items[i].Quantity + delta
			if quantity > items[i].Product.Stock {
				ceilingHit = true
				name = items[i].Product.Name
				return items
			}
			if quantity <= 0 {
				next := make([]domain.CartItem, 0, len(items)-1)
				next = append(next, items[:i]...)
				return append(next, items[i+1:]...)
			}
			next := make([]domain.CartItem, len(items))
			copy(next, items)
			next[i].Quantity = quantity
			return next
		}
		return items
	})

	if ceilingHit {
		s.notifyOutOfStock(name)
	}
}

// RemoveFromCart removes the entry unconditionally
func (s *cartService) RemoveFromCart(productID uuid.UUID) {
	s.items.Update(func(items []domain.CartItem) []domain.CartItem {
		next := make([]domain.CartItem, 0, len(items))
		for _, item := range items {
			if item.Product.ID != productID {
				next = append(next, item)
			}
		}
		return next
	})
}

// ClearCart empties the cart
func (s *cartService) ClearCart() {
	s.items.Set([]domain.CartItem{})
}

// Items returns the current cart entries
func (s *cartService) Items() []domain.CartItem {
	return s.items.Get()
}

// Total is derived on every read, never cached
func (s *cartService) Total() float64 {
	var total float64
	for _, item := range s.items.Get() {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Subscribe registers fn against the cart state
func (s *cartService) Subscribe(fn func([]domain.CartItem)) func() {
	return s.items.Subscribe(fn)
}

func (s *cartService) notifyOutOfStock(productName string) {
	s.notifier.Show("Out of stock", "No more stock available for "+productName, alert.SeverityWarning)
}
