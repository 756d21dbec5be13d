package service

import (
	"context"
	"sort"
	"time"

	"github.com/nuttaponsrpn/Kiki-POS/internal/repository"
	"github.com/nuttaponsrpn/Kiki-POS/internal/state"
)

// unknownProduct is the bucket for line items whose product was deleted
const unknownProduct = "Unknown"

// ProductSales is one row of the top-products ranking
type ProductSales struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	TotalIncome float64 `json:"totalIncome"`
}

// Stats holds the aggregated sales numbers. Month carries the total of
// whatever period was queried, not necessarily a calendar month; the field
// name is kept for compatibility with the dashboard payload.
type Stats struct {
	Today       float64        `json:"today"`
	Week        float64        `json:"week"`
	Month       float64        `json:"month"`
	TopProducts []ProductSales `json:"topProducts"`
}

// AnalyticsService aggregates orders in a date range into dashboard stats
type AnalyticsService interface {
	FetchStats(ctx context.Context, startDate, endDate *time.Time)
	Stats() Stats
	Error() string
}

type analyticsService struct {
	orderRepo repository.OrderRepository
	stats     *state.Value[Stats]
	fetchErr  *state.Value[string]
	now       func() time.Time
}

// NewAnalyticsService creates a new instance of AnalyticsService
func NewAnalyticsService(orderRepo repository.OrderRepository) AnalyticsService {
	return &analyticsService{
		orderRepo: orderRepo,
		stats:     state.NewValue(Stats{TopProducts: []ProductSales{}}),
		fetchErr:  state.NewValue(""),
		now:       time.Now,
	}
}

// FetchStats queries orders in [startDate, end of endDate] when both bounds
// are given, otherwise from the first day of the current month to now, and
// aggregates them in a single pass. Failures land in the error field.
func (s *analyticsService) FetchStats(ctx context.Context, startDate, endDate *time.Time) {
	now := s.now()

	var (
		start time.Time
		end   *time.Time
	)
	if startDate != nil && endDate != nil {
		start = *startDate
		// extend the end bound to cover the full day
		eod := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, 999000000, endDate.Location())
		end = &eod
	} else {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	orders, err := s.orderRepo.ListWithItemsInRange(ctx, start, end)
	if err != nil {
		s.fetchErr.Set(err.Error())
		return
	}

	var todayTotal, weekTotal, periodTotal float64
	oneWeekAgo := now.Add(-7 * 24 * time.Hour)
	todayY, todayM, todayD := now.Date()

	type bucket struct {
		quantity    int
		totalIncome float64
	}
	sales := map[string]*bucket{}
	firstSeen := []string{}

	for _, order := range orders {
		amount := order.TotalAmount

		periodTotal += amount

		if !order.CreatedAt.Before(oneWeekAgo) {
			weekTotal += amount
		}

		y, m, d := order.CreatedAt.Date()
		if y == todayY && m == todayM && d == todayD {
			todayTotal += amount
		}

		for _, item := range order.Items {
			name := unknownProduct
			if item.ProductName != nil {
				name = *item.ProductName
			}

			b, ok := sales[name]
			if !ok {
				b = &bucket{}
				sales[name] = b
				firstSeen = append(firstSeen, name)
			}
			b.quantity += item.Quantity
			b.totalIncome += float64(item.Quantity) * item.PriceAtSale
		}
	}

	topProducts := make([]ProductSales, 0, len(firstSeen))
	for _, name := range firstSeen {
		topProducts = append(topProducts, ProductSales{
			Name:        name,
			Quantity:    sales[name].quantity,
			TotalIncome: sales[name].totalIncome,
		})
	}

	// ties keep first-seen order
	sort.SliceStable(topProducts, func(i, j int) bool {
		return topProducts[i].Quantity > topProducts[j].Quantity
	})

	s.fetchErr.Set("")
	s.stats.Set(Stats{
		Today:       todayTotal,
		Week:        weekTotal,
		Month:       periodTotal,
		TopProducts: topProducts,
	})
}

// Stats returns the last aggregated result
func (s *analyticsService) Stats() Stats {
	return s.stats.Get()
}

// Error returns the last fetch error message, empty when the last fetch succeeded
func (s *analyticsService) Error() string {
	return s.fetchErr.Get()
}
