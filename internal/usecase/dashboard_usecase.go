package usecase

import (
	"context"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type categoryLister interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type productLister interface {
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}

// DashboardUseCase собирает данные админ-панели.
type DashboardUseCase struct {
	categories categoryLister
	products   productLister
}

func NewDashboardUC(categories categoryLister, products productLister) *DashboardUseCase {
	return &DashboardUseCase{
		categories: categories,
		products:   products,
	}
}

// Load загружает категории и все продукты параллельно. Ошибка любой из загрузок отменяет вторую.
func (d *DashboardUseCase) Load(ctx context.Context) (*Dashboard, error) {
	const op = "DashboardUseCase.Load"

	var (
		categories []domain.Category
		products   []domain.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = d.categories.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = d.products.List(gctx, DefaultProductFilter())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, e.Wrap(op, err)
	}

	counts := make(map[int64]int, len(categories))
	for _, c := range categories {
		counts[c.ID] = domain.CountByCategory(products, c.ID)
	}

	return &Dashboard{
		Categories:    categories,
		Products:      products,
		ProductCounts: counts,
		Stats:         computeStats(categories, products),
	}, nil
}

func computeStats(categories []domain.Category, products []domain.Product) DashboardStats {
	stats := DashboardStats{
		TotalProducts:   len(products),
		TotalCategories: len(categories),
		AveragePrice:    decimal.Zero,
	}
	if len(products) == 0 {
		return stats
	}

	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(p.Price)
		if p.HasImages() {
			stats.ProductsWithImages++
		}
	}
	stats.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(products)))).Round(2)

	return stats
}
