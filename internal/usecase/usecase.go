package usecase

import (
	"context"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/internal/validation"
)

type CategoryUC interface {
	List(ctx context.Context) ([]domain.Category, error)
	Save(ctx context.Context, existingID *int64, name string) (*domain.Category, error)
	Delete(ctx context.Context, id int64, allProducts []domain.Product) error
}

type ProductUC interface {
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Save(ctx context.Context, existingID *int64, input validation.ProductInput, categories []domain.Category) (*domain.Product, error)
	Delete(ctx context.Context, product *domain.Product) error
}

type ImageUC interface {
	AddProductImages(ctx context.Context, files []ProductImage, currentImages []string) (*AddImagesRes, error)
	RemoveProductImage(ctx context.Context, url string, currentImages []string) ([]string, error)
}

type DashboardUC interface {
	Load(ctx context.Context) (*Dashboard, error)
}
