package usecase

import (
	"context"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
)

// CategoryRepository — CRUD категорий. Delete не проверяет использование категории продуктами.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id int64, name string) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository — CRUD продуктов. Возвращаемые продукты содержат снимок категории.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int64, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReleaseStuck(ctx context.Context) (int64, error)
}

// CacheRepository кэширует список категорий. GetCategories возвращает e.ErrCacheMiss при промахе.
type CacheRepository interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	SetCategories(ctx context.Context, categories []domain.Category) error
	DeleteCategories(ctx context.Context) error
}

// ImageRepository работает с объектным хранилищем изображений.
type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
	URLFor(key string) string
}

// TxManager выполняет fn в одной транзакции базы данных.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
