package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/internal/validation"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
)

// CategoryUseCase реализует правила сохранения и удаления категорий.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	productRepo  ProductRepository
	outboxRepo   OutboxRepository
	cacheRepo    CacheRepository
	trManager    TxManager
	logger       logger.Logger
}

func NewCategoryUC(
	categoryRepo CategoryRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	cacheRepo CacheRepository,
	trManager TxManager,
	logger logger.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		outboxRepo:   outboxRepo,
		cacheRepo:    cacheRepo,
		trManager:    trManager,
		logger:       logger,
	}
}

// List возвращает категории по имени. Сначала смотрит в кэш, при промахе идёт в БД и кладёт результат в кэш.
func (c *CategoryUseCase) List(ctx context.Context) ([]domain.Category, error) {
	const op = "CategoryUseCase.List"

	cached, err := c.cacheRepo.GetCategories(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, e.ErrCacheMiss) {
		c.logger.Warnf("categories cache read failed: %v", e.Wrap(op, err))
	}

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, e.ErrTransientService, err)
	}

	if err := c.cacheRepo.SetCategories(ctx, categories); err != nil {
		c.logger.Warnf("failed to cache categories: %v", e.Wrap(op, err))
	}

	return categories, nil
}

// Save создаёт категорию (existingID == nil) или переименовывает существующую.
func (c *CategoryUseCase) Save(ctx context.Context, existingID *int64, name string) (*domain.Category, error) {
	const op = "CategoryUseCase.Save"

	res := validation.CategoryName(name)
	if !res.Valid {
		return nil, e.Wrap(op, e.NewValidationError(map[string]string{validation.FieldName: res.Error}))
	}

	var saved *domain.Category
	err := c.trManager.Do(ctx, func(ctx context.Context) error {
		var (
			err       error
			eventType = domain.CategoryCreated
		)

		if existingID == nil {
			saved, err = c.categoryRepo.Create(ctx, res.Trimmed)
		} else {
			eventType = domain.CategoryUpdated
			saved, err = c.categoryRepo.Update(ctx, *existingID, res.Trimmed)
		}
		if err != nil {
			return err
		}

		return enqueueEvent(ctx, c.outboxRepo, eventType, saved.ID, categoryPayload(saved))
	})
	if err != nil {
		switch {
		case errors.Is(err, e.ErrDuplicateName):
			return nil, e.Wrap(op, e.ErrDuplicateName)
		case errors.Is(err, e.ErrNotFound):
			return nil, e.Wrap(op, e.ErrNotFound)
		default:
			c.logger.Errorf(err, "%s: failed to save category %q", op, res.Trimmed)
			return nil, fmt.Errorf("%s: %w: %v", op, e.ErrSaveFailed, err)
		}
	}

	c.invalidateCache(ctx)
	return saved, nil
}

// Delete удаляет категорию, если на неё не ссылается ни один продукт.
// allProducts — последний загруженный клиентом список продуктов; проверка повторяется в БД внутри транзакции.
func (c *CategoryUseCase) Delete(ctx context.Context, id int64, allProducts []domain.Product) error {
	const op = "CategoryUseCase.Delete"

	if count := domain.CountByCategory(allProducts, id); count > 0 {
		return e.Wrap(op, e.NewCategoryInUseError(count))
	}

	err := c.trManager.Do(ctx, func(ctx context.Context) error {
		count, err := c.productRepo.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return e.NewCategoryInUseError(count)
		}

		if err := c.categoryRepo.Delete(ctx, id); err != nil {
			return err
		}

		return enqueueEvent(ctx, c.outboxRepo, domain.CategoryDeleted, id, map[string]any{"id": id})
	})
	if err != nil {
		var inUse *e.CategoryInUseError
		switch {
		case errors.As(err, &inUse):
			return e.Wrap(op, inUse)
		case errors.Is(err, e.ErrCategoryInUse):
			// FK сработал между проверкой и удалением
			return e.Wrap(op, e.NewCategoryInUseError(0))
		case errors.Is(err, e.ErrNotFound):
			return e.Wrap(op, e.ErrNotFound)
		default:
			c.logger.Errorf(err, "%s: failed to delete category %d", op, id)
			return fmt.Errorf("%s: %w: %v", op, e.ErrDeleteFailed, err)
		}
	}

	c.invalidateCache(ctx)
	return nil
}

func (c *CategoryUseCase) invalidateCache(ctx context.Context) {
	if err := c.cacheRepo.DeleteCategories(ctx); err != nil {
		c.logger.Warnf("failed to invalidate categories cache: %v", err)
	}
}

// enqueueEvent сохраняет событие в outbox в текущей транзакции.
func enqueueEvent(ctx context.Context, repo OutboxRepository, eventType domain.EventType, id int64, data map[string]any) error {
	event, err := NewOutboxEvent(eventType, id, data)
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, event)
	return err
}
