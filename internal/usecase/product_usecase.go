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

// ProductUseCase реализует бизнес-логику управления продуктами и их изображениями.
type ProductUseCase struct {
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	imagesInfra ImagesInfra
	trManager   TxManager
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	imagesInfra ImagesInfra,
	trManager TxManager,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		imagesInfra: imagesInfra,
		trManager:   trManager,
		logger:      logger,
	}
}

// List возвращает продукты по фильтру вместе со снимком категории.
func (p *ProductUseCase) List(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	const op = "ProductUseCase.List"

	products, err := p.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, e.ErrTransientService, err)
	}

	return products, nil
}

// Get возвращает продукт по идентификатору.
func (p *ProductUseCase) Get(ctx context.Context, id int64) (*domain.Product, error) {
	const op = "ProductUseCase.Get"

	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, e.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w: %v", op, e.ErrTransientService, err)
	}

	return product, nil
}

// Save проверяет форму и создаёт продукт (existingID == nil) или обновляет существующий.
// Список изображений формы сохраняется как есть.
func (p *ProductUseCase) Save(
	ctx context.Context,
	existingID *int64,
	input validation.ProductInput,
	categories []domain.Category,
) (*domain.Product, error) {
	const op = "ProductUseCase.Save"

	res := validation.Product(input, categories)
	if !res.Valid {
		return nil, e.Wrap(op, e.NewValidationError(res.Errors.Map()))
	}

	var saved *domain.Product
	err := p.trManager.Do(ctx, func(ctx context.Context) error {
		var (
			err       error
			eventType = domain.ProductCreated
		)

		if existingID == nil {
			saved, err = p.productRepo.Create(ctx, res.Normalized)
		} else {
			eventType = domain.ProductUpdated
			saved, err = p.productRepo.Update(ctx, *existingID, res.Normalized)
		}
		if err != nil {
			return err
		}

		return enqueueEvent(ctx, p.outboxRepo, eventType, saved.ID, productPayload(saved))
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, e.ErrNotFound)
		}

		p.logger.Errorf(err, "%s: failed to save product %q", op, res.Normalized.Name)
		return nil, fmt.Errorf("%s: %w: %v", op, e.ErrSaveFailed, err)
	}

	return saved, nil
}

// Delete удаляет продукт в две фазы: сначала все изображения из хранилища, затем строку в БД.
// Отсутствующее в хранилище изображение считается уже удалённым.
// Если хотя бы одно изображение удалить не удалось, строка остаётся, и операцию можно повторить.
func (p *ProductUseCase) Delete(ctx context.Context, product *domain.Product) error {
	const op = "ProductUseCase.Delete"

	if product == nil {
		return e.Wrap(op, e.ErrNotFound)
	}

	var (
		failedURLs []string
		errs       []error
		deleted    int
	)
	for _, url := range product.Images {
		key := domain.ObjectKeyFromURL(url)
		if err := p.imagesInfra.DeleteImage(ctx, key); err != nil {
			if errors.Is(err, e.ErrNotFound) {
				p.logger.Debugf("%s: image %s already absent", op, key)
				continue
			}

			failedURLs = append(failedURLs, url)
			errs = append(errs, err)
			continue
		}
		deleted++
	}

	if len(failedURLs) > 0 {
		p.logger.Warnf("%s: product %d kept, %d of %d images were not deleted", op, product.ID, len(failedURLs), len(product.Images))
		return e.Wrap(op, &e.ImageCleanupError{FailedURLs: failedURLs, Errs: errs})
	}

	err := p.trManager.Do(ctx, func(ctx context.Context) error {
		if err := p.productRepo.Delete(ctx, product.ID); err != nil {
			return err
		}

		return enqueueEvent(ctx, p.outboxRepo, domain.ProductDeleted, product.ID, productPayload(product))
	})
	if err != nil {
		switch {
		case errors.Is(err, e.ErrNotFound):
			return e.Wrap(op, e.ErrNotFound)
		case deleted > 0:
			p.logger.Errorf(err, "%s: product %d lost %d images but its row was not deleted", op, product.ID, deleted)
			return fmt.Errorf("%s: %w: %v", op, e.ErrPartiallyDeleted, err)
		default:
			p.logger.Errorf(err, "%s: failed to delete product %d", op, product.ID)
			return fmt.Errorf("%s: %w: %v", op, e.ErrDeleteFailed, err)
		}
	}

	return nil
}
