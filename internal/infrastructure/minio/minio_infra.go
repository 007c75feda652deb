package minio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/hardware-catalog/internal/cfg"
	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/internal/infrastructure"
	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/DRSN-tech/hardware-catalog/pkg/jitter"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
)

const (
	deleteBackoffBase = 200 * time.Millisecond
	deleteBackoffMax  = 2 * time.Second
)

// MinioInfrastructure управляет загрузкой и удалением изображений в MinIO.
type MinioInfrastructure struct {
	minioRepo         usecase.ImageRepository
	logger            logger.Logger
	uploadConcurrency int
	deleteRetries     int
	backoffBase       time.Duration
	now               func() time.Time
}

func NewMinioInfrastructure(minioRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger) *MinioInfrastructure {
	concurrency := cfg.UploadConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	retries := cfg.DeleteRetries
	if retries <= 0 {
		retries = 1
	}

	return &MinioInfrastructure{
		minioRepo:         minioRepo,
		logger:            logger,
		uploadConcurrency: concurrency,
		deleteRetries:     retries,
		backoffBase:       deleteBackoffBase,
		now:               time.Now,
	}
}

// UploadImages загружает изображения параллельно с ограничением одновременных операций.
// Ошибка одного файла не отменяет остальные, результаты возвращаются в порядке запроса.
func (m *MinioInfrastructure) UploadImages(ctx context.Context, req *usecase.UploadImagesReq) *usecase.UploadImagesRes {
	const op = "MinioInfrastructure.UploadImages"

	results := make([]usecase.UploadImageResult, len(req.Images))
	sem := make(chan struct{}, m.uploadConcurrency)

	var wg sync.WaitGroup
	for idx, image := range req.Images {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx] = m.uploadOne(ctx, image)
		}()
	}
	wg.Wait()

	uploaded := 0
	for _, r := range results {
		if r.Err == nil {
			uploaded++
		}
	}
	m.logger.Debugf("%s: uploaded %d of %d images", op, uploaded, len(req.Images))

	return usecase.NewUploadImagesRes(results)
}

func (m *MinioInfrastructure) uploadOne(ctx context.Context, image usecase.ProductImage) usecase.UploadImageResult {
	res := usecase.UploadImageResult{FileName: image.Name}

	ext, err := infrastructure.GetExtensionFromMIME(image.MimeType)
	if err != nil {
		res.Err = fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, err)
		return res
	}

	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("upload %s: %w: %v", image.Name, e.ErrUpload, err)
		return res
	}

	key := infrastructure.NewObjectKey(m.now(), ext)
	url, err := m.minioRepo.Upload(ctx, domain.NewImage(key, image.Data, image.Size, image.MimeType))
	if err != nil {
		if !errors.Is(err, e.ErrUpload) {
			err = fmt.Errorf("%w: %v", e.ErrUpload, err)
		}
		res.Err = fmt.Errorf("upload %s failed: %w", image.Name, err)
		return res
	}

	res.URL = url
	return res
}

// DeleteImage удаляет объект с экспоненциальной задержкой и jitter между попытками.
// e.ErrNotFound возвращается сразу, без повторов.
func (m *MinioInfrastructure) DeleteImage(ctx context.Context, key string) error {
	const op = "MinioInfrastructure.DeleteImage"

	var lastErr error
	for attempt := 0; attempt < m.deleteRetries; attempt++ {
		err := m.minioRepo.Delete(ctx, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, e.ErrNotFound) {
			return e.Wrap(op, err)
		}
		lastErr = err

		if attempt == m.deleteRetries-1 {
			break
		}

		m.logger.Warnf("%s: attempt %d for %s failed: %v", op, attempt+1, key, err)
		select {
		case <-time.After(jitter.ExponentialBackoff(m.backoffBase, deleteBackoffMax, attempt, jitter.DefaultJitter)):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w: %v", op, e.ErrStorage, ctx.Err())
		}
	}

	if !errors.Is(lastErr, e.ErrStorage) {
		lastErr = fmt.Errorf("%w: %v", e.ErrStorage, lastErr)
	}

	return fmt.Errorf("%s: %s after %d attempts: %w", op, key, m.deleteRetries, lastErr)
}
