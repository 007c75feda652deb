package minio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/DRSN-tech/hardware-catalog/internal/cfg"
	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

const noSuchKey = "NoSuchKey"

// ImageRepo реализует репозиторий изображений поверх MinIO.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает изображение в MinIO и возвращает его публичный URL.
func (i *ImageRepo) Upload(ctx context.Context, image *domain.Image) (string, error) {
	reader := bytes.NewReader(image.Bytes)

	info, err := i.mc.PutObject(ctx, i.cfg.BucketName, image.ObjectKey, reader, image.Size, minio.PutObjectOptions{
		ContentType: image.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", whereami.WhereAmI(), e.ErrUpload, err)
	}

	return i.URLFor(info.Key), nil
}

// Delete удаляет объект по ключу. Отсутствующий объект возвращает e.ErrNotFound.
// RemoveObject не сообщает об отсутствии ключа, поэтому сначала делается StatObject.
func (i *ImageRepo) Delete(ctx context.Context, key string) error {
	if _, err := i.mc.StatObject(ctx, i.cfg.BucketName, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == noSuchKey {
			return fmt.Errorf("%s: object %s: %w", whereami.WhereAmI(), key, e.ErrNotFound)
		}
		return fmt.Errorf("%s: %w: %v", whereami.WhereAmI(), e.ErrStorage, err)
	}

	if err := i.mc.RemoveObject(ctx, i.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w: %v", whereami.WhereAmI(), e.ErrStorage, err)
	}

	return nil
}

// URLFor возвращает публичный адрес объекта: <PublicURL>/<bucket>/<key>.
func (i *ImageRepo) URLFor(key string) string {
	return i.cfg.PublicURL + "/" + i.cfg.BucketName + "/" + key
}
