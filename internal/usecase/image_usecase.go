package usecase

import (
	"context"
	"slices"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/internal/validation"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
)

// ImageUseCase управляет списком изображений формы продукта до его сохранения.
type ImageUseCase struct {
	imagesInfra ImagesInfra
	maxImages   int
	logger      logger.Logger
}

func NewImageUC(imagesInfra ImagesInfra, maxImages int, logger logger.Logger) *ImageUseCase {
	return &ImageUseCase{
		imagesInfra: imagesInfra,
		maxImages:   maxImages,
		logger:      logger,
	}
}

// AddProductImages проверяет и загружает пакет файлов.
// Пакет, не помещающийся в лимит, отклоняется целиком до любой загрузки.
// Ошибка отдельного файла не прерывает пакет: успешно загруженные изображения остаются в списке.
func (i *ImageUseCase) AddProductImages(ctx context.Context, files []ProductImage, currentImages []string) (*AddImagesRes, error) {
	const op = "ImageUseCase.AddProductImages"

	if len(currentImages)+len(files) > i.maxImages {
		return nil, e.Wrap(op, &e.TooManyImagesError{Limit: i.maxImages, Current: len(currentImages)})
	}

	results := make([]UploadImageResult, len(files))
	valid := make([]ProductImage, 0, len(files))
	positions := make([]int, 0, len(files))
	for idx, file := range files {
		err := validation.Image(validation.ImageFile{Name: file.Name, ContentType: file.MimeType, Size: file.Size})
		if err != nil {
			results[idx] = UploadImageResult{FileName: file.Name, Err: err}
			continue
		}

		valid = append(valid, file)
		positions = append(positions, idx)
	}

	if len(valid) > 0 {
		uploaded := i.imagesInfra.UploadImages(ctx, NewUploadImagesReq(valid))
		for j, res := range uploaded.Results {
			results[positions[j]] = res
		}
	}

	images := slices.Clone(currentImages)
	if images == nil {
		images = []string{}
	}

	res := &AddImagesRes{Results: results}
	for _, r := range results {
		if r.Err == nil {
			images = append(images, r.URL)
		}
	}
	res.Images = images

	if failed := res.Failed(); len(failed) > 0 {
		i.logger.Warnf("%s: %d of %d images failed", op, len(failed), len(files))
	}

	return res, nil
}

// RemoveProductImage удаляет объект из хранилища и только затем убирает URL из списка.
// При ошибке удаления возвращается исходный список.
func (i *ImageUseCase) RemoveProductImage(ctx context.Context, url string, currentImages []string) ([]string, error) {
	const op = "ImageUseCase.RemoveProductImage"

	images := slices.Clone(currentImages)
	if !slices.Contains(images, url) {
		return images, e.Wrap(op, e.ErrNotFound)
	}

	if err := i.imagesInfra.DeleteImage(ctx, domain.ObjectKeyFromURL(url)); err != nil {
		return images, e.Wrap(op, err)
	}

	return slices.DeleteFunc(images, func(s string) bool { return s == url }), nil
}
