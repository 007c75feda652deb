package usecase

import "context"

// ImagesInfra загружает пакеты изображений и удаляет отдельные объекты с повторами.
type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) *UploadImagesRes
	DeleteImage(ctx context.Context, key string) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
