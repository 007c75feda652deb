package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
)

// Файл больше maxImageSize должен дойти до usecase и получить ошибку по своему имени,
// поэтому тело запроса ограничено с запасом в oversizeFactor лимитов на каждый файл.
const oversizeFactor = 4

type ImageHandler struct {
	imageUsecase usecase.ImageUC
	logger       logger.Logger
	maxImageSize int64
	maxImages    int
}

func NewImageHandler(imageUsecase usecase.ImageUC, logger logger.Logger, maxImageSize int64, maxImages int) *ImageHandler {
	return &ImageHandler{imageUsecase: imageUsecase, logger: logger, maxImageSize: maxImageSize, maxImages: maxImages}
}

// addImages
//
//	@Summary		Загрузка изображений продукта
//	@Description	Пакет сверх лимита отклоняется целиком. Ошибка отдельного файла не отменяет остальные
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			images[]			formData	file	true	"Изображения"
//	@Param			current_images[]	formData	string	false	"Текущие URL изображений продукта"
//	@Success		200					{object}	AddImagesResponse
//	@Failure		400					{object}	ErrorResponse	"Ожидался multipart/form-data"
//	@Failure		413					{object}	ErrorResponse	"Превышен лимит изображений или размер запроса"
//	@Router			/images [post]
func (i *ImageHandler) addImages(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 32 << 20

	r.Body = http.MaxBytesReader(w, r.Body, uploadBodyLimit(i.maxImages, i.maxImageSize))

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		writeLoggedError(w, r, i.logger, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files, err := parseImages(r.MultipartForm.File["images[]"], i.maxImageSize)
	if err != nil {
		writeLoggedError(w, r, i.logger, err)
		return
	}

	current := r.MultipartForm.Value["current_images[]"]

	res, err := i.imageUsecase.AddProductImages(context.WithoutCancel(r.Context()), files, current)
	if err != nil {
		writeLoggedError(w, r, i.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toAddImagesResponse(res))
}

// uploadBodyLimit возвращает предельный размер тела загрузки. Сверх запаса на файлы
// добавляется мегабайт на каждую часть под служебные поля формы.
func uploadBodyLimit(maxImages int, maxImageSize int64) int64 {
	return int64(maxImages+1) * (oversizeFactor*maxImageSize + 1<<20)
}

// removeImage
//
//	@Summary		Удаление изображения продукта
//	@Description	Объект удаляется из хранилища, затем URL убирается из списка
//	@Tags			images
//	@Accept			json
//	@Produce		json
//	@Param			image	body		RemoveImageRequest	true	"URL и текущий список"
//	@Success		200		{object}	ImagesResponse
//	@Failure		404		{object}	ErrorResponse	"URL нет в списке"
//	@Failure		502		{object}	ErrorResponse	"Ошибка хранилища изображений"
//	@Router			/images [delete]
func (i *ImageHandler) removeImage(w http.ResponseWriter, r *http.Request) {
	var req RemoveImageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeLoggedError(w, r, i.logger, err)
		return
	}

	images, err := i.imageUsecase.RemoveProductImage(context.WithoutCancel(r.Context()), req.URL, req.Images)
	if err != nil {
		writeLoggedError(w, r, i.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ImagesResponse{Images: images})
}
