package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse сопоставляет ошибку каталога статусу и сообщению для клиента.
// Сырые ошибки БД и хранилища наружу не отдаются.
func ToHTTPResponse(err error) (int, string) {
	var (
		inUse   *e.CategoryInUseError
		tooMany *e.TooManyImagesError
	)

	switch {
	case errors.Is(err, e.ErrValidation):
		return http.StatusBadRequest, e.ErrValidation.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrRequestTooLarge.Error()
	case errors.Is(err, e.ErrInvalidID):
		return http.StatusBadRequest, e.ErrInvalidID.Error()
	case errors.Is(err, e.ErrInvalidFilter):
		return http.StatusBadRequest, e.ErrInvalidFilter.Error()
	case errors.Is(err, e.ErrInvalidImage):
		return http.StatusBadRequest, e.ErrInvalidImage.Error()
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, e.ErrNotFound.Error()
	case errors.Is(err, e.ErrDuplicateName):
		return http.StatusConflict, "A category with this name already exists"
	case errors.As(err, &inUse):
		return http.StatusConflict, inUse.Error()
	case errors.As(err, &tooMany):
		return http.StatusRequestEntityTooLarge, tooMany.Error()
	case errors.Is(err, e.ErrPartiallyDeleted):
		return http.StatusBadGateway, e.ErrPartiallyDeleted.Error()
	case errors.Is(err, e.ErrStorage):
		return http.StatusBadGateway, e.ErrStorage.Error()
	case errors.Is(err, e.ErrUpload):
		return http.StatusBadGateway, e.ErrUpload.Error()
	case errors.Is(err, e.ErrTransientService):
		return http.StatusServiceUnavailable, e.ErrTransientService.Error()
	case errors.Is(err, e.ErrSaveFailed):
		return http.StatusInternalServerError, e.ErrSaveFailed.Error()
	case errors.Is(err, e.ErrDeleteFailed):
		return http.StatusInternalServerError, e.ErrDeleteFailed.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)

	resp := NewErrorResponse(code, msg)
	var vErr *e.ValidationError
	if errors.As(err, &vErr) {
		resp.Fields = vErr.Fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeLoggedError пишет ошибку клиенту. Ошибки клиента логируются как Warn, серверные как Error.
func writeLoggedError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		log.Errorf(err, "%d %s %s", code, r.Method, r.URL.Path)
	} else {
		log.Warnf("%d %s %s: %v", code, r.Method, r.URL.Path, err)
	}

	WriteError(w, err)
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(fmt.Sprintf("id %q", raw), e.ErrInvalidID)
	}

	return id, nil
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: %w: %v", whereami.WhereAmI(), e.ErrStatusBadRequest, err)
	}

	return nil
}

func parseProductFilter(r *http.Request) (usecase.ProductFilter, error) {
	q := r.URL.Query()

	var categoryID *int64
	if raw := strings.TrimSpace(q.Get("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return usecase.ProductFilter{}, e.Wrap("category_id "+raw, e.ErrInvalidFilter)
		}
		categoryID = &id
	}

	return usecase.NewProductFilter(categoryID, q.Get("search"), q.Get("sort"), q.Get("order"))
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%s: %w: limit %d bytes", whereami.WhereAmI(), e.ErrRequestTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%s: %w: %v", whereami.WhereAmI(), e.ErrStatusBadRequest, err)
	}

	return nil
}

// parseImages читает файлы пакета. Размер берётся из заголовка части, тип определяется по содержимому.
// Проверку типа и размера выполняет usecase.
func parseImages(files []*multipart.FileHeader, maxFileSize int64) ([]usecase.ProductImage, error) {
	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, fh.Size, fh.Filename))
	}

	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.Wrap(fh.Filename, e.ErrStatusBadRequest)
	}
	defer src.Close()

	// Слишком большой файл не читается целиком: usecase отклонит его по fh.Size
	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.Wrap(fh.Filename, e.ErrStatusBadRequest)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return data, mimeType, nil
}
