package e

import (
	"fmt"
	"sort"
	"strings"
)

var (
	// Ошибки валидации (всегда восстановимые, показываются у поля формы)
	ErrValidation   = fmt.Errorf("validation failed")
	ErrInvalidImage = fmt.Errorf("invalid image file")

	// Ошибки хранилища каталога
	ErrDuplicateName = fmt.Errorf("a category with this name already exists")
	ErrNotFound      = fmt.Errorf("not found")
	ErrCategoryInUse = fmt.Errorf("category is in use")
	ErrSaveFailed    = fmt.Errorf("save failed")
	ErrDeleteFailed  = fmt.Errorf("delete failed")

	// Ошибки хранилища изображений
	ErrUpload           = fmt.Errorf("image upload failed")
	ErrStorage          = fmt.Errorf("image storage failure")
	ErrTooManyImages    = fmt.Errorf("too many images")
	ErrPartiallyDeleted = fmt.Errorf("product images were deleted but the product row was not")

	// Ошибки чтения и инфраструктуры
	ErrTransientService     = fmt.Errorf("service temporarily unavailable")
	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrCacheMiss            = fmt.Errorf("cache miss")

	// 400 Bad Request
	ErrStatusBadRequest  = fmt.Errorf("bad request")
	ErrExpectedMultipart = fmt.Errorf("expected multipart/form-data")
	ErrRequestTooLarge   = fmt.Errorf("request body too large")
	ErrInvalidID         = fmt.Errorf("invalid id")
	ErrInvalidFilter     = fmt.Errorf("invalid filter")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// ValidationError содержит ошибки по полям формы. errors.Is(err, ErrValidation) == true.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}

	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (v *ValidationError) Unwrap() error {
	return ErrValidation
}

// CategoryInUseError — отказ в удалении категории, на которую ссылаются продукты.
type CategoryInUseError struct {
	ProductCount int
}

func NewCategoryInUseError(count int) *CategoryInUseError {
	return &CategoryInUseError{ProductCount: count}
}

func (c *CategoryInUseError) Error() string {
	if c.ProductCount <= 0 {
		return "cannot delete category: it still has products assigned to it"
	}

	return fmt.Sprintf("cannot delete category: it has %d product(s) assigned to it", c.ProductCount)
}

func (c *CategoryInUseError) Unwrap() error {
	return ErrCategoryInUse
}

// TooManyImagesError — пакет изображений превышает лимит на продукт.
type TooManyImagesError struct {
	Limit   int
	Current int
}

func (t *TooManyImagesError) Error() string {
	return fmt.Sprintf("you can only upload up to %d images total, you currently have %d images", t.Limit, t.Current)
}

func (t *TooManyImagesError) Unwrap() error {
	return ErrTooManyImages
}

// ImageCleanupError перечисляет изображения, которые не удалось удалить из хранилища.
type ImageCleanupError struct {
	FailedURLs []string
	Errs       []error
}

func (i *ImageCleanupError) Error() string {
	return fmt.Sprintf("failed to delete %d image(s): %s", len(i.FailedURLs), strings.Join(i.FailedURLs, ", "))
}

func (i *ImageCleanupError) Unwrap() []error {
	return append([]error{ErrStorage}, i.Errs...)
}
