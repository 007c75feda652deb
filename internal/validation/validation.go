// Package validation содержит чистые функции проверки пользовательского ввода каталога.
// Функции не обращаются к сети и не имеют побочных эффектов.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/shopspring/decimal"
)

const (
	CategoryNameMin = 2
	CategoryNameMax = 50
	ProductNameMin  = 2
	ProductNameMax  = 100
	MaxImageSize    = 5 << 20
)

// MaxProductImages ограничивает список изображений одного продукта.
const MaxProductImages = 10

// цена хранится как NUMERIC(12, 2)
const priceScale = 2

// Верхняя граница цены продукта, включительно.
var MaxPrice = decimal.NewFromInt(1_000_000)

// Имена полей формы продукта, используются как ключи ошибок.
const (
	FieldName       = "name"
	FieldCategoryID = "category_id"
	FieldPrice      = "price"
	FieldImages     = "images"
)

// Сообщения об ошибках файла изображения, показываются пользователю как есть.
const (
	MsgInvalidImageType = "Invalid file type. Please upload JPEG, JPG, PNG, or WebP images."
	MsgImageTooLarge    = "File size too large. Please upload images smaller than 5MB."
)

// Ошибки Image. Обе оборачивают e.ErrInvalidImage.
var (
	ErrInvalidImageType = e.Wrap(MsgInvalidImageType, e.ErrInvalidImage)
	ErrImageTooLarge    = e.Wrap(MsgImageTooLarge, e.ErrInvalidImage)
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

type CategoryNameResult struct {
	Valid   bool
	Trimmed string
	Error   string
}

// CategoryName обрезает пробелы и проверяет длину имени категории.
func CategoryName(raw string) CategoryNameResult {
	trimmed := strings.TrimSpace(raw)
	res := CategoryNameResult{Trimmed: trimmed}

	switch n := utf8.RuneCountInString(trimmed); {
	case n == 0:
		res.Error = "Category name is required"
	case n < CategoryNameMin:
		res.Error = fmt.Sprintf("Category name must be at least %d characters", CategoryNameMin)
	case n > CategoryNameMax:
		res.Error = fmt.Sprintf("Category name must be at most %d characters", CategoryNameMax)
	default:
		res.Valid = true
	}

	return res
}

// ProductInput — сырые значения формы продукта в том виде, как их прислал клиент.
type ProductInput struct {
	Name       string
	CategoryID string
	Price      string
	Images     []string
}

// ProductErrors хранит ошибки по полям формы продукта. Пустая строка означает отсутствие ошибки.
type ProductErrors struct {
	Name       string
	CategoryID string
	Price      string
	Images     string
}

// Map возвращает только заполненные ошибки.
func (p ProductErrors) Map() map[string]string {
	m := make(map[string]string, 4)
	if p.Name != "" {
		m[FieldName] = p.Name
	}
	if p.CategoryID != "" {
		m[FieldCategoryID] = p.CategoryID
	}
	if p.Price != "" {
		m[FieldPrice] = p.Price
	}
	if p.Images != "" {
		m[FieldImages] = p.Images
	}

	return m
}

// ProductResult — результат проверки формы продукта. При Valid == true Normalized заполнен.
type ProductResult struct {
	Valid      bool
	Errors     ProductErrors
	Normalized *domain.Product
}

// Product проверяет форму продукта. knownCategories — список категорий, загруженный вызывающей стороной.
func Product(raw ProductInput, knownCategories []domain.Category) ProductResult {
	var errs ProductErrors

	name := strings.TrimSpace(raw.Name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		errs.Name = "Product name is required"
	case n < ProductNameMin:
		errs.Name = fmt.Sprintf("Product name must be at least %d characters", ProductNameMin)
	case n > ProductNameMax:
		errs.Name = fmt.Sprintf("Product name must be at most %d characters", ProductNameMax)
	}

	categoryID, catErr := parseCategoryID(raw.CategoryID, knownCategories)
	errs.CategoryID = catErr

	price, priceErr := Price(raw.Price)
	errs.Price = priceErr

	if len(raw.Images) > MaxProductImages {
		errs.Images = fmt.Sprintf("You can only have up to %d images", MaxProductImages)
	}

	if errs != (ProductErrors{}) {
		return ProductResult{Errors: errs}
	}

	images := make([]string, len(raw.Images))
	copy(images, raw.Images)

	return ProductResult{
		Valid:      true,
		Normalized: domain.NewProduct(name, categoryID, price, images),
	}
}

func parseCategoryID(raw string, known []domain.Category) (int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "Category is required"
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, "Selected category does not exist"
	}

	for _, c := range known {
		if c.ID == id {
			return id, ""
		}
	}

	return 0, "Selected category does not exist"
}

// Price разбирает цену и проверяет границы 0 < price <= MaxPrice.
// Допускается не больше двух знаков после запятой.
// Возвращает текст ошибки вместо error, чтобы его можно было показать у поля формы.
func Price(raw string) (decimal.Decimal, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, "Valid price is required"
	}

	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() || !d.Equal(d.Round(priceScale)) {
		return decimal.Zero, "Valid price is required"
	}

	if d.GreaterThan(MaxPrice) {
		return decimal.Zero, "Price must not exceed 1,000,000"
	}

	return d, ""
}

type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
}

// Image проверяет тип и размер файла изображения.
func Image(file ImageFile) error {
	if _, ok := allowedImageTypes[strings.ToLower(file.ContentType)]; !ok {
		return fmt.Errorf("%s: %w", file.Name, ErrInvalidImageType)
	}

	if file.Size > MaxImageSize {
		return fmt.Errorf("%s: %w", file.Name, ErrImageTooLarge)
	}

	return nil
}
