package usecase

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PRODUCT USECASE

// SortField задаёт поле сортировки списка продуктов.
type SortField string

const (
	SortByName      SortField = "name"
	SortByPrice     SortField = "price"
	SortByCreatedAt SortField = "created_at"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ProductFilter — параметры выборки продуктов. CategoryID == nil означает все категории.
type ProductFilter struct {
	CategoryID    *int64
	SearchTerm    string
	SortField     SortField
	SortDirection SortDirection
}

// DefaultProductFilter выбирает все продукты по имени по возрастанию.
func DefaultProductFilter() ProductFilter {
	return ProductFilter{SortField: SortByName, SortDirection: SortAsc}
}

// NewProductFilter собирает фильтр из параметров запроса, пустые значения заменяются значениями по умолчанию.
func NewProductFilter(categoryID *int64, search string, sort string, order string) (ProductFilter, error) {
	f := DefaultProductFilter()
	f.CategoryID = categoryID
	f.SearchTerm = strings.TrimSpace(search)

	switch SortField(strings.ToLower(strings.TrimSpace(sort))) {
	case "", SortByName:
	case SortByPrice:
		f.SortField = SortByPrice
	case SortByCreatedAt:
		f.SortField = SortByCreatedAt
	default:
		return ProductFilter{}, e.Wrap("sort: "+sort, e.ErrInvalidFilter)
	}

	switch SortDirection(strings.ToLower(strings.TrimSpace(order))) {
	case "", SortAsc:
	case SortDesc:
		f.SortDirection = SortDesc
	default:
		return ProductFilter{}, e.Wrap("order: "+order, e.ErrInvalidFilter)
	}

	return f, nil
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла
}

// UploadImageResult содержит либо URL, либо ошибку загрузки одного файла.
type UploadImageResult struct {
	FileName string
	URL      string
	Err      error
}

// AddImagesRes — новый список изображений формы и результаты по каждому файлу пакета.
type AddImagesRes struct {
	Images  []string
	Results []UploadImageResult
}

// Failed возвращает результаты с ошибкой.
func (a *AddImagesRes) Failed() []UploadImageResult {
	failed := make([]UploadImageResult, 0)
	for _, r := range a.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}

	return failed
}

// DASHBOARD

// Dashboard — данные админ-панели, загруженные одновременно.
type Dashboard struct {
	Categories    []domain.Category
	Products      []domain.Product
	ProductCounts map[int64]int // id категории -> кол-во продуктов
	Stats         DashboardStats
}

type DashboardStats struct {
	TotalProducts      int
	TotalCategories    int
	ProductsWithImages int
	AveragePrice       decimal.Decimal
}

// INFRASTUCTURE

// UploadImagesReq содержит уже проверенные изображения.
type UploadImagesReq struct {
	Images []ProductImage
}

// UploadImagesRes — результаты загрузки в порядке UploadImagesReq.Images.
type UploadImagesRes struct {
	Results []UploadImageResult
}

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// OUTBOX

// Канал LISTEN/NOTIFY, в который сигналит каждая новая запись outbox.
const OutboxChannel = "outbox_pending"

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

// OutboxEvent — запись таблицы outbox_events, публикуемая воркером в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   domain.EventType
	Aggregate   string
	AggregateID int64
	Payload     []byte // JSON
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewOutboxEvent(eventType domain.EventType, aggregateID int64, data map[string]any) (*OutboxEvent, error) {
	now := time.Now().UTC()
	msg := domain.NewCatalogEvent(uuid.NewString(), eventType, aggregateID, data, now)

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:     msg.EventID,
		EventType:   eventType,
		Aggregate:   msg.Aggregate,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   now,
	}, nil
}

func NewUploadImagesReq(images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Images: images,
	}
}

func NewUploadImagesRes(results []UploadImageResult) *UploadImagesRes {
	return &UploadImagesRes{
		Results: results,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}

func categoryPayload(c *domain.Category) map[string]any {
	return map[string]any{
		"id":   c.ID,
		"name": c.Name,
	}
}

func productPayload(p *domain.Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"category_id": p.CategoryID,
		"price":       p.Price.String(),
		"images":      p.Images,
	}
}
