package domain

import "time"

// EventType определяет тип изменения каталога.
type EventType string

const (
	CategoryCreated EventType = "category.created"
	CategoryUpdated EventType = "category.updated"
	CategoryDeleted EventType = "category.deleted"
	ProductCreated  EventType = "product.created"
	ProductUpdated  EventType = "product.updated"
	ProductDeleted  EventType = "product.deleted"
)

// Aggregate возвращает имя сущности, к которой относится событие.
func (t EventType) Aggregate() string {
	switch t {
	case CategoryCreated, CategoryUpdated, CategoryDeleted:
		return "category"
	default:
		return "product"
	}
}

// CatalogEvent — изменение каталога, сохраняемое в outbox в той же транзакции и публикуемое в Kafka.
type CatalogEvent struct {
	EventID     string         `json:"event_id"`
	Type        EventType      `json:"event_type"`
	Aggregate   string         `json:"aggregate"`
	AggregateID int64          `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Data        map[string]any `json:"data"`
}

func NewCatalogEvent(eventID string, eventType EventType, aggregateID int64, data map[string]any, at time.Time) *CatalogEvent {
	return &CatalogEvent{
		EventID:     eventID,
		Type:        eventType,
		Aggregate:   eventType.Aggregate(),
		AggregateID: aggregateID,
		OccurredAt:  at,
		Data:        data,
	}
}
