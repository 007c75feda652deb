package converter

import "time"

// CategoryRedisModel описывает категорию в JSON-снимке списка
type CategoryRedisModel struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
