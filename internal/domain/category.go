package domain

import "time"

// Category описывает категорию продукта
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewCategory(name string) *Category {
	return &Category{
		Name: name,
	}
}

// CategoryRef — снимок {id, name} категории, встроенный в прочитанный продукт.
// Заполняется при чтении и никогда не записывается обратно.
type CategoryRef struct {
	ID   int64
	Name string
}
