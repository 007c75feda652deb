package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product описывает продукт каталога
type Product struct {
	ID         int64
	Name       string
	CategoryID int64
	Price      decimal.Decimal
	Images     []string // публичные URL изображений, порядок важен
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Category   *CategoryRef // только для чтения, см. CategoryRef
}

func NewProduct(name string, categoryID int64, price decimal.Decimal, images []string) *Product {
	if images == nil {
		images = []string{}
	}

	return &Product{
		Name:       name,
		CategoryID: categoryID,
		Price:      price,
		Images:     images,
	}
}

// HasImages сообщает, есть ли у продукта хотя бы одно изображение.
func (p *Product) HasImages() bool {
	return len(p.Images) > 0
}

// CountByCategory считает продукты с указанной категорией.
func CountByCategory(products []Product, categoryID int64) int {
	count := 0
	for _, p := range products {
		if p.CategoryID == categoryID {
			count++
		}
	}

	return count
}
