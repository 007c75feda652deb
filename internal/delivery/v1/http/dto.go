package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/internal/validation"
)

// formValue принимает из JSON как строку, так и число: поля формы проверяются валидатором в исходном виде.
type formValue string

func (f *formValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = formValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = formValue(n.String())
	return nil
}

type CategoryRequest struct {
	Name string `json:"name" example:"Hand Tools"`
}

type CategoryResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type ProductRequest struct {
	Name       string    `json:"name" example:"Claw Hammer"`
	CategoryID formValue `json:"category_id" swaggertype:"string" example:"1"`
	Price      formValue `json:"price" swaggertype:"string" example:"15.50"`
	Images     []string  `json:"images"`
}

func (p ProductRequest) toInput() validation.ProductInput {
	return validation.ProductInput{
		Name:       p.Name,
		CategoryID: string(p.CategoryID),
		Price:      string(p.Price),
		Images:     p.Images,
	}
}

type CategoryRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID             int64                `json:"id"`
	Name           string               `json:"name"`
	CategoryID     int64                `json:"category_id"`
	Category       *CategoryRefResponse `json:"category,omitempty"`
	Price          string               `json:"price" example:"15.50"`
	PriceFormatted string               `json:"price_formatted" example:"LKR 15.50"`
	Images         []string             `json:"images"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type ImageResultResponse struct {
	File  string `json:"file"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

type AddImagesResponse struct {
	Images  []string              `json:"images"`
	Results []ImageResultResponse `json:"results"`
}

type RemoveImageRequest struct {
	URL    string   `json:"url"`
	Images []string `json:"images"`
}

type ImagesResponse struct {
	Images []string `json:"images"`
}

type DashboardStatsResponse struct {
	TotalProducts         int    `json:"total_products"`
	TotalCategories       int    `json:"total_categories"`
	ProductsWithImages    int    `json:"products_with_images"`
	AveragePrice          string `json:"average_price"`
	AveragePriceFormatted string `json:"average_price_formatted"`
}

type DashboardCategoryResponse struct {
	CategoryResponse
	ProductCount int `json:"product_count"`
}

type DashboardResponse struct {
	Stats      DashboardStatsResponse      `json:"stats"`
	Categories []DashboardCategoryResponse `json:"categories"`
	Products   []ProductResponse           `json:"products"`
}

// MAPPERS

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i]))
	}

	return out
}

func toProductResponse(p *domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		Price:          p.Price.StringFixed(2),
		PriceFormatted: domain.FormatLKR(p.Price),
		Images:         p.Images,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if p.Category != nil {
		resp.Category = &CategoryRefResponse{ID: p.Category.ID, Name: p.Category.Name}
	}

	return resp
}

func toProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}

	return out
}

func toAddImagesResponse(res *usecase.AddImagesRes) AddImagesResponse {
	results := make([]ImageResultResponse, 0, len(res.Results))
	for _, r := range res.Results {
		item := ImageResultResponse{File: r.FileName, URL: r.URL}
		if r.Err != nil {
			item.URL = ""
			item.Error = imageErrorMessage(r.Err)
		}
		results = append(results, item)
	}

	return AddImagesResponse{Images: res.Images, Results: results}
}

func imageErrorMessage(err error) string {
	switch {
	case errors.Is(err, validation.ErrInvalidImageType):
		return validation.MsgInvalidImageType
	case errors.Is(err, validation.ErrImageTooLarge):
		return validation.MsgImageTooLarge
	default:
		return "Failed to upload image. Please try again."
	}
}

func toDashboardResponse(d *usecase.Dashboard) DashboardResponse {
	categories := make([]DashboardCategoryResponse, 0, len(d.Categories))
	for i := range d.Categories {
		categories = append(categories, DashboardCategoryResponse{
			CategoryResponse: toCategoryResponse(&d.Categories[i]),
			ProductCount:     d.ProductCounts[d.Categories[i].ID],
		})
	}

	return DashboardResponse{
		Stats: DashboardStatsResponse{
			TotalProducts:         d.Stats.TotalProducts,
			TotalCategories:       d.Stats.TotalCategories,
			ProductsWithImages:    d.Stats.ProductsWithImages,
			AveragePrice:          d.Stats.AveragePrice.StringFixed(2),
			AveragePriceFormatted: domain.FormatLKR(d.Stats.AveragePrice),
		},
		Categories: categories,
		Products:   toProductResponses(d.Products),
	}
}
