package converter

import (
	"testing"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductConverter_ToEntity(t *testing.T) {
	conv := ProductConverterImpl{}

	p := conv.ToEntity(&ProductModel{
		ID:           3,
		Name:         "Hammer",
		CategoryID:   7,
		Price:        decimal.RequireFromString("15.50"),
		CategoryName: "Tools",
	})

	require.NotNil(t, p.Category)
	assert.Equal(t, domain.CategoryRef{ID: 7, Name: "Tools"}, *p.Category)
	assert.NotNil(t, p.Images)
	assert.Empty(t, p.Images)
}

func TestProductConverter_ToModelKeepsImageOrder(t *testing.T) {
	conv := ProductConverterImpl{}
	images := []string{"b.png", "a.png"}

	m := conv.ToModel(domain.NewProduct("Saw", 1, decimal.NewFromInt(5), images))

	assert.Equal(t, images, m.Images)
	assert.Nil(t, conv.ToModel(nil))
}
