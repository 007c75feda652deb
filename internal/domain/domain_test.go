package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatLKR(t *testing.T) {
	testCases := map[string]string{
		"0":           "LKR 0.00",
		"15.5":        "LKR 15.50",
		"999":         "LKR 999.00",
		"1000":        "LKR 1,000.00",
		"1234567.891": "LKR 1,234,567.89",
		"1000000":     "LKR 1,000,000.00",
		"-42.1":       "-LKR 42.10",
	}

	for in, want := range testCases {
		assert.Equal(t, want, FormatLKR(decimal.RequireFromString(in)), in)
	}
}

func TestObjectKeyFromURL(t *testing.T) {
	assert.Equal(t, "1700000000000_abc.png", ObjectKeyFromURL("http://minio:9000/product-images/1700000000000_abc.png"))
	assert.Equal(t, "plain.jpg", ObjectKeyFromURL("plain.jpg"))
	assert.Equal(t, "", ObjectKeyFromURL("http://minio:9000/product-images/"))
}

func TestCountByCategory(t *testing.T) {
	products := []Product{{CategoryID: 1}, {CategoryID: 2}, {CategoryID: 1}}

	assert.Equal(t, 2, CountByCategory(products, 1))
	assert.Equal(t, 1, CountByCategory(products, 2))
	assert.Equal(t, 0, CountByCategory(products, 3))
	assert.Equal(t, 0, CountByCategory(nil, 1))
}

func TestNewProduct_NilImages(t *testing.T) {
	p := NewProduct("Hammer", 1, decimal.NewFromInt(10), nil)
	assert.NotNil(t, p.Images)
	assert.False(t, p.HasImages())
}

func TestEventType_Aggregate(t *testing.T) {
	assert.Equal(t, "category", CategoryDeleted.Aggregate())
	assert.Equal(t, "product", ProductUpdated.Aggregate())
}
