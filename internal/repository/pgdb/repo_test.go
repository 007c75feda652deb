package pgdb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	testCases := []struct {
		term     string
		expected string
	}{
		{term: "hammer", expected: "%hammer%"},
		{term: "50%", expected: `%50\%%`},
		{term: "a_b", expected: `%a\_b%`},
		{term: `c:\tools`, expected: `%c:\\tools%`},
	}

	for _, tc := range testCases {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.expected, likePattern(tc.term))
		})
	}
}

func TestOrderClause(t *testing.T) {
	testCases := []struct {
		name     string
		filter   usecase.ProductFilter
		expected string
	}{
		{name: "default", filter: usecase.DefaultProductFilter(), expected: "p.name ASC, p.id ASC"},
		{name: "price desc", filter: usecase.ProductFilter{SortField: usecase.SortByPrice, SortDirection: usecase.SortDesc}, expected: "p.price DESC, p.id DESC"},
		{name: "created at", filter: usecase.ProductFilter{SortField: usecase.SortByCreatedAt}, expected: "p.created_at ASC, p.id ASC"},
		{name: "unknown field", filter: usecase.ProductFilter{SortField: "stock; DROP TABLE products"}, expected: "p.name ASC, p.id ASC"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, orderClause(tc.filter))
		})
	}
}

func TestPostgresErrorClassification(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, postgresDuplicate(dup))
	assert.False(t, postgresForeignKey(dup))
	assert.True(t, postgresForeignKey(fk))
	assert.False(t, postgresDuplicate(errors.New("23505")))
}
