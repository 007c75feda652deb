package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/DRSN-tech/hardware-catalog/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// Колонки продукта со снимком категории. Алиас таблицы продуктов: p.
const productColumns = `p.id, p.name, p.category_id, p.price, p.images, p.created_at, p.updated_at, c.name`

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List возвращает продукты по фильтру. Поиск по имени без учёта регистра, спецсимволы LIKE экранируются.
func (p *ProductRepo) List(ctx context.Context, filter usecase.ProductFilter) ([]domain.Product, error) {
	var (
		where []string
		args  []any
	)

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.SearchTerm != "" {
		args = append(args, likePattern(filter.SearchTerm))
		where = append(where, fmt.Sprintf(`p.name ILIKE $%d ESCAPE '\'`, len(args)))
	}

	query := `SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY " + orderClause(filter) + ";"

	rows, err := tr.Conn(ctx, p.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.ProductModel, 0)
	for rows.Next() {
		model, err := scanProduct(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// GetByID возвращает продукт со снимком категории.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1;`

	model, err := scanProduct(tr.Conn(ctx, p.pool).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// Create сохраняет новый продукт. Ссылка на несуществующую категорию возвращает e.ErrNotFound.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)
	query := `
		WITH ins AS (
			INSERT INTO products (name, category_id, price, images)
			VALUES ($1, $2, $3, $4)
			RETURNING id, name, category_id, price, images, created_at, updated_at
		)
		SELECT ` + productColumns + `
		FROM ins p
		JOIN categories c ON c.id = p.category_id;
	`

	saved, err := scanProduct(tr.Conn(ctx, p.pool).QueryRow(ctx, query, model.Name, model.CategoryID, model.Price, model.Images))
	if err != nil {
		if postgresForeignKey(err) {
			return nil, fmt.Errorf("%s: category %d: %w", whereami.WhereAmI(), model.CategoryID, e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(saved), nil
}

// Update перезаписывает продукт целиком, updated_at выставляется на стороне БД.
func (p *ProductRepo) Update(ctx context.Context, id int64, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)
	query := `
		WITH upd AS (
			UPDATE products
			SET name = $2, category_id = $3, price = $4, images = $5, updated_at = NOW()
			WHERE id = $1
			RETURNING id, name, category_id, price, images, created_at, updated_at
		)
		SELECT ` + productColumns + `
		FROM upd p
		JOIN categories c ON c.id = p.category_id;
	`

	saved, err := scanProduct(tr.Conn(ctx, p.pool).QueryRow(ctx, query, id, model.Name, model.CategoryID, model.Price, model.Images))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		case postgresForeignKey(err):
			return nil, fmt.Errorf("%s: category %d: %w", whereami.WhereAmI(), model.CategoryID, e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(saved), nil
}

func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := tr.Conn(ctx, p.pool).Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}

	return nil
}

// CountByCategory возвращает число продуктов, ссылающихся на категорию.
func (p *ProductRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	var count int
	err := tr.Conn(ctx, p.pool).
		QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1;`, categoryID).
		Scan(&count)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}

func scanProduct(row pgx.Row) (*converter.ProductModel, error) {
	var model converter.ProductModel
	err := row.Scan(
		&model.ID, &model.Name, &model.CategoryID, &model.Price, &model.Images,
		&model.CreatedAt, &model.UpdatedAt, &model.CategoryName,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern превращает поисковую строку в шаблон ILIKE для поиска подстроки.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// orderClause собирает ORDER BY только из разрешённых полей, при равенстве сортирует по id.
func orderClause(filter usecase.ProductFilter) string {
	column := "p.name"
	switch filter.SortField {
	case usecase.SortByPrice:
		column = "p.price"
	case usecase.SortByCreatedAt:
		column = "p.created_at"
	}

	direction := "ASC"
	if filter.SortDirection == usecase.SortDesc {
		direction = "DESC"
	}

	return column + " " + direction + ", p.id " + direction
}
