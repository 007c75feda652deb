package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/DRSN-tech/hardware-catalog/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
	conv converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv}
}

// List возвращает все категории по имени.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM categories
		ORDER BY name ASC, id ASC;
	`

	rows, err := tr.Conn(ctx, c.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.CategoryModel, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToArrEntity(models), nil
}

// Create создаёт категорию. Дубликат имени возвращает e.ErrDuplicateName.
func (c *CategoryRepo) Create(ctx context.Context, name string) (*domain.Category, error) {
	query := `
		INSERT INTO categories(name) VALUES ($1)
		RETURNING id, name, created_at, updated_at;
	`

	var model converter.CategoryModel
	if err := tr.Conn(ctx, c.pool).QueryRow(ctx, query, name).
		Scan(
			&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		if postgresDuplicate(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrDuplicateName)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Update переименовывает категорию и обновляет updated_at.
func (c *CategoryRepo) Update(ctx context.Context, id int64, name string) (*domain.Category, error) {
	query := `
		UPDATE categories
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at;
	`

	var model converter.CategoryModel
	if err := tr.Conn(ctx, c.pool).QueryRow(ctx, query, id, name).
		Scan(
			&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		case postgresDuplicate(err):
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrDuplicateName)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Delete удаляет категорию. Использование категории продуктами не проверяется,
// срабатывание внешнего ключа возвращает e.ErrCategoryInUse.
func (c *CategoryRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1;`

	tag, err := tr.Conn(ctx, c.pool).Exec(ctx, query, id)
	if err != nil {
		if postgresForeignKey(err) {
			return e.Wrap(whereami.WhereAmI(), e.ErrCategoryInUse)
		}
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}

	return nil
}
