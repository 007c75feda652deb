package converter

import "github.com/DRSN-tech/hardware-catalog/internal/domain"

type CategoryConverter interface {
	ToArrRedisModel(entities []domain.Category) []CategoryRedisModel
	ToArrEntity(models []CategoryRedisModel) []domain.Category
}

type CategoryConverterImpl struct{}

func (CategoryConverterImpl) ToArrRedisModel(entities []domain.Category) []CategoryRedisModel {
	out := make([]CategoryRedisModel, 0, len(entities))
	for _, c := range entities {
		out = append(out, CategoryRedisModel{
			ID:        c.ID,
			Name:      c.Name,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}

	return out
}

func (CategoryConverterImpl) ToArrEntity(models []CategoryRedisModel) []domain.Category {
	out := make([]domain.Category, 0, len(models))
	for _, m := range models {
		out = append(out, domain.Category{
			ID:        m.ID,
			Name:      m.Name,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}

	return out
}
