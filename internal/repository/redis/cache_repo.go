package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/hardware-catalog/internal/cfg"
	"github.com/DRSN-tech/hardware-catalog/internal/domain"
	"github.com/DRSN-tech/hardware-catalog/internal/repository/redis/converter"
	"github.com/DRSN-tech/hardware-catalog/pkg/clients"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// ключ снимка списка категорий
const categoriesKey = "catalog:categories"

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.CategoryConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.CategoryConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetCategories возвращает закэшированный список категорий или e.ErrCacheMiss.
// Повреждённый снимок удаляется и считается промахом.
func (c *CacheRepo) GetCategories(ctx context.Context) ([]domain.Category, error) {
	data, err := c.client.Client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrCacheMiss
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.CategoryRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		if err := c.client.Client.Del(ctx, categoriesKey).Err(); err != nil {
			c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, e.ErrCacheMiss
	}

	return c.conv.ToArrEntity(models), nil
}

// SetCategories кэширует список категорий на CategoriesTTL.
func (c *CacheRepo) SetCategories(ctx context.Context, categories []domain.Category) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(categories))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, categoriesKey, data, c.cfg.CategoriesTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteCategories сбрасывает снимок после любого изменения категорий.
func (c *CacheRepo) DeleteCategories(ctx context.Context) error {
	if err := c.client.Client.Del(ctx, categoriesKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
