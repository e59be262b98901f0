// Package cache provides the optional Redis-backed read-through cache for
// assembled recipe details. When disabled by configuration a no-op
// implementation is used and Redis is never dialed.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plateup/plateup-server/internal/config"
	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/models"
)

const detailKeyPrefix = "recipe:detail:"

// RecipeCache caches assembled recipe-detail documents in Redis with a TTL.
// All methods degrade to a cache miss on any Redis or codec error; the cache
// never fails a request.
type RecipeCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// DetailCache mirrors the cache surface the recipe service consumes.
type DetailCache interface {
	GetRecipeDetail(ctx context.Context, recipeID string) (models.RecipeDetail, bool)
	SetRecipeDetail(ctx context.Context, recipeID string, detail models.RecipeDetail)
	InvalidateRecipeDetail(ctx context.Context, recipeID string)
}

// NewRecipeCache dials Redis per cfg and returns a ready cache. When caching
// is disabled it returns a [NopCache] instead, so callers never need a nil
// check.
func NewRecipeCache(cfg config.Cache, log *logger.Logger) DetailCache {
	if !cfg.Enabled {
		return NopCache{}
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})

	return &RecipeCache{
		client: client,
		ttl:    cfg.TTL,
		logger: log,
	}
}

// GetRecipeDetail returns the cached detail for recipeID and whether it was
// present. Errors are logged and reported as a miss.
func (c *RecipeCache) GetRecipeDetail(ctx context.Context, recipeID string) (models.RecipeDetail, bool) {
	log := logger.FromContext(ctx)

	data, err := c.client.Get(ctx, detailKeyPrefix+recipeID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("recipeID", recipeID).Msg("recipe cache read failed")
		}
		return models.RecipeDetail{}, false
	}

	var detail models.RecipeDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		log.Warn().Err(err).Str("recipeID", recipeID).Msg("recipe cache entry is not decodable")
		return models.RecipeDetail{}, false
	}

	return detail, true
}

// SetRecipeDetail stores the detail under the recipe's key with the
// configured TTL. Failures are logged and otherwise ignored.
func (c *RecipeCache) SetRecipeDetail(ctx context.Context, recipeID string, detail models.RecipeDetail) {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(detail)
	if err != nil {
		log.Warn().Err(err).Str("recipeID", recipeID).Msg("recipe cache encode failed")
		return
	}

	if err := c.client.Set(ctx, detailKeyPrefix+recipeID, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("recipeID", recipeID).Msg("recipe cache write failed")
	}
}

// InvalidateRecipeDetail drops the cached detail for recipeID, if any.
func (c *RecipeCache) InvalidateRecipeDetail(ctx context.Context, recipeID string) {
	log := logger.FromContext(ctx)

	if err := c.client.Del(ctx, detailKeyPrefix+recipeID).Err(); err != nil {
		log.Warn().Err(err).Str("recipeID", recipeID).Msg("recipe cache invalidation failed")
	}
}

// NopCache is the disabled-cache implementation: every read is a miss and
// writes go nowhere.
type NopCache struct{}

func (NopCache) GetRecipeDetail(ctx context.Context, recipeID string) (models.RecipeDetail, bool) {
	return models.RecipeDetail{}, false
}

func (NopCache) SetRecipeDetail(ctx context.Context, recipeID string, detail models.RecipeDetail) {}

func (NopCache) InvalidateRecipeDetail(ctx context.Context, recipeID string) {}
