package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"nav-eval-service/internal/domain"
	"nav-eval-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "naveval:evaluation:"

// Redis backed evaluation cache. Entries expire after TTL; zero means no expiry.
type RedisEvaluationCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisEvaluationCache(client *redis.Client, ttl time.Duration) *RedisEvaluationCache {
	return &RedisEvaluationCache{Client: client, TTL: ttl}
}

type redisEvaluation struct {
	Exact          bool `json:"exact"`
	MostlyCorrect  bool `json:"mostly_correct"`
	MinorMistakes  int  `json:"minor_mistakes"`
	MajorMistakes  int  `json:"major_mistakes"`
	MinorThreshold int  `json:"minor_threshold"`
}

// Fetch cached evaluations for the given keys with a single MGET.
func (c *RedisEvaluationCache) GetMany(
	ctx context.Context,
	keys []string,
) (_ map[string]domain.Evaluation, err error) {
	defer obs.Time(ctx, "evaluation.cache.redis.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("evaluation cache: redis client is nil")
	}

	uniq := uniqueKeys(keys)
	if len(uniq) == 0 {
		return map[string]domain.Evaluation{}, nil
	}

	redisKeys := make([]string, len(uniq))
	for i, k := range uniq {
		redisKeys[i] = redisKeyPrefix + k
	}

	vals, err := c.Client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get evaluation cache: mget: %w", err)
	}

	out := make(map[string]domain.Evaluation, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var re redisEvaluation
		if err := json.Unmarshal([]byte(s), &re); err != nil {
			return nil, fmt.Errorf("get evaluation cache: decode key=%q: %w", uniq[i], err)
		}
		out[uniq[i]] = domain.Evaluation(re)
	}

	return out, nil
}

// Store evaluations in one pipeline.
func (c *RedisEvaluationCache) PutMany(ctx context.Context, evals map[string]domain.Evaluation) (err error) {
	defer obs.Time(ctx, "evaluation.cache.redis.PutMany")(&err)

	if c.Client == nil {
		return errors.New("evaluation cache: redis client is nil")
	}

	if len(evals) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for key, e := range evals {
		if key == "" {
			return errors.New("insert evaluation cache: empty key")
		}
		b, err := json.Marshal(redisEvaluation(e))
		if err != nil {
			return fmt.Errorf("insert evaluation cache key=%q: encode: %w", key, err)
		}
		pipe.Set(ctx, redisKeyPrefix+key, b, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert evaluation cache: pipeline exec: %w", err)
	}

	return nil
}
