package source

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/heatcal/pkg/errors"
)

// Redis reads a hash whose fields are ISO dates and whose values are
// numbers:
//
//	HSET heatcal:runs 2024-01-01 5.2 2024-01-03 3
type Redis struct {
	name   string
	key    string
	client redis.UniversalClient
}

// NewRedis returns a dataset reading the hash at key.
func NewRedis(name, key string, client redis.UniversalClient) *Redis {
	return &Redis{name: name, key: key, client: client}
}

func (r *Redis) Name() string { return r.name }

// Fetch implements Dataset. A missing key yields an empty series.
func (r *Redis) Fetch(ctx context.Context, year int) (Series, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "dataset %q: HGETALL %s", r.name, r.key)
	}
	return parseHash(fields, year, r.key)
}

func parseHash(fields map[string]string, year int, key string) (Series, error) {
	s := make(Series)
	for field, raw := range fields {
		t, err := ParseDate(field)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "%s: bad date field %q", key, field)
		}
		if t.Year() != year {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "%s: field %s", key, field)
		}
		s.Add(t, v)
	}
	return s, nil
}
