package source

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/heatcal/pkg/cache"
	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/config"
	"github.com/matzehuels/heatcal/pkg/errors"
	"github.com/matzehuels/heatcal/pkg/httputil"
	"github.com/matzehuels/heatcal/pkg/observability"
)

// Dataset fetches one year of daily values.
type Dataset interface {
	Name() string
	Fetch(ctx context.Context, year int) (Series, error)
}

// Set is the group of datasets whose values are summed per day. It owns the
// clients its datasets share and is safe for concurrent use.
type Set struct {
	datasets []Dataset
	logger   *log.Logger
	keyer    cache.Keyer
	group    singleflight.Group

	cache   cache.Cache
	redis   redis.UniversalClient
	mongo   *mongo.Client
	closers []func() error
}

// Option configures Open and NewSet.
type Option func(*setOptions)

type setOptions struct {
	logger  *log.Logger
	cache   cache.Cache
	refresh bool
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option { return func(o *setOptions) { o.logger = l } }

// WithCache overrides the HTTP payload cache chosen by the configuration.
// The set does not close it.
func WithCache(c cache.Cache) Option { return func(o *setOptions) { o.cache = c } }

// WithRefresh makes HTTP datasets bypass cached payloads.
func WithRefresh(refresh bool) Option { return func(o *setOptions) { o.refresh = refresh } }

// NewSet groups already constructed datasets.
func NewSet(datasets []Dataset, opts ...Option) *Set {
	o := applyOptions(opts)
	return &Set{datasets: datasets, logger: o.logger, keyer: cache.NewDefaultKeyer()}
}

func applyOptions(opts []Option) setOptions {
	o := setOptions{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Open builds the datasets named in cfg. Redis and Mongo connections are
// made only when a dataset or the cache backend needs them.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (_ *Set, err error) {
	o := applyOptions(opts)
	s := &Set{logger: o.logger, keyer: cache.NewDefaultKeyer()}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	if o.cache != nil {
		s.cache = o.cache
	} else if err := s.openCache(ctx, cfg); err != nil {
		return nil, err
	}
	client := httputil.NewClient(s.cache, "series", cfg.Cache.TTL.Duration, nil,
		httputil.WithKeyer(s.keyer))

	for _, d := range cfg.Datasets {
		switch d.Kind {
		case config.KindFile:
			s.datasets = append(s.datasets, NewFile(d.Name, d.Path))
		case config.KindRedis:
			rc, err := s.redisClient(ctx, cfg.Redis.Addr)
			if err != nil {
				return nil, err
			}
			s.datasets = append(s.datasets, NewRedis(d.Name, d.Key, rc))
		case config.KindMongo:
			mc, err := s.mongoClient(ctx, cfg.Mongo.URI)
			if err != nil {
				return nil, err
			}
			coll := mc.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
			s.datasets = append(s.datasets, NewMongo(d.Name, d.Series, coll))
		case config.KindHTTP:
			s.datasets = append(s.datasets, NewHTTP(d.Name, d.URL, client, o.refresh))
		default:
			return nil, errors.New(errors.ErrCodeInvalidConfig, "dataset %q: unknown kind %q", d.Name, d.Kind)
		}
	}
	s.logger.Debug("opened datasets", "count", len(s.datasets), "cache", cfg.Cache.Backend)
	return s, nil
}

func (s *Set) openCache(ctx context.Context, cfg *config.Config) error {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		rc, err := s.redisClient(ctx, cfg.Redis.Addr)
		if err != nil {
			return err
		}
		s.cache = cache.NewRedisCacheFromClient(rc)
		s.keyer = cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	case config.CacheNone:
		s.cache = cache.NewNullCache()
	default:
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "open cache")
		}
		s.cache = fc
		s.closers = append(s.closers, fc.Close)
	}
	return nil
}

func (s *Set) redisClient(ctx context.Context, addr string) (redis.UniversalClient, error) {
	if s.redis != nil {
		return s.redis, nil
	}
	rc := redis.NewClient(&redis.Options{Addr: addr})
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", addr)
	}
	s.redis = rc
	s.closers = append(s.closers, rc.Close)
	return rc, nil
}

func (s *Set) mongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	if s.mongo != nil {
		return s.mongo, nil
	}
	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongo")
	}
	if err := mc.Ping(ctx, nil); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	s.mongo = mc
	s.closers = append(s.closers, func() error { return mc.Disconnect(context.Background()) })
	return mc, nil
}

// Datasets returns the datasets in configuration order.
func (s *Set) Datasets() []Dataset { return s.datasets }

// sharedLoadTimeout bounds a load shared between callers, which no longer
// follows any single caller's context.
const sharedLoadTimeout = 2 * time.Minute

// Load fetches year from every dataset concurrently. The first failure
// cancels the rest and is returned. Concurrent calls for the same year
// share one fetch; each caller stops waiting when its own ctx ends, and the
// fetch keeps running for the others.
func (s *Set) Load(ctx context.Context, year int) ([]calendar.Source, error) {
	if err := errors.ValidateYear(year); err != nil {
		return nil, err
	}
	ch := s.group.DoChan(s.keyer.SeriesKey("*", year), func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()
		return s.load(lctx, year)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("shared dataset load", "year", year)
		}
		return res.Val.([]calendar.Source), nil
	}
}

func (s *Set) load(ctx context.Context, year int) ([]calendar.Source, error) {
	hooks := observability.Pipeline()
	sources := make([]calendar.Source, len(s.datasets))

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range s.datasets {
		g.Go(func() error {
			start := time.Now()
			hooks.OnLoadStart(gctx, d.Name(), year)
			series, err := d.Fetch(gctx, year)
			hooks.OnLoadComplete(gctx, d.Name(), year, len(series), time.Since(start), err)
			if err != nil {
				return err
			}
			s.logger.Debug("loaded dataset", "name", d.Name(), "year", year, "days", len(series), "took", time.Since(start))
			sources[i] = series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

// Close releases connections and caches opened by Open.
func (s *Set) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}
