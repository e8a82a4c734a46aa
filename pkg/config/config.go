// Package config loads heatcal's TOML configuration.
//
// A configuration names the chart title, the color scale and the datasets
// whose values are summed per day:
//
//	title   = "Runs"
//	domain  = [0, 10]
//	palette = ["#9be9a8", "#40c463", "#30a14e", "#216e39"]
//
//	[[dataset]]
//	name = "runs"
//	kind = "file"
//	path = "runs.csv"
//
// Relative paths resolve against the directory of the configuration file.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/heatcal/pkg/calendar"
	"github.com/matzehuels/heatcal/pkg/errors"
)

// Dataset kinds.
const (
	KindFile  = "file"
	KindRedis = "redis"
	KindMongo = "mongo"
	KindHTTP  = "http"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// FileExtensions lists the series file formats a file dataset may use.
var FileExtensions = []string{".json", ".csv", ".toml", ".yaml", ".yml"}

// Config is the decoded configuration file.
type Config struct {
	Title    string      `toml:"title"`
	Year     int         `toml:"year"`
	Domain   []float64   `toml:"domain"`
	Palette  []string    `toml:"palette"`
	Cache    CacheConfig `toml:"cache"`
	Redis    RedisConfig `toml:"redis"`
	Mongo    MongoConfig `toml:"mongo"`
	Datasets []Dataset   `toml:"dataset"`
}

// CacheConfig selects where HTTP payloads are cached.
type CacheConfig struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     Duration `toml:"ttl"`
	Prefix  string   `toml:"prefix"` // redis backend key prefix
}

// RedisConfig is shared by redis datasets and the redis cache backend.
type RedisConfig struct {
	Addr string `toml:"addr"`
}

// MongoConfig is shared by mongo datasets.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Dataset describes one data source. Which fields apply depends on Kind.
type Dataset struct {
	Name   string `toml:"name"`
	Kind   string `toml:"kind"`
	Path   string `toml:"path"`   // file
	Key    string `toml:"key"`    // redis hash, default "heatcal:<name>"
	Series string `toml:"series"` // mongo series, default <name>
	URL    string `toml:"url"`    // http, "{year}" is substituted
}

// Duration is a time.Duration written as a string ("24h") in TOML.
type Duration struct{ time.Duration }

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Defaults returns the configuration used for unset keys.
func Defaults() Config {
	return Config{
		Domain:  []float64{0, 10},
		Palette: []string{"#9be9a8", "#40c463", "#30a14e", "#216e39"},
		Cache:   CacheConfig{Backend: CacheFile, TTL: Duration{24 * time.Hour}, Prefix: "heatcal:cache:"},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "heatcal",
			Collection: "values",
		},
	}
}

// Load reads, defaults, resolves and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes TOML data. Relative paths resolve against dir.
func Parse(data []byte, dir string) (*Config, error) {
	cfg := Defaults()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	cfg.resolve(dir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolve(dir string) {
	for i := range c.Datasets {
		d := &c.Datasets[i]
		if d.Kind == "" {
			d.Kind = KindFile
		}
		if d.Kind == KindFile && d.Path != "" && !filepath.IsAbs(d.Path) && dir != "" {
			d.Path = filepath.Join(dir, d.Path)
		}
		if d.Kind == KindRedis && d.Key == "" {
			d.Key = "heatcal:" + d.Name
		}
		if d.Kind == KindMongo && d.Series == "" {
			d.Series = d.Name
		}
	}
	if c.Cache.Dir != "" && !filepath.IsAbs(c.Cache.Dir) && dir != "" {
		c.Cache.Dir = filepath.Join(dir, c.Cache.Dir)
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if len(c.Domain) != 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "domain needs exactly two numbers, got %d", len(c.Domain))
	}
	if !(c.Domain[0] < c.Domain[1]) {
		return errors.New(errors.ErrCodeInvalidConfig, "domain minimum %v must be below maximum %v", c.Domain[0], c.Domain[1])
	}
	if len(c.Palette) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "palette cannot be empty")
	}
	for _, color := range c.Palette {
		if err := errors.ValidateColor(color); err != nil {
			return err
		}
	}
	if c.Year != 0 {
		if err := errors.ValidateYear(c.Year); err != nil {
			return err
		}
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis cache needs [redis] addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}

	seen := make(map[string]bool, len(c.Datasets))
	for _, d := range c.Datasets {
		if err := errors.ValidateName(d.Name); err != nil {
			return err
		}
		if seen[d.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate dataset name %q", d.Name)
		}
		seen[d.Name] = true
		if err := c.validateDataset(d); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateDataset(d Dataset) error {
	switch d.Kind {
	case KindFile:
		if d.Path == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "dataset %q: path is required", d.Name)
		}
		if ext := strings.ToLower(filepath.Ext(d.Path)); !slices.Contains(FileExtensions, ext) {
			return errors.New(errors.ErrCodeInvalidConfig, "dataset %q: unsupported file type %q", d.Name, ext)
		}
	case KindRedis:
		if c.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "dataset %q: [redis] addr is required", d.Name)
		}
	case KindMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "dataset %q: [mongo] uri, database and collection are required", d.Name)
		}
	case KindHTTP:
		if err := errors.ValidateURL(d.URL); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "dataset %q", d.Name)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "dataset %q: unknown kind %q", d.Name, d.Kind)
	}
	return nil
}

// Calendar returns the render configuration.
func (c *Config) Calendar() *calendar.Config {
	return &calendar.Config{
		Title:   c.Title,
		Domain:  [2]float64{c.Domain[0], c.Domain[1]},
		Palette: slices.Clone(c.Palette),
	}
}

// SelectedYear returns the configured year, or the UTC year of now.
func (c *Config) SelectedYear(now time.Time) int {
	if c.Year != 0 {
		return c.Year
	}
	return now.UTC().Year()
}

// Paths returns the local files the configuration reads, for watching.
func (c *Config) Paths() []string {
	var paths []string
	for _, d := range c.Datasets {
		if d.Kind == KindFile {
			paths = append(paths, d.Path)
		}
	}
	return paths
}
