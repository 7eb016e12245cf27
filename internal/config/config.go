// Package config loads wayfinder settings from an optional YAML file and
// WAYFINDER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config path is given and the file exists.
const DefaultFile = "wayfinder.yaml"

// DotEnvFile holds WAYFINDER_* values for local runs. The process
// environment wins over it.
const DotEnvFile = ".env"

// EnvPrefix prefixes every environment override, e.g. WAYFINDER_STORE_DRIVER.
const EnvPrefix = "WAYFINDER_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Width     int             `mapstructure:"width"`
	Height    int             `mapstructure:"height"`
	Mode      string          `mapstructure:"mode"`
	Store     StoreConfig     `mapstructure:"store"`
	Animation AnimationConfig `mapstructure:"animation"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	Search    SearchConfig    `mapstructure:"search"`
}

type StoreConfig struct {
	Driver   string      `mapstructure:"driver"` // file, memory, redis or mongo
	Dir      string      `mapstructure:"dir"`
	MaxCells int         `mapstructure:"max_cells"` // 0 = unlimited
	ReadOnly bool        `mapstructure:"read_only"`
	Redis    RedisConfig `mapstructure:"redis"`
	Mongo    MongoConfig `mapstructure:"mongo"`
}

type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	Prefix     string        `mapstructure:"prefix"`
	TTL        time.Duration `mapstructure:"ttl"`
	Lock       bool          `mapstructure:"lock"`
	LockDriver string        `mapstructure:"lock_driver"` // native or redsync
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type AnimationConfig struct {
	ExploredDelay time.Duration `mapstructure:"explored_delay"`
	PathDelay     time.Duration `mapstructure:"path_delay"`
}

type HTTPConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

type SearchConfig struct {
	MaxExplored int `mapstructure:"max_explored"` // 0 = unlimited
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Width:  40,
		Height: 40,
		Mode:   domain.BFS.String(),
		Store: StoreConfig{
			Driver:   "file",
			Dir:      ".wayfinder/mazes",
			MaxCells: 1 << 20,
			Redis: RedisConfig{
				Addr:       "localhost:6379",
				Prefix:     "wayfinder:maze:",
				LockDriver: "native",
			},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "wayfinder",
				Collection: "mazes",
			},
		},
		Animation: AnimationConfig{
			ExploredDelay: 10 * time.Millisecond,
			PathDelay:     10 * time.Millisecond,
		},
		HTTP: HTTPConfig{Addr: ":8080", Metrics: true},
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// keys lists every setting in dotted form; the env name is derived from it.
var keys = []string{
	"width", "height", "mode",
	"store.driver", "store.dir", "store.max_cells", "store.read_only",
	"store.redis.addr", "store.redis.password", "store.redis.db",
	"store.redis.prefix", "store.redis.ttl", "store.redis.lock", "store.redis.lock_driver",
	"store.mongo.uri", "store.mongo.database", "store.mongo.collection",
	"animation.explored_delay", "animation.path_delay",
	"http.addr", "http.metrics",
	"log.level", "log.format",
	"search.max_explored",
}

// EnvName returns the environment variable that overrides a dotted key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Load reads path (or DefaultFile when path is empty and it exists), applies
// environment overrides from the process and DotEnvFile, and validates the
// result.
func Load(path string) (*Config, error) {
	dotenv, err := godotenv.Read(DotEnvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DotEnvFile, err)
	}
	return LoadWith(path, func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})
}

// LoadWith is Load with a custom environment lookup.
func LoadWith(path string, lookup func(string) (string, bool)) (*Config, error) {
	raw := map[string]any{}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	for _, key := range keys {
		if v, ok := lookup(EnvName(key)); ok {
			setPath(raw, strings.Split(key, "."), v)
		}
	}

	cfg := Default()
	if err := decode(raw, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func setPath(m map[string]any, path []string, v string) {
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

// Validate checks dimensions, mode, store driver and log format.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if _, err := domain.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.Store.Driver {
	case "file", "memory", "redis", "mongo":
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalid, c.Store.Driver)
	}
	switch c.Store.Redis.LockDriver {
	case "native", "redsync":
	default:
		return fmt.Errorf("%w: unknown lock driver %q", ErrInvalid, c.Store.Redis.LockDriver)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	if c.Store.MaxCells < 0 {
		return fmt.Errorf("%w: store.max_cells must not be negative", ErrInvalid)
	}
	if c.Search.MaxExplored < 0 {
		return fmt.Errorf("%w: search.max_explored must not be negative", ErrInvalid)
	}
	return nil
}

// SearchMode returns the configured default mode.
func (c *Config) SearchMode() domain.Mode {
	m, err := domain.ParseMode(c.Mode)
	if err != nil {
		return domain.BFS
	}
	return m
}
