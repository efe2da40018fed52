package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/l"
	"gopkg.in/yaml.v3"
	"honnef.co/go/altcurve/curvestore"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Config is read from the file named by -config. Flags override it.
type Config struct {
	// Store is the directory of the file store.
	Store string `yaml:"store"`
	// Format is the encoding of stored curves, "json" or "yaml".
	Format   string        `yaml:"format"`
	Redis    RedisConfig   `yaml:"redis"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

func defaultConfig() Config {
	return Config{
		Store:    "curves",
		Format:   "json",
		Redis:    RedisConfig{Prefix: "altcurve"},
		CacheTTL: curvestore.DefaultCacheTTL,
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// if required is set.
func loadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()

	d, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}

		return cfg, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(d))
	dec.KnownFields(true)

	if err = dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (cfg Config) format() (curvestore.Format, error) {
	switch cfg.Format {
	case "", "json":
		return curvestore.JSON, nil
	case "yaml", "yml":
		return curvestore.YAML, nil
	default:
		return 0, fmt.Errorf("unknown store format %q", cfg.Format)
	}
}

func (cfg Config) newStore(logger l.Wrapper) (*curvestore.Store, error) {
	format, err := cfg.format()
	if err != nil {
		return nil, err
	}

	var storage curvestore.Storage
	if cfg.Redis.Addr != "" {
		redisCli := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		storage = curvestore.NewRedisStorage(cfg.Redis.Prefix, redisCli, logger)
	} else {
		storage = curvestore.NewFileStorage(cfg.Store, format)
	}

	return curvestore.NewStore(storage,
		curvestore.WithLogger(logger),
		curvestore.WithFormat(format),
		curvestore.WithCacheTTL(cfg.CacheTTL),
	), nil
}
