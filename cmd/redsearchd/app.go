package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dreamware/redsearch/internal/collection"
	"github.com/dreamware/redsearch/internal/config"
	"github.com/dreamware/redsearch/internal/logging"
	"github.com/dreamware/redsearch/internal/store"
)

// app holds everything a subcommand needs once config has been loaded and
// the store and collections have been constructed: the shared bootstrap
// every subcommand (serve/index/search) performs before doing its own work.
type app struct {
	cfg         config.Config
	log         *zap.SugaredLogger
	store       store.Store
	collections map[string]*collection.Collection
}

func bootstrap(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Store == config.StoreRedis)
	if err != nil {
		return nil, err
	}

	s, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	collections := map[string]*collection.Collection{}
	if cfg.CollectionsFile != "" {
		schemas, err := config.LoadCollections(cfg.CollectionsFile)
		if err != nil {
			return nil, err
		}
		for _, schema := range schemas {
			collections[schema.Name] = collection.Configure(schema, s)
		}
	}

	return &app{cfg: cfg, log: logger, store: s, collections: collections}, nil
}

func newStore(cfg config.Config) (store.Store, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return store.NewRedisStore(client), nil
	case config.StoreMemory, "":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("redsearchd: unknown store kind %q", cfg.Store)
	}
}

func (a *app) collection(name string) (*collection.Collection, error) {
	col, ok := a.collections[name]
	if !ok {
		return nil, fmt.Errorf("redsearchd: unknown collection %q (is it in the collections file?)", name)
	}
	return col, nil
}
