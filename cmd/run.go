package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/darsplan/internal/logger"
	"github.com/abhisek/darsplan/internal/store"
	"github.com/spf13/cobra"
)

// appEnv holds what a command needs from the environment: the store, the
// key-value backend and the logger.
type appEnv struct {
	store *store.Store
	kv    store.KV
	log   *logger.Logger

	redis *store.RedisKV
}

// openEnv opens the store and picks Redis for the KV when DARS_REDIS_ADDR
// is set, falling back to the SQLite kv table.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	log, err := openLogger(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("store opened", "path", dbPath)

	e := &appEnv{store: st, kv: st.KV(), log: log}

	redisCfg, err := store.RedisConfigFromEnv()
	if err != nil {
		e.Close()
		return nil, err
	}
	if redisCfg != nil {
		r, err := store.OpenRedisKV(commandContext(cmd), *redisCfg)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.redis = r
		e.kv = r
		log.Debug("using redis kv", "addr", redisCfg.Addr)
	}
	return e, nil
}

func (e *appEnv) Close() {
	if e.redis != nil {
		if err := e.redis.Close(); err != nil {
			e.log.Warn("close redis", "error", err)
		}
	}
	if err := e.store.Close(); err != nil {
		e.log.Warn("close database", "error", err)
	}
	e.log.Sync()
}

func openLogger(cmd *cobra.Command) (*logger.Logger, error) {
	mode, _ := cmd.Flags().GetString("log")
	if mode == "" {
		return logger.FromEnv()
	}
	return logger.New(mode)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
