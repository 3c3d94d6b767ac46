package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/hollisb/centsible/internal/common"
	"github.com/hollisb/centsible/internal/config"
	"github.com/hollisb/centsible/internal/model"
	"github.com/hollisb/centsible/internal/service"
	"github.com/hollisb/centsible/internal/storage"
)

// timeNow is swapped out in tests that need a fixed reference date.
var timeNow = time.Now

// initStore opens the configured storage backend: a JSON snapshot
// directory by default, or SQLite when storage.backend says so.
func initStore(ctx context.Context) (service.Store, error) {
	backend := viper.GetString("storage.backend")
	path := viper.GetString("storage.path")
	if path == "" {
		path = config.DefaultDataDir
	}
	path = config.ExpandPath(path)

	switch backend {
	case "sqlite":
		store, err := storage.NewSQLiteStorage(filepath.Join(path, "centsible.db"))
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil
	case "json", "":
		return storage.NewJSONStore(path)
	default:
		return nil, common.NewUserError(
			fmt.Sprintf("unknown storage backend %q (want json or sqlite)", backend),
			common.ErrInvalidConfig)
	}
}

// parsePeriod maps a --period flag value to a model period; an empty
// flag means unscoped.
func parsePeriod(value string) (model.Period, error) {
	period := model.Period(value)
	if !period.Valid() {
		return model.PeriodAll, fmt.Errorf("%w: %q (want daily, weekly or monthly)", common.ErrInvalidPeriod, value)
	}
	return period, nil
}
