package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollisb/centsible/internal/common"
	"github.com/hollisb/centsible/internal/model"
	"github.com/hollisb/centsible/internal/storage"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  model.Period
		expectErr bool
	}{
		{name: "daily", input: "daily", expected: model.PeriodDaily},
		{name: "weekly", input: "weekly", expected: model.PeriodWeekly},
		{name: "monthly", input: "monthly", expected: model.PeriodMonthly},
		{name: "empty means unscoped", input: "", expected: model.PeriodAll},
		{name: "unknown value", input: "yearly", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePeriod(tt.input)
			if tt.expectErr {
				assert.ErrorIs(t, err, common.ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInitStore(t *testing.T) {
	ctx := context.Background()

	t.Run("json backend by default", func(t *testing.T) {
		viper.Reset()
		viper.Set("storage.path", t.TempDir())

		store, err := initStore(ctx)
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &storage.JSONStore{}, store)
	})

	t.Run("sqlite backend runs migrations", func(t *testing.T) {
		viper.Reset()
		viper.Set("storage.backend", "sqlite")
		viper.Set("storage.path", t.TempDir())

		store, err := initStore(ctx)
		require.NoError(t, err)
		defer store.Close()

		snap, err := store.Snapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, snap.Categories, 9)
	})

	t.Run("unknown backend", func(t *testing.T) {
		viper.Reset()
		viper.Set("storage.backend", "dynamo")
		viper.Set("storage.path", t.TempDir())

		_, err := initStore(ctx)
		assert.ErrorIs(t, err, common.ErrInvalidConfig)

		var userErr *common.UserError
		require.True(t, errors.As(err, &userErr))
		assert.Contains(t, userErr.UserMessage, "dynamo")
	})
}

func TestImportKey(t *testing.T) {
	base := model.Transaction{
		Date:        time.Date(2024, 1, 15, 9, 30, 0, 0, time.Local),
		Description: "STARBUCKS",
		Type:        model.TypeExpense,
		Amount:      25.50,
	}

	sameDayDifferentTime := base
	sameDayDifferentTime.Date = time.Date(2024, 1, 15, 18, 0, 0, 0, time.Local)
	assert.Equal(t, importKey(base), importKey(sameDayDifferentTime),
		"entries on the same day with matching fields must collapse")

	differentAmount := base
	differentAmount.Amount = 26.00
	assert.NotEqual(t, importKey(base), importKey(differentAmount))

	differentDay := base
	differentDay.Date = base.Date.AddDate(0, 0, 1)
	assert.NotEqual(t, importKey(base), importKey(differentDay))

	differentType := base
	differentType.Type = model.TypeIncome
	assert.NotEqual(t, importKey(base), importKey(differentType))
}
