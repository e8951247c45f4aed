package widget

import (
	"context"
	"testing"

	"github.com/ankigrid/ankigrid/internal/config"
	"github.com/ankigrid/ankigrid/pkg/grid"
	"github.com/ankigrid/ankigrid/pkg/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewRepositoryStub()

var service = NewService(repoStub, config.Widget{DayStartHour: 4, DaysToShow: 98})

func setup(t *testing.T) func() {
	return func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func validConfig() Config {
	return Config{
		Name:         "Kitchen tablet",
		Theme:        theme.ThemeGitHub,
		LayoutMode:   string(grid.ModeCalendar),
		DaysToShow:   98,
		DayStartHour: 4,
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("assigns a uid and stores the configuration", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validConfig())
		require.NoError(t, err)
		assert.NotEmpty(t, created.Uid)

		stored, err := service.Get(ctx, created.Uid)
		require.NoError(t, err)
		assert.Equal(t, created, stored)
	})

	t.Run("fills defaults for omitted fields", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, Config{Name: "Bare", DayStartHour: 4})
		require.NoError(t, err)
		assert.Equal(t, theme.ThemeDynamic, created.Theme)
		assert.Equal(t, string(grid.ModeCalendar), created.LayoutMode)
		assert.Equal(t, 98, created.DaysToShow)
	})

	t.Run("clamps the day window to the supported range", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		cfg := validConfig()
		cfg.DaysToShow = 5
		created, err := service.Create(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, grid.MinDays, created.DaysToShow)

		cfg.DaysToShow = 1000
		created, err = service.Create(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, grid.MaxDays, created.DaysToShow)
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		cfg := validConfig()
		cfg.DayStartHour = 24
		_, err := service.Create(ctx, cfg)
		assert.Error(t, err)

		cfg = validConfig()
		cfg.LayoutMode = "spiral"
		_, err = service.Create(ctx, cfg)
		assert.Error(t, err)

		cfg = validConfig()
		cfg.Colors.Completed = "green"
		_, err = service.Create(ctx, cfg)
		assert.Error(t, err)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("updates an existing configuration", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created, err := service.Create(ctx, validConfig())
		require.NoError(t, err)

		created.Name = "Living room"
		created.DarkMode = true
		updated, err := service.Update(ctx, created)
		require.NoError(t, err)
		assert.True(t, updated)

		stored, err := service.Get(ctx, created.Uid)
		require.NoError(t, err)
		assert.Equal(t, "Living room", stored.Name)
		assert.True(t, stored.DarkMode)
	})

	t.Run("reports a missing configuration", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		cfg := validConfig()
		cfg.Uid = "missing"
		updated, err := service.Update(ctx, cfg)
		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, validConfig())
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created.Uid)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = service.Get(ctx, created.Uid)
	assert.ErrorIs(t, err, ErrConfigNotFound)

	deleted, err = service.Delete(ctx, created.Uid)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestConfig_Scope(t *testing.T) {
	assert.True(t, Config{}.Scope().IsAll())

	deckID := int64(42)
	scope := Config{DeckID: &deckID}.Scope()
	id, ok := scope.DeckID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestConfig_Overrides(t *testing.T) {
	cfg := Config{Colors: CustomColors{Completed: "#112233"}}
	overrides := cfg.Overrides()
	require.NotNil(t, overrides.Completed)
	assert.Equal(t, uint8(0x11), overrides.Completed.R)
	assert.Nil(t, overrides.Incomplete)
	assert.Nil(t, overrides.Background)
}
