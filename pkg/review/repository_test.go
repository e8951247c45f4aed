package review

import (
	"context"
	"testing"
	"time"

	"github.com/ankigrid/ankigrid/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	date, err := time.Parse(dateFormat, value)
	if err != nil {
		panic(err)
	}
	return date
}

func TestRepositoryImpl_Upsert(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("stores a new verdict", func(t *testing.T) {
		err := repo.Upsert(ctx, DailyProgress{Date: day("2025-03-12"), Scope: AllDecks(), Completed: true})
		require.NoError(t, err)

		records, err := repo.ReadRange(ctx, day("2025-03-12"), day("2025-03-12"), AllDecks())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].Completed)
	})

	t.Run("overwrites the verdict for the same date and scope", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, DailyProgress{Date: day("2025-03-12"), Scope: AllDecks(), Completed: true}))
		require.NoError(t, repo.Upsert(ctx, DailyProgress{Date: day("2025-03-12"), Scope: AllDecks(), Completed: false}))

		records, err := repo.ReadRange(ctx, day("2025-03-12"), day("2025-03-12"), AllDecks())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.False(t, records[0].Completed)
	})
}

func TestRepositoryImpl_ReadRange(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seed := []DailyProgress{
		{Date: day("2025-03-08"), Scope: AllDecks(), Completed: true},
		{Date: day("2025-03-10"), Scope: AllDecks(), Completed: false},
		{Date: day("2025-03-11"), Scope: AllDecks(), Completed: true},
		{Date: day("2025-03-12"), Scope: AllDecks(), Completed: true},
		{Date: day("2025-03-11"), Scope: SpecificDeck(42), Completed: false},
	}
	for _, record := range seed {
		require.NoError(t, repo.Upsert(ctx, record))
	}

	t.Run("returns only rows inside the window ordered by date", func(t *testing.T) {
		records, err := repo.ReadRange(ctx, day("2025-03-10"), day("2025-03-12"), AllDecks())
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, day("2025-03-10"), records[0].Date)
		assert.Equal(t, day("2025-03-11"), records[1].Date)
		assert.Equal(t, day("2025-03-12"), records[2].Date)
	})

	t.Run("separates deck scopes", func(t *testing.T) {
		records, err := repo.ReadRange(ctx, day("2025-03-01"), day("2025-03-31"), SpecificDeck(42))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, SpecificDeck(42), records[0].Scope)
		assert.False(t, records[0].Completed)
	})

	t.Run("returns empty for a window with no rows", func(t *testing.T) {
		records, err := repo.ReadRange(ctx, day("2024-01-01"), day("2024-01-31"), AllDecks())
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestRepositoryImpl_ClearAll(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, DailyProgress{Date: day("2025-03-12"), Scope: AllDecks(), Completed: true}))
	require.NoError(t, repo.Upsert(ctx, DailyProgress{Date: day("2025-03-12"), Scope: SpecificDeck(7), Completed: true}))

	require.NoError(t, repo.ClearAll(ctx))

	records, err := repo.ReadRange(ctx, day("2025-01-01"), day("2025-12-31"), AllDecks())
	require.NoError(t, err)
	assert.Empty(t, records)
	records, err = repo.ReadRange(ctx, day("2025-01-01"), day("2025-12-31"), SpecificDeck(7))
	require.NoError(t, err)
	assert.Empty(t, records)
}
