package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogicalToday(t *testing.T) {
	tests := []struct {
		name         string
		now          time.Time
		dayStartHour int
		want         time.Time
	}{
		{
			name:         "before day start counts as previous day",
			now:          time.Date(2025, 3, 12, 3, 59, 0, 0, time.UTC),
			dayStartHour: 4,
			want:         time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "just after midnight counts as previous day",
			now:          time.Date(2025, 3, 12, 0, 1, 0, 0, time.UTC),
			dayStartHour: 4,
			want:         time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "at day start counts as current day",
			now:          time.Date(2025, 3, 12, 4, 0, 0, 0, time.UTC),
			dayStartHour: 4,
			want:         time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "afternoon counts as current day",
			now:          time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC),
			dayStartHour: 4,
			want:         time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "day start zero degenerates to calendar days",
			now:          time.Date(2025, 3, 12, 0, 1, 0, 0, time.UTC),
			dayStartHour: 0,
			want:         time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "month boundary rolls back correctly",
			now:          time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC),
			dayStartHour: 4,
			want:         time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogicalToday(tt.now, tt.dayStartHour))
		})
	}
}

func TestDeckScope_Storage(t *testing.T) {
	t.Run("all decks maps to sentinel", func(t *testing.T) {
		scope := AllDecks()
		assert.True(t, scope.IsAll())
		assert.Equal(t, int64(-1), scope.StorageID())
		_, ok := scope.DeckID()
		assert.False(t, ok)
	})

	t.Run("specific deck keeps its id", func(t *testing.T) {
		scope := SpecificDeck(1618723400000)
		assert.False(t, scope.IsAll())
		assert.Equal(t, int64(1618723400000), scope.StorageID())
		deckID, ok := scope.DeckID()
		assert.True(t, ok)
		assert.Equal(t, int64(1618723400000), deckID)
	})

	t.Run("round trips through storage", func(t *testing.T) {
		assert.Equal(t, AllDecks(), ScopeFromStorage(AllDecks().StorageID()))
		assert.Equal(t, SpecificDeck(42), ScopeFromStorage(SpecificDeck(42).StorageID()))
	})
}
