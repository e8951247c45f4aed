package review

import (
	"strconv"
	"time"
)

// allDecksStorageID is the deck_id value used in the database when a record
// covers all decks. It only exists at the storage boundary; everywhere else
// the scope is a DeckScope value.
const allDecksStorageID int64 = -1

// DeckScope identifies which decks a verdict covers: either all of them or a
// single deck.
type DeckScope struct {
	all    bool
	deckID int64
}

func AllDecks() DeckScope {
	return DeckScope{all: true}
}

func SpecificDeck(deckID int64) DeckScope {
	return DeckScope{deckID: deckID}
}

func (s DeckScope) IsAll() bool {
	return s.all
}

// DeckID returns the deck identifier and true when the scope targets a single
// deck.
func (s DeckScope) DeckID() (int64, bool) {
	if s.all {
		return 0, false
	}
	return s.deckID, true
}

// StorageID maps the scope to the deck_id column value.
func (s DeckScope) StorageID() int64 {
	if s.all {
		return allDecksStorageID
	}
	return s.deckID
}

// ScopeFromStorage is the inverse of StorageID.
func ScopeFromStorage(deckID int64) DeckScope {
	if deckID == allDecksStorageID {
		return AllDecks()
	}
	return SpecificDeck(deckID)
}

func (s DeckScope) String() string {
	if s.all {
		return "ALL"
	}
	return strconv.FormatInt(s.deckID, 10)
}

// DayStatus is the review completion status for a single logical day.
type DayStatus struct {
	Date        time.Time
	Completed   bool
	ReviewCount int
}

// LogicalToday resolves the current logical day: time before dayStartHour
// still counts toward the previous day, so reviews finished at 2 AM do not
// break the previous day's record. A dayStartHour of 0 means plain calendar
// days. The returned time is midnight in now's location.
func LogicalToday(now time.Time, dayStartHour int) time.Time {
	if now.Hour() < dayStartHour {
		now = now.AddDate(0, 0, -1)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
