package widget

import (
	"github.com/ankigrid/ankigrid/pkg/review"
	"github.com/ankigrid/ankigrid/pkg/theme"
)

// Config is one widget's preference snapshot. It is loaded fresh for every
// render request and never mutated by the rendering pipeline.
type Config struct {
	Uid  string
	Name string
	// Theme is a theme selector; unknown values resolve to the dynamic theme.
	Theme string
	// DeckID is nil when the widget tracks all decks.
	DeckID       *int64
	DeckName     string
	ShowStreak   bool
	LayoutMode   string
	DaysToShow   int
	DayStartHour int
	DarkMode     bool
	Colors       CustomColors
}

// CustomColors are optional "#RRGGBB" overrides for the custom theme. Empty
// strings keep the dynamic defaults.
type CustomColors struct {
	Completed  string
	Incomplete string
	Background string
}

// Scope maps the deck filter to a review scope.
func (c Config) Scope() review.DeckScope {
	if c.DeckID == nil {
		return review.AllDecks()
	}
	return review.SpecificDeck(*c.DeckID)
}

// Overrides converts the stored color strings into theme overrides. Colors
// are validated on write, so parse failures here are ignored.
func (c Config) Overrides() *theme.Overrides {
	overrides := &theme.Overrides{}
	if c.Colors.Completed != "" {
		if parsed, err := theme.ParseHex(c.Colors.Completed); err == nil {
			overrides.Completed = &parsed
		}
	}
	if c.Colors.Incomplete != "" {
		if parsed, err := theme.ParseHex(c.Colors.Incomplete); err == nil {
			overrides.Incomplete = &parsed
		}
	}
	if c.Colors.Background != "" {
		if parsed, err := theme.ParseHex(c.Colors.Background); err == nil {
			overrides.Background = &parsed
		}
	}
	return overrides
}
