package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ankigrid/ankigrid/internal/config"
	log "github.com/sirupsen/logrus"
)

const connectVersion = 6

// Deck is a single Anki deck with its pending counts for today.
// A deck whose stats could not be read or parsed is flagged Malformed; its
// counts are zero but it must not be treated as finished.
type Deck struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Learning  int    `json:"learning"`
	Review    int    `json:"review"`
	New       int    `json:"new"`
	Malformed bool   `json:"-"`
}

// Pending returns the total number of cards still due in the deck.
func (d Deck) Pending() int {
	return d.Learning + d.Review + d.New
}

type Client interface {
	GetDecks(ctx context.Context) ([]Deck, error)
}

type ClientImpl struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.Anki) *ClientImpl {
	return &ClientImpl{
		baseURL: cfg.URL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type connectRequest struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type connectResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke performs a single AnkiConnect action and decodes the result into out.
func (c *ClientImpl) invoke(ctx context.Context, action string, params any, out any) error {
	body, err := json.Marshal(connectRequest{Action: action, Version: connectVersion, Params: params})
	if err != nil {
		return fmt.Errorf("could not encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach AnkiConnect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("AnkiConnect returned status %d for %s", resp.StatusCode, action)
	}

	var envelope connectResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("could not decode %s response: %w", action, err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("AnkiConnect error for %s: %s", action, *envelope.Error)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("could not decode %s result: %w", action, err)
		}
	}
	return nil
}

type deckStats struct {
	DeckID      int64 `json:"deck_id"`
	NewCount    int   `json:"new_count"`
	LearnCount  int   `json:"learn_count"`
	ReviewCount int   `json:"review_count"`
}

// GetDecks returns all decks known to AnkiConnect together with their pending
// counts. Decks whose stats entry is missing or carries negative counts are
// returned with Malformed set instead of being dropped.
func (c *ClientImpl) GetDecks(ctx context.Context) ([]Deck, error) {
	var namesAndIds map[string]int64
	if err := c.invoke(ctx, "deckNamesAndIds", nil, &namesAndIds); err != nil {
		log.Errorf("Failed to list decks: %v", err)
		return nil, err
	}

	names := make([]string, 0, len(namesAndIds))
	for name := range namesAndIds {
		names = append(names, name)
	}

	var statsByDeckId map[string]deckStats
	params := map[string]any{"decks": names}
	if err := c.invoke(ctx, "getDeckStats", params, &statsByDeckId); err != nil {
		log.Errorf("Failed to get deck stats: %v", err)
		return nil, err
	}

	decks := make([]Deck, 0, len(namesAndIds))
	for name, id := range namesAndIds {
		deck := Deck{ID: id, Name: name}
		stats, ok := statsByDeckId[strconv.FormatInt(id, 10)]
		if !ok || stats.NewCount < 0 || stats.LearnCount < 0 || stats.ReviewCount < 0 {
			log.Warnf("Deck %q (%d) has missing or invalid stats", name, id)
			deck.Malformed = true
		} else {
			deck.Learning = stats.LearnCount
			deck.Review = stats.ReviewCount
			deck.New = stats.NewCount
		}
		decks = append(decks, deck)
	}

	log.Debugf("Loaded %d decks from AnkiConnect", len(decks))
	return decks, nil
}
