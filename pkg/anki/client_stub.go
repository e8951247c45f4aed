package anki

import (
	"context"
	"sync"
)

type ClientStub struct {
	mu          sync.RWMutex
	decks       []Deck
	getDecksErr error
}

func NewClientStub() *ClientStub {
	return &ClientStub{}
}

func (c *ClientStub) GetDecks(ctx context.Context) ([]Deck, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.getDecksErr != nil {
		return nil, c.getDecksErr
	}

	result := make([]Deck, len(c.decks))
	copy(result, c.decks)
	return result, nil
}

func (c *ClientStub) SetDecks(decks []Deck) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decks = decks
}

func (c *ClientStub) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getDecksErr = err
}

func (c *ClientStub) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decks = nil
	c.getDecksErr = nil
}
