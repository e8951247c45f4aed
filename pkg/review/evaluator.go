package review

import (
	"github.com/ankigrid/ankigrid/pkg/anki"
	log "github.com/sirupsen/logrus"
)

// Evaluation is the outcome of checking live deck counts against a scope.
type Evaluation struct {
	Complete bool
	// TotalPending is the number of cards still due across the evaluated
	// decks, kept for diagnostics.
	TotalPending int
	// MalformedDecks counts decks whose stats could not be read. Each one
	// marks the day incomplete but does not abort evaluation.
	MalformedDecks int
}

// EvaluateCompletion decides whether all review work in scope is done.
// With a specific deck scope only that deck is checked; a deck id that does
// not exist in the snapshot is vacuously complete. With the all-decks scope a
// single deck with pending cards marks the whole day incomplete.
func EvaluateCompletion(decks []anki.Deck, scope DeckScope) Evaluation {
	evaluation := Evaluation{Complete: true}

	for _, deck := range decks {
		if deckID, ok := scope.DeckID(); ok && deck.ID != deckID {
			continue
		}

		if deck.Malformed {
			evaluation.MalformedDecks++
			evaluation.Complete = false
			continue
		}

		pending := deck.Pending()
		evaluation.TotalPending += pending
		if pending > 0 {
			evaluation.Complete = false
			log.Debugf("Deck %q: [L=%d, R=%d, N=%d] = %d pending",
				deck.Name, deck.Learning, deck.Review, deck.New, pending)
		}
	}

	if evaluation.Complete {
		log.Debug("Reviews complete (0 pending)")
	} else {
		log.Debugf("%d cards pending (%d malformed decks)", evaluation.TotalPending, evaluation.MalformedDecks)
	}
	return evaluation
}
