package anki

import (
	"encoding/json"
	"net/http"

	"github.com/ankigrid/ankigrid/internal/rest"
	log "github.com/sirupsen/logrus"
)

type DeckDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Learning int    `json:"learning"`
	Review   int    `json:"review"`
	New      int    `json:"new"`
	Pending  int    `json:"pending"`
}

type Handler struct {
	client Client
}

func NewHandler(client Client) *Handler {
	return &Handler{client}
}

// ListDecks returns all decks currently known to AnkiConnect, for deck pickers.
func (handler *Handler) ListDecks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	decks, err := handler.client.GetDecks(r.Context())
	if err != nil {
		log.Errorf("Failed to load decks: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Anki is not reachable",
			Details: err.Error(),
		})
		return
	}

	decksDTO := make([]DeckDTO, 0, len(decks))
	for _, deck := range decks {
		decksDTO = append(decksDTO, DeckDTO{
			ID:       deck.ID,
			Name:     deck.Name,
			Learning: deck.Learning,
			Review:   deck.Review,
			New:      deck.New,
			Pending:  deck.Pending(),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(decksDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
