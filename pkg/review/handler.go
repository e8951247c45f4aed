package review

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ankigrid/ankigrid/internal/config"
	"github.com/ankigrid/ankigrid/internal/rest"
	log "github.com/sirupsen/logrus"
)

type DayStatusDTO struct {
	Date        string `json:"date"`
	Completed   bool   `json:"completed"`
	ReviewCount int    `json:"reviewCount"`
}

type HistoryDTO struct {
	Days   []DayStatusDTO `json:"days"`
	Streak int            `json:"streak"`
}

type Handler struct {
	service  Service
	defaults config.Widget
}

func NewHandler(service Service, defaults config.Widget) *Handler {
	return &Handler{service, defaults}
}

// GetHistory returns the day-status sequence for the requested window,
// most recent day first, together with the current streak.
func (handler *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	daysToShow := handler.defaults.DaysToShow
	if daysString := r.URL.Query().Get("days"); daysString != "" {
		parsed, err := strconv.Atoi(daysString)
		if err != nil || parsed < 1 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid days parameter",
				Details: "days must be a positive integer",
			})
			return
		}
		daysToShow = parsed
	}

	scope := AllDecks()
	if deckIdString := r.URL.Query().Get("deckId"); deckIdString != "" {
		deckId, err := strconv.ParseInt(deckIdString, 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid deckId parameter",
				Details: "deckId must be an integer",
			})
			return
		}
		scope = SpecificDeck(deckId)
	}

	days, err := handler.service.GetReviewData(r.Context(), daysToShow, scope, handler.defaults.DayStartHour)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	daysDTO := make([]DayStatusDTO, 0, len(days))
	for _, day := range days {
		daysDTO = append(daysDTO, DayStatusDTO{
			Date:        day.Date.Format(time.DateOnly),
			Completed:   day.Completed,
			ReviewCount: day.ReviewCount,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(HistoryDTO{Days: daysDTO, Streak: Streak(days)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ClearHistory removes all persisted daily progress records.
func (handler *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	log.Info("Received request to clear review history")
	if err := handler.service.ClearHistory(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
