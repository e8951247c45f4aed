package app

import (
	"github.com/ankigrid/ankigrid/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Decks
	r.HandleFunc("/api/decks", deps.AnkiHandler.ListDecks).Methods("GET")

	// Review history
	r.HandleFunc("/api/review/history", deps.ReviewHandler.GetHistory).Methods("GET")
	r.HandleFunc("/api/review/history", deps.ReviewHandler.ClearHistory).Methods("DELETE")

	// Widget configurations
	r.HandleFunc("/api/widget", deps.WidgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/widget", deps.WidgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/widget/{uid}", deps.WidgetHandler.Get).Methods("GET")
	r.HandleFunc("/api/widget/{uid}", deps.WidgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/widget/{uid}", deps.WidgetHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/widget/{uid}/image", deps.WidgetHandler.GetImage).Methods("GET")
	r.HandleFunc("/api/widget/{uid}/streak", deps.WidgetHandler.GetStreak).Methods("GET")

	// Refresh
	r.HandleFunc("/api/refresh", deps.RefreshHandler.Trigger).Methods("POST")
}
