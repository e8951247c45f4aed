package refresh

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	scheduler *Scheduler
}

func NewHandler(scheduler *Scheduler) *Handler {
	return &Handler{scheduler}
}

// Trigger runs an immediate refresh of all widget scopes.
func (handler *Handler) Trigger(w http.ResponseWriter, r *http.Request) {
	log.Debug("Manual refresh triggered")
	if err := handler.scheduler.RefreshAll(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
