package widget

import (
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"strconv"

	"github.com/ankigrid/ankigrid/internal/config"
	"github.com/ankigrid/ankigrid/internal/rest"
	"github.com/ankigrid/ankigrid/pkg/grid"
	"github.com/ankigrid/ankigrid/pkg/review"
	"github.com/ankigrid/ankigrid/pkg/theme"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// renderResolution is the canvas size per column/row when the request does
// not specify explicit dimensions.
const renderResolution = 150

// maxCanvasDimension caps requested image sizes.
const maxCanvasDimension = 4096

type ConfigDTO struct {
	Uid          string           `json:"uid,omitempty"`
	Name         string           `json:"name"`
	Theme        string           `json:"theme,omitempty"`
	DeckID       *int64           `json:"deckId,omitempty"`
	DeckName     string           `json:"deckName,omitempty"`
	ShowStreak   bool             `json:"showStreak"`
	LayoutMode   string           `json:"layoutMode,omitempty"`
	DaysToShow   int              `json:"daysToShow,omitempty"`
	DayStartHour *int             `json:"dayStartHour,omitempty"`
	DarkMode     bool             `json:"darkMode"`
	Colors       *CustomColorsDTO `json:"colors,omitempty"`
}

type CustomColorsDTO struct {
	Completed  string `json:"completed,omitempty"`
	Incomplete string `json:"incomplete,omitempty"`
	Background string `json:"background,omitempty"`
}

type StreakDTO struct {
	Streak int `json:"streak"`
}

type Handler struct {
	widgetService Service
	reviewService review.Service
	themeResolver *theme.Resolver
	defaults      config.Widget
}

func NewHandler(widgetService Service, reviewService review.Service, themeResolver *theme.Resolver, defaults config.Widget) *Handler {
	return &Handler{widgetService, reviewService, themeResolver, defaults}
}

func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new widget configuration")
	w.Header().Set("Content-Type", "application/json")

	var dto ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.widgetService.Create(r.Context(), handler.dtoToConfig(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(configToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	configs, err := handler.widgetService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ConfigDTO, 0, len(configs))
	for _, cfg := range configs {
		dtos = append(dtos, configToDTO(cfg))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cfg, ok := handler.loadConfig(w, r)
	if !ok {
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(configToDTO(cfg)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["uid"]

	var dto ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Uid != "" && dto.Uid != uid {
		http.Error(w, "Widget uid in request body does not match path", http.StatusBadRequest)
		return
	}

	cfg := handler.dtoToConfig(dto)
	cfg.Uid = uid
	ok, err := handler.widgetService.Update(r.Context(), cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !ok {
		http.Error(w, "Widget configuration not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(configToDTO(cfg)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	ok, err := handler.widgetService.Delete(r.Context(), uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Widget configuration not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetImage renders the widget's contribution grid as a PNG. Width and height
// default to a resolution derived from the configured day window.
func (handler *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	cfg, ok := handler.loadConfig(w, r)
	if !ok {
		return
	}

	columns := (cfg.DaysToShow + grid.Rows - 1) / grid.Rows
	width, ok := handler.dimensionParam(w, r, "width", columns*renderResolution)
	if !ok {
		return
	}
	height, ok := handler.dimensionParam(w, r, "height", grid.Rows*renderResolution)
	if !ok {
		return
	}

	days, err := handler.reviewService.GetReviewData(r.Context(), cfg.DaysToShow, cfg.Scope(), cfg.DayStartHour)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	mode, err := grid.ParseMode(cfg.LayoutMode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	palette := handler.themeResolver.Resolve(cfg.Theme, cfg.DarkMode, cfg.Overrides())
	img, err := grid.Render(days, width, height, mode, palette)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if cfg.ShowStreak {
		w.Header().Set("X-Ankigrid-Streak", strconv.Itoa(review.Streak(days)))
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := png.Encode(w, img); err != nil {
		log.Errorf("Failed to encode grid image: %v", err)
	}
}

func (handler *Handler) GetStreak(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cfg, ok := handler.loadConfig(w, r)
	if !ok {
		return
	}

	days, err := handler.reviewService.GetReviewData(r.Context(), cfg.DaysToShow, cfg.Scope(), cfg.DayStartHour)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(StreakDTO{Streak: review.Streak(days)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) loadConfig(w http.ResponseWriter, r *http.Request) (Config, bool) {
	uid := mux.Vars(r)["uid"]

	cfg, err := handler.widgetService.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			http.Error(w, "Widget configuration not found", http.StatusNotFound)
			return Config{}, false
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return Config{}, false
	}
	return cfg, true
}

func (handler *Handler) dimensionParam(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 || parsed > maxCanvasDimension {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid " + name + " parameter",
			Details: "must be an integer between 1 and " + strconv.Itoa(maxCanvasDimension),
		})
		return 0, false
	}
	return parsed, true
}

func (handler *Handler) dtoToConfig(dto ConfigDTO) Config {
	dayStartHour := handler.defaults.DayStartHour
	if dto.DayStartHour != nil {
		dayStartHour = *dto.DayStartHour
	}
	cfg := Config{
		Uid:          dto.Uid,
		Name:         dto.Name,
		Theme:        dto.Theme,
		DeckID:       dto.DeckID,
		DeckName:     dto.DeckName,
		ShowStreak:   dto.ShowStreak,
		LayoutMode:   dto.LayoutMode,
		DaysToShow:   dto.DaysToShow,
		DayStartHour: dayStartHour,
		DarkMode:     dto.DarkMode,
	}
	if dto.Colors != nil {
		cfg.Colors = CustomColors{
			Completed:  dto.Colors.Completed,
			Incomplete: dto.Colors.Incomplete,
			Background: dto.Colors.Background,
		}
	}
	return cfg
}

func configToDTO(cfg Config) ConfigDTO {
	dayStartHour := cfg.DayStartHour
	dto := ConfigDTO{
		Uid:          cfg.Uid,
		Name:         cfg.Name,
		Theme:        cfg.Theme,
		DeckID:       cfg.DeckID,
		DeckName:     cfg.DeckName,
		ShowStreak:   cfg.ShowStreak,
		LayoutMode:   cfg.LayoutMode,
		DaysToShow:   cfg.DaysToShow,
		DayStartHour: &dayStartHour,
		DarkMode:     cfg.DarkMode,
	}
	if cfg.Colors != (CustomColors{}) {
		dto.Colors = &CustomColorsDTO{
			Completed:  cfg.Colors.Completed,
			Incomplete: cfg.Colors.Incomplete,
			Background: cfg.Colors.Background,
		}
	}
	return dto
}
