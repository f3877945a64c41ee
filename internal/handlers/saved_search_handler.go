package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/senyabanana/pncp-search/internal/filters"
	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/services"
	"github.com/senyabanana/pncp-search/internal/utils"

	"github.com/rs/zerolog"
)

// SavedSearchHandler - структура для обработки запросов сохранённых поисков.
type SavedSearchHandler struct {
	Service *services.SavedSearchService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewSavedSearchHandler создаёт новый экземпляр SavedSearchHandler.
func NewSavedSearchHandler(service *services.SavedSearchService, logger zerolog.Logger, timeout time.Duration) *SavedSearchHandler {
	return &SavedSearchHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// SavedSearches обрабатывает GET, POST и DELETE для списка сохранённых поисков.
func (h *SavedSearchHandler) SavedSearches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.save(w, r)
	case http.MethodDelete:
		h.clear(w, r)
	default:
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET, POST and DELETE are allowed")
	}
}

func (h *SavedSearchHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	searches, err := h.Service.List(ctx, r.URL.Query().Get("key"))
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list saved searches")
		utils.SendError(w, err, "failed to list saved searches")
		return
	}
	utils.SendJSON(w, searches)
}

func (h *SavedSearchHandler) save(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var req models.SavedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view := &pageView{}
	controller := filters.NewController(ctx, filters.Config{
		View:       view,
		Store:      h.Service,
		StorageKey: r.URL.Query().Get("key"),
		Logger:     h.Logger,
	})
	defer controller.Close()
	controller.Bind(req.Filters)

	saved, err := controller.SaveCurrentSearch(ctx, req.Name)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to save search")
		utils.SendError(w, err, "failed to save search")
		return
	}
	utils.SendJSON(w, saved)
}

func (h *SavedSearchHandler) clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := h.Service.Clear(ctx, r.URL.Query().Get("key")); err != nil {
		h.Logger.Error().Err(err).Msg("failed to clear saved searches")
		utils.SendError(w, err, "failed to clear saved searches")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
