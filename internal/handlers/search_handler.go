package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/senyabanana/pncp-search/internal/filters"
	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/presets"
	"github.com/senyabanana/pncp-search/internal/utils"

	"github.com/rs/zerolog"
)

// SearchHandler - структура для обработки запросов страницы поиска.
type SearchHandler struct {
	Gateway filters.Gateway
	Store   filters.SavedSearchStore
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewSearchHandler создаёт новый экземпляр SearchHandler.
func NewSearchHandler(gateway filters.Gateway, store filters.SavedSearchStore, logger zerolog.Logger, timeout time.Duration) *SearchHandler {
	return &SearchHandler{
		Gateway: gateway,
		Store:   store,
		Logger:  logger,
		Timeout: timeout,
	}
}

// Search обрабатывает запросы поиска по состоянию формы.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var form models.FilterState
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	controller, view := h.newController(ctx, r)
	defer controller.Close()
	controller.Bind(form)

	results, err := controller.UpdateFilters(ctx)
	h.respond(w, controller, view, results, err)
}

// ListQuickFilters обрабатывает запросы списка быстрых фильтров.
func (h *SearchHandler) ListQuickFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}
	utils.SendJSON(w, presets.All())
}

// ApplyQuickFilter обрабатывает запросы применения быстрого фильтра.
func (h *SearchHandler) ApplyQuickFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	preset, err := presets.Find(r.PathValue("name"))
	if err != nil {
		utils.SendError(w, err, "failed to find quick filter")
		return
	}

	controller, view := h.newController(ctx, r)
	defer controller.Close()

	results, err := controller.ApplyQuickFilter(ctx, preset)
	h.respond(w, controller, view, results, err)
}

func (h *SearchHandler) newController(ctx context.Context, r *http.Request) (*filters.Controller, *pageView) {
	view := &pageView{}
	controller := filters.NewController(ctx, filters.Config{
		Gateway:    h.Gateway,
		View:       view,
		Display:    view.display,
		Store:      h.Store,
		StorageKey: r.URL.Query().Get("key"),
		Logger:     h.Logger,
	})
	return controller, view
}

func (h *SearchHandler) respond(w http.ResponseWriter, controller *filters.Controller, view *pageView, results models.ResultSet, err error) {
	if err != nil {
		h.Logger.Error().Err(err).Msg("search failed")
		status := http.StatusBadGateway
		var errorResponse *models.ErrorResponse
		if errors.As(err, &errorResponse) && errorResponse.StatusCode < http.StatusInternalServerError {
			status = errorResponse.StatusCode
		}
		message := view.snapshot().Error
		if message == "" {
			message = err.Error()
		}
		utils.SendErrorResponse(w, status, message)
		return
	}

	state := view.snapshot()
	state.Form = controller.Form()
	state.Results = &results
	utils.SendJSON(w, state)
}
