package handlers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/senyabanana/pncp-search/internal/services"
	"github.com/senyabanana/pncp-search/internal/utils"

	"github.com/rs/zerolog"
)

// TenderHandler - структура для обработки запросов листинга закупок.
type TenderHandler struct {
	Service *services.SearchService
	Stats   *services.StatsService
	Reports *services.ReportService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewTenderHandler создаёт новый экземпляр TenderHandler.
func NewTenderHandler(service *services.SearchService, stats *services.StatsService, reports *services.ReportService, logger zerolog.Logger, timeout time.Duration) *TenderHandler {
	return &TenderHandler{
		Service: service,
		Stats:   stats,
		Reports: reports,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetOpenTenders обрабатывает запросы для получения открытых закупок.
func (h *TenderHandler) GetOpenTenders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	body, err := h.Service.OpenTenders(ctx, r.URL.Query())
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to fetch open tenders")
		utils.SendError(w, err, "failed to fetch open tenders")
		return
	}

	writeRaw(w, h.Logger, http.StatusOK, body)
}

// GetTenderDetails обрабатывает запросы ссылки на карточку закупки.
func (h *TenderHandler) GetTenderDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	details, err := h.Service.TenderDetails(r.PathValue("id"))
	if err != nil {
		utils.SendError(w, err, "failed to fetch tender details")
		return
	}
	utils.SendJSON(w, details)
}

// GetModalidadeStats обрабатывает запросы статистики по способам закупки.
func (h *TenderHandler) GetModalidadeStats(w http.ResponseWriter, r *http.Request) {
	h.stats(w, r, func(ctx context.Context, args url.Values) (any, error) {
		return h.Stats.ByModalidade(ctx, args)
	})
}

// GetUFStats обрабатывает запросы статистики по штатам.
func (h *TenderHandler) GetUFStats(w http.ResponseWriter, r *http.Request) {
	h.stats(w, r, func(ctx context.Context, args url.Values) (any, error) {
		return h.Stats.ByUF(ctx, args)
	})
}

// GetReportStats обрабатывает запросы отчётов tipo_orgao, contratos, atas и planos.
func (h *TenderHandler) GetReportStats(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("report")
	h.stats(w, r, func(ctx context.Context, args url.Values) (any, error) {
		return h.Reports.Report(ctx, name, args)
	})
}

func (h *TenderHandler) stats(w http.ResponseWriter, r *http.Request, aggregate func(context.Context, url.Values) (any, error)) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	result, err := aggregate(ctx, r.URL.Query())
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to build stats")
		utils.SendError(w, err, "failed to build stats")
		return
	}
	utils.SendJSON(w, result)
}
