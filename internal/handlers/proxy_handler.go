package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/services"
	"github.com/senyabanana/pncp-search/internal/utils"

	"github.com/rs/zerolog"
)

// ProxyHandler пересылает GET запросы в API PNCP и API консультаций без изменений.
type ProxyHandler struct {
	PNCPAPI     services.Upstream
	ConsultaAPI services.Upstream
	Logger      zerolog.Logger
	Timeout     time.Duration
}

// NewProxyHandler создаёт новый экземпляр ProxyHandler.
func NewProxyHandler(pncpAPI, consultaAPI services.Upstream, logger zerolog.Logger, timeout time.Duration) *ProxyHandler {
	return &ProxyHandler{
		PNCPAPI:     pncpAPI,
		ConsultaAPI: consultaAPI,
		Logger:      logger,
		Timeout:     timeout,
	}
}

// ProxyPNCP обрабатывает запросы к /api/pncp/{path...}
func (h *ProxyHandler) ProxyPNCP(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, h.PNCPAPI)
}

// ProxyConsulta обрабатывает запросы к /api/consulta/{path...}
func (h *ProxyHandler) ProxyConsulta(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, h.ConsultaAPI)
}

func (h *ProxyHandler) forward(w http.ResponseWriter, r *http.Request, upstream services.Upstream) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	endpoint := "/" + r.PathValue("path")
	h.Logger.Info().Str("endpoint", endpoint).Str("params", r.URL.RawQuery).Msg("proxying request")

	body, err := upstream.Get(ctx, endpoint, r.URL.Query())
	if err != nil {
		var errorResponse *models.ErrorResponse
		// ответ сервера с ошибкой отдаётся как есть, со своим статусом
		if errors.As(err, &errorResponse) && json.Valid([]byte(errorResponse.Message)) {
			writeRaw(w, h.Logger, errorResponse.StatusCode, []byte(errorResponse.Message))
			return
		}
		h.Logger.Error().Err(err).Str("endpoint", endpoint).Msg("proxy request failed")
		utils.SendError(w, err, "failed to proxy request")
		return
	}
	writeRaw(w, h.Logger, http.StatusOK, body)
}

func writeRaw(w http.ResponseWriter, logger zerolog.Logger, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Error().Err(err).Msg("failed to write response")
	}
}
