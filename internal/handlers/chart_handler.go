package handlers

import (
	"net/http"

	"github.com/senyabanana/pncp-search/internal/chart"
	"github.com/senyabanana/pncp-search/internal/utils"
)

// ChartHandler отдаёт и уничтожает диаграммы, построенные страницей статистики.
type ChartHandler struct {
	Charts *chart.Renderer
}

// NewChartHandler создаёт новый экземпляр ChartHandler.
func NewChartHandler(charts *chart.Renderer) *ChartHandler {
	return &ChartHandler{Charts: charts}
}

// Chart обрабатывает GET и DELETE для диаграммы на canvas.
func (h *ChartHandler) Chart(w http.ResponseWriter, r *http.Request) {
	canvasID := r.PathValue("canvas")

	switch r.Method {
	case http.MethodGet:
		barChart, ok := h.Charts.Get(canvasID)
		if !ok {
			utils.SendErrorResponse(w, http.StatusNotFound, "chart not found")
			return
		}
		utils.SendJSON(w, barChart)
	case http.MethodDelete:
		h.Charts.Destroy(canvasID)
		w.WriteHeader(http.StatusNoContent)
	default:
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET and DELETE are allowed")
	}
}
