package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/senyabanana/pncp-search/internal/cache"
	"github.com/senyabanana/pncp-search/internal/chart"
	"github.com/senyabanana/pncp-search/internal/handlers"
	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/repository"
	"github.com/senyabanana/pncp-search/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUpstream struct{}

func (stubUpstream) Get(context.Context, string, url.Values) ([]byte, error) {
	return []byte(`{"data": [], "totalRegistros": 0}`), nil
}

func (u stubUpstream) GetJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	body, err := u.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func newTestRouter() http.Handler {
	log := zerolog.Nop()
	searchService := services.NewSearchService(stubUpstream{}, cache.NopCache{}, "https://pncp.gov.br", log)
	charts := chart.NewRenderer()
	statsService := services.NewStatsService(searchService, charts, log)
	reportService := services.NewReportService(stubUpstream{}, cache.NopCache{}, charts, log)
	savedService := services.NewSavedSearchService(repository.NewMemorySavedSearchRepository())

	return InitRoutes(
		handlers.NewTenderHandler(searchService, statsService, reportService, log, time.Second),
		handlers.NewSearchHandler(searchService, savedService, log, time.Second),
		handlers.NewSavedSearchHandler(savedService, log, time.Second),
		handlers.NewHealthHandler(nil, nil, time.Second),
		handlers.NewProxyHandler(stubUpstream{}, stubUpstream{}, log, time.Second),
		handlers.NewChartHandler(charts),
	)
}

func TestInitRoutes(t *testing.T) {
	mux := newTestRouter()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/ping", http.StatusOK},
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/licitacoes/abertas", http.StatusOK},
		{http.MethodGet, "/api/estatisticas/modalidades", http.StatusOK},
		{http.MethodGet, "/api/estatisticas/uf", http.StatusOK},
		{http.MethodGet, "/api/estatisticas/tipo_orgao", http.StatusOK},
		{http.MethodGet, "/api/estatisticas/planos?ano=2023", http.StatusOK},
		{http.MethodGet, "/api/estatisticas/desconhecido", http.StatusNotFound},
		{http.MethodGet, "/api/graficos/ufChart", http.StatusNotFound},
		{http.MethodGet, "/api/pncp/v1/orgaos/123/compras", http.StatusOK},
		{http.MethodGet, "/api/consulta/v1/contratacoes/publicacao", http.StatusOK},
		{http.MethodGet, "/api/quick-filters", http.StatusOK},
		{http.MethodPost, "/api/quick-filters/Obras", http.StatusOK},
		{http.MethodGet, "/api/saved-searches", http.StatusOK},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestInitRoutes_PathValues(t *testing.T) {
	mux := newTestRouter()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/licitacoes/detalhes/12345678000190-1-000123/2024", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var details models.TenderDetails
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&details))
	assert.Equal(t, "12345678000190-1-000123/2024", details.NumeroControlePNCP)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/quick-filters/Preg%C3%B5es%20SP", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var state handlers.PageState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, "Pregões SP", state.QuickFilter)
}

func TestInitRoutes_StatsPrecedence(t *testing.T) {
	mux := newTestRouter()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/estatisticas/modalidades", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats services.StatsResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	require.NotNil(t, stats.Chart)
	assert.Equal(t, services.ModalidadesCanvas, stats.Chart.CanvasID)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/estatisticas/contratos", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var report services.ReportResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, services.ReportContratos, report.Report)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/graficos/contratosChart", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
