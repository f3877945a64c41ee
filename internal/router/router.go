package router

import (
	"net/http"

	"github.com/senyabanana/pncp-search/internal/handlers"
)

func InitRoutes(
	tenderHandler *handlers.TenderHandler,
	searchHandler *handlers.SearchHandler,
	savedSearchHandler *handlers.SavedSearchHandler,
	healthHandler *handlers.HealthHandler,
	proxyHandler *handlers.ProxyHandler,
	chartHandler *handlers.ChartHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)
	mux.HandleFunc("/api/health", healthHandler.Health)

	mux.HandleFunc("/api/licitacoes/abertas", tenderHandler.GetOpenTenders)
	mux.HandleFunc("/api/licitacoes/detalhes/{id...}", tenderHandler.GetTenderDetails)
	mux.HandleFunc("/api/estatisticas/modalidades", tenderHandler.GetModalidadeStats)
	mux.HandleFunc("/api/estatisticas/uf", tenderHandler.GetUFStats)
	mux.HandleFunc("/api/estatisticas/{report}", tenderHandler.GetReportStats)
	mux.HandleFunc("/api/graficos/{canvas}", chartHandler.Chart)

	mux.HandleFunc("/api/pncp/{path...}", proxyHandler.ProxyPNCP)
	mux.HandleFunc("/api/consulta/{path...}", proxyHandler.ProxyConsulta)

	mux.HandleFunc("/api/search", searchHandler.Search)
	mux.HandleFunc("/api/quick-filters", searchHandler.ListQuickFilters)
	mux.HandleFunc("/api/quick-filters/{name}", searchHandler.ApplyQuickFilter)

	mux.HandleFunc("/api/saved-searches", savedSearchHandler.SavedSearches)

	return mux
}
