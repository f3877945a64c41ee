package services

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/senyabanana/pncp-search/internal/chart"
	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/utils"

	"github.com/rs/zerolog"
)

// Идентификаторы canvas диаграмм на странице статистики.
const (
	ModalidadesCanvas = "modalidadesChart"
	UFCanvas          = "ufChart"
)

const statsPageSize = "50"

// StatsResult - агрегат по открытым закупкам и диаграмма для него.
type StatsResult struct {
	Series chart.Series    `json:"series"`
	Chart  *chart.BarChart `json:"chart"`
	Total  int             `json:"total"`
}

// StatsService считает статистику по открытым закупкам.
type StatsService struct {
	Search *SearchService
	Charts *chart.Renderer
	log    zerolog.Logger
}

// NewStatsService создаёт новый экземпляр StatsService.
func NewStatsService(search *SearchService, charts *chart.Renderer, log zerolog.Logger) *StatsService {
	return &StatsService{Search: search, Charts: charts, log: log}
}

// ByModalidade группирует открытые закупки по способу закупки.
func (s *StatsService) ByModalidade(ctx context.Context, args url.Values) (*StatsResult, error) {
	return s.aggregate(ctx, args, ModalidadesCanvas, chart.Config{
		Label:      "Licitações",
		XAxisTitle: "Modalidade",
		YAxisTitle: "Quantidade",
	}, func(t models.Tender) string {
		if t.ModalidadeNome != "" {
			return t.ModalidadeNome
		}
		if t.ModalidadeID != 0 {
			return utils.ModalidadeName(strconv.Itoa(t.ModalidadeID))
		}
		return "N/A"
	})
}

// ByUF группирует открытые закупки по штату.
func (s *StatsService) ByUF(ctx context.Context, args url.Values) (*StatsResult, error) {
	return s.aggregate(ctx, args, UFCanvas, chart.Config{
		Label:      "Licitações",
		XAxisTitle: "UF",
		YAxisTitle: "Quantidade",
	}, func(t models.Tender) string {
		if uf := t.UF(); uf != "" {
			return uf
		}
		return "N/A"
	})
}

func (s *StatsService) aggregate(ctx context.Context, args url.Values, canvasID string, cfg chart.Config, label func(models.Tender) string) (*StatsResult, error) {
	query := url.Values{}
	for k, v := range args {
		query[k] = v
	}
	if query.Get("tamanhoPagina") == "" {
		query.Set("tamanhoPagina", statsPageSize)
	}

	data, err := s.Search.OpenTenderResults(ctx, query)
	if err != nil {
		return nil, err
	}

	series := CountBy(data.Data, label)
	barChart := s.Charts.CreateBarChart(canvasID, series, cfg)
	s.log.Debug().Str("canvas", canvasID).Int("groups", len(series.Labels)).Int("charts", s.Charts.Len()).Msg("stats aggregated")
	return &StatsResult{
		Series: series,
		Chart:  barChart,
		Total:  len(data.Data),
	}, nil
}

// CountBy считает закупки по подписи; группы упорядочены по убыванию количества.
func CountBy(tenders []models.Tender, label func(models.Tender) string) chart.Series {
	counts := make(map[string]int)
	for _, t := range tenders {
		counts[label(t)]++
	}

	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	values := make([]float64, len(labels))
	for i, l := range labels {
		values[i] = float64(counts[l])
	}
	return chart.Series{Labels: labels, Values: values}
}
