package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/senyabanana/pncp-search/internal/cache"
	"github.com/senyabanana/pncp-search/internal/chart"
	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/utils"

	"github.com/rs/zerolog"
)

// Отчёты по разделам API консультаций PNCP.
const (
	ReportTipoOrgao = "tipo_orgao"
	ReportContratos = "contratos"
	ReportAtas      = "atas"
	ReportPlanos    = "planos"
)

const reportPeriodDays = 30

type report struct {
	endpoint string
	labelKey string
	canvasID string
	xAxis    string
	yearly   bool
}

var reports = map[string]report{
	ReportTipoOrgao: {endpoint: "/v1/contratacoes/tipoOrgao", labelKey: "tipoOrgao", canvasID: "tipoOrgaoChart", xAxis: "Tipo de órgão"},
	ReportContratos: {endpoint: "/v1/contratos", labelKey: "tipo", canvasID: "contratosChart", xAxis: "Tipo de contrato"},
	ReportAtas:      {endpoint: "/v1/atas-registro-precos", labelKey: "tipo", canvasID: "atasChart", xAxis: "Tipo de ata"},
	ReportPlanos:    {endpoint: "/v1/pca", labelKey: "tipo", canvasID: "planosChart", xAxis: "Tipo de plano", yearly: true},
}

// JSONUpstream выполняет запрос к API и декодирует ответ в out.
type JSONUpstream interface {
	GetJSON(ctx context.Context, endpoint string, params url.Values, out any) error
}

// ReportRow - строка отчёта: группа, количество и сумма.
type ReportRow struct {
	Label          string  `json:"label"`
	Quantidade     int     `json:"quantidade"`
	Valor          float64 `json:"valor"`
	ValorFormatado string  `json:"valorFormatado"`
}

// ReportResult - отчёт и диаграмма по количеству.
type ReportResult struct {
	Report string          `json:"report"`
	Rows   []ReportRow     `json:"rows"`
	Chart  *chart.BarChart `json:"chart"`
}

// ReportService строит отчёты по органам, контрактам, атам и планам закупок.
type ReportService struct {
	Upstream JSONUpstream
	Cache    cache.Cache
	Charts   *chart.Renderer
	log      zerolog.Logger
	now      func() time.Time
}

// NewReportService создаёт новый экземпляр ReportService.
func NewReportService(upstream JSONUpstream, c cache.Cache, charts *chart.Renderer, log zerolog.Logger) *ReportService {
	if c == nil {
		c = cache.NopCache{}
	}
	return &ReportService{
		Upstream: upstream,
		Cache:    c,
		Charts:   charts,
		log:      log,
		now:      time.Now,
	}
}

// Report возвращает отчёт name, строки упорядочены по убыванию количества.
func (s *ReportService) Report(ctx context.Context, name string, args url.Values) (*ReportResult, error) {
	rep, ok := reports[name]
	if !ok {
		return nil, models.NewErrorResponse(http.StatusNotFound, fmt.Sprintf("unknown report: %s", name))
	}

	params := s.reportParams(rep, args)
	key := cache.Key(name+"_stats", params)

	rows, ok := s.cached(ctx, key)
	if !ok {
		var items reportItems
		if err := s.Upstream.GetJSON(ctx, rep.endpoint, params, &items); err != nil {
			return nil, err
		}
		rows = items.rows(rep.labelKey)
		s.store(ctx, key, rows)
	}

	series := chart.Series{Labels: make([]string, len(rows)), Values: make([]float64, len(rows))}
	for i, row := range rows {
		series.Labels[i] = row.Label
		series.Values[i] = float64(row.Quantidade)
	}
	return &ReportResult{
		Report: name,
		Rows:   rows,
		Chart: s.Charts.CreateBarChart(rep.canvasID, series, chart.Config{
			Label:      "Quantidade",
			XAxisTitle: rep.xAxis,
			YAxisTitle: "Quantidade",
		}),
	}, nil
}

func (s *ReportService) reportParams(rep report, args url.Values) url.Values {
	params := url.Values{}
	now := s.now()

	if rep.yearly {
		ano := args.Get("ano")
		if ano == "" {
			ano = strconv.Itoa(now.Year())
		}
		params.Set("ano", ano)
	} else {
		dataInicial := args.Get("dataInicial")
		if dataInicial == "" {
			dataInicial = now.AddDate(0, 0, -reportPeriodDays).Format("20060102")
		}
		dataFinal := args.Get("dataFinal")
		if dataFinal == "" {
			dataFinal = now.Format("20060102")
		}
		params.Set("dataInicial", utils.CompactDate(dataInicial))
		params.Set("dataFinal", utils.CompactDate(dataFinal))
	}

	if uf := args.Get("uf"); uf != "" {
		params.Set("uf", uf)
	}
	return params
}

func (s *ReportService) cached(ctx context.Context, key string) ([]ReportRow, bool) {
	payload, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var rows []ReportRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cached report is corrupted")
		return nil, false
	}
	s.log.Debug().Str("key", key).Msg("cache hit for report")
	return rows, true
}

func (s *ReportService) store(ctx context.Context, key string, rows []ReportRow) {
	payload, err := json.Marshal(rows)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode report")
		return
	}
	if err := s.Cache.Set(ctx, key, payload); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// reportItems принимает и список, и объект со списком в поле data.
type reportItems []map[string]any

func (r *reportItems) UnmarshalJSON(b []byte) error {
	var list []map[string]any
	if err := json.Unmarshal(b, &list); err == nil {
		*r = list
		return nil
	}
	var wrapped struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	*r = wrapped.Data
	return nil
}

func (r reportItems) rows(labelKey string) []ReportRow {
	rows := make([]ReportRow, 0, len(r))
	for _, item := range r {
		label, _ := item[labelKey].(string)
		if label == "" {
			label = "N/A"
		}
		quantidade, _ := item["quantidade"].(float64)
		valor, _ := item["valorTotal"].(float64)
		rows = append(rows, ReportRow{
			Label:          label,
			Quantidade:     int(quantidade),
			Valor:          valor,
			ValorFormatado: utils.FormatCurrency(valor),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Quantidade > rows[j].Quantidade
	})
	return rows
}
