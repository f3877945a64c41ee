package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/senyabanana/pncp-search/internal/cache"
	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/utils"

	"github.com/rs/zerolog"
)

const (
	proposalsEndpoint = "/v1/contratacoes/proposta"
	minPageSize       = 10
	detailsMessage    = "Os detalhes da licitação não estão disponíveis através da API do PNCP neste momento. " +
		"Você pode acessar os detalhes diretamente no Portal Nacional de Contratações Públicas."
)

// Upstream выполняет запрос к API консультаций PNCP.
type Upstream interface {
	Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error)
}

// SearchService получает открытые закупки из PNCP с кэшированием.
type SearchService struct {
	Upstream Upstream
	Cache    cache.Cache
	WebBase  string
	log      zerolog.Logger
	now      func() time.Time
}

// NewSearchService создаёт новый экземпляр SearchService.
func NewSearchService(upstream Upstream, c cache.Cache, webBase string, log zerolog.Logger) *SearchService {
	if c == nil {
		c = cache.NopCache{}
	}
	return &SearchService{
		Upstream: upstream,
		Cache:    c,
		WebBase:  webBase,
		log:      log,
		now:      time.Now,
	}
}

// Get позволяет использовать сервис как шлюз контроллера фильтров.
func (s *SearchService) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	switch endpoint {
	case models.OpenTendersEndpoint:
		return s.OpenTenders(ctx, params)
	default:
		return nil, models.NewErrorResponse(http.StatusNotFound, fmt.Sprintf("unknown endpoint: %s", endpoint))
	}
}

// OpenTenders возвращает тело ответа PNCP со списком открытых закупок.
func (s *SearchService) OpenTenders(ctx context.Context, args url.Values) ([]byte, error) {
	params, err := s.upstreamParams(args)
	if err != nil {
		return nil, err
	}

	key := cache.Key("open_tenders", params)
	cached, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if ok {
		s.log.Debug().Str("key", key).Msg("cache hit for open tenders")
		return cached, nil
	}

	s.log.Info().Str("params", params.Encode()).Msg("fetching open tenders")
	body, err := s.Upstream.Get(ctx, proposalsEndpoint, params)
	if err != nil {
		return nil, err
	}

	var data models.ResultSet
	if err := json.Unmarshal(body, &data); err != nil {
		s.log.Error().Err(err).Str("body", utils.TruncateText(string(body), 500)).Msg("failed to parse PNCP response")
		return nil, models.NewErrorResponse(http.StatusBadGateway, "Failed to parse API response")
	}
	s.log.Info().Int("records", len(data.Data)).Msg("received open tenders")

	if err := s.Cache.Set(ctx, key, body); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return body, nil
}

// OpenTenderResults возвращает открытые закупки в разобранном виде.
func (s *SearchService) OpenTenderResults(ctx context.Context, args url.Values) (models.ResultSet, error) {
	body, err := s.OpenTenders(ctx, args)
	if err != nil {
		return models.ResultSet{}, err
	}
	var data models.ResultSet
	if err := json.Unmarshal(body, &data); err != nil {
		return models.ResultSet{}, models.NewErrorResponse(http.StatusBadGateway, "Failed to parse API response")
	}
	return data, nil
}

// TenderDetails возвращает ссылку на карточку закупки на портале PNCP.
func (s *SearchService) TenderDetails(numeroControlePNCP string) (models.TenderDetails, error) {
	if numeroControlePNCP == "" {
		return models.TenderDetails{}, models.NewErrorResponse(http.StatusBadRequest, "missing numeroControlePNCP")
	}

	details := models.TenderDetails{
		NumeroControlePNCP: numeroControlePNCP,
		Message:            detailsMessage,
		Status:             "unavailable",
	}
	if path := utils.ConvertPNCPIDToURL(numeroControlePNCP); path != numeroControlePNCP {
		details.PncpWebURL = s.WebBase + "/app/editais/" + path
	}
	return details, nil
}

// upstreamParams приводит параметры запроса к требованиям API PNCP.
func (s *SearchService) upstreamParams(args url.Values) (url.Values, error) {
	params := url.Values{}

	dataFinal := args.Get("dataFinal")
	if dataFinal == "" {
		dataFinal = s.now().Format("20060102")
	}
	params.Set("dataFinal", utils.CompactDate(dataFinal))

	for _, key := range []string{"codigoModalidadeContratacao", "uf", "palavraChave"} {
		if v := args.Get(key); v != "" {
			params.Set(key, v)
		}
	}

	page, size, err := utils.ParsePagination(args.Get("pagina"), args.Get("tamanhoPagina"))
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	if size < minPageSize {
		size = minPageSize
	}
	params.Set("pagina", strconv.Itoa(page))
	params.Set("tamanhoPagina", strconv.Itoa(size))
	return params, nil
}
