package filters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/senyabanana/pncp-search/internal/debounce"
	"github.com/senyabanana/pncp-search/internal/models"

	"github.com/rs/zerolog"
)

const (
	valueDebounceWait   = 500 * time.Millisecond
	keywordDebounceWait = 300 * time.Millisecond
)

// Config - зависимости контроллера.
type Config struct {
	Gateway    Gateway
	View       View
	Display    DisplayFunc
	Store      SavedSearchStore
	StorageKey string
	Now        func() time.Time
	Logger     zerolog.Logger
}

// Controller хранит текущее состояние формы фильтров и выполняет поиск.
type Controller struct {
	mu      sync.Mutex
	ctx     context.Context
	gateway Gateway
	view    View
	display DisplayFunc
	store   SavedSearchStore
	key     string
	now     func() time.Time
	log     zerolog.Logger

	form    models.FilterState
	filters Filters

	valueDebounce   *debounce.Debouncer
	keywordDebounce *debounce.Debouncer
}

// NewController создаёт контроллер. ctx используется для отложенных поисков.
func NewController(ctx context.Context, cfg Config) *Controller {
	c := &Controller{
		ctx:     ctx,
		gateway: cfg.Gateway,
		view:    cfg.View,
		display: cfg.Display,
		store:   cfg.Store,
		key:     cfg.StorageKey,
		now:     cfg.Now,
		log:     cfg.Logger,
	}
	if c.view == nil {
		c.view = nopView{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.key == "" {
		c.key = models.DefaultSavedSearchKey
	}
	c.form = DefaultFilterState(c.now())
	c.valueDebounce = debounce.New(valueDebounceWait, c.debouncedUpdate)
	c.keywordDebounce = debounce.New(keywordDebounceWait, c.debouncedUpdate)
	return c
}

// Form возвращает текущие значения формы.
func (c *Controller) Form() models.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Clone()
}

// Filters возвращает последний нормализованный набор фильтров.
func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Bind заменяет значения формы целиком, не запуская поиск.
func (c *Controller) Bind(form models.FilterState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form.Clone()
}

// SetValue меняет поле формы и запускает поиск так же, как обработчики ввода на странице:
// суммы с задержкой 500 мс, ключевые слова 300 мс, списки и срок сразу.
func (c *Controller) SetValue(ctx context.Context, field string, values ...string) error {
	var value string
	if len(values) > 0 {
		value = values[0]
	}

	c.mu.Lock()
	switch field {
	case models.FieldUF:
		c.form.UF = value
	case models.FieldModalidade:
		c.form.CodigoModalidadeContratacao = value
	case models.FieldPalavraChave:
		c.form.PalavraChave = value
	case models.FieldDataFinal:
		c.form.DataFinal = value
	case models.FieldPagina:
		c.form.Pagina = value
	case models.FieldTamanhoPagina:
		c.form.TamanhoPagina = value
	case models.FieldValorMinimo:
		c.form.ValorMinimo = value
	case models.FieldValorMaximo:
		c.form.ValorMaximo = value
	case models.FieldMultipleUf:
		c.form.MultipleUf = append([]string(nil), values...)
	case models.FieldMultipleModalidades:
		c.form.MultipleModalidades = append([]string(nil), values...)
	case models.FieldPalavrasChaveAvancada:
		c.form.PalavrasChaveAvancada = value
	case models.FieldPrazoMaximo:
		c.form.PrazoMaximo = value
	default:
		c.mu.Unlock()
		return models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unknown filter field: %s", field))
	}
	c.mu.Unlock()

	switch field {
	case models.FieldValorMinimo, models.FieldValorMaximo:
		c.valueDebounce.Schedule()
	case models.FieldPalavrasChaveAvancada:
		c.keywordDebounce.Schedule()
	case models.FieldMultipleUf, models.FieldMultipleModalidades, models.FieldPrazoMaximo:
		_, err := c.UpdateFilters(ctx)
		return err
	}
	return nil
}

// UpdateFilters собирает фильтры из формы, обновляет счётчик и запускает поиск.
func (c *Controller) UpdateFilters(ctx context.Context) (models.ResultSet, error) {
	c.mu.Lock()
	f := Collect(c.form)
	c.filters = f
	c.mu.Unlock()

	c.view.SetActiveFilterCount(ActiveCount(f))
	return c.SearchWithFilters(ctx, f)
}

// SearchWithFilters выполняет запрос к API и передаёт ответ на отрисовку.
// Ошибка показывается в панели результатов с исходным текстом сервера.
func (c *Controller) SearchWithFilters(ctx context.Context, f Filters) (models.ResultSet, error) {
	c.view.ShowLoading()
	defer c.view.HideLoading()

	params := TransformForAPI(f)
	body, err := c.gateway.Get(ctx, models.OpenTendersEndpoint, params)
	if err != nil {
		c.log.Error().Err(err).Str("params", params.Encode()).Msg("search failed")
		c.view.ShowError("Erro ao carregar licitações: " + err.Error())
		return models.ResultSet{}, err
	}

	var data models.ResultSet
	if err := json.Unmarshal(body, &data); err != nil {
		c.log.Error().Err(err).Msg("failed to decode search response")
		c.view.ShowError("Erro ao carregar licitações: " + string(body))
		return models.ResultSet{}, models.NewErrorResponse(http.StatusBadGateway, "Failed to parse API response")
	}

	filtered := c.DisplayResults(data, f)
	if filtered.TotalRegistros > 0 {
		c.view.SetResultsInfo(filtered.TotalRegistros, len(params) > alwaysPresent)
	} else {
		c.view.ClearResultsInfo()
	}
	return filtered, nil
}

// DisplayResults дофильтровывает ответ и передаёт его внешней функции отрисовки.
func (c *Controller) DisplayResults(data models.ResultSet, f Filters) models.ResultSet {
	filtered := PostFilter(data, f, c.now())
	if c.display != nil {
		c.display(filtered)
	}
	return filtered
}

// ApplyQuickFilter сбрасывает форму, применяет набор и запускает поиск.
// Сброс и наложение набора выполняются под одной блокировкой,
// поэтому промежуточная пустая форма никому не видна.
func (c *Controller) ApplyQuickFilter(ctx context.Context, preset models.QuickFilterPreset) (models.ResultSet, error) {
	c.reset(preset.Filters)
	c.view.HighlightQuickFilter(preset.Name)
	return c.UpdateFilters(ctx)
}

// ResetAllFilters возвращает форму к значениям по умолчанию. Повторный вызов ничего не меняет.
func (c *Controller) ResetAllFilters() {
	c.reset(models.FilterState{})
}

// reset отменяет отложенные поиски и заменяет форму значениями по умолчанию с наложенным patch.
func (c *Controller) reset(patch models.FilterState) {
	c.valueDebounce.Cancel()
	c.keywordDebounce.Cancel()

	c.mu.Lock()
	c.form = DefaultFilterState(c.now()).Merge(patch)
	c.filters = nil
	c.mu.Unlock()

	c.view.SetActiveFilterCount(0)
	c.view.HighlightQuickFilter("")
	c.view.ClearResultsInfo()
}

// SaveCurrentSearch сохраняет непустые поля формы под именем name.
func (c *Controller) SaveCurrentSearch(ctx context.Context, name string) (*models.SavedSearch, error) {
	if c.store == nil {
		return nil, models.NewErrorResponse(http.StatusServiceUnavailable, "saved searches are not configured")
	}

	snapshot := c.Form()
	saved, err := c.store.Save(ctx, c.key, models.SavedSearchRequest{Name: name, Filters: snapshot})
	if err != nil {
		c.log.Error().Err(err).Msg("failed to save search")
		c.view.ShowToast("Erro ao salvar pesquisa: "+err.Error(), "danger")
		return nil, err
	}
	c.view.ShowToast("Pesquisa salva com sucesso!", "success")
	return saved, nil
}

// Close отменяет отложенные поиски.
func (c *Controller) Close() {
	c.valueDebounce.Cancel()
	c.keywordDebounce.Cancel()
}

func (c *Controller) debouncedUpdate() {
	if _, err := c.UpdateFilters(c.ctx); err != nil {
		c.log.Debug().Err(err).Msg("debounced search failed")
	}
}
