// Package scheduler периодически прогревает кэш открытых закупок.
package scheduler

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/senyabanana/pncp-search/internal/filters"
	"github.com/senyabanana/pncp-search/internal/presets"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Fetcher загружает открытые закупки по параметрам API.
type Fetcher interface {
	OpenTenders(ctx context.Context, params url.Values) ([]byte, error)
}

// Warmer запрашивает первую страницу и страницы быстрых фильтров по расписанию.
type Warmer struct {
	cron    *cron.Cron
	fetcher Fetcher
	spec    string
	log     zerolog.Logger
	now     func() time.Time

	// первый прогрев запускается вне cron, Stop ждёт и его
	initial sync.WaitGroup
}

// New создаёт Warmer с расписанием spec, например "@every 10m".
func New(fetcher Fetcher, spec string, log zerolog.Logger) *Warmer {
	return &Warmer{
		cron:    cron.New(),
		fetcher: fetcher,
		spec:    spec,
		log:     log,
		now:     time.Now,
	}
}

// Start регистрирует задачу и запускает планировщик. Первый прогрев выполняется сразу.
func (w *Warmer) Start(ctx context.Context) error {
	if w.spec == "" {
		w.log.Info().Msg("cache warmup disabled")
		return nil
	}

	if _, err := w.cron.AddFunc(w.spec, func() { w.Run(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	w.cron.Start()
	w.log.Info().Str("spec", w.spec).Msg("cache warmup started")

	w.initial.Add(1)
	go func() {
		defer w.initial.Done()
		w.Run(ctx)
	}()
	return nil
}

// Stop останавливает планировщик и ждёт завершения текущего прогрева.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
	w.initial.Wait()
	w.log.Info().Msg("cache warmup stopped")
}

// Queries возвращает параметры API для страницы по умолчанию и для каждого быстрого фильтра.
func (w *Warmer) Queries() []url.Values {
	base := filters.DefaultFilterState(w.now())
	queries := []url.Values{filters.TransformForAPI(filters.Collect(base))}
	for _, p := range presets.All() {
		queries = append(queries, filters.TransformForAPI(filters.Collect(base.Merge(p.Filters))))
	}
	return queries
}

// Run выполняет один прогрев. Ошибки только логируются.
func (w *Warmer) Run(ctx context.Context) {
	queries := w.Queries()
	failed := 0
	for _, params := range queries {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.fetcher.OpenTenders(ctx, params); err != nil {
			failed++
			w.log.Warn().Err(err).Str("params", params.Encode()).Msg("cache warmup failed")
		}
	}
	w.log.Info().Int("queries", len(queries)).Int("failed", failed).Msg("cache warmup complete")
}
