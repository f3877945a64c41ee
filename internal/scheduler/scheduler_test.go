package scheduler

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls []url.Values
	err   error
}

func (f *fakeFetcher) OpenTenders(_ context.Context, params url.Values) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, params)
	return nil, f.err
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestQueries(t *testing.T) {
	w := New(&fakeFetcher{}, "@every 1h", zerolog.Nop())
	w.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	queries := w.Queries()
	require.Len(t, queries, 5)

	assert.Equal(t, "2024-01-01", queries[0].Get("dataFinal"))
	assert.Equal(t, "1", queries[0].Get("pagina"))
	assert.Equal(t, "SP", queries[1].Get("uf"))
	assert.Equal(t, "6", queries[1].Get("codigoModalidadeContratacao"))
	// "Valores Altos" фильтрует только по сумме, запрос к API совпадает с базовым
	assert.Equal(t, queries[0], queries[2])
	for _, q := range queries {
		assert.False(t, q.Has("valorMinimo"))
	}
}

func TestRun_ContinuesAfterErrors(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	w := New(f, "@every 1h", zerolog.Nop())

	w.Run(context.Background())
	assert.Equal(t, 5, f.count())
}

func TestStart_RunsImmediately(t *testing.T) {
	f := &fakeFetcher{}
	w := New(f, "@every 1h", zerolog.Nop())

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	assert.Eventually(t, func() bool { return f.count() == 5 }, time.Second, 10*time.Millisecond)
}

func TestStart_Disabled(t *testing.T) {
	f := &fakeFetcher{}
	w := New(f, "", zerolog.Nop())
	require.NoError(t, w.Start(context.Background()))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, f.count())
}

func TestStart_BadSpec(t *testing.T) {
	w := New(&fakeFetcher{}, "not a spec", zerolog.Nop())
	assert.Error(t, w.Start(context.Background()))
}

type blockingFetcher struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (f *blockingFetcher) OpenTenders(context.Context, url.Values) ([]byte, error) {
	f.once.Do(func() { close(f.started) })
	<-f.release
	return nil, nil
}

func TestStop_WaitsForInitialRun(t *testing.T) {
	fetcher := &blockingFetcher{started: make(chan struct{}), release: make(chan struct{})}
	w := New(fetcher, "@every 1h", zerolog.Nop())
	require.NoError(t, w.Start(context.Background()))
	<-fetcher.started

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()

	isStopped := func() bool {
		select {
		case <-stopped:
			return true
		default:
			return false
		}
	}
	assert.Never(t, isStopped, 100*time.Millisecond, 10*time.Millisecond)

	close(fetcher.release)
	assert.Eventually(t, isStopped, time.Second, 10*time.Millisecond)
}
