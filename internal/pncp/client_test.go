package pncp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/senyabanana/pncp-search/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/contratacoes/proposta", r.URL.Path)
		assert.Equal(t, "SP", r.URL.Query().Get("uf"))
		w.Write([]byte(`{"data":[],"totalRegistros":0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())
	body, err := c.Get(context.Background(), "/v1/contratacoes/proposta", url.Values{"uf": {"SP"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"totalRegistros":0}`, string(body))
}

func TestGet_ServerErrorIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("serviço indisponível"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())
	_, err := c.Get(context.Background(), "/x", nil)
	require.Error(t, err)

	var errorResponse *models.ErrorResponse
	require.True(t, errors.As(err, &errorResponse))
	assert.Equal(t, http.StatusServiceUnavailable, errorResponse.StatusCode)
	assert.Equal(t, "serviço indisponível", errorResponse.Message)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGet_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 20*time.Millisecond, zerolog.Nop())
	_, err := c.Get(context.Background(), "/slow", nil)

	var errorResponse *models.ErrorResponse
	require.True(t, errors.As(err, &errorResponse))
	assert.Equal(t, http.StatusGatewayTimeout, errorResponse.StatusCode)
}

func TestGetJSON_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, zerolog.Nop())
	var out models.ResultSet
	err := c.GetJSON(context.Background(), "/x", nil, &out)

	var errorResponse *models.ErrorResponse
	require.True(t, errors.As(err, &errorResponse))
	assert.Equal(t, http.StatusBadGateway, errorResponse.StatusCode)
}
