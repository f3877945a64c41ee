// Package pncp - шлюз к REST API Portal Nacional de Contratações Públicas.
package pncp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/senyabanana/pncp-search/internal/models"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// DefaultTimeout - фиксированный таймаут запроса.
const DefaultTimeout = 30 * time.Second

// Client выполняет GET-запросы к API с фиксированным таймаутом и без повторов.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	log        zerolog.Logger
}

// NewClient создаёт новый экземпляр Client.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = leveledLogger{log: log}
	retryClient.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: retryClient.StandardClient(),
		log:        log,
	}
}

// Get выполняет один запрос и возвращает тело ответа.
// Ошибка всегда *models.ErrorResponse с исходным текстом ответа сервера.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	target := c.BaseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", target).Msg("pncp request")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, models.NewErrorResponse(http.StatusGatewayTimeout, "Request timeout")
		}
		return nil, models.NewErrorResponse(http.StatusBadGateway, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadGateway, fmt.Sprintf("failed to read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error().Int("status", resp.StatusCode).Str("url", target).Msg("pncp request failed")
		return nil, models.NewErrorResponse(resp.StatusCode, string(body))
	}
	return body, nil
}

// GetJSON выполняет Get и декодирует тело в out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	body, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return models.NewErrorResponse(http.StatusBadGateway, "Failed to parse API response")
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
