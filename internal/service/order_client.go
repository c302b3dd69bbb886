package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/pizza-cart/internal/domain/model"
)

// maxErrorBody bounds how much of a failed response is kept in OrderBackendError.
const maxErrorBody = 4 << 10

// HTTPOrderClient talks to the order backend over JSON/HTTP.
//
//	POST {base}/orders          create
//	GET  {base}/orders/{id}     fetch one
//	GET  {base}/orders?userId=  list a user's orders
type HTTPOrderClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPOrderClient creates a client for the backend at baseURL.
func NewHTTPOrderClient(baseURL string, timeout time.Duration) *HTTPOrderClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPOrderClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// CreateOrder posts payload and decodes the created order.
func (c *HTTPOrderClient) CreateOrder(ctx context.Context, payload model.OrderPayload) (*model.OrderResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}

	var result model.OrderResult
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrder fetches a persisted order. Returns model.ErrOrderNotFound on 404.
func (c *HTTPOrderClient) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := c.do(ctx, http.MethodGet, c.baseURL+"/orders/"+url.PathEscape(id), nil, &order)
	if err != nil {
		if backendErr, ok := err.(*OrderBackendError); ok && backendErr.StatusCode == http.StatusNotFound {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListOrders lists the orders of userID, newest first as the backend returns them.
func (c *HTTPOrderClient) ListOrders(ctx context.Context, userID string, limit int) ([]model.Order, error) {
	query := url.Values{}
	query.Set("userId", userID)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/orders?"+query.Encode(), nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (c *HTTPOrderClient) do(ctx context.Context, method, target string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := BearerTokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("order backend request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close order backend response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &OrderBackendError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode order backend response: %w", err)
	}
	return nil
}
