// Package catalog resolves customers and products through a remote catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/commerce-admin/internal/domain/errors"
	"github.com/polkiloo/commerce-admin/internal/domain/model"
)

// TooManyRequestsError represents rate limiting signal from the catalog service.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// HTTPClient implements customer and product lookups via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type customerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

type productResponse struct {
	ID           int64               `json:"id"`
	Reference    string              `json:"reference"`
	CategoryID   int64               `json:"categoryId"`
	CategoryName string              `json:"categoryName"`
	Price        decimal.Decimal     `json:"price"`
	Width        decimal.NullDecimal `json:"width"`
	Height       decimal.NullDecimal `json:"height"`
	Depth        decimal.NullDecimal `json:"depth"`
	Stock        int                 `json:"stock"`
	Sales        int                 `json:"sales"`
	Description  string              `json:"description"`
}

// NewHTTPClient creates HTTP catalog client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse catalog url")
	}
	if !parsed.IsAbs() {
		return nil, errors.New("catalog url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// GetCustomer fetches a customer by id.
func (c *HTTPClient) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	var data customerResponse
	found, err := c.get(ctx, "customers", id, &data)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &domainErrors.CustomerNotFoundError{CustomerID: id}
	}
	return &model.Customer{
		ID:        data.ID,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Address:   data.Address,
	}, nil
}

// GetProduct fetches a product by id.
func (c *HTTPClient) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var data productResponse
	found, err := c.get(ctx, "products", id, &data)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &domainErrors.ProductNotFoundError{ProductID: id}
	}
	return &model.Product{
		ID:           data.ID,
		Reference:    data.Reference,
		CategoryID:   data.CategoryID,
		CategoryName: data.CategoryName,
		Price:        data.Price,
		Width:        data.Width,
		Height:       data.Height,
		Depth:        data.Depth,
		Stock:        data.Stock,
		Sales:        data.Sales,
		Description:  data.Description,
	}, nil
}

// get decodes the resource into dst. A 404 yields found=false without error.
func (c *HTTPClient) get(ctx context.Context, resource string, id int64, dst any) (bool, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, resource, strconv.FormatInt(id, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, errors.Wrapf(err, "get %s %d", resource, id)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return false, err
		}
		if err := json.Unmarshal(body, dst); err != nil {
			return false, errors.Wrapf(err, "decode %s %d", resource, id)
		}
		return true, nil
	case http.StatusNotFound:
		return false, nil
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return false, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("catalog request failed",
			slog.String("resource", resource),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return false, errors.Errorf("catalog error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
