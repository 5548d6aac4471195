package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"shopify-price-sync/internal/adapters/marketplace/dto"
	"shopify-price-sync/internal/config"
	"shopify-price-sync/internal/logging"
)

// defaultRetryAfter is the wait applied to a 429 that carries no usable
// Retry-After header.
const defaultRetryAfter = 5 * time.Second

type PriceService interface {
	Item(ctx context.Context, sku string) (Listing, error)
}

// Listing is one marketplace lookup result. A nil price means the item
// exists but publishes no price, which is a valid no-op outcome.
type Listing struct {
	Price *decimal.Decimal
}

type Client struct {
	config     config.MarketplaceConfig
	httpClient *http.Client
	logger     logging.LoggerService
}

func NewClient(config config.MarketplaceConfig, httpClient *http.Client, logger logging.LoggerService) *Client {
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Item fetches one listing by SKU. It never retries; the error type tells
// the caller what happened: *RateLimitedError, *NotFoundError,
// *ForbiddenError or *StatusError.
func (c *Client) Item(ctx context.Context, sku string) (Listing, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return Listing{}, errors.New("marketplace sku is required")
	}
	base := strings.TrimRight(strings.TrimSpace(c.config.BaseUrl), "/")
	if base == "" {
		return Listing{}, errors.New("marketplace base url is empty")
	}

	endpoint := base + "/items/" + url.PathEscape(sku)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Listing{}, err
	}
	req.Header.Set("Accept", "application/json")
	if token := strings.TrimSpace(c.config.Token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := c.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.LogError("error marketplace request", err)
		}
		return Listing{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Listing{}, err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return Listing{}, &RateLimitedError{Sku: sku, RetryAfter: retryAfterFrom(resp.Header)}
	case resp.StatusCode == http.StatusNotFound:
		return Listing{}, &NotFoundError{Sku: sku}
	case resp.StatusCode == http.StatusForbidden:
		return Listing{}, &ForbiddenError{Sku: sku}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return Listing{}, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	var item dto.ItemResponse
	if err := json.Unmarshal(respBody, &item); err != nil {
		return Listing{}, fmt.Errorf("marketplace item decode: %w", err)
	}
	return Listing{Price: item.Price}, nil
}

func retryAfterFrom(header http.Header) time.Duration {
	raw := strings.TrimSpace(header.Get("Retry-After"))
	if raw == "" {
		return defaultRetryAfter
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(seconds * float64(time.Second))
}
