package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shopify-price-sync/internal/adapters/shopify/dto"
	"shopify-price-sync/internal/config"
	"shopify-price-sync/internal/domain/model"
	"shopify-price-sync/internal/logging"
)

// ProductsPageSize is the page size the storefront listing endpoint is
// always asked for; a page holding fewer products means the catalog is
// exhausted.
const ProductsPageSize = 250

type CatalogService interface {
	Page(ctx context.Context, sinceID int64, pageSize int) ([]model.CatalogEntry, int64, error)
	Collect(ctx context.Context, limit int) ([]model.CatalogEntry, error)
	FindBySKU(ctx context.Context, sku string) ([]model.CatalogEntry, error)
}

type Client struct {
	config     config.ShopifyConfig
	httpClient *http.Client
	logger     logging.LoggerService
}

func NewClient(config config.ShopifyConfig, httpClient *http.Client, logger logging.LoggerService) *Client {
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

// Page reads one product page after sinceID and flattens it into one entry
// per variant. The returned cursor is the id of the last product on the
// page, or 0 when the page held fewer products than requested.
func (c *Client) Page(ctx context.Context, sinceID int64, pageSize int) ([]model.CatalogEntry, int64, error) {
	if pageSize < 1 {
		pageSize = ProductsPageSize
	}
	endpoint, err := c.endpoint(fmt.Sprintf("/products.json?limit=%d&since_id=%d", pageSize, sinceID))
	if err != nil {
		return nil, 0, err
	}

	raw, err := c.shopifyAPIRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}

	var resp dto.ProductsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, 0, fmt.Errorf("shopify products decode: %w", err)
	}

	entries := make([]model.CatalogEntry, 0, len(resp.Products))
	for _, p := range resp.Products {
		product := model.Product{
			ID:    p.ID,
			Title: p.Title,
		}
		for _, v := range p.Variants {
			entries = append(entries, model.CatalogEntry{
				Product: product,
				Variant: model.Variant{
					ID:    v.ID,
					Sku:   v.Sku,
					Price: v.Price,
				},
			})
		}
	}

	next := int64(0)
	if len(resp.Products) >= pageSize {
		next = resp.Products[len(resp.Products)-1].ID
	}
	return entries, next, nil
}

// Collect scans the catalog from the start. A positive limit truncates the
// result to exactly limit entries; limit 0 means the whole catalog.
func (c *Client) Collect(ctx context.Context, limit int) ([]model.CatalogEntry, error) {
	entries := make([]model.CatalogEntry, 0)
	cursor := int64(0)
	for {
		page, next, err := c.Page(ctx, cursor, ProductsPageSize)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)
		c.log(fmt.Sprintf("storefront page read since_id=%d variants=%d", cursor, len(page)))
		if limit > 0 && len(entries) >= limit {
			return entries[:limit], nil
		}
		if next == 0 {
			return entries, nil
		}
		cursor = next
	}
}

// FindBySKU scans the whole catalog and keeps the entries whose variant SKU
// matches exactly after trimming. Linear in catalog size, which is the
// accepted cost of resolving explicit SKUs through the same read primitive.
func (c *Client) FindBySKU(ctx context.Context, sku string) ([]model.CatalogEntry, error) {
	target := strings.TrimSpace(sku)
	if target == "" {
		return nil, errors.New("shopify sku is required")
	}

	matches := make([]model.CatalogEntry, 0, 1)
	cursor := int64(0)
	for {
		page, next, err := c.Page(ctx, cursor, ProductsPageSize)
		if err != nil {
			return nil, err
		}
		for _, entry := range page {
			if strings.TrimSpace(entry.Variant.Sku) == target {
				matches = append(matches, entry)
			}
		}
		if next == 0 {
			return matches, nil
		}
		cursor = next
	}
}

func (c *Client) endpoint(path string) (string, error) {
	domain := strings.TrimSpace(c.config.ShopDomain)
	if domain == "" {
		return "", errors.New("shopify shop domain is empty")
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	domain = strings.TrimRight(domain, "/")
	apiVer := strings.TrimSpace(c.config.APIVer)
	if apiVer == "" {
		return "", errors.New("shopify api version is empty")
	}
	return domain + "/admin/api/" + apiVer + path, nil
}

func (c *Client) shopifyAPIRequest(ctx context.Context, method string, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.config.Token)

	client := c.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newHTTPStatusError(resp.StatusCode, resp.Status, respBody)
	}

	return respBody, nil
}

func (c *Client) log(message string) {
	if c.logger == nil || strings.TrimSpace(message) == "" {
		return
	}
	c.logger.Log(message)
}
