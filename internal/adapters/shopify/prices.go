package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shopify-price-sync/internal/adapters/shopify/dto"
)

type PriceService interface {
	UpdateVariantPrice(ctx context.Context, variantID int64, price string) error
}

// UpdateVariantPrice rewrites one variant price on the storefront. A
// non-success response comes back as an error carrying the status and body;
// whether to continue is the caller's decision.
func (c *Client) UpdateVariantPrice(ctx context.Context, variantID int64, price string) error {
	if variantID <= 0 {
		return errors.New("shopify variant id is required")
	}
	price = strings.TrimSpace(price)
	if price == "" {
		return errors.New("shopify variant price is required")
	}

	endpoint, err := c.endpoint("/variants/" + strconv.FormatInt(variantID, 10) + ".json")
	if err != nil {
		return err
	}

	payload := dto.VariantUpdateRequest{}
	payload.Variant.ID = variantID
	payload.Variant.Price = price
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := c.shopifyAPIRequest(ctx, http.MethodPut, endpoint, bytes.NewReader(bodyBytes)); err != nil {
		return fmt.Errorf("shopify variant %d price update: %w", variantID, err)
	}
	return nil
}
