package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"shopify-price-sync/internal/adapters/marketplace"
	"shopify-price-sync/internal/adapters/shopify"
	"shopify-price-sync/internal/config"
	"shopify-price-sync/internal/domain/model"
	"shopify-price-sync/internal/domain/pricing"
	"shopify-price-sync/internal/infra/queue"
	"shopify-price-sync/internal/logging"
)

type SyncPricesService interface {
	Run(ctx context.Context) error
}

// ClientSync walks the selected working set one entry at a time: fetch the
// marketplace price through the rate window, decide, and hand changed prices
// to the write queue. One bad SKU never stops the batch; only a catalog read
// failure does.
type ClientSync struct {
	catalog     shopify.CatalogService
	marketplace marketplace.PriceService
	writer      shopify.PriceService
	fetchWindow *queue.RateWindow
	writeQueue  *queue.Workers
	syncCfg     config.SyncConfig
	logger      logging.LoggerService

	// sleep is swapped out in tests; runs use the real clock.
	sleep func(d time.Duration)

	written     atomic.Int64
	writeFailed atomic.Int64
}

func NewSyncPrices(
	catalog shopify.CatalogService,
	marketplaceClient marketplace.PriceService,
	writer shopify.PriceService,
	fetchWindow *queue.RateWindow,
	writeQueue *queue.Workers,
	syncCfg config.SyncConfig,
	logger logging.LoggerService,
) SyncPricesService {
	return &ClientSync{
		catalog:     catalog,
		marketplace: marketplaceClient,
		writer:      writer,
		fetchWindow: fetchWindow,
		writeQueue:  writeQueue,
		syncCfg:     syncCfg,
		logger:      logger,
		sleep:       time.Sleep,
	}
}

type runCounters struct {
	skippedEmptySku int
	noPrice         int
	unchanged       int
	rateLimited     int
	notFound        int
	forbidden       int
	failed          int
}

func (c *ClientSync) Run(ctx context.Context) error {
	plan := SelectWorkingSet(c.syncCfg)

	if c.logger != nil {
		c.logger.Log(fmt.Sprintf("Price sync started %s", describePlan(plan)))
	}

	entries, err := c.collectEntries(ctx, plan)
	if err != nil {
		if c.logger != nil {
			c.logger.LogError("Error read storefront catalog", err)
		}
		return err
	}

	counters := runCounters{}
	for i := range entries {
		c.processEntry(ctx, entries[i], &counters)
	}

	c.fetchWindow.Drain()
	c.writeQueue.Drain()

	if c.logger != nil {
		c.logger.LogSuccess(fmt.Sprintf(
			"Price sync completed entries=%d updated=%d unchanged=%d no_price=%d skipped_empty_sku=%d rate_limited=%d not_found=%d forbidden=%d failed=%d write_failed=%d",
			len(entries),
			c.written.Load(),
			counters.unchanged,
			counters.noPrice,
			counters.skippedEmptySku,
			counters.rateLimited,
			counters.notFound,
			counters.forbidden,
			counters.failed,
			c.writeFailed.Load(),
		))
	}

	return nil
}

// collectEntries materializes the plan through the catalog reader. Explicit
// SKUs resolve via targeted lookup; scan plans resolve the priority SKU
// first and then skip it if the scan meets it again.
func (c *ClientSync) collectEntries(ctx context.Context, plan WorkingSetPlan) ([]model.CatalogEntry, error) {
	if plan.Kind == PlanExplicitSkus {
		entries := make([]model.CatalogEntry, 0, len(plan.Skus))
		for _, sku := range plan.Skus {
			matches, err := c.catalog.FindBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				if c.logger != nil {
					c.logger.LogWarning(fmt.Sprintf("sku not in storefront catalog sku=%s", sku))
				}
				continue
			}
			entries = append(entries, matches...)
		}
		return entries, nil
	}

	entries := make([]model.CatalogEntry, 0)
	priority := strings.TrimSpace(plan.PrioritySku)
	if priority != "" {
		matches, err := c.catalog.FindBySKU(ctx, priority)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			if c.logger != nil {
				c.logger.LogWarning(fmt.Sprintf("priority sku not in storefront catalog sku=%s", priority))
			}
		}
		entries = append(entries, matches...)
	}

	scanned, err := c.catalog.Collect(ctx, plan.Limit)
	if err != nil {
		return nil, err
	}
	for _, entry := range scanned {
		if priority != "" && strings.TrimSpace(entry.Variant.Sku) == priority {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *ClientSync) processEntry(ctx context.Context, entry model.CatalogEntry, counters *runCounters) {
	sku := strings.TrimSpace(entry.Variant.Sku)
	if sku == "" {
		counters.skippedEmptySku++
		if c.logger != nil {
			c.logger.Log(fmt.Sprintf("skip variant without sku variant_id=%d product_id=%d", entry.Variant.ID, entry.Product.ID))
		}
		return
	}

	var listing marketplace.Listing
	err := c.fetchWindow.Do(ctx, func() error {
		var fetchErr error
		listing, fetchErr = c.marketplace.Item(ctx, sku)
		return fetchErr
	})
	if err != nil {
		c.handleFetchError(sku, err, counters)
		return
	}

	if listing.Price == nil {
		counters.noPrice++
		if c.logger != nil {
			c.logger.Log(fmt.Sprintf("no marketplace price sku=%s", sku))
		}
		return
	}

	marketPrice := listing.Price.String()
	if !pricing.ShouldUpdate(entry.Variant.Price, marketPrice) {
		counters.unchanged++
		if c.logger != nil {
			c.logger.Log(fmt.Sprintf("price within threshold sku=%s storefront=%s marketplace=%s", sku, entry.Variant.Price, marketPrice))
		}
		return
	}

	variantID := entry.Variant.ID
	oldPrice := entry.Variant.Price
	c.writeQueue.Submit(func() {
		if err := c.writer.UpdateVariantPrice(ctx, variantID, marketPrice); err != nil {
			c.writeFailed.Add(1)
			if c.logger != nil {
				c.logger.LogError(fmt.Sprintf("Error update storefront price sku=%s variant_id=%d", sku, variantID), err)
			}
			return
		}
		c.written.Add(1)
		if c.logger != nil {
			c.logger.LogSuccess(fmt.Sprintf("storefront price updated sku=%s variant_id=%d old=%s new=%s", sku, variantID, oldPrice, marketPrice))
		}
	})
}

// handleFetchError sorts a failed fetch into its terminal state. A rate
// limited entry is dropped after the wait: the sleep protects the admission
// window for the entries behind it, it does not re-run the fetch.
func (c *ClientSync) handleFetchError(sku string, err error, counters *runCounters) {
	var rateLimited *marketplace.RateLimitedError
	var notFound *marketplace.NotFoundError
	var forbidden *marketplace.ForbiddenError

	switch {
	case errors.As(err, &rateLimited):
		counters.rateLimited++
		if c.logger != nil {
			c.logger.LogWarning(fmt.Sprintf("marketplace rate limited sku=%s waiting=%s", sku, rateLimited.RetryAfter))
		}
		c.sleep(rateLimited.RetryAfter)
	case errors.As(err, &notFound):
		counters.notFound++
		if c.logger != nil {
			c.logger.LogWarning(fmt.Sprintf("marketplace item not found sku=%s", sku))
		}
	case errors.As(err, &forbidden):
		counters.forbidden++
		if c.logger != nil {
			c.logger.LogWarning(fmt.Sprintf("marketplace access forbidden sku=%s", sku))
		}
	default:
		counters.failed++
		if c.logger != nil {
			c.logger.LogError(fmt.Sprintf("Error fetch marketplace price sku=%s", sku), err)
		}
	}
}

func describePlan(plan WorkingSetPlan) string {
	switch plan.Kind {
	case PlanFullScan:
		return "mode=full_scan"
	case PlanExplicitSkus:
		return fmt.Sprintf("mode=explicit_skus count=%d", len(plan.Skus))
	default:
		return fmt.Sprintf("mode=bounded_scan limit=%d", plan.Limit)
	}
}
