package usecases

import (
	"strings"

	"shopify-price-sync/internal/config"
)

type PlanKind int

const (
	PlanFullScan PlanKind = iota
	PlanExplicitSkus
	PlanBoundedScan
)

// WorkingSetPlan says what one run will process. Skus is populated for
// explicit plans with the priority SKU already first; scan plans carry the
// priority SKU separately so it can be resolved ahead of the scan.
type WorkingSetPlan struct {
	Kind        PlanKind
	Limit       int
	Skus        []string
	PrioritySku string
}

// SelectWorkingSet decides the working set for one run. Precedence when
// several sources are configured: full-sync flag, then the file-sourced SKU
// list, then the inline list, then the default bounded scan. Sources are
// never merged; a configured priority SKU ends up exactly once at the front
// of an explicit list.
func SelectWorkingSet(cfg config.SyncConfig) WorkingSetPlan {
	priority := strings.TrimSpace(cfg.PrioritySku)

	if cfg.FullSync {
		return WorkingSetPlan{Kind: PlanFullScan, PrioritySku: priority}
	}
	if skus := cleanSkus(cfg.FileSkus); len(skus) > 0 {
		return WorkingSetPlan{Kind: PlanExplicitSkus, Skus: prependPriority(priority, skus)}
	}
	if skus := cleanSkus(cfg.ListSkus); len(skus) > 0 {
		return WorkingSetPlan{Kind: PlanExplicitSkus, Skus: prependPriority(priority, skus)}
	}

	limit := cfg.BatchSize
	if limit <= 0 {
		limit = defaultScanBatchSize
	}
	return WorkingSetPlan{Kind: PlanBoundedScan, Limit: limit, PrioritySku: priority}
}

const defaultScanBatchSize = 200

func cleanSkus(raw []string) []string {
	skus := make([]string, 0, len(raw))
	for _, sku := range raw {
		sku = strings.TrimSpace(sku)
		if sku == "" {
			continue
		}
		skus = append(skus, sku)
	}
	return skus
}

// prependPriority moves the priority SKU to the front, dropping every other
// occurrence so it is processed first and only once.
func prependPriority(priority string, skus []string) []string {
	if priority == "" {
		return skus
	}
	ordered := make([]string, 0, len(skus)+1)
	ordered = append(ordered, priority)
	for _, sku := range skus {
		if sku == priority {
			continue
		}
		ordered = append(ordered, sku)
	}
	return ordered
}
