package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// updateThreshold is the relative difference above which a storefront
	// price is rewritten from the marketplace price.
	updateThreshold = decimal.NewFromFloat(0.01)

	// minDenominator keeps the relative difference defined for zero and
	// near-zero storefront prices.
	minDenominator = decimal.NewFromInt(1)
)

// ShouldUpdate reports whether the marketplace price differs enough from the
// storefront price to be worth writing back. The difference is relative:
// |marketplace - storefront| / max(storefront, 1). If either input does not
// parse as a decimal number the answer is false, never a write.
func ShouldUpdate(storefrontPrice, marketplacePrice string) bool {
	storefront, err := decimal.NewFromString(strings.TrimSpace(storefrontPrice))
	if err != nil {
		return false
	}
	market, err := decimal.NewFromString(strings.TrimSpace(marketplacePrice))
	if err != nil {
		return false
	}

	denominator := storefront
	if denominator.LessThan(minDenominator) {
		denominator = minDenominator
	}

	diff := market.Sub(storefront).Abs()
	return diff.Div(denominator).GreaterThan(updateThreshold)
}
