package marketplace

import (
	"fmt"
	"strings"
	"time"
)

// RateLimitedError is a 429 from the marketplace. RetryAfter is taken from
// the Retry-After header, or the documented default when the header is
// missing or unreadable.
type RateLimitedError struct {
	Sku        string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("marketplace rate limited sku=%s retry_after=%s", e.Sku, e.RetryAfter)
}

type NotFoundError struct {
	Sku string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("marketplace item not found sku=%s", e.Sku)
}

type ForbiddenError struct {
	Sku string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("marketplace access forbidden sku=%s", e.Sku)
}

// StatusError covers every other non-success response.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("marketplace request failed: %s", e.Status)
	}
	return fmt.Sprintf("marketplace request failed: %s: %s", e.Status, e.Body)
}
