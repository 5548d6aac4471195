package queue

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateWindow admits operations against an external API quota of ops calls
// per window. Callers blocked on admission are released as the window frees
// up, so the quota is enforced client-side instead of being discovered
// through 429 responses. Each run constructs its own instance; there is no
// package-level state.
type RateWindow struct {
	limiter  *rate.Limiter
	inflight sync.WaitGroup
}

func NewRateWindow(ops int, window time.Duration) *RateWindow {
	if ops < 1 {
		ops = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateWindow{
		limiter: rate.NewLimiter(rate.Every(window/time.Duration(ops)), ops),
	}
}

// Do blocks until the window admits one more operation, then runs op and
// returns its error. Admission errors only happen when ctx is done.
func (w *RateWindow) Do(ctx context.Context, op func() error) error {
	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}
	w.inflight.Add(1)
	defer w.inflight.Done()
	return op()
}

// Drain blocks until every admitted operation has returned.
func (w *RateWindow) Drain() {
	w.inflight.Wait()
}
