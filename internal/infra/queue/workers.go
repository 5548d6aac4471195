package queue

import "sync"

// Workers caps how many submitted tasks run at the same time. Submit blocks
// while the cap is reached, which bounds memory held by pending work. Like
// RateWindow, every run owns its own instance.
type Workers struct {
	sem chan struct{}
	wg  sync.WaitGroup
}

func NewWorkers(size int) *Workers {
	if size < 1 {
		size = 1
	}
	return &Workers{sem: make(chan struct{}, size)}
}

// Submit schedules task to run as soon as a slot is free.
func (w *Workers) Submit(task func()) {
	w.wg.Add(1)
	w.sem <- struct{}{}
	go func() {
		defer w.wg.Done()
		defer func() { <-w.sem }()
		task()
	}()
}

// Drain blocks until every submitted task has finished.
func (w *Workers) Drain() {
	w.wg.Wait()
}
