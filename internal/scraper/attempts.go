package scraper

import "sync"

const MaxAttempts = 10

// Attempts bounds how many times a page is retried. The counter starts over whenever the
// observed URL changes.
type Attempts struct {
	mu    sync.Mutex
	max   int
	url   string
	count int
}

func NewAttempts(limit int) *Attempts {
	if limit <= 0 {
		limit = MaxAttempts
	}
	return &Attempts{max: limit}
}

// Next records an attempt for url and reports whether it is still within the cap.
func (a *Attempts) Next(url string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if url != a.url {
		a.url = url
		a.count = 0
	}
	if a.count >= a.max {
		return false
	}
	a.count++
	return true
}

func (a *Attempts) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

// Exhausted reports whether the cap for the current URL is reached.
func (a *Attempts) Exhausted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count >= a.max
}
