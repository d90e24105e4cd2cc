// Package metrics owns the process-scoped page-hit counter with an explicit
// reset operation. The counter is atomic, so concurrent requests may
// increment it without coordination.
package metrics

import (
	"net/http"
	"sync/atomic"
)

// Counter counts file-server hits for the admin metrics page.
type Counter struct {
	hits atomic.Int64
}

// NewCounter returns a zeroed Counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Increment adds one hit.
func (c *Counter) Increment() {
	c.hits.Add(1)
}

// Hits returns the current count.
func (c *Counter) Hits() int64 {
	return c.hits.Load()
}

// Reset sets the counter back to zero.
func (c *Counter) Reset() {
	c.hits.Store(0)
}

// Middleware counts every request passing through it.
func (c *Counter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.Increment()
		next.ServeHTTP(w, r)
	})
}
