package client

import (
	"context"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

// DefaultPollInterval is how often PollRecentRequests refreshes by default.
const DefaultPollInterval = 5 * time.Second

// PollRecentRequests fetches the recent request list immediately and then
// every interval until ctx is cancelled, passing each result to fn. A slow
// fetch does not hold up the next tick. Results reach fn in the order the
// fetches were started: a response that arrives after a newer one has been
// delivered is dropped. fn is never called concurrently and never after
// PollRecentRequests returns.
func (c *Client) PollRecentRequests(ctx context.Context, interval time.Duration, fn func([]model.EventRequest, error)) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		delivered uint64
		seq       uint64
	)
	fetch := func(n uint64) {
		defer wg.Done()
		reqs, err := c.RecentRequests(ctx)
		if ctx.Err() != nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if n <= delivered {
			return
		}
		delivered = n
		fn(reqs, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		seq++
		wg.Add(1)
		go fetch(seq)

		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case <-ticker.C:
		}
	}
}
