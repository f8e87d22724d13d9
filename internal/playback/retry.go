package playback

import "time"

// Retry policy defaults: a failing stream is re-attempted a bounded
// number of times with a fixed backoff before the engine goes Errored.
const (
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = time.Second
)

// retryState tracks automatic retries for one loading track. The timer
// is track-scoped: selecting another track or clearing the queue cancels
// it outright.
type retryState struct {
	trackID string
	count   int
	timer   *time.Timer
}

// cancelRetryLocked stops a pending retry timer. Caller holds c.mu.
func (c *Controller) cancelRetryLocked() {
	if c.retry.timer != nil {
		c.retry.timer.Stop()
		c.retry.timer = nil
	}
}

// scheduleRetryLocked arms the backoff timer for the given track.
// Caller holds c.mu.
func (c *Controller) scheduleRetryLocked(trackID string) {
	c.cancelRetryLocked()
	c.retry.timer = time.AfterFunc(c.backoff, func() {
		c.performRetry(trackID)
	})
}

// performRetry re-issues load+play for the track if it is still the one
// the controller cares about. Runs on the timer goroutine.
func (c *Controller) performRetry(trackID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || trackID != c.loadID || c.status != StatusLoading {
		return
	}
	cur := c.queue.Current()
	if cur == nil || cur.ID != trackID {
		return
	}

	c.log.Debug().Str("track", trackID).Int("attempt", c.retry.count).Msg("retrying stream")
	c.issueLoadLocked(cur)
}
