package watcher

import (
	"slices"
	"sync"
	"time"

	"github.com/toyz/bunner/internal/utils"
)

// DefaultDebounce is the quiet period before a burst of events is delivered
const DefaultDebounce = 150 * time.Millisecond

// Debouncer collects payloads and delivers them once no new payload has
// arrived for the configured delay. Later events for a file replace earlier ones.
type Debouncer struct {
	delay   time.Duration
	handler func([]FileChangePayload)

	mu      sync.Mutex
	events  map[string]FileChangePayload
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer calling handler with each settled burst
func NewDebouncer(delay time.Duration, handler func([]FileChangePayload)) *Debouncer {
	return &Debouncer{
		delay:   delay,
		handler: handler,
		events:  make(map[string]FileChangePayload),
	}
}

// Add records a payload and restarts the quiet period
func (d *Debouncer) Add(payload FileChangePayload) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.events[payload.Filename] = payload
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.events) == 0 {
		d.mu.Unlock()
		return
	}
	batch := make([]FileChangePayload, 0, len(d.events))
	for _, payload := range d.events {
		batch = append(batch, payload)
	}
	d.events = make(map[string]FileChangePayload)
	d.mu.Unlock()

	slices.SortFunc(batch, func(a, b FileChangePayload) int {
		return utils.CompareCodePoint(a.Filename, b.Filename)
	})
	d.handler(batch)
}

// Stop drops pending payloads. No handler call starts after Stop returns.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.events = make(map[string]FileChangePayload)
}
