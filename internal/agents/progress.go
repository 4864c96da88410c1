package agents

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ProgressStatus is the lifecycle stage a progress event reports.
type ProgressStatus string

const (
	StatusStart    ProgressStatus = "start"
	StatusProgress ProgressStatus = "progress"
	StatusComplete ProgressStatus = "complete"
)

// ProgressEvent is one timestamped lifecycle update from an agent.
type ProgressEvent struct {
	ID        uuid.UUID              `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Role      AnalysisRole           `json:"role"`
	Message   string                 `json:"message"`
	Status    ProgressStatus         `json:"status"`
	Result    map[string]interface{} `json:"result,omitempty"`
}

// ProgressChannel is a thread-safe FIFO buffer of progress events. Agents
// publish from the pipeline goroutine while an observer drains concurrently.
// The crew resets it at the start of every run so events never leak across
// runs.
type ProgressChannel struct {
	mu     sync.Mutex
	events []ProgressEvent
}

// NewProgressChannel constructs an empty progress channel.
func NewProgressChannel() *ProgressChannel {
	return &ProgressChannel{}
}

// Publish appends an event. Missing IDs and timestamps are filled in.
func (c *ProgressChannel) Publish(event ProgressEvent) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// DrainAll removes and returns every queued event in publish order.
func (c *ProgressChannel) DrainAll() []ProgressEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	drained := c.events
	c.events = nil
	return drained
}

// Reset discards all queued events.
func (c *ProgressChannel) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

// Len reports the number of queued events.
func (c *ProgressChannel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}
