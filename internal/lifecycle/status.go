package lifecycle

import (
	"fmt"
	"time"
)

// Status is a node's lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusStarted   Status = "STARTED"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// ParseStatus validates a status string from external input (CLI, scripts).
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusStarted, StatusCompleted, StatusFailed:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown lifecycle status %q", s)
}

// Terminal reports whether the status can never transition again.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// allowed encodes the monotonic state machine:
// PENDING -> STARTED -> {COMPLETED, FAILED}.
func allowed(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusStarted
	case StatusStarted:
		return to == StatusCompleted || to == StatusFailed
	default:
		return false
	}
}

// Record is the persisted state of one node. Seq increases by one per
// committed transition, giving each node a total order of commits.
type Record struct {
	Status    Status    `json:"status"`
	Seq       int64     `json:"seq"`
	UpdatedAt time.Time `json:"updated_at"`
	Log       string    `json:"log,omitempty"`
}
