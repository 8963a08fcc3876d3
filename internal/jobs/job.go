package jobs

import (
	"time"

	"github.com/lampstand/berea/internal/generator"
)

// Status is the generation-job lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether s accepts no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// GenerationJob is one in-flight or finished quiz-question-generation
// request. ID is assigned exactly once at creation and is the sole lookup
// key. Result is populated iff the job completed; Error iff it failed.
// RequestPayload is the original generator request, retained for diagnostics
// and never exposed through the poll endpoint.
type GenerationJob struct {
	ID             string
	QuizID         uint
	Status         Status
	Progress       int
	Message        string
	Result         []generator.GeneratedQuestion
	Error          string
	RequestPayload generator.Request
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Update carries the fields a partial job update may touch. Nil pointers
// leave the corresponding field untouched.
type Update struct {
	Status   *Status
	Progress *int
	Message  *string
	Result   []generator.GeneratedQuestion
	Error    *string
}
