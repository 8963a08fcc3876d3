package dto

import (
	"encoding/json"
	"time"
)

// DocumentRefDTO identifies one source document the generator should draw
// questions from. ExternalID is the id the generator assigned at upload.
type DocumentRefDTO struct {
	ID         uint   `json:"id" binding:"required"`
	ExternalID string `json:"external_id"`
	Filename   string `json:"filename" binding:"required"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mime_type"`
}

// CreateQuizRequest is shared by the synchronous and asynchronous creation
// endpoints. StartTime must be at least five minutes in the future.
type CreateQuizRequest struct {
	Title            string           `json:"title" binding:"required"`
	Description      string           `json:"description"`
	CreatedBy        uint             `json:"created_by" binding:"required"`
	Documents        []DocumentRefDTO `json:"documents" binding:"required,min=1,dive"`
	QuestionCount    int              `json:"question_count" binding:"required,min=1,max=50"`
	Topic            string           `json:"topic"`
	Book             string           `json:"book"`
	Chapter          string           `json:"chapter"`
	Difficulty       string           `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	CognitiveLevels  []string         `json:"cognitive_levels"`
	TimeLimitMinutes int              `json:"time_limit_minutes"`
	StartTime        time.Time        `json:"start_time" binding:"required"`
}

// GenerationCallbackRequest is the body the external generator posts back
// when an asynchronous generation finishes. Either a question payload or an
// error indicator is set. Questions/Output are kept raw so the same
// shape-normalization used by the synchronous flow applies to callbacks.
type GenerationCallbackRequest struct {
	JobID     string          `json:"job_id" binding:"required"`
	Questions json.RawMessage `json:"questions"`
	Output    json.RawMessage `json:"output"`
	Error     string          `json:"error"`
}
