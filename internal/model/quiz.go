package model

import (
	"time"

	"gorm.io/gorm"
)

// Quiz lifecycle statuses.
const (
	QuizStatusDraft = "draft"
	QuizStatusReady = "ready"
)

// Question-generation sources.
const (
	GenerationSourceAI          = "ai"
	GenerationSourcePlaceholder = "placeholder"
)

type Quiz struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Title            string         `json:"title" gorm:"not null;index"`
	Description      string         `json:"description,omitempty"`
	CreatedBy        uint           `json:"created_by" gorm:"not null;index"`
	Status           string         `json:"status" gorm:"default:'draft'"` // "draft", "ready"
	Book             string         `json:"book,omitempty"`
	Chapter          string         `json:"chapter,omitempty"`
	Difficulty       string         `json:"difficulty,omitempty"`
	QuestionCount    int            `json:"question_count" gorm:"not null"`
	TimeLimitMinutes int            `json:"time_limit_minutes,omitempty"`
	StartTime        time.Time      `json:"start_time" gorm:"not null"`
	GenerationSource string         `json:"generation_source" gorm:"default:'ai'"` // "ai", "placeholder"
	Questions        []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
