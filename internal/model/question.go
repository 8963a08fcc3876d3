package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	QuizID         uint           `json:"quiz_id" gorm:"not null;index"`
	Text           string         `json:"text" gorm:"type:text;not null"`
	Options        string         `json:"options" gorm:"type:jsonb;not null"` // letter -> option text
	CorrectAnswer  string         `json:"correct_answer" gorm:"not null"`
	Explanation    string         `json:"explanation,omitempty" gorm:"type:text"`
	Reference      string         `json:"reference,omitempty"` // e.g. "1 Corinthians 13:4-7"
	Book           string         `json:"book,omitempty"`
	ChapterVerse   string         `json:"chapter_verse,omitempty"`
	CognitiveLevel string         `json:"cognitive_level,omitempty"`
	OrderInQuiz    int            `json:"order_in_quiz" gorm:"not null"`
	IsPlaceholder  bool           `json:"is_placeholder" gorm:"default:false"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
