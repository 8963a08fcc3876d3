package dto

import "time"

type QuestionResponseDTO struct {
	ID             uint              `json:"id"`
	QuizID         uint              `json:"quiz_id"`
	Text           string            `json:"text"`
	Options        map[string]string `json:"options"`
	CorrectAnswer  string            `json:"correct_answer"`
	Explanation    string            `json:"explanation,omitempty"`
	Reference      string            `json:"reference,omitempty"`
	Book           string            `json:"book,omitempty"`
	ChapterVerse   string            `json:"chapter_verse,omitempty"`
	CognitiveLevel string            `json:"cognitive_level,omitempty"`
	OrderInQuiz    int               `json:"order_in_quiz"`
	IsPlaceholder  bool              `json:"is_placeholder"`
}

type QuizResponseDTO struct {
	ID               uint                  `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description,omitempty"`
	CreatedBy        uint                  `json:"created_by"`
	Status           string                `json:"status"`
	Book             string                `json:"book,omitempty"`
	Chapter          string                `json:"chapter,omitempty"`
	Difficulty       string                `json:"difficulty,omitempty"`
	QuestionCount    int                   `json:"question_count"`
	TimeLimitMinutes int                   `json:"time_limit_minutes,omitempty"`
	StartTime        time.Time             `json:"start_time"`
	GenerationSource string                `json:"generation_source"`
	Questions        []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// QuizSummaryDTO is used for listing quizzes.
type QuizSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	CreatedBy     uint      `json:"created_by"`
	QuestionCount int       `json:"question_count"`
	StartTime     time.Time `json:"start_time"`
	CreatedAt     time.Time `json:"created_at"`
}

// SyncGenerationResponseDTO is the synchronous creation result. TimedOut is
// true when placeholder content was substituted because the generator did not
// answer in time; the client should surface that the quiz needs review.
type SyncGenerationResponseDTO struct {
	Quiz     QuizResponseDTO `json:"quiz"`
	TimedOut bool            `json:"timed_out"`
}

// AsyncGenerationResponseDTO is returned immediately by the asynchronous
// creation endpoint; the client polls StatusURL for progress.
type AsyncGenerationResponseDTO struct {
	JobID     string `json:"job_id"`
	QuizID    uint   `json:"quiz_id"`
	Status    string `json:"status"`
	StatusURL string `json:"status_url"`
}

// JobStatusDTO is the poll projection of a generation job. It deliberately
// excludes the original request payload.
type JobStatusDTO struct {
	JobID         string `json:"job_id"`
	QuizID        uint   `json:"quiz_id"`
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	Message       string `json:"message"`
	Error         string `json:"error,omitempty"`
	QuestionCount int    `json:"question_count"`
}

// ConflictResponseDTO points a duplicate submission at the quiz it collides
// with.
type ConflictResponseDTO struct {
	Message        string `json:"message"`
	ExistingQuizID uint   `json:"existing_quiz_id"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
