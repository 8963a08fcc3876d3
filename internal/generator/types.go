package generator

// DocumentRef describes one source document forwarded to the generator. The
// ExternalID is the identifier the generator service assigned at upload time.
type DocumentRef struct {
	ID         uint   `json:"id"`
	ExternalID string `json:"external_id,omitempty"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size,omitempty"`
	MimeType   string `json:"mime_type,omitempty"`
}

// Request is the outbound question-generation request body. The async variant
// additionally carries JobID and CallbackURL so the generator can report back.
type Request struct {
	Documents        []DocumentRef `json:"documents"`
	QuestionCount    int           `json:"question_count"`
	Topic            string        `json:"topic,omitempty"`
	Book             string        `json:"book,omitempty"`
	Chapter          string        `json:"chapter,omitempty"`
	Difficulty       string        `json:"difficulty,omitempty"`
	CognitiveLevels  []string      `json:"cognitive_levels,omitempty"`
	TimeLimitMinutes int           `json:"time_limit_minutes,omitempty"`
	QuizTitle        string        `json:"quiz_title"`
	QuizDescription  string        `json:"quiz_description,omitempty"`
	JobID            string        `json:"job_id,omitempty"`
	CallbackURL      string        `json:"callback_url,omitempty"`
}

// GeneratedQuestion is the canonical question record produced by normalizing
// any of the generator's accepted response shapes.
type GeneratedQuestion struct {
	Text           string            `json:"text"`
	Options        map[string]string `json:"options"`
	CorrectAnswer  string            `json:"correct_answer"`
	Explanation    string            `json:"explanation,omitempty"`
	Reference      string            `json:"reference,omitempty"`
	Book           string            `json:"book,omitempty"`
	ChapterVerse   string            `json:"chapter_verse,omitempty"`
	CognitiveLevel string            `json:"cognitive_level,omitempty"`
}
