package generator

import (
	"encoding/json"
	"fmt"

	"github.com/lampstand/berea/internal/scripture"
)

// wireQuestion tolerates the loose shapes the generator emits for a single
// question. Options may arrive as a letter->text map or as a bare array.
type wireQuestion struct {
	Question       string          `json:"question"`
	Text           string          `json:"text"`
	Options        json.RawMessage `json:"options"`
	CorrectAnswer  string          `json:"correct_answer"`
	Answer         string          `json:"answer"`
	Explanation    string          `json:"explanation"`
	Reference      string          `json:"reference"`
	CognitiveLevel string          `json:"cognitive_level"`
}

type wireOutput struct {
	Questions []wireQuestion `json:"questions"`
}

var optionLetters = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// Normalize decodes a generator response body in any of the four accepted
// wire shapes and returns one canonical ordered question sequence:
//
//	[ {...}, {...} ]
//	{ "questions": [...] }
//	{ "output": { "questions": [...] } }
//	[ { "output": { "questions": [...] } } ]
//
// An empty body, a body that is not JSON, or a body that decodes to zero
// questions returns ErrEmptyResponse.
func Normalize(body []byte) ([]GeneratedQuestion, error) {
	raw, err := extractQuestions(body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyResponse
	}

	out := make([]GeneratedQuestion, 0, len(raw))
	for _, wq := range raw {
		q, err := canonicalize(wq)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmptyResponse, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func extractQuestions(body []byte) ([]wireQuestion, error) {
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}

	// {"questions": [...]} or {"output": {"questions": [...]}}
	var envelope struct {
		Questions []wireQuestion `json:"questions"`
		Output    *wireOutput    `json:"output"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Questions) > 0 {
			return envelope.Questions, nil
		}
		if envelope.Output != nil {
			return envelope.Output.Questions, nil
		}
	}

	// [{"output": {"questions": [...]}}]
	var wrapped []struct {
		Output *wireOutput `json:"output"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped) > 0 && wrapped[0].Output != nil {
		return wrapped[0].Output.Questions, nil
	}

	// bare array of questions
	var bare []wireQuestion
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	return nil, ErrEmptyResponse
}

func canonicalize(wq wireQuestion) (GeneratedQuestion, error) {
	text := wq.Question
	if text == "" {
		text = wq.Text
	}
	if text == "" {
		return GeneratedQuestion{}, fmt.Errorf("question has no text")
	}

	options, err := normalizeOptions(wq.Options)
	if err != nil {
		return GeneratedQuestion{}, err
	}

	answer := wq.CorrectAnswer
	if answer == "" {
		answer = wq.Answer
	}

	q := GeneratedQuestion{
		Text:           text,
		Options:        options,
		CorrectAnswer:  answer,
		Explanation:    wq.Explanation,
		Reference:      wq.Reference,
		CognitiveLevel: wq.CognitiveLevel,
	}

	if ref, ok := scripture.Parse(wq.Reference); ok {
		q.Book = ref.Book
		q.ChapterVerse = ref.ChapterVerse
	}
	return q, nil
}

// normalizeOptions accepts either {"A": "...", "B": "..."} or ["...", "..."]
// and always yields a letter-keyed map.
func normalizeOptions(raw json.RawMessage) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("question has no options")
	}

	var asMap map[string]string
	if err := json.Unmarshal(raw, &asMap); err == nil && len(asMap) > 0 {
		return asMap, nil
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil && len(asList) > 0 {
		if len(asList) > len(optionLetters) {
			return nil, fmt.Errorf("too many options: %d", len(asList))
		}
		m := make(map[string]string, len(asList))
		for i, opt := range asList {
			m[optionLetters[i]] = opt
		}
		return m, nil
	}

	return nil, fmt.Errorf("unrecognized options shape")
}
