package service

import (
	"encoding/json"

	"github.com/lampstand/berea/internal/dto"
	"github.com/lampstand/berea/internal/generator"
	"github.com/lampstand/berea/internal/model"
	"github.com/rs/zerolog/log"
)

func buildGeneratorRequest(req dto.CreateQuizRequest) generator.Request {
	docs := make([]generator.DocumentRef, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, generator.DocumentRef{
			ID:         d.ID,
			ExternalID: d.ExternalID,
			Filename:   d.Filename,
			Size:       d.Size,
			MimeType:   d.MimeType,
		})
	}
	return generator.Request{
		Documents:        docs,
		QuestionCount:    req.QuestionCount,
		Topic:            req.Topic,
		Book:             req.Book,
		Chapter:          req.Chapter,
		Difficulty:       req.Difficulty,
		CognitiveLevels:  req.CognitiveLevels,
		TimeLimitMinutes: req.TimeLimitMinutes,
		QuizTitle:        req.Title,
		QuizDescription:  req.Description,
	}
}

func buildQuizModel(req dto.CreateQuizRequest) model.Quiz {
	return model.Quiz{
		Title:            req.Title,
		Description:      req.Description,
		CreatedBy:        req.CreatedBy,
		Status:           model.QuizStatusDraft,
		Book:             req.Book,
		Chapter:          req.Chapter,
		Difficulty:       req.Difficulty,
		QuestionCount:    req.QuestionCount,
		TimeLimitMinutes: req.TimeLimitMinutes,
		StartTime:        req.StartTime,
		GenerationSource: model.GenerationSourceAI,
	}
}

func toQuestionModels(questions []generator.GeneratedQuestion, placeholder bool) []model.Question {
	out := make([]model.Question, 0, len(questions))
	for i, q := range questions {
		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			log.Error().Err(err).Int("index", i).Msg("Failed to marshal question options, skipping question")
			continue
		}
		out = append(out, model.Question{
			Text:           q.Text,
			Options:        string(optionsJSON),
			CorrectAnswer:  q.CorrectAnswer,
			Explanation:    q.Explanation,
			Reference:      q.Reference,
			Book:           q.Book,
			ChapterVerse:   q.ChapterVerse,
			CognitiveLevel: q.CognitiveLevel,
			OrderInQuiz:    i + 1,
			IsPlaceholder:  placeholder,
		})
	}
	return out
}

// fillQuestionOptions decodes the jsonb options column into the response
// maps; copier leaves mismatched field types alone.
func fillQuestionOptions(quizDTO *dto.QuizResponseDTO, questions []model.Question) {
	for i := range quizDTO.Questions {
		if i >= len(questions) {
			break
		}
		var options map[string]string
		if err := json.Unmarshal([]byte(questions[i].Options), &options); err != nil {
			log.Warn().Err(err).Uint("questionID", questions[i].ID).Msg("Stored question options are not valid JSON")
			continue
		}
		quizDTO.Questions[i].Options = options
	}
}
