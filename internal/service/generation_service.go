package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lampstand/berea/config"
	"github.com/lampstand/berea/internal/dto"
	"github.com/lampstand/berea/internal/generator"
	"github.com/lampstand/berea/internal/model"
	"github.com/lampstand/berea/internal/repository"
	"github.com/rs/zerolog/log"
)

// minStartLead is how far in the future a quiz start time must be.
const minStartLead = 5 * time.Minute

// Validation and conflict sentinels surfaced by both creation flows.
var (
	ErrStartTimeTooSoon = errors.New("start time must be at least 5 minutes in the future")
)

// DuplicateQuizError rejects a repeated submission and points at the quiz it
// collides with.
type DuplicateQuizError struct {
	ExistingQuizID uint
}

func (e *DuplicateQuizError) Error() string {
	return fmt.Sprintf("a quiz with this title was created moments ago (quiz %d)", e.ExistingQuizID)
}

// GenerationService is the synchronous create-and-wait flow: call the
// generator, block up to the hard timeout, and persist either generated or
// placeholder questions so the caller always gets a usable quiz back.
type GenerationService interface {
	CreateQuiz(ctx context.Context, req dto.CreateQuizRequest) (*dto.SyncGenerationResponseDTO, error)
}

type generationService struct {
	quizRepo    repository.QuizRepository
	genClient   generator.Client
	dedupWindow time.Duration
	now         func() time.Time
}

func NewGenerationService(quizRepo repository.QuizRepository, genClient generator.Client, cfg *config.Config) GenerationService {
	return &generationService{
		quizRepo:    quizRepo,
		genClient:   genClient,
		dedupWindow: time.Duration(cfg.Jobs.DedupWindowMinutes) * time.Minute,
		now:         time.Now,
	}
}

func (s *generationService) CreateQuiz(ctx context.Context, req dto.CreateQuizRequest) (*dto.SyncGenerationResponseDTO, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(req); err != nil {
		return nil, err
	}

	genReq := buildGeneratorRequest(req)

	questions, err := s.genClient.Generate(ctx, genReq)
	timedOut := false
	switch {
	case err == nil:
	case generator.IsFallback(err), errors.Is(err, generator.ErrNotConfigured):
		log.Warn().Err(err).Str("title", req.Title).Msg("Generator unavailable, substituting placeholder questions")
		questions = placeholderQuestions()
		timedOut = true
	default:
		// Permanent, user-facing generator failure: nothing is persisted.
		log.Error().Err(err).Str("title", req.Title).Msg("Generator rejected quiz creation")
		return nil, err
	}

	quiz := buildQuizModel(req)
	if timedOut {
		quiz.GenerationSource = model.GenerationSourcePlaceholder
	}

	questionModels := toQuestionModels(questions, timedOut)
	if err := s.quizRepo.CreateWithQuestions(&quiz, questionModels); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to persist quiz with questions")
		return nil, fmt.Errorf("database error creating quiz: %w", err)
	}

	var quizDTO dto.QuizResponseDTO
	if err := copier.Copy(&quizDTO, &quiz); err != nil {
		log.Error().Err(err).Msg("Failed to copy Quiz model to QuizResponseDTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	fillQuestionOptions(&quizDTO, quiz.Questions)

	return &dto.SyncGenerationResponseDTO{Quiz: quizDTO, TimedOut: timedOut}, nil
}

func (s *generationService) validate(req dto.CreateQuizRequest) error {
	if req.StartTime.Before(s.now().Add(minStartLead)) {
		return ErrStartTimeTooSoon
	}
	return nil
}

func (s *generationService) checkDuplicate(req dto.CreateQuizRequest) error {
	existing, err := s.quizRepo.FindRecentByTitleAndCreator(req.Title, req.CreatedBy, s.now().Add(-s.dedupWindow))
	if err != nil {
		return fmt.Errorf("database error checking for duplicate quiz: %w", err)
	}
	if existing != nil {
		return &DuplicateQuizError{ExistingQuizID: existing.ID}
	}
	return nil
}
