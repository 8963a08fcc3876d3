package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lampstand/berea/config"
	"github.com/lampstand/berea/internal/dto"
	"github.com/lampstand/berea/internal/generator"
	"github.com/lampstand/berea/internal/jobs"
	"github.com/lampstand/berea/internal/model"
	"github.com/lampstand/berea/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrJobNotFound signals a poll or callback against an unknown or evicted
// job identifier. The pipeline treats this as a normal outcome.
var ErrJobNotFound = errors.New("generation job not found or expired")

// ErrJobNotProcessing signals a callback that arrived for a job no longer
// accepting results (never acknowledged, or already terminal).
var ErrJobNotProcessing = errors.New("generation job is not awaiting a callback")

// AsyncGenerationService is the asynchronous creation flow: register a job,
// fire the generator without waiting for content, and let the client discover
// completion through polling or the generator's callback.
type AsyncGenerationService interface {
	StartGeneration(req dto.CreateQuizRequest) (*dto.AsyncGenerationResponseDTO, error)
	HandleCallback(req dto.GenerationCallbackRequest) error
	JobStatus(jobID string) (*dto.JobStatusDTO, error)
}

type asyncGenerationService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	tracker      *jobs.Tracker
	genClient    generator.Client
	callbackURL  string
	ackTimeout   time.Duration
	dedupWindow  time.Duration
	now          func() time.Time
}

func NewAsyncGenerationService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	tracker *jobs.Tracker,
	genClient generator.Client,
	cfg *config.Config,
) AsyncGenerationService {
	callbackURL := ""
	if base := strings.TrimRight(cfg.Generator.CallbackBaseURL, "/"); base != "" {
		callbackURL = base + "/api/v1/webhooks/generation-callback"
	}
	// The acknowledgment deadline covers every retry plus backoff.
	retries := time.Duration(cfg.Generator.AckMaxRetries + 1)
	ackWindow := retries*time.Duration(cfg.Generator.AckTimeoutSeconds)*time.Second + 30*time.Second

	return &asyncGenerationService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		tracker:      tracker,
		genClient:    genClient,
		callbackURL:  callbackURL,
		ackTimeout:   ackWindow,
		dedupWindow:  time.Duration(cfg.Jobs.DedupWindowMinutes) * time.Minute,
		now:          time.Now,
	}
}

func (s *asyncGenerationService) StartGeneration(req dto.CreateQuizRequest) (*dto.AsyncGenerationResponseDTO, error) {
	if req.StartTime.Before(s.now().Add(minStartLead)) {
		return nil, ErrStartTimeTooSoon
	}

	existing, err := s.quizRepo.FindRecentByTitleAndCreator(req.Title, req.CreatedBy, s.now().Add(-s.dedupWindow))
	if err != nil {
		return nil, fmt.Errorf("database error checking for duplicate quiz: %w", err)
	}
	if existing != nil {
		return nil, &DuplicateQuizError{ExistingQuizID: existing.ID}
	}

	quiz := buildQuizModel(req)
	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to persist draft quiz for async generation")
		return nil, fmt.Errorf("database error creating quiz: %w", err)
	}

	jobID := uuid.NewString()
	genReq := buildGeneratorRequest(req)
	genReq.JobID = jobID
	genReq.CallbackURL = s.callbackURL

	job := s.tracker.Create(jobID, quiz.ID, genReq)
	status := job.Status

	if !s.genClient.Configured() {
		// The job exists and is immediately failed so the polling contract
		// holds even on a misconfigured deployment.
		s.failJob(jobID, "Generation could not start", generator.ErrNotConfigured.Error())
		status = jobs.StatusFailed
	} else {
		go s.acknowledge(jobID, genReq)
	}

	return &dto.AsyncGenerationResponseDTO{
		JobID:     jobID,
		QuizID:    quiz.ID,
		Status:    string(status),
		StatusURL: "/api/v1/quizzes/generation-status?job_id=" + jobID,
	}, nil
}

// acknowledge runs in its own goroutine: it waits only for the generator to
// accept the request, not for question content.
func (s *asyncGenerationService) acknowledge(jobID string, genReq generator.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), s.ackTimeout)
	defer cancel()

	if err := s.genClient.Acknowledge(ctx, genReq); err != nil {
		log.Error().Err(err).Str("jobID", jobID).Msg("Generator never acknowledged the job")
		s.failJob(jobID, "Generation could not start", err.Error())
		return
	}

	status := jobs.StatusProcessing
	progress := 25
	msg := "Generator accepted the request, questions are being written"
	if _, ok := s.tracker.Apply(jobID, jobs.Update{Status: &status, Progress: &progress, Message: &msg}); !ok {
		log.Warn().Str("jobID", jobID).Msg("Job vanished before acknowledgment completed")
	}
}

func (s *asyncGenerationService) HandleCallback(req dto.GenerationCallbackRequest) error {
	job, ok := s.tracker.Get(req.JobID)
	if !ok {
		return ErrJobNotFound
	}
	if job.Status != jobs.StatusProcessing {
		log.Warn().Str("jobID", req.JobID).Str("status", string(job.Status)).Msg("Callback for a job not in processing, ignoring")
		return ErrJobNotProcessing
	}

	if req.Error != "" {
		s.failJob(req.JobID, "Generation failed", req.Error)
		return nil
	}

	questions, err := normalizeCallbackPayload(req)
	if err != nil {
		log.Error().Err(err).Str("jobID", req.JobID).Msg("Callback payload could not be normalized")
		s.failJob(req.JobID, "Generation returned unusable content", err.Error())
		return nil
	}

	questionModels := toQuestionModels(questions, false)
	for i := range questionModels {
		questionModels[i].QuizID = job.QuizID
	}
	if err := s.questionRepo.CreateBatch(questionModels); err != nil {
		log.Error().Err(err).Str("jobID", req.JobID).Uint("quizID", job.QuizID).Msg("Failed to persist generated questions")
		s.failJob(req.JobID, "Generated questions could not be saved", err.Error())
		return nil
	}
	if err := s.quizRepo.UpdateStatus(job.QuizID, model.QuizStatusReady); err != nil {
		log.Error().Err(err).Uint("quizID", job.QuizID).Msg("Failed to flip quiz status to ready")
	}

	status := jobs.StatusCompleted
	progress := 100
	msg := fmt.Sprintf("Generated %d questions", len(questions))
	s.tracker.Apply(req.JobID, jobs.Update{
		Status:   &status,
		Progress: &progress,
		Message:  &msg,
		Result:   questions,
	})
	log.Info().Str("jobID", req.JobID).Uint("quizID", job.QuizID).Int("questions", len(questions)).Msg("Generation job completed via callback")
	return nil
}

func (s *asyncGenerationService) JobStatus(jobID string) (*dto.JobStatusDTO, error) {
	job, ok := s.tracker.Get(jobID)
	if !ok {
		return nil, ErrJobNotFound
	}
	return &dto.JobStatusDTO{
		JobID:         job.ID,
		QuizID:        job.QuizID,
		Status:        string(job.Status),
		Progress:      job.Progress,
		Message:       job.Message,
		Error:         job.Error,
		QuestionCount: len(job.Result),
	}, nil
}

func (s *asyncGenerationService) failJob(jobID, message, detail string) {
	status := jobs.StatusFailed
	progress := 100
	s.tracker.Apply(jobID, jobs.Update{
		Status:   &status,
		Progress: &progress,
		Message:  &message,
		Error:    &detail,
	})
}

// normalizeCallbackPayload feeds the callback's question payload through the
// same shape normalization the synchronous flow uses.
func normalizeCallbackPayload(req dto.GenerationCallbackRequest) ([]generator.GeneratedQuestion, error) {
	if len(req.Questions) > 0 {
		return generator.Normalize(req.Questions)
	}
	if len(req.Output) > 0 {
		body, err := json.Marshal(map[string]json.RawMessage{"output": req.Output})
		if err != nil {
			return nil, err
		}
		return generator.Normalize(body)
	}
	return nil, generator.ErrEmptyResponse
}
