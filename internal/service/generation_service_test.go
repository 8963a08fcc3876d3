package service

import (
	"context"
	"testing"
	"time"

	"github.com/lampstand/berea/config"
	"github.com/lampstand/berea/internal/dto"
	"github.com/lampstand/berea/internal/generator"
	"github.com/lampstand/berea/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Generator.URL = "http://generator.local"
	cfg.Generator.SyncTimeoutSeconds = 100
	cfg.Generator.AckTimeoutSeconds = 12
	cfg.Generator.AckMaxRetries = 3
	cfg.Generator.CallbackBaseURL = "http://berea.local"
	cfg.Jobs.TTLMinutes = 10
	cfg.Jobs.GraceMinutes = 20
	cfg.Jobs.FailedRetentionMinutes = 5
	cfg.Jobs.SweepIntervalSeconds = 60
	cfg.Jobs.DedupWindowMinutes = 5
	return cfg
}

func validRequest(now time.Time) dto.CreateQuizRequest {
	return dto.CreateQuizRequest{
		Title:         "Acts of the Apostles",
		CreatedBy:     7,
		Documents:     []dto.DocumentRefDTO{{ID: 1, Filename: "acts-notes.pdf"}},
		QuestionCount: 2,
		Book:          "Acts",
		Difficulty:    "medium",
		StartTime:     now.Add(time.Hour),
	}
}

func newSyncService(repo *fakeQuizRepo, gen *fakeGenerator, now time.Time) *generationService {
	svc := NewGenerationService(repo, gen, testConfig()).(*generationService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateQuizSuccess(t *testing.T) {
	now := time.Now()
	repo := newFakeQuizRepo()
	gen := newFakeGenerator()
	gen.questions = sampleQuestions()
	svc := newSyncService(repo, gen, now)

	resp, err := svc.CreateQuiz(context.Background(), validRequest(now))
	require.NoError(t, err)

	assert.False(t, resp.TimedOut)
	assert.Equal(t, model.QuizStatusReady, resp.Quiz.Status)
	assert.Equal(t, model.GenerationSourceAI, resp.Quiz.GenerationSource)
	require.Len(t, resp.Quiz.Questions, 2)
	assert.Equal(t, "Who denied Jesus three times?", resp.Quiz.Questions[0].Text)
	assert.Equal(t, map[string]string{"A": "Peter", "B": "Judas", "C": "Thomas", "D": "John"}, resp.Quiz.Questions[0].Options)
	assert.Equal(t, 1, resp.Quiz.Questions[0].OrderInQuiz)
	assert.Equal(t, 2, resp.Quiz.Questions[1].OrderInQuiz)
	assert.False(t, resp.Quiz.Questions[0].IsPlaceholder)
}

func TestCreateQuizStartTimeFloor(t *testing.T) {
	now := time.Now()
	repo := newFakeQuizRepo()
	gen := newFakeGenerator()
	svc := newSyncService(repo, gen, now)

	req := validRequest(now)
	req.StartTime = now.Add(3 * time.Minute)

	_, err := svc.CreateQuiz(context.Background(), req)
	assert.ErrorIs(t, err, ErrStartTimeTooSoon)
	assert.Empty(t, repo.quizzes, "nothing may be persisted on validation failure")
	assert.Empty(t, gen.generateSeen, "the generator must not be called on validation failure")
}

func TestCreateQuizTimeoutFallsBackToPlaceholders(t *testing.T) {
	now := time.Now()
	repo := newFakeQuizRepo()
	gen := newFakeGenerator()
	gen.generateErr = generator.ErrTimeout
	svc := newSyncService(repo, gen, now)

	resp, err := svc.CreateQuiz(context.Background(), validRequest(now))
	require.NoError(t, err)

	assert.True(t, resp.TimedOut)
	assert.Equal(t, model.GenerationSourcePlaceholder, resp.Quiz.GenerationSource)
	require.Len(t, resp.Quiz.Questions, len(placeholderQuestions()))
	for _, q := range resp.Quiz.Questions {
		assert.True(t, q.IsPlaceholder)
		assert.Contains(t, q.Text, "PLACEHOLDER")
	}
	// Placeholder quizzes are still persisted and immediately usable.
	assert.Len(t, repo.quizzes, 1)
}

func TestCreateQuizEmptyBodyFallsBackToPlaceholders(t *testing.T) {
	now := time.Now()
	repo := newFakeQuizRepo()
	gen := newFakeGenerator()
	gen.generateErr = generator.ErrEmptyResponse
	svc := newSyncService(repo, gen, now)

	resp, err := svc.CreateQuiz(context.Background(), validRequest(now))
	require.NoError(t, err)
	assert.True(t, resp.TimedOut)
	assert.Len(t, resp.Quiz.Questions, len(placeholderQuestions()))
}

func TestCreateQuizPermanentGeneratorErrorPropagates(t *testing.T) {
	now := time.Now()

	for _, genErr := range []error{generator.ErrNotFound, generator.ErrBusy, generator.ErrUnsupported, generator.ErrInternal} {
		repo := newFakeQuizRepo()
		gen := newFakeGenerator()
		gen.generateErr = genErr
		svc := newSyncService(repo, gen, now)

		_, err := svc.CreateQuiz(context.Background(), validRequest(now))
		assert.ErrorIs(t, err, genErr)
		assert.Empty(t, repo.quizzes, "permanent errors must not persist a quiz")
	}
}

func TestCreateQuizDuplicateWithinWindowConflicts(t *testing.T) {
	now := time.Now()
	repo := newFakeQuizRepo()
	gen := newFakeGenerator()
	gen.questions = sampleQuestions()
	svc := newSyncService(repo, gen, now)

	first, err := svc.CreateQuiz(context.Background(), validRequest(now))
	require.NoError(t, err)

	_, err = svc.CreateQuiz(context.Background(), validRequest(now))
	var dup *DuplicateQuizError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.Quiz.ID, dup.ExistingQuizID)

	// A different creator with the same title is not a duplicate.
	other := validRequest(now)
	other.CreatedBy = 99
	_, err = svc.CreateQuiz(context.Background(), other)
	assert.NoError(t, err)
}

func TestCreateQuizDuplicateAfterWindowIsAccepted(t *testing.T) {
	now := time.Now()
	repo := newFakeQuizRepo()
	gen := newFakeGenerator()
	gen.questions = sampleQuestions()
	svc := newSyncService(repo, gen, now)

	_, err := svc.CreateQuiz(context.Background(), validRequest(now))
	require.NoError(t, err)

	// Same submission six minutes later, past the five-minute window.
	later := now.Add(6 * time.Minute)
	svc.now = func() time.Time { return later }
	req := validRequest(now)
	req.StartTime = later.Add(time.Hour)

	_, err = svc.CreateQuiz(context.Background(), req)
	assert.NoError(t, err)
}
