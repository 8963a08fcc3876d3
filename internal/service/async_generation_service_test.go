package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lampstand/berea/internal/dto"
	"github.com/lampstand/berea/internal/generator"
	"github.com/lampstand/berea/internal/jobs"
	"github.com/lampstand/berea/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type asyncFixture struct {
	svc     *asyncGenerationService
	repo    *fakeQuizRepo
	qRepo   *fakeQuestionRepo
	gen     *fakeGenerator
	tracker *jobs.Tracker
}

func newAsyncFixture(t *testing.T) *asyncFixture {
	t.Helper()
	repo := newFakeQuizRepo()
	qRepo := newFakeQuestionRepo()
	gen := newFakeGenerator()
	tracker := jobs.NewTrackerWithLifetimes(10*time.Minute, 20*time.Minute, 5*time.Minute, time.Minute)
	t.Cleanup(tracker.Close)

	svc := NewAsyncGenerationService(repo, qRepo, tracker, gen, testConfig()).(*asyncGenerationService)
	return &asyncFixture{svc: svc, repo: repo, qRepo: qRepo, gen: gen, tracker: tracker}
}

// waitForStatus polls the tracker until the job reaches want or the deadline
// expires; the acknowledgment runs on its own goroutine.
func waitForStatus(t *testing.T, tracker *jobs.Tracker, jobID string, want jobs.Status) *jobs.GenerationJob {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("job %s never reached status %s", jobID, want)
		case <-time.After(5 * time.Millisecond):
		}
		if job, ok := tracker.Get(jobID); ok && job.Status == want {
			return job
		}
	}
}

func TestStartGenerationAcknowledgedMovesToProcessing(t *testing.T) {
	fx := newAsyncFixture(t)
	now := time.Now()

	resp, err := fx.svc.StartGeneration(validRequest(now))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.JobID)
	assert.NotZero(t, resp.QuizID)
	assert.Contains(t, resp.StatusURL, resp.JobID)

	// The kickoff request must carry the job id and callback URL.
	ackReq := <-fx.gen.ackSeen
	assert.Equal(t, resp.JobID, ackReq.JobID)
	assert.Equal(t, "http://berea.local/api/v1/webhooks/generation-callback", ackReq.CallbackURL)

	job := waitForStatus(t, fx.tracker, resp.JobID, jobs.StatusProcessing)
	assert.Equal(t, 25, job.Progress)
}

func TestStartGenerationAckFailureFailsJob(t *testing.T) {
	fx := newAsyncFixture(t)
	fx.gen.ackErr = generator.ErrTimeout

	resp, err := fx.svc.StartGeneration(validRequest(time.Now()))
	require.NoError(t, err, "the creation call itself must still succeed")

	<-fx.gen.ackSeen
	job := waitForStatus(t, fx.tracker, resp.JobID, jobs.StatusFailed)
	assert.NotEmpty(t, job.Error)
}

func TestStartGenerationUnconfiguredFailsImmediately(t *testing.T) {
	fx := newAsyncFixture(t)
	fx.gen.configured = false

	resp, err := fx.svc.StartGeneration(validRequest(time.Now()))
	require.NoError(t, err)

	// No goroutine involved: the job is failed before the response returns.
	status, err := fx.svc.JobStatus(resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, string(jobs.StatusFailed), status.Status)
	assert.Contains(t, status.Error, "configured")
}

func TestStartGenerationStartTimeFloor(t *testing.T) {
	fx := newAsyncFixture(t)
	req := validRequest(time.Now())
	req.StartTime = time.Now().Add(time.Minute)

	_, err := fx.svc.StartGeneration(req)
	assert.ErrorIs(t, err, ErrStartTimeTooSoon)
	assert.Empty(t, fx.repo.quizzes)
	assert.Equal(t, 0, fx.tracker.Len())
}

func TestStartGenerationDuplicateConflicts(t *testing.T) {
	fx := newAsyncFixture(t)
	now := time.Now()

	first, err := fx.svc.StartGeneration(validRequest(now))
	require.NoError(t, err)
	<-fx.gen.ackSeen

	_, err = fx.svc.StartGeneration(validRequest(now))
	var dup *DuplicateQuizError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.QuizID, dup.ExistingQuizID)
}

func startProcessingJob(t *testing.T, fx *asyncFixture) *dto.AsyncGenerationResponseDTO {
	t.Helper()
	resp, err := fx.svc.StartGeneration(validRequest(time.Now()))
	require.NoError(t, err)
	<-fx.gen.ackSeen
	waitForStatus(t, fx.tracker, resp.JobID, jobs.StatusProcessing)
	return resp
}

func TestHandleCallbackCompletesJobAndPersistsQuestions(t *testing.T) {
	fx := newAsyncFixture(t)
	resp := startProcessingJob(t, fx)

	payload, err := json.Marshal(sampleQuestions())
	require.NoError(t, err)

	err = fx.svc.HandleCallback(dto.GenerationCallbackRequest{JobID: resp.JobID, Questions: payload})
	require.NoError(t, err)

	status, err := fx.svc.JobStatus(resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, string(jobs.StatusCompleted), status.Status)
	assert.Equal(t, 100, status.Progress)
	assert.Equal(t, 2, status.QuestionCount)

	persisted, err := fx.qRepo.FindByQuizID(resp.QuizID)
	require.NoError(t, err)
	require.Len(t, persisted, 2)
	assert.Equal(t, "Who denied Jesus three times?", persisted[0].Text)

	quiz, err := fx.repo.FindByID(resp.QuizID)
	require.NoError(t, err)
	assert.Equal(t, model.QuizStatusReady, quiz.Status)
}

func TestHandleCallbackErrorBodyFailsJob(t *testing.T) {
	fx := newAsyncFixture(t)
	resp := startProcessingJob(t, fx)

	err := fx.svc.HandleCallback(dto.GenerationCallbackRequest{JobID: resp.JobID, Error: "document too short"})
	require.NoError(t, err)

	status, err := fx.svc.JobStatus(resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, string(jobs.StatusFailed), status.Status)
	assert.Equal(t, "document too short", status.Error)
}

func TestHandleCallbackUnknownJob(t *testing.T) {
	fx := newAsyncFixture(t)

	err := fx.svc.HandleCallback(dto.GenerationCallbackRequest{JobID: "missing"})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestHandleCallbackTerminalJobIsRejected(t *testing.T) {
	fx := newAsyncFixture(t)
	resp := startProcessingJob(t, fx)

	payload, _ := json.Marshal(sampleQuestions())
	require.NoError(t, fx.svc.HandleCallback(dto.GenerationCallbackRequest{JobID: resp.JobID, Questions: payload}))

	// A second callback must not disturb the completed job.
	err := fx.svc.HandleCallback(dto.GenerationCallbackRequest{JobID: resp.JobID, Error: "late error"})
	assert.ErrorIs(t, err, ErrJobNotProcessing)

	status, _ := fx.svc.JobStatus(resp.JobID)
	assert.Equal(t, string(jobs.StatusCompleted), status.Status)
}

func TestHandleCallbackOutputEnvelope(t *testing.T) {
	fx := newAsyncFixture(t)
	resp := startProcessingJob(t, fx)

	inner, err := json.Marshal(map[string]any{"questions": sampleQuestions()})
	require.NoError(t, err)

	err = fx.svc.HandleCallback(dto.GenerationCallbackRequest{JobID: resp.JobID, Output: inner})
	require.NoError(t, err)

	status, _ := fx.svc.JobStatus(resp.JobID)
	assert.Equal(t, string(jobs.StatusCompleted), status.Status)
	assert.Equal(t, 2, status.QuestionCount)
}

func TestJobStatusHidesRequestPayload(t *testing.T) {
	fx := newAsyncFixture(t)
	resp := startProcessingJob(t, fx)

	status, err := fx.svc.JobStatus(resp.JobID)
	require.NoError(t, err)

	// The poll projection carries no trace of the original generator request.
	raw, err := json.Marshal(status)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "acts-notes.pdf")
	assert.NotContains(t, string(raw), "callback_url")
}

func TestJobStatusUnknownJob(t *testing.T) {
	fx := newAsyncFixture(t)

	_, err := fx.svc.JobStatus("gone")
	assert.ErrorIs(t, err, ErrJobNotFound)
}
