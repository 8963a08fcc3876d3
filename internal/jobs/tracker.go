package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/lampstand/berea/config"
	"github.com/lampstand/berea/internal/generator"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// timedOutMessage is what a polling client sees when the sweep force-fails a
// job that sat in processing past the grace window.
const timedOutMessage = "generation timed out"

// Tracker is the in-memory, process-local registry of generation jobs. It is
// shared mutable state across request handlers; every operation takes the
// tracker mutex, including the sweep, so a job is never evicted mid-update.
//
// Lifetimes are two-tier: every job is evicted once it outlives the TTL,
// except jobs still in processing, which get a grace extension because
// external generation time is content-dependent. A job still processing past
// the grace window is force-failed with a timeout error and retained briefly
// so pollers observe the failure instead of a vanished job.
type Tracker struct {
	mu   sync.Mutex
	jobs map[string]*GenerationJob

	ttl             time.Duration
	grace           time.Duration
	failedRetention time.Duration
	sweepInterval   time.Duration

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// NewTracker builds a tracker from config and hooks its sweep loop into the
// fx lifecycle.
func NewTracker(lc fx.Lifecycle, cfg *config.Config) *Tracker {
	t := NewTrackerWithLifetimes(
		time.Duration(cfg.Jobs.TTLMinutes)*time.Minute,
		time.Duration(cfg.Jobs.GraceMinutes)*time.Minute,
		time.Duration(cfg.Jobs.FailedRetentionMinutes)*time.Minute,
		time.Duration(cfg.Jobs.SweepIntervalSeconds)*time.Second,
	)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go t.runSweeper()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			t.Close()
			return nil
		},
	})
	return t
}

// NewTrackerWithLifetimes builds a tracker with explicit lifetimes. Tests use
// this to shrink the windows.
func NewTrackerWithLifetimes(ttl, grace, failedRetention, sweepInterval time.Duration) *Tracker {
	return &Tracker{
		jobs:            make(map[string]*GenerationJob),
		ttl:             ttl,
		grace:           grace,
		failedRetention: failedRetention,
		sweepInterval:   sweepInterval,
		now:             time.Now,
		stop:            make(chan struct{}),
	}
}

// Create inserts a new pending job and schedules its eventual eviction via an
// individual expiry timer; the periodic sweep is the backstop.
func (t *Tracker) Create(jobID string, quizID uint, payload generator.Request) *GenerationJob {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	job := &GenerationJob{
		ID:             jobID,
		QuizID:         quizID,
		Status:         StatusPending,
		Progress:       0,
		Message:        "Preparing question generation",
		RequestPayload: payload,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	t.jobs[jobID] = job

	time.AfterFunc(t.ttl, func() { t.expire(jobID) })

	log.Info().Str("jobID", jobID).Uint("quizID", quizID).Msg("Generation job registered")
	return snapshot(job)
}

// Get returns a copy of the job, or ok=false when the identifier is unknown
// or already evicted. Absence is a normal outcome, not an error.
func (t *Tracker) Get(jobID string) (*GenerationJob, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[jobID]
	if !ok {
		return nil, false
	}
	return snapshot(job), true
}

// Apply merges upd into the job and bumps UpdatedAt. Once a job is terminal
// only UpdatedAt may still move; the terminal status, result and error are
// frozen. Returns ok=false when the job does not exist.
func (t *Tracker) Apply(jobID string, upd Update) (*GenerationJob, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.applyLocked(jobID, upd)
}

func (t *Tracker) applyLocked(jobID string, upd Update) (*GenerationJob, bool) {
	job, ok := t.jobs[jobID]
	if !ok {
		return nil, false
	}

	if !job.Status.Terminal() {
		if upd.Status != nil {
			job.Status = *upd.Status
		}
		if upd.Progress != nil {
			job.Progress = *upd.Progress
		}
		if upd.Message != nil {
			job.Message = *upd.Message
		}
		if upd.Result != nil {
			job.Result = upd.Result
		}
		if upd.Error != nil {
			job.Error = *upd.Error
		}
	}
	job.UpdatedAt = t.now()
	return snapshot(job), true
}

// Delete removes the job; removing an unknown identifier is a no-op.
func (t *Tracker) Delete(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, jobID)
}

// Len reports the number of tracked jobs.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}

// Sweep evicts every job past its lifetime. Jobs still processing within the
// grace window are kept; processing jobs past the grace window are forced to
// failed with a timeout error and retained for the failed-retention window so
// a poller sees the failure before the entry disappears.
func (t *Tracker) Sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for id, job := range t.jobs {
		age := now.Sub(job.CreatedAt)
		switch {
		case job.Status == StatusProcessing:
			if age > t.ttl+t.grace {
				t.forceTimeoutLocked(id)
			}
		case job.Status.Terminal():
			// Terminal jobs stay pollable for at least the retention window
			// after their last transition.
			if age > t.ttl && now.Sub(job.UpdatedAt) > t.failedRetention {
				delete(t.jobs, id)
			}
		case age > t.ttl:
			delete(t.jobs, id)
		}
	}
}

// expire is the per-job timer path. It applies the same rules as Sweep to a
// single entry and reschedules itself while the job is within the grace or
// retention windows.
func (t *Tracker) expire(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[jobID]
	if !ok {
		return
	}

	now := t.now()
	age := now.Sub(job.CreatedAt)
	switch {
	case job.Status == StatusProcessing && age <= t.ttl+t.grace:
		time.AfterFunc(t.ttl+t.grace-age+time.Second, func() { t.expire(jobID) })
	case job.Status == StatusProcessing:
		t.forceTimeoutLocked(jobID)
		time.AfterFunc(t.failedRetention+time.Second, func() { t.expire(jobID) })
	case job.Status.Terminal() && now.Sub(job.UpdatedAt) <= t.failedRetention:
		time.AfterFunc(t.failedRetention+time.Second, func() { t.expire(jobID) })
	case job.Status.Terminal() && age <= t.ttl:
		time.AfterFunc(t.ttl-age+time.Second, func() { t.expire(jobID) })
	default:
		delete(t.jobs, jobID)
	}
}

func (t *Tracker) forceTimeoutLocked(jobID string) {
	status := StatusFailed
	msg := timedOutMessage
	errMsg := "the generator did not report a result before the deadline"
	t.applyLocked(jobID, Update{Status: &status, Message: &msg, Error: &errMsg})
	log.Warn().Str("jobID", jobID).Msg("Generation job timed out past grace window, forcing failure")
}

func (t *Tracker) runSweeper() {
	ticker := time.NewTicker(t.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.Sweep()
		}
	}
}

// Close stops the sweep loop. Per-job timers may still fire afterwards; they
// only touch the map under the mutex, so that is harmless.
func (t *Tracker) Close() {
	t.once.Do(func() { close(t.stop) })
}

func snapshot(job *GenerationJob) *GenerationJob {
	cp := *job
	if job.Result != nil {
		cp.Result = make([]generator.GeneratedQuestion, len(job.Result))
		copy(cp.Result, job.Result)
	}
	return &cp
}
