package service

import (
	"context"
	"sync"
	"time"

	"github.com/unistat/admissions/common/logger"
)

// SchedulerState is the single-flight allocation state
type SchedulerState string

const (
	StateIdle    SchedulerState = "idle"
	StateRunning SchedulerState = "running"
	// A trigger arrived while a run was in flight; the queued date
	// starts as soon as the current run finishes
	StateQueued SchedulerState = "queued"
)

// RunFunc executes one allocation run for a report date
type RunFunc func(ctx context.Context, date string) error

// Scheduler serializes allocation runs. At most one run executes at a
// time; triggers arriving mid-run coalesce into a single queued date
// (the latest trigger wins). Callers never wait for the run itself.
type Scheduler struct {
	run RunFunc
	log *logger.Logger

	mu          sync.Mutex
	running     bool
	runningDate string
	queued      bool
	queuedDate  string

	lastDate     string
	lastOutcome  string
	lastFinished time.Time

	// wakes tests waiting for the scheduler to drain
	idle *sync.Cond
}

// SchedulerStatus is the externally visible scheduler state
type SchedulerStatus struct {
	State        SchedulerState `json:"state"`
	RunningDate  string         `json:"running_date,omitempty"`
	QueuedDate   string         `json:"queued_date,omitempty"`
	LastDate     string         `json:"last_date,omitempty"`
	LastOutcome  string         `json:"last_outcome,omitempty"`
	LastFinished *time.Time     `json:"last_finished,omitempty"`
}

// NewScheduler creates a new single-flight scheduler
func NewScheduler(run RunFunc, log *logger.Logger) *Scheduler {
	s := &Scheduler{
		run: run,
		log: log,
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// Trigger requests an allocation run for the given report date and
// returns immediately. Overlapping triggers coalesce instead of racing:
// a run in flight finishes untouched and exactly one follow-up run
// starts afterwards, for the most recently requested date.
func (s *Scheduler) Trigger(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		if s.queued {
			s.log.Debug("allocation trigger coalesced", "replaced_date", s.queuedDate, "date", date)
		}
		s.queued = true
		s.queuedDate = date
		return
	}

	s.start(date)
}

// start must be called with the lock held
func (s *Scheduler) start(date string) {
	s.running = true
	s.runningDate = date

	go func() {
		// Detached from the triggering request on purpose: import
		// callers observe ingestion success only and poll for results
		err := s.run(context.Background(), date)

		s.mu.Lock()
		outcome := "ok"
		if err != nil {
			outcome = "error"
			s.log.Error("allocation run failed", "date", date, "error", err)
		}
		s.lastDate = date
		s.lastOutcome = outcome
		s.lastFinished = time.Now()
		s.running = false
		s.runningDate = ""

		if s.queued {
			next := s.queuedDate
			s.queued = false
			s.queuedDate = ""
			s.start(next)
		} else {
			s.idle.Broadcast()
		}
		s.mu.Unlock()
	}()
}

// Status reports the current scheduler state
func (s *Scheduler) Status() SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := SchedulerStatus{State: StateIdle}
	switch {
	case s.running && s.queued:
		status.State = StateQueued
		status.RunningDate = s.runningDate
		status.QueuedDate = s.queuedDate
	case s.running:
		status.State = StateRunning
		status.RunningDate = s.runningDate
	}

	if s.lastOutcome != "" {
		status.LastDate = s.lastDate
		status.LastOutcome = s.lastOutcome
		finished := s.lastFinished
		status.LastFinished = &finished
	}

	return status
}

// Wait blocks until no run is executing or queued. Intended for tests
// and shutdown paths.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.running || s.queued {
		s.idle.Wait()
	}
}
