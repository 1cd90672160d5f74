package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/unistat/admissions/cmd/admissions/engine"
	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/common/cache"
	"github.com/unistat/admissions/common/logger"
	"github.com/unistat/admissions/common/telemetry"
)

// Cache keys for the published statistics snapshot
const (
	SnapshotKeyStats    = "admissions:snapshot:stats"
	SnapshotKeyOverlaps = "admissions:snapshot:overlaps"
)

// AllocationService owns the full reset-and-recompute allocation run.
// Allocation itself is a pure computation (engine.Allocate); this service
// wires it to the repository, the history recorder and the published
// statistics snapshot.
type AllocationService struct {
	applicants  ApplicantStore
	history     HistoryStore
	programs    []models.Program
	cache       cache.Cache
	metrics     *telemetry.Telemetry
	log         *logger.Logger
	snapshotTTL time.Duration
}

// AllocationServiceOpts contains options for creating an AllocationService
type AllocationServiceOpts struct {
	Applicants  ApplicantStore
	History     HistoryStore
	Programs    []models.Program
	Cache       cache.Cache
	Metrics     *telemetry.Telemetry
	Logger      *logger.Logger
	SnapshotTTL time.Duration
}

// NewAllocationService creates a new allocation service
func NewAllocationService(opts *AllocationServiceOpts) *AllocationService {
	ttl := opts.SnapshotTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AllocationService{
		applicants:  opts.Applicants,
		history:     opts.History,
		programs:    opts.Programs,
		cache:       opts.Cache,
		metrics:     opts.Metrics,
		log:         opts.Logger,
		snapshotTTL: ttl,
	}
}

// Run executes one allocation run for the given report date:
// fetch everything, compute the plan, persist it atomically, then derive
// statistics, record the dated history snapshot and publish the snapshot
// for readers. A fetch or persistence failure aborts the run and leaves
// the previously stored assignment untouched.
func (s *AllocationService) Run(ctx context.Context, date string) error {
	runID := uuid.New().String()
	log := s.log.WithRunID(runID)
	start := time.Now()

	applicants, err := s.applicants.FetchAll(ctx)
	if err != nil {
		s.recordOutcome("error", start)
		return fmt.Errorf("allocation run %s: fetch applicants: %w", runID, err)
	}

	plan := engine.Allocate(applicants, s.programs)

	if err := s.applicants.ApplyPlan(ctx, plan.Assignments); err != nil {
		s.recordOutcome("error", start)
		return fmt.Errorf("allocation run %s: apply plan: %w", runID, err)
	}

	// Statistics are derived from the exact state just persisted, not
	// from a re-read that a concurrent import could have dirtied
	applied := plan.Apply(applicants)
	stats := engine.Aggregate(applied, s.programs)
	overlaps := engine.CountOverlaps(applied, s.programs)

	// A history write failure for one program is logged and does not
	// block the others; the assignment itself is already committed
	for _, ps := range stats {
		if err := s.history.Upsert(ctx, date, ps.ProgramCode, ps.PassingScore, ps.PlacesFilled); err != nil {
			log.Error("history snapshot write failed",
				"program_code", ps.ProgramCode,
				"date", date,
				"error", err)
		}
	}

	s.publishSnapshot(ctx, log, stats, overlaps)
	s.recordRunMetrics(applicants, stats, start)

	log.Info("allocation run completed",
		"date", date,
		"applicants", len(applicants),
		"assigned", len(plan.Assignments),
		"duration_ms", time.Since(start).Milliseconds())

	return nil
}

// publishSnapshot makes the freshly computed statistics available to
// readers without touching the database again
func (s *AllocationService) publishSnapshot(ctx context.Context, log *logger.Logger, stats []models.ProgramStats, overlaps map[string]int) {
	if s.cache == nil {
		return
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, SnapshotKeyStats, payload, s.snapshotTTL); err != nil {
			log.Warn("failed to publish stats snapshot", "error", err)
		}
	}

	if payload, err := json.Marshal(overlaps); err == nil {
		if err := s.cache.Set(ctx, SnapshotKeyOverlaps, payload, s.snapshotTTL); err != nil {
			log.Warn("failed to publish overlaps snapshot", "error", err)
		}
	}
}

func (s *AllocationService) recordOutcome(outcome string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.AllocationRuns.WithLabelValues(outcome).Inc()
	s.metrics.AllocationDuration.Observe(time.Since(start).Seconds())
}

func (s *AllocationService) recordRunMetrics(applicants []models.Applicant, stats []models.ProgramStats, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.recordOutcome("ok", start)
	s.metrics.ApplicantsProcessed.Set(float64(len(applicants)))
	for _, ps := range stats {
		s.metrics.SeatsFilled.WithLabelValues(ps.ProgramCode).Set(float64(ps.PlacesFilled))
	}
}
