package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/unistat/admissions/cmd/admissions/engine"
	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/common/cache"
	"github.com/unistat/admissions/common/logger"
)

// StatisticsService serves the derived statistics. Reads prefer the
// snapshot published by the last allocation run so they see one
// consistent state; on a cache miss the statistics are recomputed from
// the stored assignment.
type StatisticsService struct {
	applicants ApplicantStore
	programs   []models.Program
	cache      cache.Cache
	log        *logger.Logger
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(applicants ApplicantStore, programs []models.Program, c cache.Cache, log *logger.Logger) *StatisticsService {
	return &StatisticsService{
		applicants: applicants,
		programs:   programs,
		cache:      c,
		log:        log,
	}
}

// ProgramStats returns per-program statistics sorted by program code
func (s *StatisticsService) ProgramStats(ctx context.Context) ([]models.ProgramStats, error) {
	if payload, ok := s.cached(ctx, SnapshotKeyStats); ok {
		var stats []models.ProgramStats
		if err := json.Unmarshal(payload, &stats); err == nil {
			return stats, nil
		}
		s.log.Warn("discarding unreadable stats snapshot")
	}

	applicants, err := s.applicants.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch applicants for statistics: %w", err)
	}

	return engine.Aggregate(applicants, s.programs), nil
}

// Overlaps returns the preference-overlap counters keyed by the sorted
// program codes of each subset
func (s *StatisticsService) Overlaps(ctx context.Context) (map[string]int, error) {
	if payload, ok := s.cached(ctx, SnapshotKeyOverlaps); ok {
		var overlaps map[string]int
		if err := json.Unmarshal(payload, &overlaps); err == nil {
			return overlaps, nil
		}
		s.log.Warn("discarding unreadable overlaps snapshot")
	}

	applicants, err := s.applicants.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch applicants for overlaps: %w", err)
	}

	return engine.CountOverlaps(applicants, s.programs), nil
}

func (s *StatisticsService) cached(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	payload, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("snapshot cache read failed", "key", key, "error", err)
		return nil, false
	}
	return payload, found
}
