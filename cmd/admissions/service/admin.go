package service

import (
	"context"
	"fmt"

	"github.com/unistat/admissions/common/cache"
	"github.com/unistat/admissions/common/logger"
)

// AdminService handles destructive maintenance operations
type AdminService struct {
	applicants ApplicantStore
	cache      cache.Cache
	log        *logger.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(applicants ApplicantStore, c cache.Cache, log *logger.Logger) *AdminService {
	return &AdminService{
		applicants: applicants,
		cache:      c,
		log:        log,
	}
}

// Clear wipes the applicant set and the history time series, and drops
// the published statistics snapshot so readers do not see stale data
func (s *AdminService) Clear(ctx context.Context) error {
	if err := s.applicants.Clear(ctx); err != nil {
		return fmt.Errorf("clear database: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, SnapshotKeyStats); err != nil {
			s.log.Warn("failed to drop stats snapshot", "error", err)
		}
		if err := s.cache.Delete(ctx, SnapshotKeyOverlaps); err != nil {
			s.log.Warn("failed to drop overlaps snapshot", "error", err)
		}
	}

	s.log.Info("database cleared")
	return nil
}
