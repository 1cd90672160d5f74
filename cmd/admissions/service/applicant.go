package service

import (
	"context"
	"fmt"
	"math"

	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/common/logger"
)

// ApplicantService serves the paginated applicant listing
type ApplicantService struct {
	applicants ApplicantStore
	log        *logger.Logger
}

// NewApplicantService creates a new applicant service
func NewApplicantService(applicants ApplicantStore, log *logger.Logger) *ApplicantService {
	return &ApplicantService{
		applicants: applicants,
		log:        log,
	}
}

// List returns one page of applicants matching the filter
func (s *ApplicantService) List(ctx context.Context, filter models.ApplicantFilter, page, limit int) (*models.ApplicantListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit

	applicants, err := s.applicants.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}

	total, err := s.applicants.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count applicants: %w", err)
	}

	if applicants == nil {
		applicants = []models.Applicant{}
	}

	return &models.ApplicantListResponse{
		Data: applicants,
		Meta: models.PaginationMeta{
			TotalItems:  total,
			CurrentPage: page,
			TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}
