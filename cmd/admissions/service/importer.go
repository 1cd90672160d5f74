package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/common/logger"
	"github.com/unistat/admissions/common/telemetry"
)

// Trigger enqueues a detached allocation run for a report date
type Trigger interface {
	Trigger(date string)
}

// ImportService is the ingestion reconciler: it normalizes raw uploaded
// rows into validated applicant write-requests, reconciles the stored
// applicant set with the batch and fires the allocation run without
// making the caller wait for it.
type ImportService struct {
	applicants ApplicantStore
	scheduler  Trigger
	metrics    *telemetry.Telemetry
	log        *logger.Logger
}

// NewImportService creates a new import service
func NewImportService(applicants ApplicantStore, scheduler Trigger, metrics *telemetry.Telemetry, log *logger.Logger) *ImportService {
	return &ImportService{
		applicants: applicants,
		scheduler:  scheduler,
		metrics:    metrics,
		log:        log,
	}
}

// Import reconciles the applicant set with the uploaded batch and
// triggers allocation for the report date (today when empty). Malformed
// rows are skipped and counted; they never abort the batch.
func (s *ImportService) Import(ctx context.Context, date string, rows []models.RawApplicantRow) (models.ImportSummary, error) {
	summary := models.ImportSummary{}

	batch := make([]models.NewApplicant, 0, len(rows))
	for _, row := range rows {
		applicant, err := normalizeRow(row)
		if err != nil {
			summary.Skipped++
			s.log.Warn("skipping malformed import row",
				"external_id", row.ExternalID,
				"error", err)
			continue
		}
		batch = append(batch, applicant)
		summary.Processed++
	}

	if err := s.applicants.Reconcile(ctx, batch); err != nil {
		s.countImport("error")
		return models.ImportSummary{}, fmt.Errorf("reconcile applicants: %w", err)
	}

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	// Fire and forget: the response reflects ingestion only, callers
	// re-fetch statistics to observe the new assignment
	s.scheduler.Trigger(date)
	s.countImport("ok")

	s.log.Info("import reconciled",
		"date", date,
		"processed", summary.Processed,
		"skipped", summary.Skipped)

	return summary, nil
}

func (s *ImportService) countImport(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ImportsTotal.WithLabelValues(outcome).Inc()
}

// normalizeRow turns one raw row into a validated write-request:
// consent parsed from free text, priorities split and trimmed, total
// recomputed from the components.
func normalizeRow(row models.RawApplicantRow) (models.NewApplicant, error) {
	if row.ExternalID <= 0 {
		return models.NewApplicant{}, fmt.Errorf("external_id must be positive, got %d", row.ExternalID)
	}

	name := strings.TrimSpace(row.FullName)
	if name == "" {
		return models.NewApplicant{}, fmt.Errorf("full_name is required")
	}

	if row.Math < 0 || row.Language < 0 || row.Physics < 0 || row.Achievements < 0 {
		return models.NewApplicant{}, fmt.Errorf("component scores must be non-negative")
	}

	return models.NewApplicant{
		ExternalID: row.ExternalID,
		FullName:   name,
		Scores: models.Scores{
			Math:         row.Math,
			Language:     row.Language,
			Physics:      row.Physics,
			Achievements: row.Achievements,
		},
		Agreed:     parseConsent(row.Agreed),
		Priorities: splitPriorities(row.Priorities),
	}, nil
}

// parseConsent recognizes the truth values seen in source uploads,
// case-insensitively
func parseConsent(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "да", "+":
		return true
	default:
		return false
	}
}

// splitPriorities splits a ';'-delimited preference string into an
// ordered list, dropping empty entries and capping at four ranks
func splitPriorities(raw string) []string {
	var priorities []string
	for _, part := range strings.Split(raw, ";") {
		code := strings.TrimSpace(part)
		if code == "" {
			continue
		}
		priorities = append(priorities, code)
		if len(priorities) == models.MaxPriorities {
			break
		}
	}
	return priorities
}
