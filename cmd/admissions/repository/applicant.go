package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/common/db"
)

// ApplicantRepository handles database operations for applicants
type ApplicantRepository struct {
	db *db.DB
}

// NewApplicantRepository creates a new applicant repository
func NewApplicantRepository(database *db.DB) *ApplicantRepository {
	return &ApplicantRepository{db: database}
}

const applicantColumns = `
	id, external_id, full_name, agreed, total_score,
	score_math, score_language, score_physics, score_achievements,
	priorities, current_program
`

// FetchAll retrieves the complete applicant set in one unbounded read.
// The allocation engine depends on seeing every applicant; a capped page
// here would silently truncate allocation.
func (r *ApplicantRepository) FetchAll(ctx context.Context) ([]models.Applicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM applicants ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applicants: %w", err)
	}
	defer rows.Close()

	return scanApplicants(rows)
}

// List retrieves one page of applicants matching the filter, ordered by
// total score descending
func (r *ApplicantRepository) List(ctx context.Context, filter models.ApplicantFilter, limit, offset int) ([]models.Applicant, error) {
	where, args := buildFilter(filter)

	query := `SELECT ` + applicantColumns + ` FROM applicants` + where +
		fmt.Sprintf(" ORDER BY total_score DESC, id ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	return scanApplicants(rows)
}

// Count returns the number of applicants matching the filter
func (r *ApplicantRepository) Count(ctx context.Context, filter models.ApplicantFilter) (int, error) {
	where, args := buildFilter(filter)

	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM applicants"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count applicants: %w", err)
	}
	return count, nil
}

// Reconcile makes the stored applicant set match the batch: every record
// is upserted by external ID and applicants absent from the batch are
// deleted, all in one transaction. An empty batch clears the table.
func (r *ApplicantRepository) Reconcile(ctx context.Context, batch []models.NewApplicant) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reconcile transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	upsert := `
		INSERT INTO applicants (
			external_id, full_name, agreed,
			score_math, score_language, score_physics, score_achievements,
			total_score, priorities, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (external_id) DO UPDATE SET
			full_name          = excluded.full_name,
			agreed             = excluded.agreed,
			score_math         = excluded.score_math,
			score_language     = excluded.score_language,
			score_physics      = excluded.score_physics,
			score_achievements = excluded.score_achievements,
			total_score        = excluded.total_score,
			priorities         = excluded.priorities,
			updated_at         = NOW()
	`

	presentIDs := make([]int64, 0, len(batch))
	pending := &pgx.Batch{}
	for _, p := range batch {
		pending.Queue(upsert,
			p.ExternalID,
			p.FullName,
			p.Agreed,
			p.Scores.Math,
			p.Scores.Language,
			p.Scores.Physics,
			p.Scores.Achievements,
			p.Scores.Sum(),
			p.Priorities,
		)
		presentIDs = append(presentIDs, p.ExternalID)
	}

	if pending.Len() > 0 {
		if err := tx.SendBatch(ctx, pending).Close(); err != nil {
			return fmt.Errorf("failed to upsert applicants: %w", err)
		}
	}

	// Applicants missing from the latest batch are gone from the source
	if _, err := tx.Exec(ctx, "DELETE FROM applicants WHERE external_id <> ALL($1)", presentIDs); err != nil {
		return fmt.Errorf("failed to delete missing applicants: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reconcile transaction: %w", err)
	}

	return nil
}

// ApplyPlan persists a full assignment plan atomically: every applicant
// is reset to unassigned, then the plan's assignments are written, in a
// single transaction. Either the whole plan lands or none of it does.
func (r *ApplicantRepository) ApplyPlan(ctx context.Context, assignments map[int64]string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin plan transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "UPDATE applicants SET current_program = NULL"); err != nil {
		return fmt.Errorf("failed to reset assignments: %w", err)
	}

	pending := &pgx.Batch{}
	for applicantID, code := range assignments {
		pending.Queue("UPDATE applicants SET current_program = $1 WHERE id = $2", code, applicantID)
	}

	if pending.Len() > 0 {
		if err := tx.SendBatch(ctx, pending).Close(); err != nil {
			return fmt.Errorf("failed to write assignments: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit plan transaction: %w", err)
	}

	return nil
}

// Clear removes all applicants and the history time series in one
// transaction
func (r *ApplicantRepository) Clear(ctx context.Context) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin clear transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM applicants"); err != nil {
		return fmt.Errorf("failed to clear applicants: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM history_stats"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit clear transaction: %w", err)
	}

	return nil
}

func buildFilter(filter models.ApplicantFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("full_name ILIKE $%d", len(args)))
	}
	if filter.Agreed != nil {
		args = append(args, *filter.Agreed)
		clauses = append(clauses, fmt.Sprintf("agreed = $%d", len(args)))
	}
	if filter.Program != "" {
		args = append(args, filter.Program)
		clauses = append(clauses, fmt.Sprintf("current_program = $%d", len(args)))
	}
	if filter.MinScore != nil {
		args = append(args, *filter.MinScore)
		clauses = append(clauses, fmt.Sprintf("total_score >= $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanApplicants(rows pgx.Rows) ([]models.Applicant, error) {
	var applicants []models.Applicant
	for rows.Next() {
		var a models.Applicant
		err := rows.Scan(
			&a.ID,
			&a.ExternalID,
			&a.FullName,
			&a.Agreed,
			&a.TotalScore,
			&a.Scores.Math,
			&a.Scores.Language,
			&a.Scores.Physics,
			&a.Scores.Achievements,
			&a.Priorities,
			&a.CurrentProgram,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		applicants = append(applicants, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applicants: %w", err)
	}

	return applicants, nil
}
