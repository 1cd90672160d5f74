package repository

import (
	"context"
	"fmt"

	"github.com/unistat/admissions/common/db"
)

// schema is applied at startup. Idempotent so restarts are safe.
const schema = `
CREATE TABLE IF NOT EXISTS applicants (
	id                  BIGSERIAL PRIMARY KEY,
	external_id         BIGINT NOT NULL UNIQUE,
	full_name           TEXT NOT NULL,
	agreed              BOOLEAN NOT NULL DEFAULT FALSE,
	score_math          INT NOT NULL DEFAULT 0,
	score_language      INT NOT NULL DEFAULT 0,
	score_physics       INT NOT NULL DEFAULT 0,
	score_achievements  INT NOT NULL DEFAULT 0,
	total_score         INT NOT NULL DEFAULT 0,
	priorities          TEXT[] NOT NULL DEFAULT '{}',
	current_program     TEXT,
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_applicants_total_score ON applicants (total_score DESC);
CREATE INDEX IF NOT EXISTS idx_applicants_current_program ON applicants (current_program);

CREATE TABLE IF NOT EXISTS history_stats (
	record_date    DATE NOT NULL,
	program_code   TEXT NOT NULL,
	passing_score  INT NOT NULL DEFAULT 0,
	places_filled  INT NOT NULL DEFAULT 0,
	PRIMARY KEY (record_date, program_code)
);
`

// InitSchema creates the tables the service needs
func InitSchema(ctx context.Context, database *db.DB) error {
	if _, err := database.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
