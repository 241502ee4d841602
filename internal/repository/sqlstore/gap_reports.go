package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garnizeh/skillbridge/internal/codec"
	"github.com/garnizeh/skillbridge/internal/db"
	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/google/uuid"
)

const gapReportColumns = `id, user_id, readiness_score, skill_gaps, generated_at`

// CreateGapReport stores a new report. An unknown user id fails with
// repository.ErrNotFound.
func (r *Repo) CreateGapReport(ctx context.Context, userID string, readinessScore float64, gaps []models.SkillGap) (*models.GapReport, error) {
	encoded, err := codec.Encode(gaps)
	if err != nil {
		return nil, fmt.Errorf("create gap report: %w", err)
	}

	id := uuid.NewString()
	_, err = r.q.Exec(ctx, `INSERT INTO gap_reports (`+gapReportColumns+`) VALUES (?, ?, ?, ?, ?)`,
		id, userID, readinessScore, encoded, r.stamp())
	if err != nil {
		return nil, fmt.Errorf("create gap report: %w", err)
	}

	return scanGapReport(ctx, r.q.QueryRow(ctx, `SELECT `+gapReportColumns+` FROM gap_reports WHERE id = ?`, id))
}

// GetCurrentGapReport returns the report with the latest generated_at.
func (r *Repo) GetCurrentGapReport(ctx context.Context, userID string) (*models.GapReport, error) {
	row := r.q.QueryRow(ctx, `SELECT `+gapReportColumns+` FROM gap_reports WHERE user_id = ? ORDER BY generated_at DESC LIMIT 1`, userID)
	return scanGapReport(ctx, row)
}

func scanGapReport(ctx context.Context, row rowScanner) (*models.GapReport, error) {
	var (
		g     models.GapReport
		score sql.NullFloat64
		gaps  sql.NullString
	)
	if err := row.Scan(&g.ID, &g.UserID, &score, &gaps, &g.GeneratedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, db.Classify(err)
	}

	decoded, err := codec.DecodeChecked[models.SkillGap](ctx, codec.KindSkillGaps, gaps)
	if err != nil {
		return nil, fmt.Errorf("gap report %s skill_gaps: %w", g.ID, err)
	}
	g.SkillGaps = decoded
	g.ReadinessScore = score.Float64
	return &g, nil
}
