package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garnizeh/skillbridge/internal/codec"
	"github.com/garnizeh/skillbridge/internal/db"
	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/garnizeh/skillbridge/pkg/repository"
	"github.com/google/uuid"
)

const roadmapColumns = `id, user_id, title, status, estimated_total_hours, steps, created_at, version`

// CreateRoadmap stores a new roadmap. An unknown user id fails with
// repository.ErrNotFound.
func (r *Repo) CreateRoadmap(ctx context.Context, userID, title, status string, estimatedTotalHours int, steps []models.RoadmapStep) (*models.Roadmap, error) {
	if title == "" {
		return nil, fmt.Errorf("roadmap title is required")
	}
	encoded, err := codec.Encode(steps)
	if err != nil {
		return nil, fmt.Errorf("create roadmap: %w", err)
	}

	id := uuid.NewString()
	_, err = r.q.Exec(ctx, `INSERT INTO roadmaps (`+roadmapColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
		id, userID, title, status, estimatedTotalHours, encoded, r.stamp())
	if err != nil {
		return nil, fmt.Errorf("create roadmap: %w", err)
	}

	return r.GetRoadmapByID(ctx, id)
}

// GetCurrentRoadmap returns the roadmap with the latest created_at.
func (r *Repo) GetCurrentRoadmap(ctx context.Context, userID string) (*models.Roadmap, error) {
	return getRoadmap(ctx, r.q, `WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`, userID)
}

func (r *Repo) GetRoadmapByID(ctx context.Context, id string) (*models.Roadmap, error) {
	return getRoadmap(ctx, r.q, `WHERE id = ?`, id)
}

// UpdateStepStatus loads the roadmap, sets the status of the matching step and
// writes the whole steps column back. The write is a compare-and-set on the
// version column; losing it to a concurrent writer repeats the
// read-modify-write up to maxAttempts times before failing with
// repository.ErrConflict. An unknown step id writes nothing.
func (r *Repo) UpdateStepStatus(ctx context.Context, roadmapID, stepID, status string) (*models.Roadmap, error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		var found, done bool
		err := r.InTx(ctx, func(scoped *Repo) error {
			tx := scoped.tx
			rm, err := getRoadmap(ctx, tx, `WHERE id = ?`, roadmapID)
			if err != nil || rm == nil {
				return err
			}
			found = true

			step := rm.Step(stepID)
			if step == nil {
				done = true
				return nil
			}
			step.Status = status

			if r.beforeStepWrite != nil {
				if err := r.beforeStepWrite(ctx, tx, rm.ID); err != nil {
					return err
				}
			}

			encoded, err := codec.Encode(rm.Steps)
			if err != nil {
				return err
			}
			res, err := tx.Exec(ctx, `UPDATE roadmaps SET steps = ?, version = version + 1 WHERE id = ? AND version = ?`,
				encoded, rm.ID, rm.Version)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			done = n == 1
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("update step status: %w", err)
		}
		if !found {
			return nil, nil
		}
		if done {
			return r.GetRoadmapByID(ctx, roadmapID)
		}

		r.logger.Warn("roadmap changed during step update, retrying",
			slog.String("roadmap_id", roadmapID), slog.Int("attempt", attempt))
	}

	return nil, fmt.Errorf("update step status of roadmap %s: %w", roadmapID, repository.ErrConflict)
}

func getRoadmap(ctx context.Context, q db.Querier, where string, args ...any) (*models.Roadmap, error) {
	var (
		rm     models.Roadmap
		status sql.NullString
		hours  sql.NullInt64
		steps  sql.NullString
	)
	row := q.QueryRow(ctx, `SELECT `+roadmapColumns+` FROM roadmaps `+where, args...)
	if err := row.Scan(&rm.ID, &rm.UserID, &rm.Title, &status, &hours, &steps, &rm.CreatedAt, &rm.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, db.Classify(err)
	}

	decoded, err := codec.DecodeChecked[models.RoadmapStep](ctx, codec.KindSteps, steps)
	if err != nil {
		return nil, fmt.Errorf("roadmap %s steps: %w", rm.ID, err)
	}
	rm.Steps = decoded
	rm.Status = status.String
	rm.EstimatedTotalHours = int(hours.Int64)
	return &rm, nil
}
