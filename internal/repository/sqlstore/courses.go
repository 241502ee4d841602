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

const courseColumns = `id, title, provider, description, duration_weeks, price, level, skills, url, rating, created_at`

func (r *Repo) CreateCourse(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	if in.Title == "" || in.Provider == "" {
		return nil, fmt.Errorf("course title and provider are required")
	}
	if in.Level == "" {
		in.Level = models.DefaultCourseLevel
	}

	skills, err := codec.Encode(in.Skills)
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	id := uuid.NewString()
	_, err = r.q.Exec(ctx, `INSERT INTO courses (`+courseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, in.Title, in.Provider, in.Description, in.DurationWeeks, in.Price, in.Level, skills,
		nullStringPtr(in.URL), nullFloatPtr(in.Rating), r.stamp())
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	return r.GetCourseByID(ctx, id)
}

func (r *Repo) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	return scanCourse(ctx, r.q.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id))
}

func (r *Repo) ListCourses(ctx context.Context) ([]models.Course, error) {
	rows, err := r.q.QueryRows(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	out := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(ctx, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	return out, nil
}

func scanCourse(ctx context.Context, row rowScanner) (*models.Course, error) {
	var (
		c           models.Course
		description sql.NullString
		weeks       sql.NullInt64
		price       sql.NullFloat64
		level       sql.NullString
		skills      sql.NullString
		url         sql.NullString
		rating      sql.NullFloat64
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Provider, &description, &weeks, &price, &level, &skills, &url, &rating, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, db.Classify(err)
	}

	decoded, err := codec.DecodeChecked[string](ctx, codec.KindSkills, skills)
	if err != nil {
		return nil, fmt.Errorf("course %s skills: %w", c.ID, err)
	}
	c.Skills = decoded
	c.Description = description.String
	c.DurationWeeks = int(weeks.Int64)
	c.Price = price.Float64
	c.Level = level.String
	if url.Valid {
		v := url.String
		c.URL = &v
	}
	if rating.Valid {
		v := rating.Float64
		c.Rating = &v
	}
	return &c, nil
}
