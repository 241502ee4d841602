// Package seed loads the demo user and course catalogue into an empty store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/garnizeh/skillbridge/pkg/models"
)

const (
	usersFile   = "seed/users.json"
	coursesFile = "seed/courses.json"
)

// Repos is the subset of repository.Store the seeder writes to.
type Repos interface {
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, email, name, role string) (*models.User, error)
	CreateCourse(ctx context.Context, in models.CourseInput) (*models.Course, error)
}

type seedUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Run inserts the seed users and courses when the store holds no users.
// A store that already has users is left untouched, so Run is safe to call on
// every start.
func Run(ctx context.Context, repos Repos, seedFS fs.FS, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	n, err := repos.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if n > 0 {
		logger.Debug("seed skipped, store not empty", slog.Int64("users", n))
		return nil
	}

	var users []seedUser
	if err := readJSON(seedFS, usersFile, &users); err != nil {
		return err
	}
	var courses []models.CourseInput
	if err := readJSON(seedFS, coursesFile, &courses); err != nil {
		return err
	}

	for _, u := range users {
		if _, err := repos.CreateUser(ctx, u.Email, u.Name, u.Role); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}
	for _, c := range courses {
		if _, err := repos.CreateCourse(ctx, c); err != nil {
			return fmt.Errorf("seed course %q: %w", c.Title, err)
		}
	}

	logger.Info("seed data inserted", slog.Int("users", len(users)), slog.Int("courses", len(courses)))
	return nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("seed: read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("seed: parse %s: %w", name, err)
	}
	return nil
}
