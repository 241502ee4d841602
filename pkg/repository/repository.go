package repository

import (
	"context"

	"github.com/garnizeh/skillbridge/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookups that match no row return (nil, nil).

type UserRepo interface {
	CreateUser(ctx context.Context, email, name, role string) (*models.User, error)
	CreateUserWithPassword(ctx context.Context, email, name, role, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

type CourseRepo interface {
	CreateCourse(ctx context.Context, in models.CourseInput) (*models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
}

type GapReportRepo interface {
	CreateGapReport(ctx context.Context, userID string, readinessScore float64, gaps []models.SkillGap) (*models.GapReport, error)
	GetCurrentGapReport(ctx context.Context, userID string) (*models.GapReport, error)
}

type RoadmapRepo interface {
	CreateRoadmap(ctx context.Context, userID, title, status string, estimatedTotalHours int, steps []models.RoadmapStep) (*models.Roadmap, error)
	GetCurrentRoadmap(ctx context.Context, userID string) (*models.Roadmap, error)
	GetRoadmapByID(ctx context.Context, id string) (*models.Roadmap, error)
	// UpdateStepStatus replaces the status of one step. An unknown step id
	// leaves the roadmap unchanged; an unknown roadmap id returns (nil, nil).
	UpdateStepStatus(ctx context.Context, roadmapID, stepID, status string) (*models.Roadmap, error)
}

// Store groups every repository a backend provides.
type Store interface {
	UserRepo
	CourseRepo
	GapReportRepo
	RoadmapRepo
	Close() error
}
