package mock

import (
	"context"
	"sync/atomic"

	"github.com/garnizeh/skillbridge/internal/repository/memory"
	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/garnizeh/skillbridge/pkg/repository"
)

// Store is a test double for repository.Store. Calls are served by an
// in-memory store unless the matching error field is set.
type Store struct {
	*memory.Store

	UserErr       error
	CreateUserErr error
	CourseErr     error
	GapReportErr  error
	RoadmapErr    error
	UpdateStepErr error

	// UpdateCalls counts UpdateStepStatus invocations.
	UpdateCalls atomic.Int64
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{Store: memory.New()}
}

func (m *Store) CreateUser(ctx context.Context, email, name, role string) (*models.User, error) {
	if m.CreateUserErr != nil {
		return nil, m.CreateUserErr
	}
	return m.Store.CreateUser(ctx, email, name, role)
}

func (m *Store) CreateUserWithPassword(ctx context.Context, email, name, role, passwordHash string) (*models.User, error) {
	if m.CreateUserErr != nil {
		return nil, m.CreateUserErr
	}
	return m.Store.CreateUserWithPassword(ctx, email, name, role, passwordHash)
}

func (m *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.UserErr != nil {
		return nil, m.UserErr
	}
	return m.Store.GetUserByID(ctx, id)
}

func (m *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.UserErr != nil {
		return nil, m.UserErr
	}
	return m.Store.GetUserByEmail(ctx, email)
}

func (m *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.UserErr != nil {
		return nil, m.UserErr
	}
	return m.Store.ListUsers(ctx)
}

func (m *Store) CreateCourse(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	if m.CourseErr != nil {
		return nil, m.CourseErr
	}
	return m.Store.CreateCourse(ctx, in)
}

func (m *Store) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	if m.CourseErr != nil {
		return nil, m.CourseErr
	}
	return m.Store.GetCourseByID(ctx, id)
}

func (m *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	if m.CourseErr != nil {
		return nil, m.CourseErr
	}
	return m.Store.ListCourses(ctx)
}

func (m *Store) CreateGapReport(ctx context.Context, userID string, readinessScore float64, gaps []models.SkillGap) (*models.GapReport, error) {
	if m.GapReportErr != nil {
		return nil, m.GapReportErr
	}
	return m.Store.CreateGapReport(ctx, userID, readinessScore, gaps)
}

func (m *Store) GetCurrentGapReport(ctx context.Context, userID string) (*models.GapReport, error) {
	if m.GapReportErr != nil {
		return nil, m.GapReportErr
	}
	return m.Store.GetCurrentGapReport(ctx, userID)
}

func (m *Store) CreateRoadmap(ctx context.Context, userID, title, status string, estimatedTotalHours int, steps []models.RoadmapStep) (*models.Roadmap, error) {
	if m.RoadmapErr != nil {
		return nil, m.RoadmapErr
	}
	return m.Store.CreateRoadmap(ctx, userID, title, status, estimatedTotalHours, steps)
}

func (m *Store) GetCurrentRoadmap(ctx context.Context, userID string) (*models.Roadmap, error) {
	if m.RoadmapErr != nil {
		return nil, m.RoadmapErr
	}
	return m.Store.GetCurrentRoadmap(ctx, userID)
}

func (m *Store) GetRoadmapByID(ctx context.Context, id string) (*models.Roadmap, error) {
	if m.RoadmapErr != nil {
		return nil, m.RoadmapErr
	}
	return m.Store.GetRoadmapByID(ctx, id)
}

func (m *Store) UpdateStepStatus(ctx context.Context, roadmapID, stepID, status string) (*models.Roadmap, error) {
	m.UpdateCalls.Add(1)
	if m.UpdateStepErr != nil {
		return nil, m.UpdateStepErr
	}
	return m.Store.UpdateStepStatus(ctx, roadmapID, stepID, status)
}
