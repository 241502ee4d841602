// Package memory is a process-local implementation of repository.Store used
// for development runs and API tests. It follows the same contracts as the
// SQL store: (nil, nil) for missing rows, ErrDuplicateKey for a repeated
// email and ErrNotFound for an unknown owning user.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/garnizeh/skillbridge/pkg/repository"
	"github.com/google/uuid"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	mu     sync.RWMutex
	closed bool
	last   time.Time

	users      map[string]models.User
	courses    map[string]models.Course
	gapReports map[string]models.GapReport
	roadmaps   map[string]models.Roadmap
}

func New() *Store {
	return &Store{
		users:      map[string]models.User{},
		courses:    map[string]models.Course{},
		gapReports: map[string]models.GapReport{},
		roadmaps:   map[string]models.Roadmap{},
	}
}

// Close marks the store unusable; later calls fail with
// repository.ErrStorageUnavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) check() error {
	if s.closed {
		return fmt.Errorf("%w: store closed", repository.ErrStorageUnavailable)
	}
	return nil
}

// stamp must be called with mu held for writing.
func (s *Store) stamp() string {
	t := time.Now().UTC().Truncate(time.Microsecond)
	if !s.last.IsZero() && !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t.Format(models.TimeLayout)
}

func (s *Store) CreateUser(ctx context.Context, email, name, role string) (*models.User, error) {
	return s.CreateUserWithPassword(ctx, email, name, role, "")
}

func (s *Store) CreateUserWithPassword(ctx context.Context, email, name, role, passwordHash string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	if role == "" {
		role = models.RoleStudent
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Email == email {
			return nil, fmt.Errorf("create user %s: %w", email, repository.ErrDuplicateKey)
		}
	}

	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    s.stamp(),
	}
	s.users[u.ID] = u
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return 0, err
	}
	return int64(len(s.users)), nil
}

func (s *Store) CreateCourse(ctx context.Context, in models.CourseInput) (*models.Course, error) {
	if in.Title == "" || in.Provider == "" {
		return nil, fmt.Errorf("course title and provider are required")
	}
	if in.Level == "" {
		in.Level = models.DefaultCourseLevel
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	c := models.Course{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Provider:      in.Provider,
		Description:   in.Description,
		DurationWeeks: in.DurationWeeks,
		Price:         in.Price,
		Level:         in.Level,
		Skills:        append([]string{}, in.Skills...),
		URL:           copyPtr(in.URL),
		Rating:        copyPtr(in.Rating),
		CreatedAt:     s.stamp(),
	}
	s.courses[c.ID] = c
	return cloneCourse(c), nil
}

func (s *Store) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	c, ok := s.courses[id]
	if !ok {
		return nil, nil
	}
	return cloneCourse(c), nil
}

func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	out := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, *cloneCourse(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (s *Store) CreateGapReport(ctx context.Context, userID string, readinessScore float64, gaps []models.SkillGap) (*models.GapReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	if _, ok := s.users[userID]; !ok {
		return nil, fmt.Errorf("create gap report for user %s: %w", userID, repository.ErrNotFound)
	}
	g := models.GapReport{
		ID:             uuid.NewString(),
		UserID:         userID,
		ReadinessScore: readinessScore,
		SkillGaps:      append([]models.SkillGap{}, gaps...),
		GeneratedAt:    s.stamp(),
	}
	s.gapReports[g.ID] = g
	return cloneGapReport(g), nil
}

func (s *Store) GetCurrentGapReport(ctx context.Context, userID string) (*models.GapReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	var cur *models.GapReport
	for _, g := range s.gapReports {
		if g.UserID != userID {
			continue
		}
		if cur == nil || g.GeneratedAt > cur.GeneratedAt {
			cur = cloneGapReport(g)
		}
	}
	return cur, nil
}

func (s *Store) CreateRoadmap(ctx context.Context, userID, title, status string, estimatedTotalHours int, steps []models.RoadmapStep) (*models.Roadmap, error) {
	if title == "" {
		return nil, fmt.Errorf("roadmap title is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	if _, ok := s.users[userID]; !ok {
		return nil, fmt.Errorf("create roadmap for user %s: %w", userID, repository.ErrNotFound)
	}
	rm := models.Roadmap{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Title:               title,
		Status:              status,
		EstimatedTotalHours: estimatedTotalHours,
		Steps:               append([]models.RoadmapStep{}, steps...),
		CreatedAt:           s.stamp(),
		Version:             1,
	}
	s.roadmaps[rm.ID] = rm
	return cloneRoadmap(rm), nil
}

func (s *Store) GetCurrentRoadmap(ctx context.Context, userID string) (*models.Roadmap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	var cur *models.Roadmap
	for _, rm := range s.roadmaps {
		if rm.UserID != userID {
			continue
		}
		if cur == nil || rm.CreatedAt > cur.CreatedAt {
			cur = cloneRoadmap(rm)
		}
	}
	return cur, nil
}

func (s *Store) GetRoadmapByID(ctx context.Context, id string) (*models.Roadmap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	rm, ok := s.roadmaps[id]
	if !ok {
		return nil, nil
	}
	return cloneRoadmap(rm), nil
}

// UpdateStepStatus runs under the write lock, so concurrent updates to
// different steps of one roadmap all survive.
func (s *Store) UpdateStepStatus(ctx context.Context, roadmapID, stepID, status string) (*models.Roadmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	stored, ok := s.roadmaps[roadmapID]
	if !ok {
		return nil, nil
	}
	rm := cloneRoadmap(stored)
	step := rm.Step(stepID)
	if step == nil {
		return rm, nil
	}
	step.Status = status
	rm.Version++
	s.roadmaps[rm.ID] = *cloneRoadmap(*rm)
	return rm, nil
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneCourse(c models.Course) *models.Course {
	c.Skills = append([]string{}, c.Skills...)
	c.URL = copyPtr(c.URL)
	c.Rating = copyPtr(c.Rating)
	return &c
}

func cloneGapReport(g models.GapReport) *models.GapReport {
	g.SkillGaps = append([]models.SkillGap{}, g.SkillGaps...)
	return &g
}

func cloneRoadmap(rm models.Roadmap) *models.Roadmap {
	rm.Steps = append([]models.RoadmapStep{}, rm.Steps...)
	return &rm
}
