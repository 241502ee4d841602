package models

// Domain models matching the tables in db/schema. List-valued fields are
// stored as JSON text columns and decoded by internal/codec.

// TimeLayout is the fixed-width UTC layout of every stored timestamp; lexical
// order equals chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

const (
	RoleStudent = "student"

	DefaultCourseLevel = "Beginner"

	StepPending    = "Pending"
	StepInProgress = "InProgress"
	StepCompleted  = "Completed"

	RoadmapActive = "Active"
)

type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Name         string `json:"name" db:"name"`
	Role         string `json:"role" db:"role"`
	PasswordHash string `json:"-" db:"password_hash"`
	CreatedAt    string `json:"createdAt" db:"created_at"`
}

type Course struct {
	ID            string   `json:"id" db:"id"`
	Title         string   `json:"title" db:"title"`
	Provider      string   `json:"provider" db:"provider"`
	Description   string   `json:"description" db:"description"`
	DurationWeeks int      `json:"durationWeeks" db:"duration_weeks"`
	Price         float64  `json:"price" db:"price"`
	Level         string   `json:"level" db:"level"`
	Skills        []string `json:"skills" db:"skills"`
	URL           *string  `json:"url" db:"url"`
	Rating        *float64 `json:"rating" db:"rating"`
	CreatedAt     string   `json:"createdAt" db:"created_at"`
}

// CourseInput carries the caller-supplied fields of a new course.
type CourseInput struct {
	Title         string   `json:"title"`
	Provider      string   `json:"provider"`
	Description   string   `json:"description"`
	DurationWeeks int      `json:"durationWeeks"`
	Price         float64  `json:"price"`
	Level         string   `json:"level"`
	Skills        []string `json:"skills"`
	URL           *string  `json:"url,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
}

type SkillGap struct {
	ID            string  `json:"id"`
	SkillName     string  `json:"skillName"`
	CurrentLevel  float64 `json:"currentLevel"`
	RequiredLevel float64 `json:"requiredLevel"`
	Priority      string  `json:"priority"`
}

type GapReport struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"userId" db:"user_id"`
	ReadinessScore float64    `json:"readinessScore" db:"readiness_score"`
	SkillGaps      []SkillGap `json:"skillGaps" db:"skill_gaps"`
	GeneratedAt    string     `json:"generatedAt" db:"generated_at"`
}

type RoadmapStep struct {
	ID          string `json:"id"`
	StepOrder   int    `json:"stepOrder"`
	Title       string `json:"title"`
	Description string `json:"description"`
	EstHours    int    `json:"estHours"`
	Status      string `json:"status"`
}

type Roadmap struct {
	ID                  string        `json:"id" db:"id"`
	UserID              string        `json:"userId" db:"user_id"`
	Title               string        `json:"title" db:"title"`
	Status              string        `json:"status" db:"status"`
	EstimatedTotalHours int           `json:"estimatedTotalHours" db:"estimated_total_hours"`
	Steps               []RoadmapStep `json:"steps" db:"steps"`
	CreatedAt           string        `json:"createdAt" db:"created_at"`
	Version             int64         `json:"-" db:"version"`
}

// Step returns the step with the given id, or nil.
func (r *Roadmap) Step(id string) *RoadmapStep {
	for i := range r.Steps {
		if r.Steps[i].ID == id {
			return &r.Steps[i]
		}
	}
	return nil
}
