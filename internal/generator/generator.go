// Package generator builds the default gap report and roadmap handed to a
// user who has none yet.
package generator

import (
	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/google/uuid"
)

const (
	DefaultReadinessScore = 65.5

	DefaultRoadmapTitle = "iOS Developer Roadmap"
	DefaultRoadmapHours = 120
)

// GapReport is an unsaved gap report payload.
type GapReport struct {
	ReadinessScore float64
	SkillGaps      []models.SkillGap
}

// Roadmap is an unsaved roadmap payload.
type Roadmap struct {
	Title               string
	Status              string
	EstimatedTotalHours int
	Steps               []models.RoadmapStep
}

// DefaultGapReport returns the starter report. Every call gets fresh gap ids.
func DefaultGapReport() GapReport {
	return GapReport{
		ReadinessScore: DefaultReadinessScore,
		SkillGaps: []models.SkillGap{
			{ID: uuid.NewString(), SkillName: "SwiftUI", CurrentLevel: 40, RequiredLevel: 80, Priority: "High"},
			{ID: uuid.NewString(), SkillName: "Combine Framework", CurrentLevel: 20, RequiredLevel: 70, Priority: "High"},
		},
	}
}

// DefaultRoadmap returns the starter roadmap with all steps pending.
func DefaultRoadmap() Roadmap {
	steps := []struct {
		title, description string
		hours              int
	}{
		{"Learn Swift Basics", "Master Swift fundamentals", 20},
		{"SwiftUI Fundamentals", "Learn SwiftUI framework", 30},
		{"Combine Framework", "Learn reactive programming", 25},
	}

	out := make([]models.RoadmapStep, 0, len(steps))
	for i, s := range steps {
		out = append(out, models.RoadmapStep{
			ID:          uuid.NewString(),
			StepOrder:   i + 1,
			Title:       s.title,
			Description: s.description,
			EstHours:    s.hours,
			Status:      models.StepPending,
		})
	}

	return Roadmap{
		Title:               DefaultRoadmapTitle,
		Status:              models.RoadmapActive,
		EstimatedTotalHours: DefaultRoadmapHours,
		Steps:               out,
	}
}
