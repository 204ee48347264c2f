// Package lesson models the generated masterclass unit served by the
// academy panel: narrative theory plus ordered practical steps.
package lesson

import (
	"strings"

	"github.com/culinaglass/core/internal/domain/recipe"
)

// Render defaults for the optional session metadata. The provider may omit
// both under legitimate uncertainty.
const (
	DefaultEstimatedTime = "45 min"
	DefaultDifficulty    = "Personalizada"
)

// Lesson is a generated instructional unit, distinct from a recipe.
// Practical steps share the recipe step shape.
type Lesson struct {
	Title          string        `json:"title"`
	Objective      string        `json:"objective"`
	EstimatedTime  string        `json:"estimatedTime,omitempty"`
	Difficulty     string        `json:"difficulty,omitempty"`
	Theory         string        `json:"theory"`
	PracticalSteps []recipe.Step `json:"practicalSteps"`
	ProTips        []string      `json:"proTips,omitempty"`
}

// Validate checks the required lesson fields. EstimatedTime, Difficulty and
// ProTips are optional; their absence is resolved by the render accessors.
func (l Lesson) Validate() error {
	var missing []string
	if strings.TrimSpace(l.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(l.Objective) == "" {
		missing = append(missing, "objective")
	}
	if strings.TrimSpace(l.Theory) == "" {
		missing = append(missing, "theory")
	}
	if len(l.PracticalSteps) == 0 {
		missing = append(missing, "practicalSteps")
	}
	if len(missing) > 0 {
		return &recipe.MalformedError{Entity: "lesson", Missing: missing}
	}
	return nil
}

// EstimatedTimeOrDefault returns the session length label for rendering.
func (l Lesson) EstimatedTimeOrDefault() string {
	if strings.TrimSpace(l.EstimatedTime) == "" {
		return DefaultEstimatedTime
	}
	return l.EstimatedTime
}

// DifficultyOrDefault returns the difficulty label for rendering.
func (l Lesson) DifficultyOrDefault() string {
	if strings.TrimSpace(l.Difficulty) == "" {
		return DefaultDifficulty
	}
	return l.Difficulty
}
