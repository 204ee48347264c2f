// Package nutrition models the health report generated for a recipe.
package nutrition

import (
	"strings"

	"github.com/culinaglass/core/internal/domain/recipe"
)

// Macros are free-text macronutrient estimates ("32g", "alto"). Optional
// as a block; when present, individual fields may still be blank.
type Macros struct {
	Protein string `json:"protein,omitempty"`
	Carbs   string `json:"carbs,omitempty"`
	Fats    string `json:"fats,omitempty"`
}

// Report is the nutrition analysis of one recipe. Score is a 1-10 health
// rating assigned by the provider.
type Report struct {
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
	Advice  string  `json:"advice"`
	Macros  *Macros `json:"macros,omitempty"`
}

// Validate checks the required report fields. Macros are optional.
func (r Report) Validate() error {
	var missing []string
	if r.Score == 0 {
		missing = append(missing, "score")
	}
	if strings.TrimSpace(r.Summary) == "" {
		missing = append(missing, "summary")
	}
	if strings.TrimSpace(r.Advice) == "" {
		missing = append(missing, "advice")
	}
	if len(missing) > 0 {
		return &recipe.MalformedError{Entity: "nutrition report", Missing: missing}
	}
	return nil
}
