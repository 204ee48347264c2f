// Package recipe contains the core domain model for generated recipes.
// Recipes are never authored locally; they arrive from the generative
// provider and are validated once at the gateway boundary.
package recipe

import (
	"strconv"
	"strings"
)

// DefaultCalories is applied at render time when the provider omits the
// calorie estimate.
const DefaultCalories = 350

// Difficulty classifies how demanding a recipe is.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyMedium   Difficulty = "Medium"
	DifficultyAdvanced Difficulty = "Advanced"
)

// Ingredient is a single line of a recipe's ingredient list. Amounts are
// free text ("200 g", "un puñado") by contract with the provider.
type Ingredient struct {
	Item   string `json:"item"`
	Amount string `json:"amount"`
}

// Step is one ordered instruction. Tip is optional narrative; absence is
// a legitimate provider choice, not an error.
type Step struct {
	Order       int    `json:"order"`
	Instruction string `json:"instruction"`
	Tip         string `json:"tip,omitempty"`
}

// Recipe is the unit of content produced by search, pantry scan, transform
// and recommendation calls. Field names match the provider schema contract.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	PrepTime    string       `json:"prepTime"`
	CookTime    string       `json:"cookTime"`
	Servings    int          `json:"servings"`
	Difficulty  Difficulty   `json:"difficulty"`
	Calories    float64      `json:"calories"`
	Tags        []string     `json:"tags"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`

	// ImageURL is never provider-authoritative. It is overwritten with a
	// synthesized URL after parsing, except on transform where the prior
	// image is retained.
	ImageURL string `json:"imageUrl"`
}

// Validate checks the fields the data model marks as required. A recipe
// missing any of them is a malformed provider result, reported as a single
// MalformedError. Optional fields (calories, tags, servings, difficulty,
// step tips) are deliberately not checked here.
func (r Recipe) Validate() error {
	var missing []string
	if strings.TrimSpace(r.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(r.PrepTime) == "" {
		missing = append(missing, "prepTime")
	}
	if strings.TrimSpace(r.CookTime) == "" {
		missing = append(missing, "cookTime")
	}
	if len(r.Ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	if len(r.Steps) == 0 {
		missing = append(missing, "steps")
	}
	if len(missing) > 0 {
		return &MalformedError{Entity: "recipe", Missing: missing}
	}
	return nil
}

// CaloriesOrDefault returns the provider's calorie estimate, or
// DefaultCalories when the provider omitted it.
func (r Recipe) CaloriesOrDefault() float64 {
	if r.Calories <= 0 {
		return DefaultCalories
	}
	return r.Calories
}

// EnsureID fills a positional fallback identifier when the provider left
// the id blank. idx is the recipe's position in its result set.
func (r *Recipe) EnsureID(idx int) {
	if strings.TrimSpace(r.ID) == "" {
		r.ID = strconv.Itoa(idx)
	}
}
