package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecipe() Recipe {
	return Recipe{
		ID:          "r-1",
		Title:       "Risotto de setas",
		Description: "Cremoso y terroso",
		PrepTime:    "15 min",
		CookTime:    "30 min",
		Servings:    2,
		Difficulty:  DifficultyMedium,
		Calories:    520,
		Ingredients: []Ingredient{{Item: "arroz arborio", Amount: "200 g"}},
		Steps:       []Step{{Order: 1, Instruction: "Sofreír la cebolla"}},
	}
}

func TestRecipeValidate(t *testing.T) {
	t.Run("valid recipe passes", func(t *testing.T) {
		require.NoError(t, validRecipe().Validate())
	})

	t.Run("optional fields may be absent", func(t *testing.T) {
		r := validRecipe()
		r.Servings = 0
		r.Difficulty = ""
		r.Calories = 0
		r.Tags = nil
		require.NoError(t, r.Validate())
	})

	t.Run("missing required fields are reported together", func(t *testing.T) {
		r := validRecipe()
		r.Title = "  "
		r.Ingredients = nil
		r.Steps = nil

		err := r.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))

		var malformed *MalformedError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, "recipe", malformed.Entity)
		assert.Equal(t, []string{"title", "ingredients", "steps"}, malformed.Missing)
	})
}

func TestCaloriesOrDefault(t *testing.T) {
	r := validRecipe()
	assert.Equal(t, 520.0, r.CaloriesOrDefault())

	r.Calories = 0
	assert.Equal(t, float64(DefaultCalories), r.CaloriesOrDefault())
}

func TestEnsureID(t *testing.T) {
	r := validRecipe()
	r.EnsureID(7)
	assert.Equal(t, "r-1", r.ID, "existing id must be kept")

	r.ID = "   "
	r.EnsureID(7)
	assert.Equal(t, "7", r.ID)
}
