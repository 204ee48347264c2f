package lesson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culinaglass/core/internal/domain/recipe"
)

func validLesson() Lesson {
	return Lesson{
		Title:          "El arte del risotto",
		Objective:      "Dominar la técnica de mantecatura",
		Theory:         "El almidón del arroz arborio se libera al remover...",
		PracticalSteps: []recipe.Step{{Order: 1, Instruction: "Tostar el arroz"}},
	}
}

func TestLessonValidate(t *testing.T) {
	require.NoError(t, validLesson().Validate())

	l := validLesson()
	l.Objective = ""
	l.PracticalSteps = nil

	err := l.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, recipe.ErrMalformed))

	var malformed *recipe.MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, []string{"objective", "practicalSteps"}, malformed.Missing)
}

func TestLessonRenderDefaults(t *testing.T) {
	l := validLesson()
	assert.Equal(t, DefaultEstimatedTime, l.EstimatedTimeOrDefault())
	assert.Equal(t, DefaultDifficulty, l.DifficultyOrDefault())

	l.EstimatedTime = "90 min"
	l.Difficulty = "Avanzada"
	assert.Equal(t, "90 min", l.EstimatedTimeOrDefault())
	assert.Equal(t, "Avanzada", l.DifficultyOrDefault())
}
