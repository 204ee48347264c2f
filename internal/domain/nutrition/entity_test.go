package nutrition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culinaglass/core/internal/domain/recipe"
)

func TestReportValidate(t *testing.T) {
	valid := Report{
		Score:   7.5,
		Summary: "Equilibrada y rica en fibra",
		Advice:  "Reduce la mantequilla para aligerar las grasas",
	}
	require.NoError(t, valid.Validate())

	t.Run("macros are optional", func(t *testing.T) {
		withMacros := valid
		withMacros.Macros = &Macros{Protein: "32g"}
		require.NoError(t, withMacros.Validate())
	})

	t.Run("missing fields reported", func(t *testing.T) {
		err := Report{Advice: "algo"}.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, recipe.ErrMalformed))

		var malformed *recipe.MalformedError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, []string{"score", "summary"}, malformed.Missing)
	})
}
