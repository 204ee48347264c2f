// Package inbound defines the interfaces through which collaborators
// (HTTP handlers, panels) drive the application core.
package inbound

import (
	"context"

	"github.com/culinaglass/core/internal/domain/lesson"
	"github.com/culinaglass/core/internal/domain/nutrition"
	"github.com/culinaglass/core/internal/domain/recipe"
)

// KitchenService is the content gateway: every provider call shape the
// application supports. All operations surface provider failures to the
// caller without retrying; panels decide recovery.
type KitchenService interface {
	// SearchRecipes generates recipes for a free-text intent. Every
	// returned recipe carries a synthesized image URL.
	SearchRecipes(ctx context.Context, query string) ([]recipe.Recipe, error)

	// TransformRecipe edits an existing recipe per a natural-language
	// instruction. The result keeps the original's image URL.
	TransformRecipe(ctx context.Context, original recipe.Recipe, instruction string) (recipe.Recipe, error)

	// AnalyzeNutrition produces a health report from the recipe's title
	// and ingredient list. Never memoized.
	AnalyzeNutrition(ctx context.Context, rec recipe.Recipe) (nutrition.Report, error)

	// ScanPantry proposes recipes from a photo of available ingredients.
	ScanPantry(ctx context.Context, imageJPEG []byte) ([]recipe.Recipe, error)

	// GenerateLesson builds a masterclass for a topic.
	GenerateLesson(ctx context.Context, topic string) (lesson.Lesson, error)

	// RecommendRecipe suggests a single recipe from stated preferences.
	RecommendRecipe(ctx context.Context, preferences string) (recipe.Recipe, error)
}
