// Package kitchen implements the content gateway: every generative call
// shape the application supports, with parsing, validation and image
// synthesis applied at this single boundary. Callers receive domain values
// or errors, never raw provider text.
package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/culinaglass/core/internal/domain/lesson"
	"github.com/culinaglass/core/internal/domain/nutrition"
	"github.com/culinaglass/core/internal/domain/recipe"
	"github.com/culinaglass/core/internal/infrastructure/ai/schema"
	"github.com/culinaglass/core/internal/infrastructure/images"
	"github.com/culinaglass/core/internal/ports/inbound"
	"github.com/culinaglass/core/internal/ports/outbound"
)

// recommendationID seeds the image lock for recommendations, which the
// provider often returns without an id.
const recommendationID = "chef-rec"

// Service is the concrete content gateway. One provider call per
// operation; no retries.
type Service struct {
	client outbound.ContentClient
	images *images.Synthesizer
	logger *zap.Logger
}

var _ inbound.KitchenService = (*Service)(nil)

// NewService wires the gateway to its provider client and image
// synthesizer.
func NewService(client outbound.ContentClient, synth *images.Synthesizer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		images: synth,
		logger: logger.Named("kitchen"),
	}
}

// decode parses raw provider text into v. An empty or whitespace-only
// reply is treated as a legitimately empty result, not a failure: it is
// substituted with the empty literal matching the contract's root shape.
func decode(raw string, contract *schema.Schema, v any) error {
	if strings.TrimSpace(raw) == "" {
		if contract.IsArray() {
			raw = "[]"
		} else {
			raw = "{}"
		}
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("parsing provider response: %w", err)
	}
	return nil
}

// finishRecipes applies the shared post-processing for recipe lists: fill
// positional ids, validate required fields, synthesize image URLs. A
// single malformed element fails the whole call.
func (s *Service) finishRecipes(recipes []recipe.Recipe) ([]recipe.Recipe, error) {
	for i := range recipes {
		recipes[i].EnsureID(i)
		if err := recipes[i].Validate(); err != nil {
			return nil, err
		}
		recipes[i].ImageURL = s.images.URLFor(recipes[i].Title, recipes[i].ID)
	}
	return recipes, nil
}

func (s *Service) SearchRecipes(ctx context.Context, query string) ([]recipe.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, recipe.ErrEmptyQuery
	}

	raw, err := s.client.Generate(ctx, searchPrompt(query), schema.RecipeList, nil)
	if err != nil {
		return nil, fmt.Errorf("searching recipes: %w", err)
	}

	var recipes []recipe.Recipe
	if err := decode(raw, schema.RecipeList, &recipes); err != nil {
		return nil, err
	}
	recipes, err = s.finishRecipes(recipes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("recipe search completed",
		zap.String("query", query),
		zap.Int("results", len(recipes)))
	return recipes, nil
}

func (s *Service) TransformRecipe(ctx context.Context, original recipe.Recipe, instruction string) (recipe.Recipe, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return recipe.Recipe{}, recipe.ErrEmptyQuery
	}

	raw, err := s.client.Generate(ctx, transformPrompt(original, instruction), schema.Recipe, nil)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("transforming recipe: %w", err)
	}

	var out recipe.Recipe
	if err := decode(raw, schema.Recipe, &out); err != nil {
		return recipe.Recipe{}, err
	}
	if strings.TrimSpace(out.ID) == "" {
		out.ID = original.ID
	}
	if err := out.Validate(); err != nil {
		return recipe.Recipe{}, err
	}
	// The edited dish is still the same dish; keep the picture.
	out.ImageURL = original.ImageURL

	s.logger.Info("recipe transformed",
		zap.String("recipe_id", original.ID),
		zap.String("instruction", instruction))
	return out, nil
}

func (s *Service) AnalyzeNutrition(ctx context.Context, rec recipe.Recipe) (nutrition.Report, error) {
	raw, err := s.client.Generate(ctx, nutritionPrompt(rec), schema.Nutrition, nil)
	if err != nil {
		return nutrition.Report{}, fmt.Errorf("analyzing nutrition: %w", err)
	}

	var report nutrition.Report
	if err := decode(raw, schema.Nutrition, &report); err != nil {
		return nutrition.Report{}, err
	}
	if err := report.Validate(); err != nil {
		return nutrition.Report{}, err
	}

	s.logger.Info("nutrition analyzed",
		zap.String("recipe_id", rec.ID),
		zap.Float64("score", report.Score))
	return report, nil
}

func (s *Service) ScanPantry(ctx context.Context, imageJPEG []byte) ([]recipe.Recipe, error) {
	if len(imageJPEG) == 0 {
		return nil, fmt.Errorf("scanning pantry: empty image")
	}

	raw, err := s.client.Generate(ctx, pantryPrompt, schema.RecipeList, imageJPEG)
	if err != nil {
		return nil, fmt.Errorf("scanning pantry: %w", err)
	}

	var recipes []recipe.Recipe
	if err := decode(raw, schema.RecipeList, &recipes); err != nil {
		return nil, err
	}
	recipes, err = s.finishRecipes(recipes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("pantry scanned",
		zap.Int("image_bytes", len(imageJPEG)),
		zap.Int("results", len(recipes)))
	return recipes, nil
}

func (s *Service) GenerateLesson(ctx context.Context, topic string) (lesson.Lesson, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return lesson.Lesson{}, recipe.ErrEmptyQuery
	}

	raw, err := s.client.Generate(ctx, lessonPrompt(topic), schema.Lesson, nil)
	if err != nil {
		return lesson.Lesson{}, fmt.Errorf("generating lesson: %w", err)
	}

	var out lesson.Lesson
	if err := decode(raw, schema.Lesson, &out); err != nil {
		return lesson.Lesson{}, err
	}
	if err := out.Validate(); err != nil {
		return lesson.Lesson{}, err
	}

	s.logger.Info("lesson generated", zap.String("topic", topic))
	return out, nil
}

func (s *Service) RecommendRecipe(ctx context.Context, preferences string) (recipe.Recipe, error) {
	preferences = strings.TrimSpace(preferences)
	if preferences == "" {
		return recipe.Recipe{}, recipe.ErrEmptyQuery
	}

	raw, err := s.client.Generate(ctx, recommendPrompt(preferences), schema.Recipe, nil)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("recommending recipe: %w", err)
	}

	var out recipe.Recipe
	if err := decode(raw, schema.Recipe, &out); err != nil {
		return recipe.Recipe{}, err
	}
	if strings.TrimSpace(out.ID) == "" {
		out.ID = recommendationID
	}
	if err := out.Validate(); err != nil {
		return recipe.Recipe{}, err
	}
	out.ImageURL = s.images.URLFor(out.Title, out.ID)

	s.logger.Info("recipe recommended", zap.String("recipe_id", out.ID))
	return out, nil
}
