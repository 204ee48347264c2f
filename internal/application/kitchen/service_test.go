package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/culinaglass/core/internal/domain/recipe"
	"github.com/culinaglass/core/internal/infrastructure/ai/schema"
	"github.com/culinaglass/core/internal/infrastructure/images"
)

// fakeClient scripts the provider: it records every call and replays the
// queued responses in order.
type fakeClient struct {
	calls     []fakeCall
	responses []string
	err       error
}

type fakeCall struct {
	prompt   string
	contract *schema.Schema
	image    []byte
}

func (f *fakeClient) Generate(ctx context.Context, prompt string, contract *schema.Schema, imageJPEG []byte) (string, error) {
	f.calls = append(f.calls, fakeCall{prompt: prompt, contract: contract, image: imageJPEG})
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func newService(t *testing.T, client *fakeClient) *Service {
	t.Helper()
	return NewService(client, images.NewSynthesizer(images.Config{}), zaptest.NewLogger(t))
}

func recipeJSON(id, title string) string {
	return fmt.Sprintf(`{
		"id": %q, "title": %q,
		"description": "Un plato memorable",
		"prepTime": "10 min", "cookTime": "20 min",
		"servings": 2, "difficulty": "Easy", "calories": 410,
		"ingredients": [{"item": "tomate", "amount": "2"}],
		"steps": [{"order": 1, "instruction": "Cortar"}]
	}`, id, title)
}

func TestSearchRecipes(t *testing.T) {
	client := &fakeClient{responses: []string{
		"[" + recipeJSON("", "Gazpacho andaluz") + "," + recipeJSON("r-2", "Salmorejo") + "]",
	}}
	svc := newService(t, client)

	results, err := svc.SearchRecipes(context.Background(), "  sopas frías  ")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Blank provider ids fall back to the position in the result set.
	assert.Equal(t, "0", results[0].ID)
	assert.Equal(t, "r-2", results[1].ID)

	for _, r := range results {
		assert.Contains(t, r.ImageURL, "loremflickr.com")
	}

	require.Len(t, client.calls, 1)
	call := client.calls[0]
	assert.Contains(t, call.prompt, `"sopas frías"`)
	assert.True(t, call.contract.IsArray())
	assert.Nil(t, call.image)
}

func TestSearchRecipesEmptyQuery(t *testing.T) {
	client := &fakeClient{}
	svc := newService(t, client)

	_, err := svc.SearchRecipes(context.Background(), "   ")
	assert.ErrorIs(t, err, recipe.ErrEmptyQuery)
	assert.Empty(t, client.calls, "no provider call for a blank query")
}

func TestSearchRecipesEmptyReply(t *testing.T) {
	client := &fakeClient{responses: []string{"  "}}
	svc := newService(t, client)

	results, err := svc.SearchRecipes(context.Background(), "algo rarísimo")
	require.NoError(t, err)
	assert.Empty(t, results, "blank provider text is an empty result, not a failure")
}

func TestSearchRecipesMalformedElement(t *testing.T) {
	client := &fakeClient{responses: []string{
		"[" + recipeJSON("r-1", "Bien") + `,{"id":"r-2","title":"Sin pasos"}]`,
	}}
	svc := newService(t, client)

	_, err := svc.SearchRecipes(context.Background(), "algo")
	assert.ErrorIs(t, err, recipe.ErrMalformed)
}

func TestSearchRecipesProviderFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	svc := newService(t, client)

	_, err := svc.SearchRecipes(context.Background(), "algo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestTransformRecipeKeepsImage(t *testing.T) {
	var original recipe.Recipe
	require.NoError(t, json.Unmarshal([]byte(recipeJSON("r-1", "Lasaña")), &original))
	original.ImageURL = "https://loremflickr.com/800/600/food,meal,cooked,dish/all?lock=123"

	client := &fakeClient{responses: []string{recipeJSON("r-1", "Lasaña vegana")}}
	svc := newService(t, client)

	out, err := svc.TransformRecipe(context.Background(), original, "hazla vegana")
	require.NoError(t, err)
	assert.Equal(t, "Lasaña vegana", out.Title)
	assert.Equal(t, original.ImageURL, out.ImageURL, "the edited dish keeps its photo")

	prompt := client.calls[0].prompt
	assert.Contains(t, prompt, "hazla vegana")
	assert.Contains(t, prompt, "Lasaña", "prompt embeds the original recipe")
	assert.False(t, client.calls[0].contract.IsArray())
}

func TestTransformRecipeBlankIDInheritsOriginal(t *testing.T) {
	var original recipe.Recipe
	require.NoError(t, json.Unmarshal([]byte(recipeJSON("r-9", "Crema")), &original))

	client := &fakeClient{responses: []string{recipeJSON("", "Crema ligera")}}
	svc := newService(t, client)

	out, err := svc.TransformRecipe(context.Background(), original, "menos calorías")
	require.NoError(t, err)
	assert.Equal(t, "r-9", out.ID)
}

func TestAnalyzeNutrition(t *testing.T) {
	var rec recipe.Recipe
	require.NoError(t, json.Unmarshal([]byte(recipeJSON("r-1", "Fabada")), &rec))

	client := &fakeClient{responses: []string{
		`{"score": 6.5, "summary": "Contundente", "advice": "Modera el embutido",
		  "macros": {"protein": "28g", "carbs": "40g", "fats": "35g"}}`,
	}}
	svc := newService(t, client)

	report, err := svc.AnalyzeNutrition(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, 6.5, report.Score)
	require.NotNil(t, report.Macros)
	assert.Equal(t, "28g", report.Macros.Protein)

	prompt := client.calls[0].prompt
	assert.Contains(t, prompt, "Fabada")
	assert.NotContains(t, prompt, "Cortar", "instructions stay out of the nutrition prompt")
}

func TestScanPantry(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF}
	client := &fakeClient{responses: []string{"[" + recipeJSON("", "Tortilla de despensa") + "]"}}
	svc := newService(t, client)

	results, err := svc.ScanPantry(context.Background(), image)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "0", results[0].ID)
	assert.Contains(t, results[0].ImageURL, "loremflickr.com")

	call := client.calls[0]
	assert.Equal(t, image, call.image)
	assert.True(t, strings.Contains(call.prompt, "foto"))
}

func TestScanPantryEmptyImage(t *testing.T) {
	client := &fakeClient{}
	svc := newService(t, client)

	_, err := svc.ScanPantry(context.Background(), nil)
	require.Error(t, err)
	assert.Empty(t, client.calls)
}

func TestGenerateLesson(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"title": "Masa madre", "objective": "Entender la fermentación",
		  "theory": "Las levaduras salvajes...",
		  "practicalSteps": [{"order": 1, "instruction": "Mezclar harina y agua"}]}`,
	}}
	svc := newService(t, client)

	out, err := svc.GenerateLesson(context.Background(), "pan de masa madre")
	require.NoError(t, err)
	assert.Equal(t, "Masa madre", out.Title)
	// Optional metadata resolves to render defaults.
	assert.Equal(t, "45 min", out.EstimatedTimeOrDefault())
	assert.Equal(t, "Personalizada", out.DifficultyOrDefault())
}

func TestRecommendRecipe(t *testing.T) {
	client := &fakeClient{responses: []string{recipeJSON("", "Pichón asado")}}
	svc := newService(t, client)

	out, err := svc.RecommendRecipe(context.Background(), "algo festivo")
	require.NoError(t, err)
	assert.Equal(t, recommendationID, out.ID)
	assert.Contains(t, out.ImageURL, "loremflickr.com")
}
