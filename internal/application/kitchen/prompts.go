package kitchen

import (
	"encoding/json"
	"fmt"

	"github.com/culinaglass/core/internal/domain/recipe"
)

// Prompt templates for the provider call shapes. The wording stays in the
// product's language; the schema contract enforces the output shape, the
// prompt pins the content register.

// difficultyRule keeps the difficulty field inside the domain enum.
const difficultyRule = `El campo "difficulty" debe ser "Easy", "Medium" o "Advanced".`

// pantryPrompt is fixed: vision calls carry no user text beyond it.
const pantryPrompt = `Identifica los ingredientes de la foto y sugiere 3 recetas creativas de alta cocina. ` +
	difficultyRule + ` Responde en JSON.`

func searchPrompt(query string) string {
	return fmt.Sprintf(`Genera 3 recetas gourmet reales y deliciosas para: %q. `+
		`Los títulos deben ser específicos. %s Responde estrictamente en JSON.`, query, difficultyRule)
}

// transformPrompt embeds the full original recipe so the provider edits it
// rather than inventing from scratch.
func transformPrompt(original recipe.Recipe, request string) string {
	encoded, _ := json.Marshal(original)
	return fmt.Sprintf(`Actúa como un chef Michelin. Modifica esta receta según la petición: %q. `+
		`Receta original: %s. Mantén la coherencia y el nivel gourmet. %s Responde solo el JSON.`,
		request, encoded, difficultyRule)
}

// nutritionPrompt is keyed off the title and ingredient list only, not the
// full instructions.
func nutritionPrompt(rec recipe.Recipe) string {
	ingredients, _ := json.Marshal(rec.Ingredients)
	return fmt.Sprintf(`Analiza nutricionalmente esta receta gourmet: %q. Ingredientes: %s. `+
		`Proporciona una puntuación de salud y consejos macrobióticos. Responde en JSON.`,
		rec.Title, ingredients)
}

func lessonPrompt(topic string) string {
	return fmt.Sprintf(`Crea una lección culinaria profesional sobre: %q. `+
		`Incluye teoría fundamental y pasos. Responde en JSON.`, topic)
}

func recommendPrompt(preferences string) string {
	return fmt.Sprintf(`Recomienda una receta gourmet basada en: %q. %s Responde en JSON.`,
		preferences, difficultyRule)
}
