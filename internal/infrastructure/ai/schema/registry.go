// Package schema holds the structured-output contracts the provider must
// satisfy for each content type. The registry is pure data: it carries no
// behavior and is consumed only by the content gateway when building
// provider requests.
package schema

// Provider schema type names, as the generative language API spells them.
const (
	TypeObject = "OBJECT"
	TypeArray  = "ARRAY"
	TypeString = "STRING"
	TypeNumber = "NUMBER"
)

// Schema describes the expected shape of a provider JSON response. It
// marshals directly into the request's responseSchema field.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// IsArray reports whether the schema's root is an array. The gateway uses
// it to pick the empty-response fallback literal ("[]" vs "{}").
func (s *Schema) IsArray() bool {
	return s != nil && s.Type == TypeArray
}

// step is shared between recipe steps and lesson practical steps. The tip
// is intentionally outside the required set so the provider may omit it.
func step() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"order":       {Type: TypeNumber},
			"instruction": {Type: TypeString},
			"tip":         {Type: TypeString},
		},
		Required: []string{"order", "instruction"},
	}
}

// Recipe is the contract for a single recipe result.
var Recipe = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"id":          {Type: TypeString},
		"title":       {Type: TypeString},
		"description": {Type: TypeString},
		"prepTime":    {Type: TypeString},
		"cookTime":    {Type: TypeString},
		"servings":    {Type: TypeNumber},
		"difficulty":  {Type: TypeString},
		"calories":    {Type: TypeNumber},
		"tags":        {Type: TypeArray, Items: &Schema{Type: TypeString}},
		"ingredients": {
			Type: TypeArray,
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"item":   {Type: TypeString},
					"amount": {Type: TypeString},
				},
				Required: []string{"item", "amount"},
			},
		},
		"steps": {Type: TypeArray, Items: step()},
	},
	Required: []string{"id", "title", "description", "prepTime", "cookTime", "ingredients", "steps"},
}

// RecipeList is the contract for search and pantry-scan results.
var RecipeList = &Schema{
	Type:  TypeArray,
	Items: Recipe,
}

// Lesson is the contract for a generated masterclass.
var Lesson = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"title":          {Type: TypeString},
		"objective":      {Type: TypeString},
		"estimatedTime":  {Type: TypeString},
		"difficulty":     {Type: TypeString},
		"theory":         {Type: TypeString},
		"practicalSteps": {Type: TypeArray, Items: step()},
		"proTips":        {Type: TypeArray, Items: &Schema{Type: TypeString}},
	},
	Required: []string{"title", "objective", "theory", "practicalSteps"},
}

// Nutrition is the contract for a recipe health report.
var Nutrition = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"score":   {Type: TypeNumber, Description: "Puntuación de salud del 1 al 10"},
		"summary": {Type: TypeString, Description: "Resumen nutricional corto"},
		"advice":  {Type: TypeString, Description: "Consejo para hacerlo más saludable"},
		"macros": {
			Type: TypeObject,
			Properties: map[string]*Schema{
				"protein": {Type: TypeString},
				"carbs":   {Type: TypeString},
				"fats":    {Type: TypeString},
			},
		},
	},
	Required: []string{"score", "summary", "advice"},
}
