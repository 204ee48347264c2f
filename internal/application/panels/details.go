package panels

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/culinaglass/core/internal/domain/nutrition"
	"github.com/culinaglass/core/internal/domain/recipe"
	"github.com/culinaglass/core/internal/ports/inbound"
)

// ErrNoSelection is returned when a transform or analysis is requested
// with no recipe open in the details view.
var ErrNoSelection = errors.New("no recipe selected")

// DetailsPanel drives the recipe detail view: the currently opened recipe,
// its on-demand nutrition report, and chef-mode transformations. Nutrition
// reports are never memoized; a transformed recipe invalidates the report
// shown for its previous version.
type DetailsPanel struct {
	kitchen inbound.KitchenService
	logger  *zap.Logger

	mu       sync.Mutex
	selected *recipe.Recipe
	report   *nutrition.Report
	loading  bool
}

// NewDetailsPanel creates the panel.
func NewDetailsPanel(kitchen inbound.KitchenService, logger *zap.Logger) *DetailsPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailsPanel{
		kitchen: kitchen,
		logger:  logger.Named("details_panel"),
	}
}

// Select opens a recipe in the detail view, discarding any report that
// belonged to the previous selection.
func (p *DetailsPanel) Select(rec recipe.Recipe) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = &rec
	p.report = nil
}

// Close clears the detail view.
func (p *DetailsPanel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = nil
	p.report = nil
}

// State returns the current selection, its report (nil until analyzed)
// and the loading flag.
func (p *DetailsPanel) State() (selected *recipe.Recipe, report *nutrition.Report, loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected, p.report, p.loading
}

// Transform applies a natural-language edit to the open recipe. On
// success the result replaces the selection, keeping the original's
// image; the stale nutrition report is dropped. On failure the selection
// is untouched.
func (p *DetailsPanel) Transform(ctx context.Context, instruction string) (recipe.Recipe, error) {
	original, err := p.beginWithSelection()
	if err != nil {
		return recipe.Recipe{}, err
	}

	out, err := p.kitchen.TransformRecipe(ctx, original, instruction)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return recipe.Recipe{}, err
	}
	p.selected = &out
	p.report = nil
	return out, nil
}

// AnalyzeNutrition fetches a fresh report for the open recipe. Every call
// goes to the provider, even for a recipe analyzed moments ago.
func (p *DetailsPanel) AnalyzeNutrition(ctx context.Context) (nutrition.Report, error) {
	selected, err := p.beginWithSelection()
	if err != nil {
		return nutrition.Report{}, err
	}

	out, err := p.kitchen.AnalyzeNutrition(ctx, selected)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return nutrition.Report{}, err
	}
	p.report = &out
	return out, nil
}

// Recommend fetches a chef's pick for the stated preferences and opens it
// in the detail view. Needs no prior selection and replaces one if open.
func (p *DetailsPanel) Recommend(ctx context.Context, preferences string) (recipe.Recipe, error) {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return recipe.Recipe{}, recipe.ErrBusy
	}
	p.loading = true
	p.mu.Unlock()

	out, err := p.kitchen.RecommendRecipe(ctx, preferences)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return recipe.Recipe{}, err
	}
	p.selected = &out
	p.report = nil
	return out, nil
}

// beginWithSelection flips the loading gate and snapshots the selection.
func (p *DetailsPanel) beginWithSelection() (recipe.Recipe, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == nil {
		return recipe.Recipe{}, ErrNoSelection
	}
	if p.loading {
		return recipe.Recipe{}, recipe.ErrBusy
	}
	p.loading = true
	return *p.selected, nil
}
