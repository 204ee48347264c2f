// Package panels holds the per-session view state: which content each
// surface of the client currently shows, with one in-flight request per
// panel and per-panel query caches. Panels are the only writers of their
// own state; a failed request leaves the previously shown content intact.
package panels

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/culinaglass/core/internal/domain/recipe"
	"github.com/culinaglass/core/internal/infrastructure/cache"
	"github.com/culinaglass/core/internal/ports/inbound"
)

// PantryResultsLabel is shown instead of the search query when the
// current results came from a pantry photo.
const PantryResultsLabel = "Basado en tu despensa 📸"

// SearchPanel drives the main recipe grid. Search results are memoized
// per normalized query; pantry scans are never memoized and land here
// under PantryResultsLabel.
type SearchPanel struct {
	kitchen inbound.KitchenService
	cache   *cache.QueryCache[[]recipe.Recipe]
	logger  *zap.Logger

	mu      sync.Mutex
	label   string
	results []recipe.Recipe
	loading bool
}

// NewSearchPanel creates the panel with a trim-and-lowercase query cache.
func NewSearchPanel(kitchen inbound.KitchenService, maxCached int, logger *zap.Logger) *SearchPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchPanel{
		kitchen: kitchen,
		cache:   cache.New[[]recipe.Recipe](cache.TrimLower, maxCached),
		logger:  logger.Named("search_panel"),
	}
}

// State returns the panel's current label, results and loading flag.
func (p *SearchPanel) State() (label string, results []recipe.Recipe, loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.label, p.results, p.loading
}

// Search resolves a free-text query into the panel's result grid. A blank
// query is a no-op. A repeated query (modulo trimming and case) is served
// from cache without a provider call. On failure the panel keeps whatever
// it showed before.
func (p *SearchPanel) Search(ctx context.Context, query string) ([]recipe.Recipe, error) {
	if strings.TrimSpace(query) == "" {
		return nil, recipe.ErrEmptyQuery
	}

	if hit, ok := p.cache.Get(query); ok {
		p.mu.Lock()
		p.label = strings.TrimSpace(query)
		p.results = hit
		p.mu.Unlock()
		p.logger.Debug("search served from cache", zap.String("query", query))
		return hit, nil
	}

	if err := p.begin(); err != nil {
		return nil, err
	}

	results, err := p.kitchen.SearchRecipes(ctx, query)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return nil, err
	}
	p.cache.Put(query, results)
	p.label = strings.TrimSpace(query)
	p.results = results
	return results, nil
}

// ScanPantry resolves a pantry photo into the result grid. Scans bypass
// the query cache entirely: the same photo bytes may legitimately yield
// new suggestions.
func (p *SearchPanel) ScanPantry(ctx context.Context, imageJPEG []byte) ([]recipe.Recipe, error) {
	if err := p.begin(); err != nil {
		return nil, err
	}

	results, err := p.kitchen.ScanPantry(ctx, imageJPEG)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return nil, err
	}
	p.label = PantryResultsLabel
	p.results = results
	return results, nil
}

// begin flips the loading gate, rejecting a second concurrent request.
func (p *SearchPanel) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loading {
		return recipe.ErrBusy
	}
	p.loading = true
	return nil
}
