package panels

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/culinaglass/core/internal/domain/lesson"
	"github.com/culinaglass/core/internal/domain/recipe"
	"github.com/culinaglass/core/internal/infrastructure/cache"
	"github.com/culinaglass/core/internal/ports/inbound"
)

// AcademyPanel drives the masterclass view. Lessons are memoized per
// topic, keyed on the raw topic string: unlike recipe search, the topic
// text is displayed verbatim, so "Risotto" and "risotto" stay separate.
type AcademyPanel struct {
	kitchen inbound.KitchenService
	cache   *cache.QueryCache[lesson.Lesson]
	logger  *zap.Logger

	mu      sync.Mutex
	topic   string
	lesson  *lesson.Lesson
	loading bool
}

// NewAcademyPanel creates the panel with a raw-keyed lesson cache.
func NewAcademyPanel(kitchen inbound.KitchenService, maxCached int, logger *zap.Logger) *AcademyPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademyPanel{
		kitchen: kitchen,
		cache:   cache.New[lesson.Lesson](cache.Raw, maxCached),
		logger:  logger.Named("academy_panel"),
	}
}

// State returns the current topic, lesson (nil until one is shown) and
// loading flag.
func (p *AcademyPanel) State() (topic string, l *lesson.Lesson, loading bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.topic, p.lesson, p.loading
}

// Learn resolves a topic into the displayed lesson. Blank topics are a
// no-op; repeated topics are served from cache; a failed generation keeps
// the previously shown lesson.
func (p *AcademyPanel) Learn(ctx context.Context, topic string) (lesson.Lesson, error) {
	if strings.TrimSpace(topic) == "" {
		return lesson.Lesson{}, recipe.ErrEmptyQuery
	}

	if hit, ok := p.cache.Get(topic); ok {
		p.mu.Lock()
		p.topic = topic
		p.lesson = &hit
		p.mu.Unlock()
		p.logger.Debug("lesson served from cache", zap.String("topic", topic))
		return hit, nil
	}

	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return lesson.Lesson{}, recipe.ErrBusy
	}
	p.loading = true
	p.mu.Unlock()

	out, err := p.kitchen.GenerateLesson(ctx, topic)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return lesson.Lesson{}, err
	}
	p.cache.Put(topic, out)
	p.topic = topic
	p.lesson = &out
	return out, nil
}
