package panels

import (
	"go.uber.org/zap"

	"github.com/culinaglass/core/internal/application/assistant"
	"github.com/culinaglass/core/internal/infrastructure/config"
	"github.com/culinaglass/core/internal/ports/inbound"
	"github.com/culinaglass/core/internal/ports/outbound"
)

// DefaultQuery is the search issued when a session opens with no intent
// of its own.
const DefaultQuery = "Platos gourmet de temporada con presentación elegante"

// InitialQueries are the suggestion chips offered before the user has
// searched for anything.
var InitialQueries = []string{
	"Pasta italiana artesanal",
	"Cocina asiática fusión",
	"Postres de chocolate intensos",
	"Tapas españolas modernas",
}

// Set groups the panels and the assistant conversation that make up one
// user session's view state. Each session gets its own Set; panels share
// the kitchen service but nothing else.
type Set struct {
	Search    *SearchPanel
	Academy   *AcademyPanel
	Details   *DetailsPanel
	Assistant *assistant.Session
}

// NewSet builds a fresh session's panels. maxCached bounds each panel's
// query cache; the assistant opens its provider chat immediately so the
// greeting is in place before the first message.
func NewSet(kitchen inbound.KitchenService, start outbound.ChatStarter, chatCfg config.ChatConfig, maxCached int, logger *zap.Logger) *Set {
	return &Set{
		Search:    NewSearchPanel(kitchen, maxCached, logger),
		Academy:   NewAcademyPanel(kitchen, maxCached, logger),
		Details:   NewDetailsPanel(kitchen, logger),
		Assistant: assistant.NewSession(start, chatCfg.SystemInstruction, chatCfg.Greeting, logger),
	}
}
