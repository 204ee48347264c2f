// Package outbound defines the interfaces the application uses to reach
// external systems (the generative provider).
package outbound

import (
	"context"

	"github.com/culinaglass/core/internal/infrastructure/ai/schema"
)

// ContentClient is the sole wire contract with the generative provider
// for one-shot generation. Implementations must support schema-constrained
// JSON output, single-turn text prompts and multi-part text+image prompts.
type ContentClient interface {
	// Generate issues one content-generation request constrained by the
	// given schema. imageJPEG, when non-nil, is attached as an inline
	// vision part. The returned string is the provider's raw text, which
	// the caller parses; it may be empty.
	Generate(ctx context.Context, prompt string, contract *schema.Schema, imageJPEG []byte) (string, error)
}

// ChatStarter opens a multi-turn conversation handle with a fixed system
// instruction. The handle owns its own turn history.
type ChatStarter func(systemInstruction string) ChatSession

// ChatSession is a stateful multi-turn handle to the provider's chat
// capability. A failed Send must leave the handle's history as it was
// before the call.
type ChatSession interface {
	Send(ctx context.Context, message string) (string, error)
}
