// Package assistant manages the chef-assistant conversation: a single
// multi-turn provider chat plus the append-only transcript shown to the
// user. The transcript and the provider-side history are kept consistent
// even across provider failures.
package assistant

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/culinaglass/core/internal/domain/chat"
	"github.com/culinaglass/core/internal/domain/recipe"
	"github.com/culinaglass/core/internal/ports/outbound"
)

const (
	// apology replaces the assistant turn when the provider call fails,
	// so the transcript still advances by a user/assistant pair.
	apology = "¡Ups! Algo salió mal en mi cocina digital."

	// emptyReplyFallback stands in when the provider succeeds but returns
	// no text at all.
	emptyReplyFallback = "Lo siento, tuve un problema pensando en eso."
)

// Session is the conversation state machine. At most one Send is in
// flight; concurrent submissions are rejected with ErrBusy rather than
// queued.
type Session struct {
	logger *zap.Logger

	mu       sync.Mutex
	provider outbound.ChatSession
	history  []chat.Message
	awaiting bool
}

// NewSession opens a provider chat with the given persona and seeds the
// transcript with the greeting, when one is configured.
func NewSession(start outbound.ChatStarter, systemInstruction, greeting string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		logger:   logger.Named("assistant"),
		provider: start(systemInstruction),
	}
	if greeting != "" {
		s.history = append(s.history, chat.Message{Role: chat.RoleAssistant, Text: greeting})
	}
	return s
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]chat.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Awaiting reports whether a reply is currently pending.
func (s *Session) Awaiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// Send submits one user message and returns the assistant's reply. A
// blank message is a no-op (ErrEmptyQuery). On provider failure the
// transcript still gains the user turn plus an apology turn, and the
// error is returned alongside so callers can log it; the session is ready
// for the next message either way.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", recipe.ErrEmptyQuery
	}

	s.mu.Lock()
	if s.awaiting {
		s.mu.Unlock()
		return "", recipe.ErrBusy
	}
	s.awaiting = true
	s.history = append(s.history, chat.Message{Role: chat.RoleUser, Text: message})
	s.mu.Unlock()

	reply, err := s.provider.Send(ctx, message)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaiting = false

	if err != nil {
		if !recipe.IsCanceled(err) {
			s.logger.Warn("assistant turn failed", zap.Error(err))
		}
		s.history = append(s.history, chat.Message{Role: chat.RoleAssistant, Text: apology})
		return apology, err
	}
	if strings.TrimSpace(reply) == "" {
		reply = emptyReplyFallback
	}
	s.history = append(s.history, chat.Message{Role: chat.RoleAssistant, Text: reply})
	return reply, nil
}
