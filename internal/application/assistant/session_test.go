package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/culinaglass/core/internal/domain/chat"
	"github.com/culinaglass/core/internal/domain/recipe"
	"github.com/culinaglass/core/internal/ports/outbound"
)

type fakeChat struct {
	replies []string
	err     error
	sent    []string
	block   chan struct{}
}

func (f *fakeChat) Send(ctx context.Context, message string) (string, error) {
	if f.block != nil {
		<-f.block
	}
	f.sent = append(f.sent, message)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func newSession(t *testing.T, provider *fakeChat, greeting string) *Session {
	t.Helper()
	start := outbound.ChatStarter(func(string) outbound.ChatSession { return provider })
	return NewSession(start, "Eres un chef experto.", greeting, zaptest.NewLogger(t))
}

func TestGreetingSeedsTranscript(t *testing.T) {
	s := newSession(t, &fakeChat{}, "¡Hola! Soy tu chef.")

	transcript := s.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, chat.RoleAssistant, transcript[0].Role)
	assert.Equal(t, "¡Hola! Soy tu chef.", transcript[0].Text)
}

func TestSendAppendsUserAndAssistantTurns(t *testing.T) {
	provider := &fakeChat{replies: []string{"Prueba con aquafaba."}}
	s := newSession(t, provider, "hola")

	reply, err := s.Send(context.Background(), "¿Cómo sustituyo el huevo?")
	require.NoError(t, err)
	assert.Equal(t, "Prueba con aquafaba.", reply)

	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, chat.RoleUser, transcript[1].Role)
	assert.Equal(t, "¿Cómo sustituyo el huevo?", transcript[1].Text)
	assert.Equal(t, chat.RoleAssistant, transcript[2].Role)
	assert.False(t, s.Awaiting())
}

func TestSendBlankMessageIsNoOp(t *testing.T) {
	provider := &fakeChat{}
	s := newSession(t, provider, "")

	_, err := s.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, recipe.ErrEmptyQuery)
	assert.Empty(t, provider.sent)
	assert.Empty(t, s.Transcript())
}

func TestSendFailureStillAdvancesTranscript(t *testing.T) {
	provider := &fakeChat{err: errors.New("provider down")}
	s := newSession(t, provider, "hola")

	reply, err := s.Send(context.Background(), "receta de hoy")
	require.Error(t, err)
	assert.Equal(t, apology, reply)

	// The failed exchange still reads as a complete user/assistant pair.
	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, "receta de hoy", transcript[1].Text)
	assert.Equal(t, apology, transcript[2].Text)

	// And the session accepts the next message.
	provider.err = nil
	provider.replies = []string{"¡Listo!"}
	_, err = s.Send(context.Background(), "¿y ahora?")
	require.NoError(t, err)
	assert.Len(t, s.Transcript(), 5)
}

func TestSendEmptyReplyFallback(t *testing.T) {
	s := newSession(t, &fakeChat{replies: []string{"   "}}, "")

	reply, err := s.Send(context.Background(), "dime algo")
	require.NoError(t, err)
	assert.Equal(t, emptyReplyFallback, reply)
}

func TestSendRejectsConcurrentMessage(t *testing.T) {
	provider := &fakeChat{block: make(chan struct{}), replies: []string{"ok"}}
	s := newSession(t, provider, "")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := s.Send(context.Background(), "primera")
		assert.NoError(t, err)
	}()

	require.Eventually(t, s.Awaiting, 2*time.Second, time.Millisecond, "first send should be in flight")

	_, err := s.Send(context.Background(), "segunda")
	assert.ErrorIs(t, err, recipe.ErrBusy)

	close(provider.block)
	<-done
	assert.False(t, s.Awaiting())
}
