package healthcheck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAggregatesChecks(t *testing.T) {
	h := New("1.0.0")
	h.Register("alpha", CheckFunc(func(ctx context.Context) Check {
		return Healthy("fine")
	}))
	h.Register("beta", CheckFunc(func(ctx context.Context) Check {
		return Healthy("")
	}))

	resp := h.Run(context.Background())
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
	require.Len(t, resp.Checks, 2)
	assert.Equal(t, "alpha", resp.Checks[0].Name)
	assert.Equal(t, "beta", resp.Checks[1].Name)
}

func TestRunUnhealthyCheckFailsAggregate(t *testing.T) {
	h := New("1.0.0")
	h.Register("ok", CheckFunc(func(ctx context.Context) Check {
		return Healthy("")
	}))
	h.Register("broken", CheckFunc(func(ctx context.Context) Check {
		return Unhealthy("no key")
	}))

	resp := h.Run(context.Background())
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.Equal(t, StatusUnhealthy, resp.Checks[1].Status)
	assert.Equal(t, "no key", resp.Checks[1].Message)
}

func TestRegisterReplacesByName(t *testing.T) {
	h := New("1.0.0")
	h.Register("a", CheckFunc(func(ctx context.Context) Check { return Unhealthy("old") }))
	h.Register("a", CheckFunc(func(ctx context.Context) Check { return Healthy("new") }))

	resp := h.Run(context.Background())
	require.Len(t, resp.Checks, 1)
	assert.Equal(t, StatusHealthy, resp.Status)
}
