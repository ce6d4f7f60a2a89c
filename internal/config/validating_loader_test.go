package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockLoader is a test double for config.Loader.
type mockLoader struct {
	cfg *Config
	err error
}

func (m *mockLoader) Load(string) (*Config, error) {
	return m.cfg, m.err
}

func TestNewValidatingLoader(t *testing.T) {
	t.Parallel()

	inner := &mockLoader{}
	loader := NewValidatingLoader(inner)

	vl, ok := loader.(*validatingLoader)
	require.True(t, ok)
	require.Equal(t, inner, vl.Loader)
}

func TestValidatingLoader_Load_DelegatesError(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("load failed")
	loader := NewValidatingLoader(&mockLoader{err: expectedErr})

	_, err := loader.Load("/some/path")

	require.ErrorIs(t, err, expectedErr)
}

func TestValidatingLoader_Load_RunsPredicatesInOrder(t *testing.T) {
	t.Parallel()

	cfg := Default("/tmp")
	var calls []string

	first := func(*Config) error {
		calls = append(calls, "first")
		return nil
	}
	second := func(*Config) error {
		calls = append(calls, "second")
		return errors.New("second failed")
	}
	third := func(*Config) error {
		calls = append(calls, "third")
		return nil
	}

	loader := NewValidatingLoader(&mockLoader{cfg: cfg}, first, second, third)
	_, err := loader.Load("/some/path")

	require.EqualError(t, err, "second failed")
	require.Equal(t, []string{"first", "second"}, calls)
}

func TestValidatingLoader_Load_ReturnsConfig(t *testing.T) {
	t.Parallel()

	cfg := Default("/tmp")
	loader := NewValidatingLoader(&mockLoader{cfg: cfg}, RequireBuildOptions)

	got, err := loader.Load("/some/path")
	require.NoError(t, err)
	require.Same(t, cfg, got)
}
