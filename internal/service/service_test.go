package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/kingpotter-hr/full9-website/internal/repository/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }
