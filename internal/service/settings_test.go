package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService(t *testing.T) {
	svc := NewSettingsService(newTestStore(t), nil)
	ctx := context.Background()

	empty, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, svc.Update(ctx, map[string]string{" phone ": "02-000-0000", "line_id": "@full9"}))
	require.NoError(t, svc.Update(ctx, map[string]string{"phone": "02-111-1111"}))

	got, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"phone": "02-111-1111", "line_id": "@full9"}, got)
}

func TestSettingsService_Validation(t *testing.T) {
	svc := NewSettingsService(newTestStore(t), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		in   map[string]string
	}{
		{"empty map", map[string]string{}},
		{"blank key", map[string]string{"  ": "v"}},
		{"key too long", map[string]string{strings.Repeat("k", 101): "v"}},
		{"value too long", map[string]string{"k": strings.Repeat("v", 10001)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Update(ctx, tt.in), ErrInvalidInput)
		})
	}

	got, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "rejected updates write nothing")
}
