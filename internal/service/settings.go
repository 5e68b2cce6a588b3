package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/repository"
)

const (
	maxSettingKeyLength   = 100
	maxSettingValueLength = 10000
)

// SettingsService manages site-wide key/value settings.
type SettingsService struct {
	store   repository.SettingsStore
	metrics metrics.Recorder
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(store repository.SettingsStore, recorder metrics.Recorder) *SettingsService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SettingsService{store: store, metrics: recorder}
}

// All returns every setting.
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, storeErr("get settings", err)
	}
	return settings, nil
}

// Update upserts the given settings in one transaction.
func (s *SettingsService) Update(ctx context.Context, settings map[string]string) error {
	if len(settings) == 0 {
		return invalid("settings", "must not be empty")
	}

	clean := make(map[string]string, len(settings))
	for k, v := range settings {
		key := strings.TrimSpace(k)
		if key == "" || utf8.RuneCountInString(key) > maxSettingKeyLength {
			return invalid("key", "must be 1-100 characters")
		}
		if len(v) > maxSettingValueLength {
			return invalid(key, "value is too long")
		}
		clean[key] = v
	}

	if err := s.store.UpsertSettings(ctx, clean); err != nil {
		return storeErr("upsert settings", err)
	}
	s.metrics.IncContentChange("settings", "update")
	return nil
}
