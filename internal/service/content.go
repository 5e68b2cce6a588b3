package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/model"
	"github.com/kingpotter-hr/full9-website/internal/repository"
	"github.com/microcosm-cc/bluemonday"
)

var (
	contentKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,100}$`)
	colorRegex      = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

const (
	maxSectionLength      = 50
	maxContentValueLength = 65535
)

// ContentInput is an upsert request for one content item.
type ContentInput struct {
	Key     string
	Value   string
	Section string
	Type    model.ContentType
}

// ContentService manages keyed page copy.
type ContentService struct {
	store   repository.ContentStore
	policy  *bluemonday.Policy
	metrics metrics.Recorder
}

// NewContentService creates a ContentService. HTML values are sanitized with
// the bluemonday UGC policy.
func NewContentService(store repository.ContentStore, recorder metrics.Recorder) *ContentService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ContentService{
		store:   store,
		policy:  bluemonday.UGCPolicy(),
		metrics: recorder,
	}
}

// List returns all content ordered by section then key.
func (s *ContentService) List(ctx context.Context) ([]model.ContentItem, error) {
	items, err := s.store.ListContent(ctx)
	if err != nil {
		return nil, storeErr("list content", err)
	}
	return items, nil
}

// ListSection returns the items of one section ordered by key.
func (s *ContentService) ListSection(ctx context.Context, section string) ([]model.ContentItem, error) {
	items, err := s.store.ListContentBySection(ctx, section)
	if err != nil {
		return nil, storeErr("list section", err)
	}
	return items, nil
}

// Get returns a single item by key.
func (s *ContentService) Get(ctx context.Context, key string) (*model.ContentItem, error) {
	item, err := s.store.GetContent(ctx, key)
	if err != nil {
		return nil, storeErr("get content", err)
	}
	return item, nil
}

// Save validates and upserts a content item.
func (s *ContentService) Save(ctx context.Context, in ContentInput) (*model.ContentItem, error) {
	item, err := s.normalize(in)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpsertContent(ctx, item); err != nil {
		return nil, storeErr("upsert content", err)
	}
	s.metrics.IncContentChange("content", "upsert")
	return item, nil
}

// Delete removes an item by key.
func (s *ContentService) Delete(ctx context.Context, key string) error {
	if err := s.store.DeleteContent(ctx, key); err != nil {
		return storeErr("delete content", err)
	}
	s.metrics.IncContentChange("content", "delete")
	return nil
}

func (s *ContentService) normalize(in ContentInput) (*model.ContentItem, error) {
	key := strings.TrimSpace(in.Key)
	if !contentKeyRegex.MatchString(key) {
		return nil, invalid("key", "must be 1-100 letters, digits, '.', '_' or '-'")
	}
	section, err := required("section", in.Section, maxSectionLength)
	if err != nil {
		return nil, err
	}

	typ := in.Type
	if typ == "" {
		typ = model.ContentTypeText
	}
	if !typ.IsValid() {
		return nil, invalid("type", "must be one of text, html, image, color")
	}
	if len(in.Value) > maxContentValueLength {
		return nil, invalid("value", "is too long")
	}

	value := in.Value
	switch typ {
	case model.ContentTypeHTML:
		value = s.policy.Sanitize(value)
	case model.ContentTypeColor:
		value = strings.TrimSpace(value)
		if !colorRegex.MatchString(value) {
			return nil, invalid("value", "must be a hex color such as #1a2b3c")
		}
	case model.ContentTypeImage:
		value = strings.TrimSpace(value)
	}

	return &model.ContentItem{Key: key, Value: value, Section: section, Type: typ}, nil
}
