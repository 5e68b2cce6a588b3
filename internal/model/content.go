package model

import (
	"slices"
	"time"
)

// ContentType describes how a content value is rendered by the site.
type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeHTML  ContentType = "html"
	ContentTypeImage ContentType = "image"
	ContentTypeColor ContentType = "color"
)

// ValidContentTypes contains all valid content types.
var ValidContentTypes = []ContentType{ContentTypeText, ContentTypeHTML, ContentTypeImage, ContentTypeColor}

// IsValid checks if the content type is known.
func (t ContentType) IsValid() bool {
	return slices.Contains(ValidContentTypes, t)
}

// ContentItem is one editable piece of page copy, addressed by a unique key.
type ContentItem struct {
	ID        int64       `json:"id"`
	Key       string      `json:"key"`
	Value     string      `json:"value"`
	Section   string      `json:"section"`
	Type      ContentType `json:"type"`
	UpdatedAt time.Time   `json:"updated_at"`
}
