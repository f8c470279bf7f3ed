package factory

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/scribehq/scribe/models"
	"github.com/scribehq/scribe/store"
)

var (
	// ErrUnknownPostType is returned when the declared type has no
	// registry entry.
	ErrUnknownPostType = errors.New("unknown post type")
	// ErrInvalidPostData is returned when type-specific required fields
	// are missing or empty.
	ErrInvalidPostData = errors.New("invalid post data")
)

// Rule validates the type-specific fields of a post before it is
// persisted. A nil error means the input is acceptable for the type.
type Rule func(title, content string, metadata datatypes.JSONMap) error

// PostFactory is the single validated entry point for post construction.
// It owns the registry of known post types and their construction rules;
// callers never duplicate per-type validation.
type PostFactory struct {
	content store.Content
	rules   map[string]Rule
}

// New creates a PostFactory with the built-in text/image/video rules.
func New(content store.Content) *PostFactory {
	f := &PostFactory{
		content: content,
		rules:   make(map[string]Rule),
	}
	f.Register(models.PostTypeText, textRule)
	f.Register(models.PostTypeImage, requireMetadataKey("url"))
	f.Register(models.PostTypeVideo, requireMetadataKey("duration"))
	return f
}

// Register adds or replaces the rule for a post type. Call sites of
// Create need no change when new types are registered.
func (f *PostFactory) Register(postType string, rule Rule) {
	f.rules[postType] = rule
}

// Known reports whether a post type has a registry entry.
func (f *PostFactory) Known(postType string) bool {
	_, ok := f.rules[postType]
	return ok
}

// Create validates the input against the type's rule and delegates to
// the content store on success.
func (f *PostFactory) Create(postType, title, content string, metadata datatypes.JSONMap, authorID uint) (*models.Post, error) {
	rule, ok := f.rules[postType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPostType, postType)
	}
	if err := rule(title, content, metadata); err != nil {
		return nil, err
	}
	return f.content.CreatePost(authorID, postType, title, content, metadata)
}

func textRule(title, content string, metadata datatypes.JSONMap) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: text posts require content", ErrInvalidPostData)
	}
	return nil
}

func requireMetadataKey(key string) Rule {
	return func(title, content string, metadata datatypes.JSONMap) error {
		v, ok := metadata[key]
		if !ok || v == nil {
			return fmt.Errorf("%w: metadata key %q is required", ErrInvalidPostData, key)
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: metadata key %q is required", ErrInvalidPostData, key)
		}
		return nil
	}
}
