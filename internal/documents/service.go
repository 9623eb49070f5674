package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-composer/internal/identity"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/internal/validation"
	"github.com/goliatone/go-composer/pkg/activity"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-composer/sections"
	"github.com/goliatone/go-slug"
)

// ErrInvalidDocument wraps structural problems found before a save.
var ErrInvalidDocument = errors.New("documents: invalid document")

const (
	activityObjectType = "page_document"
	activityChannel    = "composer"
)

// Summary is the listing view of a stored document.
type Summary struct {
	Key       string    `json:"key"`
	Revision  int64     `json:"revision"`
	Sections  int       `json:"sections"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service loads and saves page documents.
type Service struct {
	repo   Repository
	hook   activity.Hook
	logger interfaces.Logger
	now    func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithActivityHook emits an event after every successful save or delete.
func WithActivityHook(hook activity.Hook) ServiceOption {
	return func(s *Service) {
		s.hook = hook
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NormalizeKey turns a page key into its stored slug form.
func NormalizeKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", ErrPageKeyRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageKeyInvalid, err)
	}
	if normalized == "" {
		return "", ErrPageKeyInvalid
	}
	return normalized, nil
}

// Load returns the document stored under key. Missing documents report
// ErrDocumentNotFound.
func (s *Service) Load(ctx context.Context, key string) (sections.Document, error) {
	doc, _, err := s.LoadRecord(ctx, key)
	return doc, err
}

// LoadRecord returns the decoded document together with its record.
func (s *Service) LoadRecord(ctx context.Context, key string) (sections.Document, *Record, error) {
	normalized, err := NormalizeKey(key)
	if err != nil {
		return sections.Document{}, nil, err
	}
	record, err := s.repo.Get(ctx, normalized)
	if err != nil {
		return sections.Document{}, nil, err
	}
	doc, err := decodeRecord(record)
	if err != nil {
		return sections.Document{}, nil, err
	}
	return doc, record, nil
}

// SaveRaw validates a wire payload against the document schema before
// decoding and saving it.
func (s *Service) SaveRaw(ctx context.Context, key string, payload []byte, actor string) (*Record, error) {
	if err := validation.ValidateDocument(payload); err != nil {
		return nil, err
	}
	var doc sections.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return s.Save(ctx, key, doc, actor)
}

// Save replaces the whole document stored under key.
func (s *Service) Save(ctx context.Context, key string, doc sections.Document, actor string) (*Record, error) {
	normalized, err := NormalizeKey(key)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if err := doc.Properties.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	sectionsPayload, err := sections.MarshalSections(doc.Sections)
	if err != nil {
		return nil, fmt.Errorf("documents: encode sections: %w", err)
	}
	propsPayload, err := json.Marshal(doc.Properties)
	if err != nil {
		return nil, fmt.Errorf("documents: encode properties: %w", err)
	}

	saved, err := s.repo.Upsert(ctx, &Record{
		ID:         identity.DocumentUUID(normalized),
		Key:        normalized,
		Sections:   sectionsPayload,
		Properties: propsPayload,
		UpdatedBy:  actor,
	})
	if err != nil {
		s.log(ctx, normalized).Error("document save failed", "error", err)
		return nil, err
	}

	s.log(ctx, normalized).Info("document saved",
		"revision", saved.Revision,
		"sections", len(doc.Sections),
	)
	s.emit(ctx, activity.Event{
		Verb:           "save",
		ActorID:        actorID(actor),
		ObjectID:       saved.ID.String(),
		DefinitionCode: permissions.PagesUpdate,
		Metadata: map[string]any{
			logging.FieldPageKey: normalized,
			"revision":           saved.Revision,
			"sections":           len(doc.Sections),
			"actor":              actor,
		},
	})
	return saved, nil
}

// Delete removes the document stored under key.
func (s *Service) Delete(ctx context.Context, key string, actor string) error {
	normalized, err := NormalizeKey(key)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, normalized); err != nil {
		return err
	}
	s.log(ctx, normalized).Info("document deleted")
	s.emit(ctx, activity.Event{
		Verb:           "delete",
		ActorID:        actorID(actor),
		ObjectID:       identity.DocumentUUID(normalized).String(),
		DefinitionCode: permissions.PagesDelete,
		Metadata: map[string]any{
			logging.FieldPageKey: normalized,
			"actor":              actor,
		},
	})
	return nil
}

// List summarizes every stored document ordered by key.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(records))
	for _, record := range records {
		var raw []json.RawMessage
		if len(record.Sections) > 0 {
			if err := json.Unmarshal(record.Sections, &raw); err != nil {
				return nil, fmt.Errorf("documents: decode %s: %w", record.Key, err)
			}
		}
		out = append(out, Summary{
			Key:       record.Key,
			Revision:  record.Revision,
			Sections:  len(raw),
			UpdatedBy: record.UpdatedBy,
			UpdatedAt: record.UpdatedAt,
		})
	}
	return out, nil
}

func (s *Service) emit(ctx context.Context, event activity.Event) {
	if s.hook == nil {
		return
	}
	event.ObjectType = activityObjectType
	event.Channel = activityChannel
	event.OccurredAt = s.now()
	if err := s.hook.Notify(ctx, event); err != nil {
		s.logger.Warn("activity hook failed", "verb", event.Verb, "error", err)
	}
}

func (s *Service) log(ctx context.Context, key string) interfaces.Logger {
	return s.logger.WithContext(logging.WithPageKey(ctx, key))
}

func decodeRecord(record *Record) (sections.Document, error) {
	doc := sections.NewDocument()
	seq, err := sections.UnmarshalSections(record.Sections)
	if err != nil {
		return sections.Document{}, fmt.Errorf("documents: decode %s: %w", record.Key, err)
	}
	doc.Sections = seq
	if len(record.Properties) > 0 && string(record.Properties) != "null" {
		if err := json.Unmarshal(record.Properties, &doc.Properties); err != nil {
			return sections.Document{}, fmt.Errorf("documents: decode %s properties: %w", record.Key, err)
		}
	}
	return doc, nil
}

func actorID(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ""
	}
	return identity.UUID("go-composer:actor:" + strings.ToLower(actor)).String()
}
