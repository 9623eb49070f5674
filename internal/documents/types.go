package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrDocumentNotFound = errors.New("documents: document not found")
	ErrPageKeyRequired  = errors.New("documents: page key is required")
	ErrPageKeyInvalid   = errors.New("documents: page key is invalid")
)

// Record is the stored form of one page document.
type Record struct {
	bun.BaseModel `bun:"table:page_documents,alias:pd"`

	ID         uuid.UUID       `bun:",pk,type:uuid" json:"id"`
	Key        string          `bun:"page_key,notnull,unique" json:"key"`
	Sections   json.RawMessage `bun:"sections,type:jsonb,notnull" json:"sections"`
	Properties json.RawMessage `bun:"properties,type:jsonb" json:"properties,omitempty"`
	Revision   int64           `bun:"revision,notnull,default:0" json:"revision"`
	UpdatedBy  string          `bun:"updated_by" json:"updated_by,omitempty"`
	CreatedAt  time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func cloneRecord(r *Record) *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Sections = append(json.RawMessage(nil), r.Sections...)
	out.Properties = append(json.RawMessage(nil), r.Properties...)
	return &out
}

// Repository persists document records keyed by page key.
type Repository interface {
	Get(ctx context.Context, key string) (*Record, error)
	Upsert(ctx context.Context, record *Record) (*Record, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*Record, error)
}

// NotFoundError is returned when a page key has no stored document.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

func notFound(key string) error {
	return &NotFoundError{Resource: "document", Key: key}
}
