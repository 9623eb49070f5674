package documents

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-composer/internal/identity"
)

const documentNamespace = "page_document"

// BunRepository stores records through go-repository-bun with optional caching.
type BunRepository struct {
	repo         repository.Repository[*Record]
	cacheService cache.CacheService
	cachePrefix  string
	now          func() time.Time
}

// NewBunRepository creates a repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a repository whose reads go through the cache.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewRecordRepository(db)
	var svc cache.CacheService
	prefix := ""
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
		prefix = documentNamespace + cache.KeySeparator
	}
	return &BunRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateSchema creates the page_documents table when missing.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (r *BunRepository) Get(ctx context.Context, key string) (*Record, error) {
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return record, nil
}

func (r *BunRepository) Upsert(ctx context.Context, record *Record) (*Record, error) {
	if record == nil || strings.TrimSpace(record.Key) == "" {
		return nil, ErrPageKeyRequired
	}
	now := r.now()
	existing, err := r.repo.GetByIdentifier(ctx, record.Key)
	switch {
	case err == nil:
		next := cloneRecord(record)
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
		next.Revision = existing.Revision + 1
		next.UpdatedAt = now
		updated, err := r.repo.Update(ctx, next,
			repository.UpdateByID(next.ID.String()),
			repository.UpdateColumns("sections", "properties", "revision", "updated_by", "updated_at"),
		)
		if err != nil {
			return nil, fmt.Errorf("document repository error: %w", err)
		}
		r.invalidate(ctx)
		return updated, nil
	case goerrors.IsCategory(err, repository.CategoryDatabaseNotFound):
		next := cloneRecord(record)
		next.ID = identity.DocumentUUID(record.Key)
		next.Revision = 1
		next.CreatedAt = now
		next.UpdatedAt = now
		created, err := r.repo.Create(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("document repository error: %w", err)
		}
		r.invalidate(ctx)
		return created, nil
	default:
		return nil, mapRepositoryError(err, record.Key)
	}
}

func (r *BunRepository) Delete(ctx context.Context, key string) error {
	existing, err := r.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &Record{ID: existing.ID}); err != nil {
		return fmt.Errorf("document repository error: %w", err)
	}
	r.invalidate(ctx)
	return nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Record, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("document repository error: %w", err)
	}
	slices.SortFunc(records, func(a, b *Record) int { return strings.Compare(a.Key, b.Key) })
	return records, nil
}

// InvalidateCache drops cached document lookups.
func (r *BunRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func (r *BunRepository) invalidate(ctx context.Context) {
	_ = r.InvalidateCache(ctx)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return notFound(key)
	}
	return fmt.Errorf("document repository error: %w", err)
}
