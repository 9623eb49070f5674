package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-composer/internal/auth"
	"github.com/goliatone/go-composer/internal/documents"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/sections"
)

// RepositoryGateway serves documents from an in-process documents.Service.
// Credentials are checked the same way the HTTP API checks them.
type RepositoryGateway struct {
	service  *documents.Service
	verifier *auth.Verifier
}

func NewRepositoryGateway(service *documents.Service, verifier *auth.Verifier) *RepositoryGateway {
	return &RepositoryGateway{service: service, verifier: verifier}
}

func (g *RepositoryGateway) Load(ctx context.Context, pageKey string) (sections.Document, error) {
	doc, err := g.service.Load(ctx, pageKey)
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, documents.ErrDocumentNotFound):
		return sections.NewDocument(), nil
	case errors.Is(err, documents.ErrPageKeyRequired):
		return sections.Document{}, ErrPageKeyRequired
	default:
		return sections.Document{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
}

func (g *RepositoryGateway) Save(ctx context.Context, pageKey string, doc sections.Document, cred auth.Credential) error {
	if g.verifier == nil {
		return fmt.Errorf("%w: no verifier configured", ErrUnauthorized)
	}
	claims, err := g.verifier.Verify(cred.Token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if !permissions.Has(claims.Checker(), permissions.PagesUpdate) {
		return ErrForbidden
	}
	if _, err := g.service.Save(ctx, pageKey, doc, claims.Subject); err != nil {
		if errors.Is(err, documents.ErrPageKeyRequired) {
			return ErrPageKeyRequired
		}
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}
