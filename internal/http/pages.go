package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-composer/internal/documents"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/permissions"
	"github.com/goliatone/go-composer/sections"
)

type pageContentResponse struct {
	Key       string             `json:"key"`
	Revision  int64              `json:"revision"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`
	Content   *sections.Document `json:"content"`
}

type pageSavedResponse struct {
	Key       string    `json:"key"`
	Revision  int64     `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

type pageListResponse struct {
	Pages []documents.Summary `json:"pages"`
}

type variantListResponse struct {
	Variants []sections.Catalog `json:"variants"`
}

func (api *PagesAPI) handleContentGet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	doc, record, err := api.service.LoadRecord(r.Context(), key)
	if err != nil {
		if errors.Is(err, documents.ErrDocumentNotFound) {
			normalized, _ := documents.NormalizeKey(key)
			writeJSON(w, http.StatusOK, pageContentResponse{Key: normalized})
			return
		}
		writeError(w, err)
		return
	}
	updated := record.UpdatedAt
	writeJSON(w, http.StatusOK, pageContentResponse{
		Key:       record.Key,
		Revision:  record.Revision,
		UpdatedAt: &updated,
		Content:   &doc,
	})
}

func (api *PagesAPI) handleContentUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if !requirePermission(w, r, permissions.PagesUpdate) {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, api.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "payload_too_large", Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	if strings.TrimSpace(string(body)) == "" {
		writeError(w, errBodyRequired)
		return
	}

	record, err := api.service.SaveRaw(r.Context(), r.PathValue("key"), body, claims.Subject)
	if err != nil {
		ctx := logging.WithPageKey(r.Context(), r.PathValue("key"))
		api.logger.WithContext(ctx).Warn("page content rejected", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageSavedResponse{
		Key:       record.Key,
		Revision:  record.Revision,
		UpdatedAt: record.UpdatedAt,
	})
}

func (api *PagesAPI) handleContentDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}
	if !requirePermission(w, r, permissions.PagesDelete) {
		return
	}
	if err := api.service.Delete(r.Context(), r.PathValue("key"), claims.Subject); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *PagesAPI) handlePageList(w http.ResponseWriter, r *http.Request) {
	list, err := api.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []documents.Summary{}
	}
	writeJSON(w, http.StatusOK, pageListResponse{Pages: list})
}

func (api *PagesAPI) handleVariantList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, variantListResponse{Variants: sections.Describe()})
}
