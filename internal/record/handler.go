// Package record is a generic JSON-collection CRUD surface over the same
// document the curated endpoints use. It applies no business rules; it is
// gated behind the admin role like every other management surface.
package record

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"admin-dashboard/internal"
	"admin-dashboard/internal/store"
	"admin-dashboard/internal/transport"
	"admin-dashboard/pkg/logger"

	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	store *store.DocumentStore
}

func NewHandler(s *store.DocumentStore) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		store:       s,
	}
}

// List handles GET /api/{collection}. An unknown collection reads as
// empty; collections come into existence on first create.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var records []store.Record
	err := h.store.View(func(doc *store.Document) error {
		var err error
		records, err = doc.Collection(collection)
		return err
	})
	if err != nil {
		h.Logger.Error("list records failed", "collection", collection, "error", err)
		h.WriteAppError(w, internal.NewInternalError("failed to read document", err))
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}

// Get handles GET /api/{collection}/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}

	var found store.Record
	err := h.store.View(func(doc *store.Document) error {
		records, err := doc.Collection(collection)
		if err != nil {
			return internal.NewInternalError("failed to read document", err)
		}
		for _, rec := range records {
			if recID, ok := store.RecordID(rec); ok && recID == id {
				found = rec
				return nil
			}
		}
		return internal.ErrRecordNotFound
	})
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

// Create handles POST /api/{collection}. The record id is assigned by the
// store; a client-supplied id is overwritten.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var body store.Record
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.store.Update(func(doc *store.Document) error {
		records, err := doc.Collection(collection)
		if err != nil {
			return internal.NewInternalError("failed to read document", err)
		}

		var max int64
		for _, rec := range records {
			if recID, ok := store.RecordID(rec); ok && recID > max {
				max = recID
			}
		}
		body["id"] = max + 1

		records = append(records, body)
		if err := doc.SetCollection(collection, records); err != nil {
			return internal.NewValidationError("record does not fit the collection schema", internal.ErrCodeValidationFailed).WithCause(err)
		}
		return nil
	})
	if err != nil {
		h.Logger.Error("create record failed", "collection", collection, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, body)
}

// Update handles PUT and PATCH /api/{collection}/{id} as a shallow merge;
// the id field is immutable.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}

	var body store.Record
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var updated store.Record
	err := h.store.Update(func(doc *store.Document) error {
		records, err := doc.Collection(collection)
		if err != nil {
			return internal.NewInternalError("failed to read document", err)
		}

		idx := -1
		for i, rec := range records {
			if recID, ok := store.RecordID(rec); ok && recID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return internal.ErrRecordNotFound
		}

		for key, value := range body {
			if key == "id" {
				continue
			}
			records[idx][key] = value
		}
		updated = records[idx]

		if err := doc.SetCollection(collection, records); err != nil {
			return internal.NewValidationError("record does not fit the collection schema", internal.ErrCodeValidationFailed).WithCause(err)
		}
		return nil
	})
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/{collection}/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id, ok := h.recordID(w, r)
	if !ok {
		return
	}

	err := h.store.Update(func(doc *store.Document) error {
		records, err := doc.Collection(collection)
		if err != nil {
			return internal.NewInternalError("failed to read document", err)
		}

		for i, rec := range records {
			if recID, ok := store.RecordID(rec); ok && recID == id {
				records = append(records[:i], records[i+1:]...)
				return doc.SetCollection(collection, records)
			}
		}
		return internal.ErrRecordNotFound
	})
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Record deleted successfully",
	})
}

func (h *Handler) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.WriteAppError(w, internal.NewValidationError("record id must be an integer", internal.ErrCodeInvalidID))
		return 0, false
	}
	return id, true
}
