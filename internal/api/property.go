package api

import (
	"net/http"

	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/store"
	"github.com/khayaprop/khaya/internal/subprop"
)

func (h *handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	var p models.Property
	if err := decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.CreateProperty(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	f := store.PropertyFilter{
		ListParams: listParams(r),
		LandlordID: queryUint(r, "landlord_id"),
		ParentID:   queryUint(r, "parent_id"),
		Province:   r.URL.Query().Get("province"),
		Status:     r.URL.Query().Get("status"),
		Type:       r.URL.Query().Get("type"),
	}
	page, err := h.store.ListProperties(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.store.GetProperty(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) updateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var p models.Property
	if err := decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.UpdateProperty(r.Context(), id, &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.DeleteProperty(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) previewSubProperties(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req subprop.Request
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	preview, err := h.gen.Generate(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// commitBody carries the reviewed unit list back from the preview screen.
type commitBody struct {
	Units []models.Property `json:"units"`
}

func (h *handlers) commitSubProperties(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body commitBody
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	created, err := h.gen.Commit(r.Context(), id, body.Units)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"items": created})
}
