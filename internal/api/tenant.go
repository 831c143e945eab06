package api

import (
	"net/http"

	"github.com/khayaprop/khaya/internal/models"
)

func (h *handlers) createTenant(w http.ResponseWriter, r *http.Request) {
	var t models.Tenant
	if err := decode(r, &t); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.CreateTenant(r.Context(), &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *handlers) listTenants(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListTenants(r.Context(), listParams(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) getTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := h.store.GetTenant(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handlers) updateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var t models.Tenant
	if err := decode(r, &t); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.UpdateTenant(r.Context(), id, &t); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handlers) deleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.DeleteTenant(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
