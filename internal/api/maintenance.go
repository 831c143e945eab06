package api

import (
	"net/http"

	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/store"
)

func (h *handlers) createMaintenanceItem(w http.ResponseWriter, r *http.Request) {
	var m models.MaintenanceItem
	if err := decode(r, &m); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.CreateMaintenanceItem(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *handlers) listMaintenanceItems(w http.ResponseWriter, r *http.Request) {
	f := store.MaintenanceFilter{
		ListParams: listParams(r),
		PropertyID: queryUint(r, "property_id"),
		Status:     r.URL.Query().Get("status"),
		Priority:   r.URL.Query().Get("priority"),
	}
	page, err := h.store.ListMaintenanceItems(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) getMaintenanceItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	m, err := h.store.GetMaintenanceItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *handlers) updateMaintenanceItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var m models.MaintenanceItem
	if err := decode(r, &m); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.UpdateMaintenanceItem(r.Context(), id, &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *handlers) deleteMaintenanceItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.DeleteMaintenanceItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
