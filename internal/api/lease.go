package api

import (
	"net/http"

	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/store"
)

func (h *handlers) createLease(w http.ResponseWriter, r *http.Request) {
	var l models.Lease
	if err := decode(r, &l); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.CreateLease(r.Context(), &l); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *handlers) listLeases(w http.ResponseWriter, r *http.Request) {
	f := store.LeaseFilter{
		ListParams: listParams(r),
		PropertyID: queryUint(r, "property_id"),
		TenantID:   queryUint(r, "tenant_id"),
		Status:     r.URL.Query().Get("status"),
	}
	page, err := h.store.ListLeases(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) getLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	l, err := h.store.GetLease(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *handlers) updateLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var l models.Lease
	if err := decode(r, &l); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.UpdateLease(r.Context(), id, &l); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *handlers) deleteLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.DeleteLease(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) leaseFinancials(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	fin, err := h.store.GetLeaseFinancials(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fin)
}
