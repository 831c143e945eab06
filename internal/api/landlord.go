package api

import (
	"net/http"

	"github.com/khayaprop/khaya/internal/models"
)

func (h *handlers) createLandlord(w http.ResponseWriter, r *http.Request) {
	var l models.Landlord
	if err := decode(r, &l); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.CreateLandlord(r.Context(), &l); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *handlers) listLandlords(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListLandlords(r.Context(), listParams(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) getLandlord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	l, err := h.store.GetLandlord(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *handlers) updateLandlord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var l models.Landlord
	if err := decode(r, &l); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.UpdateLandlord(r.Context(), id, &l); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *handlers) deleteLandlord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.DeleteLandlord(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
