package api

import (
	"net/http"

	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/store"
)

func (h *handlers) createBankAccount(w http.ResponseWriter, r *http.Request) {
	var b models.BankAccount
	if err := decode(r, &b); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.CreateBankAccount(r.Context(), &b); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *handlers) listBankAccounts(w http.ResponseWriter, r *http.Request) {
	f := store.BankAccountFilter{
		ListParams: listParams(r),
		LandlordID: queryUint(r, "landlord_id"),
	}
	page, err := h.store.ListBankAccounts(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) getBankAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := h.store.GetBankAccount(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *handlers) updateBankAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var b models.BankAccount
	if err := decode(r, &b); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.UpdateBankAccount(r.Context(), id, &b); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *handlers) deleteBankAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.DeleteBankAccount(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
