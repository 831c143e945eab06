package api

import (
	"net/http"

	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/store"
)

func (h *handlers) createInvoice(w http.ResponseWriter, r *http.Request) {
	var inv models.Invoice
	if err := decode(r, &inv); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.CreateInvoice(r.Context(), &inv); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *handlers) listInvoices(w http.ResponseWriter, r *http.Request) {
	f := store.InvoiceFilter{
		ListParams: listParams(r),
		LeaseID:    queryUint(r, "lease_id"),
		Status:     r.URL.Query().Get("status"),
	}
	page, err := h.store.ListInvoices(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	inv, err := h.store.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *handlers) updateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var inv models.Invoice
	if err := decode(r, &inv); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.UpdateInvoice(r.Context(), id, &inv); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *handlers) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.DeleteInvoice(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) createPayment(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.CreatePayment(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *handlers) listPayments(w http.ResponseWriter, r *http.Request) {
	f := store.PaymentFilter{
		ListParams: listParams(r),
		LeaseID:    queryUint(r, "lease_id"),
	}
	page, err := h.store.ListPayments(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) getPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := h.store.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) updatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var p models.Payment
	if err := decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.UpdatePayment(r.Context(), id, &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.DeletePayment(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
