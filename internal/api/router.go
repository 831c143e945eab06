package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/khayaprop/khaya/internal/store"
	"github.com/khayaprop/khaya/internal/subprop"
)

// handlers groups the dependencies shared by all route handlers.
type handlers struct {
	store  *store.Store
	gen    *subprop.Generator
	logger *zap.Logger
}

// NewHandler builds the HTTP handler for the API server.
func NewHandler(st *store.Store, gen *subprop.Generator, logger *zap.Logger) http.Handler {
	h := &handlers{store: st, gen: gen, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /api/v1/dashboard/summary", h.dashboardSummary)

	mux.HandleFunc("POST /api/v1/landlords", h.createLandlord)
	mux.HandleFunc("GET /api/v1/landlords", h.listLandlords)
	mux.HandleFunc("GET /api/v1/landlords/{id}", h.getLandlord)
	mux.HandleFunc("PUT /api/v1/landlords/{id}", h.updateLandlord)
	mux.HandleFunc("DELETE /api/v1/landlords/{id}", h.deleteLandlord)

	mux.HandleFunc("POST /api/v1/bank-accounts", h.createBankAccount)
	mux.HandleFunc("GET /api/v1/bank-accounts", h.listBankAccounts)
	mux.HandleFunc("GET /api/v1/bank-accounts/{id}", h.getBankAccount)
	mux.HandleFunc("PUT /api/v1/bank-accounts/{id}", h.updateBankAccount)
	mux.HandleFunc("DELETE /api/v1/bank-accounts/{id}", h.deleteBankAccount)

	mux.HandleFunc("POST /api/v1/properties", h.createProperty)
	mux.HandleFunc("GET /api/v1/properties", h.listProperties)
	mux.HandleFunc("GET /api/v1/properties/{id}", h.getProperty)
	mux.HandleFunc("PUT /api/v1/properties/{id}", h.updateProperty)
	mux.HandleFunc("DELETE /api/v1/properties/{id}", h.deleteProperty)
	mux.HandleFunc("POST /api/v1/properties/{id}/subproperties/preview", h.previewSubProperties)
	mux.HandleFunc("POST /api/v1/properties/{id}/subproperties", h.commitSubProperties)

	mux.HandleFunc("POST /api/v1/tenants", h.createTenant)
	mux.HandleFunc("GET /api/v1/tenants", h.listTenants)
	mux.HandleFunc("GET /api/v1/tenants/{id}", h.getTenant)
	mux.HandleFunc("PUT /api/v1/tenants/{id}", h.updateTenant)
	mux.HandleFunc("DELETE /api/v1/tenants/{id}", h.deleteTenant)

	mux.HandleFunc("POST /api/v1/leases", h.createLease)
	mux.HandleFunc("GET /api/v1/leases", h.listLeases)
	mux.HandleFunc("GET /api/v1/leases/{id}", h.getLease)
	mux.HandleFunc("PUT /api/v1/leases/{id}", h.updateLease)
	mux.HandleFunc("DELETE /api/v1/leases/{id}", h.deleteLease)
	mux.HandleFunc("GET /api/v1/leases/{id}/financials", h.leaseFinancials)

	mux.HandleFunc("POST /api/v1/maintenance", h.createMaintenanceItem)
	mux.HandleFunc("GET /api/v1/maintenance", h.listMaintenanceItems)
	mux.HandleFunc("GET /api/v1/maintenance/{id}", h.getMaintenanceItem)
	mux.HandleFunc("PUT /api/v1/maintenance/{id}", h.updateMaintenanceItem)
	mux.HandleFunc("DELETE /api/v1/maintenance/{id}", h.deleteMaintenanceItem)

	mux.HandleFunc("POST /api/v1/invoices", h.createInvoice)
	mux.HandleFunc("GET /api/v1/invoices", h.listInvoices)
	mux.HandleFunc("GET /api/v1/invoices/{id}", h.getInvoice)
	mux.HandleFunc("PUT /api/v1/invoices/{id}", h.updateInvoice)
	mux.HandleFunc("DELETE /api/v1/invoices/{id}", h.deleteInvoice)

	mux.HandleFunc("POST /api/v1/payments", h.createPayment)
	mux.HandleFunc("GET /api/v1/payments", h.listPayments)
	mux.HandleFunc("GET /api/v1/payments/{id}", h.getPayment)
	mux.HandleFunc("PUT /api/v1/payments/{id}", h.updatePayment)
	mux.HandleFunc("DELETE /api/v1/payments/{id}", h.deletePayment)

	return withLogging(logger, withRecovery(logger, mux))
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.store.GetDashboardSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
