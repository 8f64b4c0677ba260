package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/segyhp/credit-ledger/internal/metrics"
	"github.com/segyhp/credit-ledger/pkg/response"
)

// NewRouter wires every route of the HTTP API.
func NewRouter(credit *CreditHandler, health *HealthHandler, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Use(response.CORSMiddleware)
	router.Use(response.LoggingMiddleware(logger))
	router.Use(metrics.Middleware)

	router.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", health.Ready).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/dashboard", credit.Dashboard).Methods(http.MethodGet)
	api.HandleFunc("/plans", credit.Plans).Methods(http.MethodGet)
	api.HandleFunc("/reports/loans", credit.ExportLoans).Methods(http.MethodGet)

	api.HandleFunc("/clients", credit.ListClients).Methods(http.MethodGet)
	api.HandleFunc("/clients", credit.CreateClient).Methods(http.MethodPost)
	api.HandleFunc("/clients/{clientId}", credit.GetClient).Methods(http.MethodGet)
	api.HandleFunc("/clients/{clientId}", credit.UpdateClient).Methods(http.MethodPut)
	api.HandleFunc("/clients/{clientId}", credit.DeleteClient).Methods(http.MethodDelete)
	api.HandleFunc("/clients/{clientId}/notes", credit.AddNote).Methods(http.MethodPost)
	api.HandleFunc("/clients/{clientId}/loans", credit.AddLoan).Methods(http.MethodPost)

	api.HandleFunc("/loans/{loanId}", credit.GetLoan).Methods(http.MethodGet)
	api.HandleFunc("/loans/{loanId}", credit.UpdateLoan).Methods(http.MethodPut)
	api.HandleFunc("/loans/{loanId}", credit.DeleteLoan).Methods(http.MethodDelete)
	api.HandleFunc("/loans/{loanId}/recharges", credit.AddRecharge).Methods(http.MethodPost)
	api.HandleFunc("/loans/{loanId}/payments", credit.RecordPayment).Methods(http.MethodPost)
	api.HandleFunc("/loans/{loanId}/statement", credit.GetStatement).Methods(http.MethodGet)

	api.HandleFunc("/payments/{paymentId}", credit.UpdatePayment).Methods(http.MethodPut)
	api.HandleFunc("/payments/{paymentId}/receipt", credit.GetReceipt).Methods(http.MethodGet)

	// Preflight requests only need the CORS headers.
	router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	return router
}
