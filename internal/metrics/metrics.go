package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credit_ledger_http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "path", "code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "credit_ledger_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "code"})

	LoansCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_ledger_loans_created_total",
		Help: "Loans issued.",
	})

	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credit_ledger_payments_recorded_total",
		Help: "Payments recorded.",
	})

	// ActiveFlagFlips counts persisted active-flag changes, labelled by the
	// new value and by what triggered the change.
	ActiveFlagFlips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credit_ledger_active_flag_flips_total",
		Help: "Loan active flag changes persisted.",
	}, []string{"active", "source"})
)

// RecordFlip counts one active flag change.
func RecordFlip(active bool, source string) {
	ActiveFlagFlips.WithLabelValues(strconv.FormatBool(active), source).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency labelled with the mux route
// template, so /loans/1 and /loans/2 share a series.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		code := strconv.Itoa(rec.status)

		httpRequestsTotal.WithLabelValues(r.Method, path, code).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, code).Observe(time.Since(start).Seconds())
	})
}
