package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/internal/service"
	customError "github.com/segyhp/credit-ledger/pkg/errors"
	"github.com/segyhp/credit-ledger/pkg/response"
)

// CreditService is what the HTTP layer needs from the use cases.
type CreditService interface {
	Today() time.Time

	CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, *domain.Loan, error)
	UpdateClient(ctx context.Context, id int64, req *domain.ClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, id int64) error
	ListClients(ctx context.Context, query string) ([]*domain.ClientSummary, error)
	GetClientDetail(ctx context.Context, id int64, today time.Time) (*domain.ClientDetail, error)
	AddNote(ctx context.Context, clientID int64, req *domain.NoteRequest) (*domain.Note, error)

	AddLoan(ctx context.Context, clientID int64, req *domain.LoanTermsRequest) (*domain.Loan, error)
	UpdateLoanTerms(ctx context.Context, loanID int64, req *domain.LoanTermsRequest) (*domain.Loan, error)
	DeleteLoan(ctx context.Context, loanID int64) error
	AddRecharge(ctx context.Context, loanID int64, amount float64) (*domain.Loan, error)
	GetLoanStatus(ctx context.Context, loanID int64, today time.Time) (*domain.LoanDetail, error)

	RecordPayment(ctx context.Context, loanID int64, req *domain.PaymentRequest) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, paymentID int64, req *domain.PaymentRequest) (*domain.Payment, error)
	GetReceipt(ctx context.Context, paymentID int64) (*domain.Receipt, error)
	GetStatement(ctx context.Context, loanID int64) (*domain.Statement, error)

	Dashboard(ctx context.Context) (domain.DashboardTotals, error)
	ExportLoans(ctx context.Context) ([]domain.ExportRow, error)
}

var _ CreditService = (*service.CreditService)(nil)

type CreditHandler struct {
	service   CreditService
	validator *validator.Validate
	logger    *slog.Logger
}

func NewCreditHandler(service CreditService, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{
		service:   service,
		validator: NewValidator(),
		logger:    logger.With("component", "credit_handler"),
	}
}

// NewValidator returns a validator that also understands the frequency tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseFrequency(fl.Field().String())
		return err == nil
	})
	return v
}

// decode reads a JSON body into dst and validates it.
func (h *CreditHandler) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return customError.WrapInvalidRequest(fmt.Errorf("malformed JSON body: %w", err))
	}
	if err := h.validator.Struct(dst); err != nil {
		return customError.WrapInvalidRequest(err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, customError.WrapInvalidRequest(fmt.Errorf("%s must be a positive integer, got %q", name, raw))
	}
	return id, nil
}

var statusByCode = map[string]int{
	customError.ErrCodeClientNotFound:   http.StatusNotFound,
	customError.ErrCodeLoanNotFound:     http.StatusNotFound,
	customError.ErrCodePaymentNotFound:  http.StatusNotFound,
	customError.ErrCodeClientExists:     http.StatusConflict,
	customError.ErrCodeInvalidTermLabel: http.StatusBadRequest,
	customError.ErrCodeInvalidAmount:    http.StatusBadRequest,
	customError.ErrCodeInvalidRequest:   http.StatusBadRequest,
	customError.ErrCodeDatabaseError:    http.StatusInternalServerError,
	customError.ErrCodeCacheError:       http.StatusInternalServerError,
}

// writeError maps a business error to its HTTP status. Internal failures are
// logged and their cause is not echoed to the client.
func (h *CreditHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var be *customError.BusinessError
	if !errors.As(err, &be) {
		h.logger.Error("unexpected error", "requestID", response.RequestID(r.Context()), "error", err)
		response.InternalServerError(w, "internal error", nil)
		return
	}

	status, ok := statusByCode[be.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "requestID", response.RequestID(r.Context()), "code", be.Code, "error", err)
		response.ErrorWithCode(w, status, be.Code, be.Message, nil)
		return
	}

	response.ErrorWithCode(w, status, be.Code, be.Message, be.Err)
}
