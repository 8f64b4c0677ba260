package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/segyhp/credit-ledger/internal/cache"
	"github.com/segyhp/credit-ledger/internal/config"
	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/internal/repository"
	customError "github.com/segyhp/credit-ledger/pkg/errors"
	"github.com/segyhp/credit-ledger/pkg/utils"
)

const dateLayout = "2006-01-02"

type CreditService struct {
	repos  repository.Repositories
	tx     repository.TxRunner
	totals cache.TotalsCache
	config *config.Config
	logger *slog.Logger
	now    func() time.Time
}

func NewCreditService(
	repos repository.Repositories,
	tx repository.TxRunner,
	totals cache.TotalsCache,
	config *config.Config,
	logger *slog.Logger,
) *CreditService {
	if totals == nil {
		totals = cache.Noop{}
	}
	return &CreditService{
		repos:  repos,
		tx:     tx,
		totals: totals,
		config: config,
		logger: logger.With("component", "credit_service"),
		now:    time.Now,
	}
}

// Today is the current calendar date in the business timezone.
func (s *CreditService) Today() time.Time {
	return utils.DateOf(s.now().In(s.config.GetLocation()))
}

func (s *CreditService) termPolicy() domain.TermPolicy {
	if s.config.Business.StrictTermLabels {
		return domain.TermPolicyStrict
	}
	return domain.TermPolicyLenient
}

// priceLoan turns a terms request into frequency, terms and start date.
// An empty start date means today.
func (s *CreditService) priceLoan(req *domain.LoanTermsRequest) (domain.Frequency, domain.Terms, time.Time, error) {
	freq, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		return "", domain.Terms{}, time.Time{}, customError.WrapInvalidRequest(err)
	}

	startDate := s.Today()
	if req.StartDate != "" {
		startDate, err = parseDate(req.StartDate)
		if err != nil {
			return "", domain.Terms{}, time.Time{}, err
		}
	}

	rate := s.config.GetFallbackRatePct()
	if req.FallbackRatePct != nil {
		rate = *req.FallbackRatePct
	}

	terms, err := domain.ComputeTerms(req.Principal, freq, req.TermLabel, rate, s.termPolicy())
	if err != nil {
		return "", domain.Terms{}, time.Time{}, domainError(err)
	}
	return freq, terms, startDate, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, customError.WrapInvalidRequest(err)
	}
	return utils.DateOf(t), nil
}

// domainError maps domain sentinel errors to business errors.
func domainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTermLabel):
		return customError.WrapInvalidTermLabel(err)
	case errors.Is(err, domain.ErrInvalidAmount):
		return customError.WrapInvalidAmount(err)
	case errors.Is(err, domain.ErrInvalidFrequency):
		return customError.WrapInvalidRequest(err)
	default:
		return err
	}
}

// dbError wraps storage failures, passing business errors raised inside a
// transaction through untouched.
func dbError(err error) error {
	var be *customError.BusinessError
	if errors.As(err, &be) {
		return err
	}
	return customError.WrapDatabaseError(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func getClient(ctx context.Context, repos repository.Repositories, id int64) (*domain.Client, error) {
	client, err := repos.Clients.GetByID(ctx, id)
	if isNotFound(err) {
		return nil, customError.WrapClientNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return client, nil
}

func getLoan(ctx context.Context, repos repository.Repositories, id int64) (*domain.Loan, error) {
	loan, err := repos.Loans.GetByID(ctx, id)
	if isNotFound(err) {
		return nil, customError.WrapLoanNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loan, nil
}

func getPayment(ctx context.Context, repos repository.Repositories, id int64) (*domain.Payment, error) {
	payment, err := repos.Payments.GetByID(ctx, id)
	if isNotFound(err) {
		return nil, customError.WrapPaymentNotFound(id)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payment, nil
}

// invalidateTotals drops the cached dashboard totals. A cache failure is
// logged but never fails the write that triggered it.
func (s *CreditService) invalidateTotals(ctx context.Context) {
	if err := s.totals.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate dashboard totals", "error", customError.WrapCacheError(err))
	}
}
