package service

import (
	"context"
	"time"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/internal/metrics"
	"github.com/segyhp/credit-ledger/internal/repository"
	customError "github.com/segyhp/credit-ledger/pkg/errors"
)

// AddLoan issues an additional loan to an existing client.
func (s *CreditService) AddLoan(ctx context.Context, clientID int64, req *domain.LoanTermsRequest) (*domain.Loan, error) {
	freq, terms, startDate, err := s.priceLoan(req)
	if err != nil {
		return nil, err
	}

	if _, err := getClient(ctx, s.repos, clientID); err != nil {
		return nil, err
	}

	loan := domain.NewLoan(clientID, req.Principal, freq, terms, startDate)
	if err := s.repos.Loans.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	metrics.LoansCreated.Inc()
	s.invalidateTotals(ctx)
	s.logger.Info("loan created", "clientID", clientID, "loanID", loan.ID, "totalPayable", loan.TotalPayable)

	return loan, nil
}

// UpdateLoanTerms reprices a loan from scratch and re-derives its active flag
// against the payments already recorded. Recharges are kept.
func (s *CreditService) UpdateLoanTerms(ctx context.Context, loanID int64, req *domain.LoanTermsRequest) (*domain.Loan, error) {
	freq, terms, startDate, err := s.priceLoan(req)
	if err != nil {
		return nil, err
	}

	var (
		loan    *domain.Loan
		flipped bool
	)
	err = s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		loan, err = getLoan(ctx, repos, loanID)
		if err != nil {
			return err
		}

		loan.ApplyTerms(req.Principal, freq, terms)
		if req.StartDate != "" {
			loan.StartDate = startDate
		}

		paid, err := repos.Payments.TotalByLoan(ctx, loanID)
		if err != nil {
			return err
		}
		active := domain.ShouldBeActive(loan.FinalTotal(), paid)
		flipped = active != loan.Active
		loan.Active = active

		return repos.Loans.Update(ctx, loan)
	})
	if err != nil {
		return nil, dbError(err)
	}

	if flipped {
		metrics.RecordFlip(loan.Active, "loan_edit")
	}
	s.invalidateTotals(ctx)
	s.logger.Info("loan terms updated", "loanID", loanID, "totalPayable", loan.TotalPayable, "active", loan.Active)

	return loan, nil
}

// DeleteLoan removes a loan and its payments.
func (s *CreditService) DeleteLoan(ctx context.Context, loanID int64) error {
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := getLoan(ctx, repos, loanID); err != nil {
			return err
		}
		if err := repos.Payments.DeleteByLoan(ctx, loanID); err != nil {
			return err
		}
		return repos.Loans.Delete(ctx, loanID)
	})
	if err != nil {
		return dbError(err)
	}

	s.invalidateTotals(ctx)
	s.logger.Info("loan deleted", "loanID", loanID)
	return nil
}

// AddRecharge adds a penalty to a loan. The active flag is left for the next
// status read to reconcile.
func (s *CreditService) AddRecharge(ctx context.Context, loanID int64, amount float64) (*domain.Loan, error) {
	var loan *domain.Loan
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		loan, err = getLoan(ctx, repos, loanID)
		if err != nil {
			return err
		}
		if err := loan.AddRecharge(amount); err != nil {
			return domainError(err)
		}
		return repos.Loans.Update(ctx, loan)
	})
	if err != nil {
		return nil, dbError(err)
	}

	s.invalidateTotals(ctx)
	s.logger.Info("recharge added", "loanID", loanID, "amount", amount, "recharges", loan.Recharges)

	return loan, nil
}

// GetLoanStatus computes a loan's status without persisting anything.
func (s *CreditService) GetLoanStatus(ctx context.Context, loanID int64, today time.Time) (*domain.LoanDetail, error) {
	loan, err := getLoan(ctx, s.repos, loanID)
	if err != nil {
		return nil, err
	}

	payments, err := s.repos.Payments.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.LoanDetail{
		Loan:     loan,
		Payments: payments,
		Status:   domain.ComputeStatus(loan, domain.SumPayments(payments), today),
	}, nil
}
