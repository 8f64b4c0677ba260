package service

import (
	"context"
	"slices"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/internal/metrics"
	"github.com/segyhp/credit-ledger/internal/repository"
	customError "github.com/segyhp/credit-ledger/pkg/errors"
)

// RecordPayment stores a payment against a loan.
func (s *CreditService) RecordPayment(ctx context.Context, loanID int64, req *domain.PaymentRequest) (*domain.Payment, error) {
	paidOn, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		LoanID: loanID,
		Amount: req.Amount,
		PaidOn: paidOn,
		Note:   req.Note,
	}
	if err := payment.Validate(); err != nil {
		return nil, domainError(err)
	}

	if _, err := getLoan(ctx, s.repos, loanID); err != nil {
		return nil, err
	}
	if err := s.repos.Payments.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	metrics.PaymentsRecorded.Inc()
	s.invalidateTotals(ctx)
	s.logger.Info("payment recorded", "loanID", loanID, "paymentID", payment.ID, "amount", payment.Amount)

	return payment, nil
}

// UpdatePayment edits a payment and re-derives the parent loan's active flag
// from the new paid sum.
func (s *CreditService) UpdatePayment(ctx context.Context, paymentID int64, req *domain.PaymentRequest) (*domain.Payment, error) {
	paidOn, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	var (
		payment *domain.Payment
		loan    *domain.Loan
		flipped bool
	)
	err = s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		payment, err = getPayment(ctx, repos, paymentID)
		if err != nil {
			return err
		}

		payment.Amount = req.Amount
		payment.PaidOn = paidOn
		payment.Note = req.Note
		if err := payment.Validate(); err != nil {
			return domainError(err)
		}
		if err := repos.Payments.Update(ctx, payment); err != nil {
			return err
		}

		loan, err = getLoan(ctx, repos, payment.LoanID)
		if err != nil {
			return err
		}
		paid, err := repos.Payments.TotalByLoan(ctx, loan.ID)
		if err != nil {
			return err
		}

		active := domain.ShouldBeActive(loan.FinalTotal(), paid)
		if active == loan.Active {
			return nil
		}
		flipped = true
		loan.Active = active
		return repos.Loans.UpdateActive(ctx, loan.ID, active)
	})
	if err != nil {
		return nil, dbError(err)
	}

	if flipped {
		metrics.RecordFlip(loan.Active, "payment_edit")
	}
	s.invalidateTotals(ctx)
	s.logger.Info("payment updated", "paymentID", paymentID, "loanID", payment.LoanID, "active", loan.Active)

	return payment, nil
}

func (s *CreditService) GetReceipt(ctx context.Context, paymentID int64) (*domain.Receipt, error) {
	payment, err := getPayment(ctx, s.repos, paymentID)
	if err != nil {
		return nil, err
	}
	loan, err := getLoan(ctx, s.repos, payment.LoanID)
	if err != nil {
		return nil, err
	}
	client, err := getClient(ctx, s.repos, loan.ClientID)
	if err != nil {
		return nil, err
	}

	receipt := domain.BuildReceipt(client, payment)
	return &receipt, nil
}

// GetStatement lists a loan's payments oldest first with running balances.
func (s *CreditService) GetStatement(ctx context.Context, loanID int64) (*domain.Statement, error) {
	loan, err := getLoan(ctx, s.repos, loanID)
	if err != nil {
		return nil, err
	}
	client, err := getClient(ctx, s.repos, loan.ClientID)
	if err != nil {
		return nil, err
	}

	payments, err := s.repos.Payments.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	slices.Reverse(payments)

	statement := domain.BuildStatement(client, loan, payments)
	return &statement, nil
}
