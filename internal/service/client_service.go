package service

import (
	"context"
	"strings"
	"time"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/internal/metrics"
	"github.com/segyhp/credit-ledger/internal/repository"
	customError "github.com/segyhp/credit-ledger/pkg/errors"
)

// CreateClient registers a client together with their first loan.
func (s *CreditService) CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, *domain.Loan, error) {
	freq, terms, startDate, err := s.priceLoan(&req.Loan)
	if err != nil {
		return nil, nil, err
	}

	client := &domain.Client{RegisteredAt: s.now().UTC()}
	applyClientRequest(client, &req.ClientRequest)

	var loan *domain.Loan
	err = s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		if err := ensureDNIAvailable(ctx, repos, client.DNI, 0); err != nil {
			return err
		}
		if err := repos.Clients.Create(ctx, client); err != nil {
			return err
		}

		loan = domain.NewLoan(client.ID, req.Loan.Principal, freq, terms, startDate)
		return repos.Loans.Create(ctx, loan)
	})
	if err != nil {
		return nil, nil, dbError(err)
	}

	metrics.LoansCreated.Inc()
	s.invalidateTotals(ctx)
	s.logger.Info("client created", "clientID", client.ID, "loanID", loan.ID, "totalPayable", loan.TotalPayable)

	return client, loan, nil
}

func (s *CreditService) UpdateClient(ctx context.Context, id int64, req *domain.ClientRequest) (*domain.Client, error) {
	var client *domain.Client
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		client, err = getClient(ctx, repos, id)
		if err != nil {
			return err
		}

		applyClientRequest(client, req)
		if err := ensureDNIAvailable(ctx, repos, client.DNI, id); err != nil {
			return err
		}
		return repos.Clients.Update(ctx, client)
	})
	if err != nil {
		return nil, dbError(err)
	}

	s.logger.Info("client updated", "clientID", id)
	return client, nil
}

// DeleteClient removes a client with all their loans, payments and notes.
func (s *CreditService) DeleteClient(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := getClient(ctx, repos, id); err != nil {
			return err
		}
		if err := repos.Payments.DeleteByClient(ctx, id); err != nil {
			return err
		}
		if err := repos.Loans.DeleteByClient(ctx, id); err != nil {
			return err
		}
		if err := repos.Notes.DeleteByClient(ctx, id); err != nil {
			return err
		}
		return repos.Clients.Delete(ctx, id)
	})
	if err != nil {
		return dbError(err)
	}

	s.invalidateTotals(ctx)
	s.logger.Info("client deleted", "clientID", id)
	return nil
}

func (s *CreditService) ListClients(ctx context.Context, query string) ([]*domain.ClientSummary, error) {
	clients, err := s.repos.Clients.List(ctx, query)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return clients, nil
}

// GetClientDetail loads a client with every loan's payments and status as of
// today. Loans whose stored active flag disagrees with the computed status
// are corrected and persisted.
func (s *CreditService) GetClientDetail(ctx context.Context, id int64, today time.Time) (*domain.ClientDetail, error) {
	client, err := getClient(ctx, s.repos, id)
	if err != nil {
		return nil, err
	}

	loans, err := s.repos.Loans.ListByClient(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	detail := &domain.ClientDetail{
		Client: client,
		Loans:  make([]*domain.LoanDetail, 0, len(loans)),
	}

	flipped := false
	for _, loan := range loans {
		payments, err := s.repos.Payments.ListByLoan(ctx, loan.ID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		view := domain.ComputeStatus(loan, domain.SumPayments(payments), today)
		if domain.ReconcileActive(loan, view) {
			if err := s.repos.Loans.UpdateActive(ctx, loan.ID, loan.Active); err != nil {
				return nil, customError.WrapDatabaseError(err)
			}
			metrics.RecordFlip(loan.Active, "client_detail")
			s.logger.Info("loan active flag reconciled", "loanID", loan.ID, "active", loan.Active)
			flipped = true
		}

		detail.Loans = append(detail.Loans, &domain.LoanDetail{
			Loan:     loan,
			Payments: payments,
			Status:   view,
		})
	}
	if flipped {
		s.invalidateTotals(ctx)
	}

	detail.Notes, err = s.repos.Notes.ListByClient(ctx, id)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return detail, nil
}

func (s *CreditService) AddNote(ctx context.Context, clientID int64, req *domain.NoteRequest) (*domain.Note, error) {
	if _, err := getClient(ctx, s.repos, clientID); err != nil {
		return nil, err
	}

	note := &domain.Note{
		ClientID:  clientID,
		Text:      strings.TrimSpace(req.Text),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repos.Notes.Create(ctx, note); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return note, nil
}

func applyClientRequest(client *domain.Client, req *domain.ClientRequest) {
	client.Name = strings.TrimSpace(req.Name)
	client.Address = strings.TrimSpace(req.Address)
	client.Workplace = req.Workplace
	client.Phone = strings.TrimSpace(req.Phone)
	client.DNI = strings.TrimSpace(req.DNI)
}

// ensureDNIAvailable fails when another client than selfID holds dni.
func ensureDNIAvailable(ctx context.Context, repos repository.Repositories, dni string, selfID int64) error {
	existing, err := repos.Clients.GetByDNI(ctx, dni)
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return customError.WrapClientExists(dni)
	}
	return nil
}
