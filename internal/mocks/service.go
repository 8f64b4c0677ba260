package mocks

import (
	"context"
	"time"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) Today() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockCreditService) CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, *domain.Loan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Client), args.Get(1).(*domain.Loan), args.Error(2)
}

func (m *MockCreditService) UpdateClient(ctx context.Context, id int64, req *domain.ClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockCreditService) DeleteClient(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCreditService) ListClients(ctx context.Context, query string) ([]*domain.ClientSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ClientSummary), args.Error(1)
}

func (m *MockCreditService) GetClientDetail(ctx context.Context, id int64, today time.Time) (*domain.ClientDetail, error) {
	args := m.Called(ctx, id, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientDetail), args.Error(1)
}

func (m *MockCreditService) AddNote(ctx context.Context, clientID int64, req *domain.NoteRequest) (*domain.Note, error) {
	args := m.Called(ctx, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}

func (m *MockCreditService) AddLoan(ctx context.Context, clientID int64, req *domain.LoanTermsRequest) (*domain.Loan, error) {
	args := m.Called(ctx, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockCreditService) UpdateLoanTerms(ctx context.Context, loanID int64, req *domain.LoanTermsRequest) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockCreditService) DeleteLoan(ctx context.Context, loanID int64) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockCreditService) AddRecharge(ctx context.Context, loanID int64, amount float64) (*domain.Loan, error) {
	args := m.Called(ctx, loanID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockCreditService) GetLoanStatus(ctx context.Context, loanID int64, today time.Time) (*domain.LoanDetail, error) {
	args := m.Called(ctx, loanID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanDetail), args.Error(1)
}

func (m *MockCreditService) RecordPayment(ctx context.Context, loanID int64, req *domain.PaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockCreditService) UpdatePayment(ctx context.Context, paymentID int64, req *domain.PaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockCreditService) GetReceipt(ctx context.Context, paymentID int64) (*domain.Receipt, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}

func (m *MockCreditService) GetStatement(ctx context.Context, loanID int64) (*domain.Statement, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockCreditService) Dashboard(ctx context.Context) (domain.DashboardTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardTotals), args.Error(1)
}

func (m *MockCreditService) ExportLoans(ctx context.Context) ([]domain.ExportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExportRow), args.Error(1)
}
