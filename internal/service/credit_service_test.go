package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/credit-ledger/internal/config"
	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/internal/mocks"
	customError "github.com/segyhp/credit-ledger/pkg/errors"
)

var (
	fixedNow  = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	today     = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	loanStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newTestService(t *testing.T) (*CreditService, *mocks.Repositories, *mocks.MockTotalsCache) {
	t.Helper()

	repos := mocks.NewRepositories()
	totals := &mocks.MockTotalsCache{}
	cfg := &config.Config{
		Business: config.BusinessConfig{
			FallbackRatePct:  "0",
			StrictTermLabels: true,
			Timezone:         "UTC",
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewCreditService(repos.Repositories(), repos, totals, cfg, logger)
	svc.now = func() time.Time { return fixedNow }

	t.Cleanup(func() {
		repos.AssertExpectations(t)
		totals.AssertExpectations(t)
	})
	return svc, repos, totals
}

func testLoan(id int64, total float64, active bool) *domain.Loan {
	return &domain.Loan{
		ID:           id,
		ClientID:     1,
		Principal:    total / 2,
		Factor:       2,
		TotalPayable: total,
		TermLength:   10,
		Frequency:    domain.FrequencyWeekly,
		Installment:  total / 10,
		StartDate:    loanStart,
		Active:       active,
	}
}

func testClient() *domain.Client {
	return &domain.Client{ID: 1, Name: "Ana Pérez", Address: "Calle 123", Phone: "555", DNI: "30111222"}
}

func TestToday_UsesBusinessDate(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.Equal(t, today, svc.Today())
}

func TestCreateClient_Success(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	repos.Clients.On("GetByDNI", ctx, "30111222").Return(nil, sql.ErrNoRows)
	repos.Clients.On("Create", ctx, mock.AnythingOfType("*domain.Client")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Client).ID = 7 }).
		Return(nil)
	repos.Loans.On("Create", ctx, mock.MatchedBy(func(loan *domain.Loan) bool {
		return loan.ClientID == 7 && loan.Active && loan.StartDate.Equal(today)
	})).Run(func(args mock.Arguments) { args.Get(1).(*domain.Loan).ID = 3 }).Return(nil)
	totals.On("Invalidate", ctx).Return(nil)

	req := &domain.CreateClientRequest{
		ClientRequest: domain.ClientRequest{Name: " Ana Pérez ", Address: "Calle 123", Phone: "555", DNI: "30111222"},
		Loan:          domain.LoanTermsRequest{Principal: 11, Frequency: "weekly", TermLabel: "11"},
	}

	client, loan, err := svc.CreateClient(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, int64(7), client.ID)
	assert.Equal(t, "Ana Pérez", client.Name)
	assert.Equal(t, int64(3), loan.ID)
	assert.Equal(t, 1.92, loan.Factor)
	assert.InDelta(t, 21.12, loan.TotalPayable, 1e-9)
	assert.InDelta(t, 1.92, loan.Installment, 1e-9)
}

func TestCreateClient_DuplicateDNI(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Clients.On("GetByDNI", ctx, "30111222").Return(&domain.Client{ID: 2, DNI: "30111222"}, nil)

	req := &domain.CreateClientRequest{
		ClientRequest: domain.ClientRequest{Name: "Ana", Address: "x", Phone: "1", DNI: "30111222"},
		Loan:          domain.LoanTermsRequest{Principal: 1000, Frequency: "weekly", TermLabel: "11"},
	}

	_, _, err := svc.CreateClient(ctx, req)

	require.Error(t, err)
	assert.Equal(t, customError.ErrCodeClientExists, customError.CodeOf(err))
	assert.True(t, errors.Is(err, customError.ErrClientExists))
}

func TestCreateClient_StrictTermLabelRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := &domain.CreateClientRequest{
		ClientRequest: domain.ClientRequest{Name: "Ana", Address: "x", Phone: "1", DNI: "1"},
		Loan:          domain.LoanTermsRequest{Principal: 1000, Frequency: "weekly", TermLabel: "abc"},
	}

	_, _, err := svc.CreateClient(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, customError.ErrCodeInvalidTermLabel, customError.CodeOf(err))
	assert.True(t, errors.Is(err, domain.ErrInvalidTermLabel))
}

func TestAddLoan_LenientPolicyAndRequestRate(t *testing.T) {
	svc, repos, totals := newTestService(t)
	svc.config.Business.StrictTermLabels = false
	ctx := context.Background()

	rate := 20.0
	repos.Clients.On("GetByID", ctx, int64(1)).Return(testClient(), nil)
	repos.Loans.On("Create", ctx, mock.AnythingOfType("*domain.Loan")).Return(nil)
	totals.On("Invalidate", ctx).Return(nil)

	loan, err := svc.AddLoan(ctx, 1, &domain.LoanTermsRequest{
		Principal:       1000,
		Frequency:       "Mensual",
		TermLabel:       "abc",
		FallbackRatePct: &rate,
		StartDate:       "2024-02-15",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyMonthly, loan.Frequency)
	assert.InDelta(t, 1200, loan.TotalPayable, 1e-9)
	assert.Equal(t, 1.0, loan.TermLength)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), loan.StartDate)
}

func TestAddLoan_ClientNotFound(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Clients.On("GetByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

	_, err := svc.AddLoan(ctx, 9, &domain.LoanTermsRequest{Principal: 1000, Frequency: "weekly", TermLabel: "11"})

	assert.Equal(t, customError.ErrCodeClientNotFound, customError.CodeOf(err))
}

func TestGetClientDetail_ReconcilesStaleFlags(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	settled := testLoan(10, 1000, true)
	running := testLoan(11, 1000, true)
	stale := testLoan(12, 1000, false)

	repos.Clients.On("GetByID", ctx, int64(1)).Return(testClient(), nil)
	repos.Loans.On("ListByClient", ctx, int64(1)).Return([]*domain.Loan{stale, running, settled}, nil)
	repos.Payments.On("ListByLoan", ctx, int64(12)).Return([]*domain.Payment{}, nil)
	repos.Payments.On("ListByLoan", ctx, int64(11)).Return([]*domain.Payment{
		{ID: 1, LoanID: 11, Amount: 100, PaidOn: loanStart.AddDate(0, 0, 7)},
	}, nil)
	repos.Payments.On("ListByLoan", ctx, int64(10)).Return([]*domain.Payment{
		{ID: 3, LoanID: 10, Amount: 499.95, PaidOn: loanStart.AddDate(0, 0, 14)},
		{ID: 2, LoanID: 10, Amount: 500, PaidOn: loanStart.AddDate(0, 0, 7)},
	}, nil)
	repos.Loans.On("UpdateActive", ctx, int64(12), true).Return(nil).Once()
	repos.Loans.On("UpdateActive", ctx, int64(10), false).Return(nil).Once()
	repos.Notes.On("ListByClient", ctx, int64(1)).Return([]*domain.Note{{ID: 1, Text: "called"}}, nil)
	totals.On("Invalidate", ctx).Return(nil).Once()

	detail, err := svc.GetClientDetail(ctx, 1, today)

	require.NoError(t, err)
	require.Len(t, detail.Loans, 3)
	assert.True(t, detail.Loans[0].Loan.Active)
	assert.Equal(t, domain.LoanStatusActive, detail.Loans[0].Status.Status)
	assert.Equal(t, domain.LoanStatusActive, detail.Loans[1].Status.Status)
	assert.False(t, detail.Loans[2].Loan.Active)
	assert.Equal(t, domain.LoanStatusFinished, detail.Loans[2].Status.Status)
	assert.Zero(t, detail.Loans[2].Status.Remaining)
	assert.Len(t, detail.Notes, 1)
	repos.Loans.AssertNotCalled(t, "UpdateActive", ctx, int64(11), mock.Anything)
}

func TestGetClientDetail_NoFlipNoInvalidate(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Clients.On("GetByID", ctx, int64(1)).Return(testClient(), nil)
	repos.Loans.On("ListByClient", ctx, int64(1)).Return([]*domain.Loan{testLoan(11, 1000, true)}, nil)
	repos.Payments.On("ListByLoan", ctx, int64(11)).Return([]*domain.Payment{}, nil)
	repos.Notes.On("ListByClient", ctx, int64(1)).Return([]*domain.Note{}, nil)

	detail, err := svc.GetClientDetail(ctx, 1, today)

	require.NoError(t, err)
	assert.Len(t, detail.Loans, 1)
}

func TestGetClientDetail_NotFound(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Clients.On("GetByID", ctx, int64(5)).Return(nil, sql.ErrNoRows)

	_, err := svc.GetClientDetail(ctx, 5, today)

	assert.Equal(t, customError.ErrCodeClientNotFound, customError.CodeOf(err))
	assert.True(t, errors.Is(err, customError.ErrClientNotFound))
}

func TestUpdateClient_DNITakenByAnother(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Clients.On("GetByID", ctx, int64(1)).Return(testClient(), nil)
	repos.Clients.On("GetByDNI", ctx, "999").Return(&domain.Client{ID: 2, DNI: "999"}, nil)

	_, err := svc.UpdateClient(ctx, 1, &domain.ClientRequest{Name: "Ana", Address: "x", Phone: "1", DNI: "999"})

	assert.Equal(t, customError.ErrCodeClientExists, customError.CodeOf(err))
}

func TestUpdateClient_KeepsOwnDNI(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Clients.On("GetByID", ctx, int64(1)).Return(testClient(), nil)
	repos.Clients.On("GetByDNI", ctx, "30111222").Return(testClient(), nil)
	repos.Clients.On("Update", ctx, mock.MatchedBy(func(c *domain.Client) bool {
		return c.ID == 1 && c.Address == "Nueva 456"
	})).Return(nil)

	client, err := svc.UpdateClient(ctx, 1, &domain.ClientRequest{Name: "Ana Pérez", Address: "Nueva 456", Phone: "555", DNI: "30111222"})

	require.NoError(t, err)
	assert.Equal(t, "Nueva 456", client.Address)
}

func TestDeleteClient_Cascades(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	repos.Clients.On("GetByID", ctx, int64(1)).Return(testClient(), nil)
	repos.Payments.On("DeleteByClient", ctx, int64(1)).Return(nil)
	repos.Loans.On("DeleteByClient", ctx, int64(1)).Return(nil)
	repos.Notes.On("DeleteByClient", ctx, int64(1)).Return(nil)
	repos.Clients.On("Delete", ctx, int64(1)).Return(nil)
	totals.On("Invalidate", ctx).Return(nil)

	assert.NoError(t, svc.DeleteClient(ctx, 1))
}

func TestDeleteClient_DatabaseError(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Clients.On("GetByID", ctx, int64(1)).Return(testClient(), nil)
	repos.Payments.On("DeleteByClient", ctx, int64(1)).Return(errors.New("disk full"))

	err := svc.DeleteClient(ctx, 1)

	assert.Equal(t, customError.ErrCodeDatabaseError, customError.CodeOf(err))
	assert.True(t, errors.Is(err, customError.ErrDatabase))
}

func TestUpdateLoanTerms_ReactivatesAgainstExistingPayments(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	loan := testLoan(10, 1000, false)
	loan.Recharges = 50

	repos.Loans.On("GetByID", ctx, int64(10)).Return(loan, nil)
	repos.Payments.On("TotalByLoan", ctx, int64(10)).Return(1050.0, nil)
	repos.Loans.On("Update", ctx, mock.MatchedBy(func(l *domain.Loan) bool {
		return l.Active && l.Recharges == 50 && l.Principal == 1000
	})).Return(nil)
	totals.On("Invalidate", ctx).Return(nil)

	updated, err := svc.UpdateLoanTerms(ctx, 10, &domain.LoanTermsRequest{Principal: 1000, Frequency: "weekly", TermLabel: "11"})

	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.InDelta(t, 1920, updated.TotalPayable, 1e-9)
	assert.Equal(t, loanStart, updated.StartDate)
}

func TestUpdateLoanTerms_NotFound(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Loans.On("GetByID", ctx, int64(10)).Return(nil, sql.ErrNoRows)

	_, err := svc.UpdateLoanTerms(ctx, 10, &domain.LoanTermsRequest{Principal: 1000, Frequency: "weekly", TermLabel: "11"})

	assert.Equal(t, customError.ErrCodeLoanNotFound, customError.CodeOf(err))
}

func TestDeleteLoan_CascadesPayments(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	repos.Loans.On("GetByID", ctx, int64(10)).Return(testLoan(10, 1000, true), nil)
	repos.Payments.On("DeleteByLoan", ctx, int64(10)).Return(nil)
	repos.Loans.On("Delete", ctx, int64(10)).Return(nil)
	totals.On("Invalidate", ctx).Return(nil)

	assert.NoError(t, svc.DeleteLoan(ctx, 10))
}

func TestAddRecharge(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	loan := testLoan(10, 1000, false)
	repos.Loans.On("GetByID", ctx, int64(10)).Return(loan, nil)
	repos.Loans.On("Update", ctx, loan).Return(nil)
	totals.On("Invalidate", ctx).Return(nil)

	updated, err := svc.AddRecharge(ctx, 10, 75)

	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.Recharges)
	assert.Equal(t, 1075.0, updated.FinalTotal())
	assert.False(t, updated.Active)
}

func TestAddRecharge_InvalidAmount(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Loans.On("GetByID", ctx, int64(10)).Return(testLoan(10, 1000, true), nil)

	_, err := svc.AddRecharge(ctx, 10, -5)

	assert.Equal(t, customError.ErrCodeInvalidAmount, customError.CodeOf(err))
	repos.Loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetLoanStatus_DoesNotPersist(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	loan := testLoan(10, 1000, true)
	repos.Loans.On("GetByID", ctx, int64(10)).Return(loan, nil)
	repos.Payments.On("ListByLoan", ctx, int64(10)).Return([]*domain.Payment{
		{ID: 1, LoanID: 10, Amount: 1000, PaidOn: loanStart},
	}, nil)

	detail, err := svc.GetLoanStatus(ctx, 10, today)

	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusFinished, detail.Status.Status)
	assert.True(t, detail.Loan.Active)
	repos.Loans.AssertNotCalled(t, "UpdateActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordPayment_Success(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	note := "efectivo"
	repos.Loans.On("GetByID", ctx, int64(10)).Return(testLoan(10, 1000, true), nil)
	repos.Payments.On("Create", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.LoanID == 10 && p.Amount == 100 && p.PaidOn.Equal(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))
	})).Run(func(args mock.Arguments) { args.Get(1).(*domain.Payment).ID = 42 }).Return(nil)
	totals.On("Invalidate", ctx).Return(nil)

	payment, err := svc.RecordPayment(ctx, 10, &domain.PaymentRequest{Amount: 100, Date: "2024-01-08", Note: &note})

	require.NoError(t, err)
	assert.Equal(t, int64(42), payment.ID)
	assert.Equal(t, "efectivo", *payment.Note)
}

func TestRecordPayment_LoanNotFound(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Loans.On("GetByID", ctx, int64(10)).Return(nil, sql.ErrNoRows)

	_, err := svc.RecordPayment(ctx, 10, &domain.PaymentRequest{Amount: 100, Date: "2024-01-08"})

	assert.Equal(t, customError.ErrCodeLoanNotFound, customError.CodeOf(err))
}

func TestRecordPayment_BadDate(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.RecordPayment(context.Background(), 10, &domain.PaymentRequest{Amount: 100, Date: "08/01/2024"})

	assert.Equal(t, customError.ErrCodeInvalidRequest, customError.CodeOf(err))
}

func TestUpdatePayment_FinishesLoanWithinTolerance(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	payment := &domain.Payment{ID: 5, LoanID: 10, Amount: 900, PaidOn: loanStart}
	repos.Payments.On("GetByID", ctx, int64(5)).Return(payment, nil)
	repos.Payments.On("Update", ctx, payment).Return(nil)
	repos.Loans.On("GetByID", ctx, int64(10)).Return(testLoan(10, 1000, true), nil)
	repos.Payments.On("TotalByLoan", ctx, int64(10)).Return(999.95, nil)
	repos.Loans.On("UpdateActive", ctx, int64(10), false).Return(nil)
	totals.On("Invalidate", ctx).Return(nil)

	updated, err := svc.UpdatePayment(ctx, 5, &domain.PaymentRequest{Amount: 999.95, Date: "2024-01-02"})

	require.NoError(t, err)
	assert.Equal(t, 999.95, updated.Amount)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), updated.PaidOn)
}

func TestUpdatePayment_NoFlip(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	payment := &domain.Payment{ID: 5, LoanID: 10, Amount: 100, PaidOn: loanStart}
	repos.Payments.On("GetByID", ctx, int64(5)).Return(payment, nil)
	repos.Payments.On("Update", ctx, payment).Return(nil)
	repos.Loans.On("GetByID", ctx, int64(10)).Return(testLoan(10, 1000, true), nil)
	repos.Payments.On("TotalByLoan", ctx, int64(10)).Return(150.0, nil)
	totals.On("Invalidate", ctx).Return(nil)

	_, err := svc.UpdatePayment(ctx, 5, &domain.PaymentRequest{Amount: 150, Date: "2024-01-02"})

	require.NoError(t, err)
	repos.Loans.AssertNotCalled(t, "UpdateActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePayment_NotFound(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Payments.On("GetByID", ctx, int64(5)).Return(nil, sql.ErrNoRows)

	_, err := svc.UpdatePayment(ctx, 5, &domain.PaymentRequest{Amount: 150, Date: "2024-01-02"})

	assert.Equal(t, customError.ErrCodePaymentNotFound, customError.CodeOf(err))
	assert.True(t, errors.Is(err, customError.ErrPaymentNotFound))
}

func TestGetReceipt(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Payments.On("GetByID", ctx, int64(5)).Return(&domain.Payment{ID: 5, LoanID: 10, Amount: 120, PaidOn: loanStart}, nil)
	repos.Loans.On("GetByID", ctx, int64(10)).Return(testLoan(10, 1000, true), nil)
	repos.Clients.On("GetByID", ctx, int64(1)).Return(testClient(), nil)

	receipt, err := svc.GetReceipt(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), receipt.Number)
	assert.Equal(t, "Ana Pérez", receipt.ClientName)
	assert.Equal(t, 120.0, receipt.Amount)
}

func TestGetStatement_OldestFirst(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Loans.On("GetByID", ctx, int64(10)).Return(testLoan(10, 1000, true), nil)
	repos.Clients.On("GetByID", ctx, int64(1)).Return(testClient(), nil)
	repos.Payments.On("ListByLoan", ctx, int64(10)).Return([]*domain.Payment{
		{ID: 2, LoanID: 10, Amount: 300, PaidOn: loanStart.AddDate(0, 0, 14)},
		{ID: 1, LoanID: 10, Amount: 100, PaidOn: loanStart.AddDate(0, 0, 7)},
	}, nil)

	statement, err := svc.GetStatement(ctx, 10)

	require.NoError(t, err)
	require.Len(t, statement.Lines, 2)
	assert.Equal(t, int64(1), statement.Lines[0].PaymentID)
	assert.Equal(t, 900.0, statement.Lines[0].Balance)
	assert.Equal(t, 600.0, statement.Lines[1].Balance)
	assert.Equal(t, 600.0, statement.Balance)
}

func TestAddNote(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Clients.On("GetByID", ctx, int64(1)).Return(testClient(), nil)
	repos.Notes.On("Create", ctx, mock.MatchedBy(func(n *domain.Note) bool {
		return n.ClientID == 1 && n.Text == "visit on friday" && n.CreatedAt.Equal(fixedNow)
	})).Return(nil)

	note, err := svc.AddNote(ctx, 1, &domain.NoteRequest{Text: "  visit on friday "})

	require.NoError(t, err)
	assert.Equal(t, "visit on friday", note.Text)
}

func TestDashboard_CacheHit(t *testing.T) {
	svc, _, totals := newTestService(t)
	ctx := context.Background()

	cached := domain.DashboardTotals{Clients: 4, TotalLent: 100}
	totals.On("Get", ctx).Return(cached, true, nil)

	got, err := svc.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, got)
}

func TestDashboard_CacheMissRecomputes(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	totals.On("Get", ctx).Return(domain.DashboardTotals{}, false, nil)
	repos.Clients.On("Count", ctx).Return(int64(2), nil)
	repos.Loans.On("Sums", ctx).Return(domain.LoanSums{Principal: 1500, TotalPayable: 2880, Recharges: 25}, nil)
	repos.Payments.On("Total", ctx).Return(400.5, nil)

	expected := domain.DashboardTotals{Clients: 2, TotalLent: 1500, TotalCollected: 400.5, TotalReceivable: 2504.5}
	totals.On("Set", ctx, expected).Return(nil)

	got, err := svc.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestDashboard_CacheErrorFallsBack(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	totals.On("Get", ctx).Return(domain.DashboardTotals{}, false, errors.New("connection refused"))
	repos.Clients.On("Count", ctx).Return(int64(0), nil)
	repos.Loans.On("Sums", ctx).Return(domain.LoanSums{}, nil)
	repos.Payments.On("Total", ctx).Return(0.0, nil)
	totals.On("Set", ctx, domain.DashboardTotals{}).Return(errors.New("connection refused"))

	got, err := svc.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.DashboardTotals{}, got)
}

func TestExportLoans(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Loans.On("ListAll", ctx).Return([]*domain.Loan{testLoan(10, 1000, true), testLoan(11, 500, false)}, nil)
	repos.Payments.On("TotalsByLoan", ctx).Return(map[int64]float64{10: 200}, nil)
	repos.Clients.On("List", ctx, "").Return([]*domain.ClientSummary{{Client: *testClient()}}, nil)

	rows, err := svc.ExportLoans(ctx)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana Pérez", rows[0].ClientName)
	assert.Equal(t, 200.0, rows[0].Paid)
	assert.Equal(t, 2.0, rows[0].WeeksPaid)
	assert.Zero(t, rows[1].Paid)
	assert.False(t, rows[1].Active)
}

func TestReconcileAll(t *testing.T) {
	svc, repos, totals := newTestService(t)
	ctx := context.Background()

	repos.Loans.On("ListAll", ctx).Return([]*domain.Loan{
		testLoan(10, 1000, true),
		testLoan(11, 1000, false),
		testLoan(12, 1000, true),
	}, nil)
	repos.Payments.On("TotalsByLoan", ctx).Return(map[int64]float64{10: 1000, 12: 300}, nil)
	repos.Loans.On("UpdateActive", ctx, int64(10), false).Return(nil)
	repos.Loans.On("UpdateActive", ctx, int64(11), true).Return(nil)
	totals.On("Invalidate", ctx).Return(nil)

	result, err := svc.ReconcileAll(ctx, today)

	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Checked: 3, Activated: 1, Deactivated: 1}, result)
}

func TestReconcileAll_Idempotent(t *testing.T) {
	svc, repos, _ := newTestService(t)
	ctx := context.Background()

	repos.Loans.On("ListAll", ctx).Return([]*domain.Loan{testLoan(10, 1000, false)}, nil)
	repos.Payments.On("TotalsByLoan", ctx).Return(map[int64]float64{10: 1000}, nil)

	result, err := svc.ReconcileAll(ctx, today)

	require.NoError(t, err)
	assert.Equal(t, ReconcileResult{Checked: 1}, result)
}
