package service

import (
	"context"
	"time"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/internal/metrics"
	customError "github.com/segyhp/credit-ledger/pkg/errors"
)

// ReconcileResult summarises a ReconcileAll sweep.
type ReconcileResult struct {
	Checked     int `json:"checked"`
	Activated   int `json:"activated"`
	Deactivated int `json:"deactivated"`
}

// Dashboard returns the office-wide totals, from cache when available.
func (s *CreditService) Dashboard(ctx context.Context) (domain.DashboardTotals, error) {
	totals, ok, err := s.totals.Get(ctx)
	if err != nil {
		s.logger.Warn("failed to read cached dashboard totals", "error", customError.WrapCacheError(err))
	}
	if ok {
		return totals, nil
	}

	return s.RefreshTotals(ctx)
}

// RefreshTotals recomputes the dashboard totals from storage and caches them.
func (s *CreditService) RefreshTotals(ctx context.Context) (domain.DashboardTotals, error) {
	clients, err := s.repos.Clients.Count(ctx)
	if err != nil {
		return domain.DashboardTotals{}, customError.WrapDatabaseError(err)
	}
	sums, err := s.repos.Loans.Sums(ctx)
	if err != nil {
		return domain.DashboardTotals{}, customError.WrapDatabaseError(err)
	}
	collected, err := s.repos.Payments.Total(ctx)
	if err != nil {
		return domain.DashboardTotals{}, customError.WrapDatabaseError(err)
	}

	totals := domain.NewDashboardTotals(clients, sums, collected)
	if err := s.totals.Set(ctx, totals); err != nil {
		s.logger.Warn("failed to cache dashboard totals", "error", customError.WrapCacheError(err))
	}
	return totals, nil
}

// ExportLoans builds one report row per loan, active and finished alike.
func (s *CreditService) ExportLoans(ctx context.Context) ([]domain.ExportRow, error) {
	loans, err := s.repos.Loans.ListAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	paid, err := s.repos.Payments.TotalsByLoan(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	summaries, err := s.repos.Clients.List(ctx, "")
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	clients := make(map[int64]*domain.Client, len(summaries))
	for _, c := range summaries {
		clients[c.ID] = &c.Client
	}

	rows := make([]domain.ExportRow, 0, len(loans))
	for _, loan := range loans {
		rows = append(rows, domain.BuildExportRow(clients[loan.ClientID], loan, paid[loan.ID]))
	}
	return rows, nil
}

// ReconcileAll recomputes every loan's status as of today and persists the
// active flags that changed.
func (s *CreditService) ReconcileAll(ctx context.Context, today time.Time) (ReconcileResult, error) {
	var result ReconcileResult

	loans, err := s.repos.Loans.ListAll(ctx)
	if err != nil {
		return result, customError.WrapDatabaseError(err)
	}
	paid, err := s.repos.Payments.TotalsByLoan(ctx)
	if err != nil {
		return result, customError.WrapDatabaseError(err)
	}

	for _, loan := range loans {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Checked++

		view := domain.ComputeStatus(loan, paid[loan.ID], today)
		if !domain.ReconcileActive(loan, view) {
			continue
		}
		if err := s.repos.Loans.UpdateActive(ctx, loan.ID, loan.Active); err != nil {
			return result, customError.WrapDatabaseError(err)
		}

		metrics.RecordFlip(loan.Active, "reconcile")
		if loan.Active {
			result.Activated++
		} else {
			result.Deactivated++
		}
	}

	if result.Activated+result.Deactivated > 0 {
		s.invalidateTotals(ctx)
	}
	s.logger.Info("reconciliation finished",
		"checked", result.Checked,
		"activated", result.Activated,
		"deactivated", result.Deactivated,
	)
	return result, nil
}
