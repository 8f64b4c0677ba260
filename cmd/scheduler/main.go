package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"

	"github.com/segyhp/credit-ledger/internal/app"
	"github.com/segyhp/credit-ledger/internal/config"
	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/segyhp/credit-ledger/internal/logging"
	"github.com/segyhp/credit-ledger/internal/service"
)

const jobTimeout = 30 * time.Minute

// reconciler is the part of the credit service the scheduler drives.
type reconciler interface {
	Today() time.Time
	ReconcileAll(ctx context.Context, today time.Time) (service.ReconcileResult, error)
	RefreshTotals(ctx context.Context) (domain.DashboardTotals, error)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logging).With("component", "scheduler")
	logger.Info("starting credit scheduler")

	application, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	c, err := newScheduler(cfg, application.Service, logger)
	if err != nil {
		logger.Error("failed to schedule jobs", "error", err)
		application.Close()
		os.Exit(1)
	}

	c.Start()
	logger.Info("scheduler started", "spec", cfg.Scheduler.ReconcileSpec)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}

// newScheduler registers the reconciliation job on the configured spec, in
// the business timezone.
func newScheduler(cfg *config.Config, svc reconciler, logger *slog.Logger) (*cron.Cron, error) {
	cronLog := cronLogger{logger: logger}
	c := cron.New(
		cron.WithParser(config.CronParser()),
		cron.WithLocation(cfg.GetLocation()),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	_, err := c.AddJob(cfg.Scheduler.ReconcileSpec, cron.FuncJob(func() {
		runReconcile(context.Background(), svc, logger)
	}))
	if err != nil {
		return nil, err
	}
	return c, nil
}

// runReconcile sweeps every loan's active flag and then rebuilds the cached
// dashboard totals.
func runReconcile(ctx context.Context, svc reconciler, logger *slog.Logger) {
	jobLogger := logger.With("job_name", "reconcile")
	jobLogger.Info("reconciliation job triggered")

	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	result, err := svc.ReconcileAll(ctx, svc.Today())
	if err != nil {
		jobLogger.Error("reconciliation failed", "error", err)
		return
	}

	if _, err := svc.RefreshTotals(ctx); err != nil {
		jobLogger.Error("failed to warm dashboard totals", "error", err)
		return
	}

	jobLogger.Info("reconciliation job finished",
		"checked", result.Checked,
		"activated", result.Activated,
		"deactivated", result.Deactivated,
	)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
