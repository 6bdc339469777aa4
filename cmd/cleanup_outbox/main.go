package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/niuTTu2/decoration-sharing-api/internal/models/m_outbox"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/config"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
)

// Options for the outbox cleanup job.
type Options struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	opts := Options{}
	flag.StringVar(&opts.SpannerDB, "database", cfg.Store.SpannerDB, "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&opts.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&opts.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	appLog, err := logger.New(cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer appLog.Sync()
	appLog = appLog.With("component", "cleanup_outbox")

	if err := cleanupOutbox(context.Background(), opts, appLog); err != nil {
		appLog.Fatal("cleanup failed", "error", err)
	}
	appLog.Info("cleanup completed")
}

func cleanupOutbox(ctx context.Context, opts Options, log *logger.Logger) error {
	client, err := spanner.NewClient(ctx, opts.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	now := time.Now().UTC()
	completedCutoff := now.AddDate(0, 0, -opts.CompletedRetentionDays)
	failedCutoff := now.AddDate(0, 0, -opts.FailedRetentionDays)

	log.Info("starting outbox cleanup",
		"completed_cutoff", completedCutoff.Format(time.RFC3339),
		"failed_cutoff", failedCutoff.Format(time.RFC3339),
		"dry_run", opts.DryRun,
	)

	if opts.DryRun {
		return dryRunCleanup(ctx, client, completedCutoff, failedCutoff, log)
	}
	return performCleanup(ctx, client, completedCutoff, failedCutoff, log)
}

// expiredWhere selects processed events older than their retention.
const expiredWhere = `
	WHERE (status = @completed AND processed_at < @completedCutoff)
	   OR (status = @failed AND processed_at < @failedCutoff)`

func expiredParams(completedCutoff, failedCutoff time.Time) map[string]interface{} {
	return map[string]interface{}{
		"completed":       m_outbox.StatusCompleted,
		"failed":          m_outbox.StatusFailed,
		"completedCutoff": completedCutoff,
		"failedCutoff":    failedCutoff,
	}
}

func dryRunCleanup(ctx context.Context, client *spanner.Client, completedCutoff, failedCutoff time.Time, log *logger.Logger) error {
	stmt := spanner.Statement{
		SQL:    "SELECT status, COUNT(*) AS count FROM " + m_outbox.TableName + expiredWhere + " GROUP BY status",
		Params: expiredParams(completedCutoff, failedCutoff),
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var total int64
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to query events: %w", err)
		}

		var status string
		var count int64
		if err := row.Columns(&status, &count); err != nil {
			return fmt.Errorf("failed to parse row: %w", err)
		}
		log.Info("would delete events", "status", status, "count", count)
		total += count
	}

	log.Info("dry run finished; run without -dry-run to delete", "total", total)
	return nil
}

func performCleanup(ctx context.Context, client *spanner.Client, completedCutoff, failedCutoff time.Time, log *logger.Logger) error {
	stmt := spanner.Statement{
		SQL:    "DELETE FROM " + m_outbox.TableName + expiredWhere,
		Params: expiredParams(completedCutoff, failedCutoff),
	}

	var deleted int64
	_, err := client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		rowCount, err := txn.Update(ctx, stmt)
		if err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		deleted = rowCount
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleanup transaction failed: %w", err)
	}

	log.Info("deleted old events", "count", deleted)
	return nil
}
