package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"hisaab/internal/amqp"
	"hisaab/internal/cli"
	"hisaab/internal/log"
	gsheet "hisaab/internal/sheets/google"
	"hisaab/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(log.ComponentWorker)

	logger.Info("Starting hisaab-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the mirror worker")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	sheetsClient, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(repo, sheetsClient, cfg.MirrorBatchSize)

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, func() {
		amqpClient.Close()
	})

	// Catch up on anything recorded while the worker was down.
	if n, err := mirrorWorker.ProcessPending(ctx); err != nil {
		logger.Error("Startup mirror sweep failed", log.FieldError, err)
	} else if n > 0 {
		logger.Info("Startup mirror sweep complete", log.FieldRecords, n)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeExpenseRecorded(gctx, func(msg *amqp.ExpenseRecordedMessage) error {
			return mirrorWorker.HandleRecorded(gctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.MirrorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if _, err := mirrorWorker.ProcessPending(gctx); err != nil {
					logger.Error("Periodic mirror sweep failed", log.FieldError, err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		<-done
		os.Exit(1)
	}

	<-done
	logger.Info("hisaab-worker stopped")
}
