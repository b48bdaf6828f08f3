// Command enrich rewrites the problem list with platform tags and Codeforces
// ratings. It takes no flags; see internal/platform/config for the settings.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cm_sheet/internal/app/enrich"
	"cm_sheet/internal/domain/repository"
	"cm_sheet/internal/platform/codeforces"
	"cm_sheet/internal/platform/config"
	"cm_sheet/internal/platform/logger"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.Load(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return 1
	}
	cfg := config.AppConfig

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := codeforces.NewClient(cfg.CodeforcesAPIURL, codeforces.WithTimeout(cfg.CodeforcesTimeout))
	store := repository.NewFileProblemRepository(cfg.ProblemsPath)

	stats, err := enrich.NewJob(client, store, log).Run(ctx)
	if err != nil {
		log.Error("Enrichment failed, problem list left unchanged", zap.String("path", cfg.ProblemsPath), zap.Error(err))
		return 1
	}
	log.Info("Enrichment finished", zap.String("path", cfg.ProblemsPath), zap.Int("rated", stats.Rated), zap.Int("total", stats.Total))
	return 0
}
