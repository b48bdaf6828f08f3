// Command worker drains the judge sync queue outside the API process. Run it
// with SYNC_WORKER_EMBEDDED=false on the API servers.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"cm_sheet/internal/app/service"
	"cm_sheet/internal/app/worker"
	"cm_sheet/internal/domain/repository"
	"cm_sheet/internal/platform/codeforces"
	"cm_sheet/internal/platform/config"
	"cm_sheet/internal/platform/database"
	"cm_sheet/internal/platform/logger"
	"cm_sheet/internal/platform/queue"

	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	cfg := config.AppConfig

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Worker service starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Connect(ctx, cfg.DBConnStr)
	if err != nil {
		log.Fatal("Database unavailable", zap.Error(err))
	}
	defer db.Close()

	rdb, err := queue.Connect(ctx, queue.RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		log.Fatal("Redis unavailable", zap.Error(err))
	}
	defer rdb.Close()

	cf := codeforces.NewClient(cfg.CodeforcesAPIURL, codeforces.WithTimeout(cfg.CodeforcesTimeout))
	syncService := service.NewSyncService(
		repository.NewPgUserRepository(db),
		repository.NewRedisJudgeProgressRepository(rdb),
		cf, rdb,
		service.SyncOptions{QueueName: cfg.SyncQueueName, LockTTL: cfg.SyncLockTTL()},
		log,
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.NewSyncWorker(rdb, syncService, cfg.SyncQueueName, log).Start(ctx)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Shutdown signal received")
	cancel()

	wg.Wait()
	log.Info("Worker exited cleanly")
}
