package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sunr3d/ans-anexos/internal/config"
	"github.com/sunr3d/ans-anexos/internal/entrypoint"
	"github.com/sunr3d/ans-anexos/internal/logger"
)

func main() {
	// .env не обязателен
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ошибка инициализации логгера: %v\n", err)
		return
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run, err := entrypoint.Run(ctx, cfg, log)
	if err != nil {
		// Код выхода всегда 0, результат виден только в логе.
		log.Error("процесс прерван",
			zap.String("run_id", run.ID),
			zap.String("status", string(run.Status)),
			zap.Error(err),
		)
		return
	}
}
