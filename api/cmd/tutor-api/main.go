package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"tutor-bot/api/internal/bootstrap"
	"tutor-bot/api/internal/config"
	"tutor-bot/api/internal/constants"
	"tutor-bot/api/internal/handle"
	"tutor-bot/api/internal/httpserver"
	"tutor-bot/api/internal/logging"
	"tutor-bot/api/internal/runner"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}
	logging.Setup(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ql, closeDB, err := bootstrap.QueryLog(ctx, cfg)
	if err != nil {
		logrus.Fatalf("query journal: %v", err)
	}
	defer closeDB()

	var journal runner.Journal
	if ql != nil {
		journal = ql
	}

	h := handle.New(bootstrap.Engines(cfg), runner.New(constants.Default, journal), cfg.RequestTimeout)
	mux := http.NewServeMux()
	h.Routes(mux)

	if err := httpserver.Run(ctx, ":"+cfg.Port, handle.WithRequestLog(mux)); err != nil {
		logrus.Fatal(err)
	}
}
