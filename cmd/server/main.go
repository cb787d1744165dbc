package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"notes-client/internal/config"
	"notes-client/internal/logger"
	"notes-client/internal/server"

	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "config.yml", "path to config file")
	flag.Parse()

	appConfig, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Error initializing config: %v", err)
	}

	// Сервер пишет логи в stdout; файл из конфига относится к клиенту
	logCfg := *appConfig.Logger
	logCfg.File = ""
	l, err := logger.New(&logCfg, true)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	srv, err := server.NewServer(appConfig, l)
	if err != nil {
		l.Fatal("failed to create server", zap.Error(err))
	}
	if err := srv.Initialize(); err != nil {
		l.Fatal("failed to initialize server", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := srv.Start()

	select {
	case err := <-errChan:
		l.Fatal("server error", zap.Error(err))
	case sig := <-sigChan:
		l.Info("received signal", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(); err != nil {
		l.Error("shutdown failed", zap.Error(err))
	}
}
