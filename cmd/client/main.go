package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"notes-client/internal/config"
	"notes-client/internal/logger"
	"notes-client/internal/repository/remote"
	"notes-client/internal/service/notes"
	"notes-client/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "config.yml", "path to config file")
	baseURL := flag.String("api", "", "notes API base URL (overrides api.base_url)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, *configFile, *baseURL)
	stop()

	if err != nil {
		log.Printf("Error running client: %v", err)
		os.Exit(1)
	}
}

// run собирает клиент и запускает интерфейс. Все отложенные вызовы (в том числе
// сброс логов) выполняются до возврата, поэтому ошибка возвращается, а не завершает процесс.
func run(ctx context.Context, configFile, baseURL string) error {
	appConfig, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	if baseURL != "" {
		appConfig.API.BaseURL = baseURL
	}

	// Терминал занят интерфейсом, поэтому логи пишутся только в файл
	l, err := logger.New(appConfig.Logger, false)
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer func() { _ = l.Sync() }()

	noteRepository, err := remote.NewRepository(
		appConfig.API.BaseURL,
		appConfig.API.RequestTimeout(),
		remote.WithLogger(l),
	)
	if err != nil {
		l.Error("failed to create API client", zap.Error(err))
		return fmt.Errorf("remote.NewRepository: %w", err)
	}

	l.Info("starting notes client", zap.String("api", appConfig.API.BaseURL))

	home := tui.New(ctx, notes.NewNoteService(noteRepository, l), l)
	defer home.Close()

	program := tea.NewProgram(home, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		l.Error("client stopped with error", zap.Error(err))
		return fmt.Errorf("program.Run: %w", err)
	}

	l.Info("notes client stopped")
	return nil
}
