package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"notes-client/internal/api/rest"
	"notes-client/internal/config"
	"notes-client/internal/repository"
	"notes-client/internal/repository/memory"

	"go.uber.org/zap"
)

// Server - локальный HTTP сервер с API заметок поверх in-memory хранилища.
// Нужен для разработки и тестов клиента, это не продакшн бэкенд.
type Server struct {
	HTTPServer *http.Server
	HTTPAddr   string
	Listener   net.Listener

	Repository repository.NoteRepository
	Config     *config.Config

	logger *zap.Logger
}

// NewServer создает сервер и занимает порт
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg.Server == nil {
		return nil, errors.New("server config is required")
	}

	httpPort := cfg.Server.PortHTTP
	if httpPort == 0 {
		httpPort = 3333
		logger.Warn("port_http is 0, using default", zap.Int("port", httpPort))
	}
	httpAddr := "0.0.0.0:" + strconv.Itoa(httpPort)

	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	return &Server{
		HTTPAddr: listener.Addr().String(),
		Listener: listener,
		Config:   cfg,
		logger:   logger,
	}, nil
}

// Initialize инициализирует компоненты сервера (Repository → Handler → Router)
func (s *Server) Initialize() error {
	s.Repository = memory.NewRepository()
	s.logger.Info("initialized in-memory repository")

	handler := rest.NewHandler(s.Repository, s.logger)
	router := rest.NewRouter(handler, s.Config.Gateway, s.logger)

	sc := s.Config.Server
	s.HTTPServer = &http.Server{
		Handler:           router,
		ReadTimeout:       seconds(sc.HTTPReadTimeout),
		WriteTimeout:      seconds(sc.HTTPWriteTimeout),
		IdleTimeout:       seconds(sc.HTTPIdleTimeout),
		ReadHeaderTimeout: seconds(sc.HTTPReadHeaderTimeout),
	}

	return nil
}

// Start запускает HTTP сервер в горутине и возвращает канал ошибок
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("notes API listening", zap.String("addr", s.HTTPAddr))
		if err := s.HTTPServer.Serve(s.Listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown с таймаутом из конфига
func (s *Server) Shutdown() error {
	s.logger.Info("starting graceful shutdown")

	timeout := seconds(s.Config.Server.GracefulShutdownTimeout)
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.HTTPServer.Shutdown(ctx); err != nil {
		s.logger.Warn("graceful shutdown timeout, forcing stop", zap.Error(err))
		_ = s.HTTPServer.Close()
		return err
	}

	s.logger.Info("notes API stopped gracefully")
	return nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
