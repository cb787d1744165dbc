package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notes-client/internal/config"
	"notes-client/internal/model"
)

func TestServer_Lifecycle(t *testing.T) {
	cfg := &config.Config{
		Server:  &config.ConfigServer{GracefulShutdownTimeout: 1},
		Gateway: &config.ConfigGateway{CORSAllowedOrigins: "*"},
	}
	cfg.Server.PortHTTP = -1

	_, err := NewServer(cfg, zap.NewNop())
	require.Error(t, err, "negative port must fail to listen")

	cfg.Server.PortHTTP = freePort(t)
	s, err := NewServer(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Initialize())

	errChan := s.Start()

	resp, err := http.Post(fmt.Sprintf("http://127.0.0.1:%d/notes", cfg.Server.PortHTTP), "application/json",
		strings.NewReader(`{"title":"Shopping","text":"Buy milk","color":"#fff"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var note model.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&note))
	assert.NotEmpty(t, note.ID)

	require.NoError(t, s.Shutdown())
	select {
	case err := <-errChan:
		t.Fatalf("unexpected server error: %v", err)
	default:
	}
}

func TestNewServer_RequiresServerConfig(t *testing.T) {
	_, err := NewServer(&config.Config{}, zap.NewNop())
	assert.Error(t, err)
}

// freePort возвращает свободный TCP порт
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}
