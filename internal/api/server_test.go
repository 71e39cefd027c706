package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/nrowgame/internal/config"
	"github.com/mcoot/nrowgame/internal/testutil"
)

func TestServerConfigFrom(t *testing.T) {
	cfg := ServerConfigFrom(config.HTTP{
		Host:            "127.0.0.1",
		Port:            9090,
		ReadTimeout:     time.Second,
		WriteTimeout:    2 * time.Second,
		ShutdownTimeout: 3 * time.Second,
	})

	assert.Equal(t, ServerConfig{
		Host:            "127.0.0.1",
		Port:            9090,
		ReadTimeout:     time.Second,
		WriteTimeout:    2 * time.Second,
		ShutdownTimeout: 3 * time.Second,
	}, cfg)

	server := NewServer(nil, cfg, testutil.NopLogger())
	assert.Equal(t, "127.0.0.1:9090", server.Addr())
}

func TestServerShutdownStopsStart(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	server := NewServer(nil, cfg, testutil.NopLogger())

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	require.NoError(t, server.Shutdown(t.Context()))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}
