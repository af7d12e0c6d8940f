package serve

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestRun(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "serve.db")
	cfg.Server.Addr = freeAddr(t)
	cfg.Events.RedisAddr = mr.Addr()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, testutil.DiscardLogger()) }()

	base := fmt.Sprintf("http://%s", cfg.Server.Addr)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestRun_BadDatabasePath(t *testing.T) {
	cfg := config.Default()
	// A directory cannot be opened as a database file
	cfg.Database.Path = t.TempDir()
	cfg.Server.Addr = freeAddr(t)

	err := Run(context.Background(), cfg, testutil.DiscardLogger())
	assert.Error(t, err)
}
