package app

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/quotedrop/internal/api"
	"github.com/five82/quotedrop/internal/proxy"
)

func waitForAddr(t *testing.T, srv *proxy.Server) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if addr := srv.Addr(); addr != nil {
			return addr.String()
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("health proxy never started listening")
	return ""
}

func TestStartHealthProxy_ServesUntilCancelled(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer backend.Close()

	ctx, cancel := context.WithCancel(context.Background())
	srv := StartHealthProxy(ctx, api.NewClient(backend.URL, api.Options{}), "127.0.0.1:0")
	addr := waitForAddr(t, srv)

	resp, err := http.Get("http://" + addr + proxy.HealthPath)
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := http.Get("http://" + addr + proxy.HealthPath); err != nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("health proxy still serving after cancel")
}

func TestServeUntilDone_ReturnsNilOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := newProxy(api.NewClient("undefined", api.Options{}))

	done := make(chan error, 1)
	go func() { done <- serveUntilDone(ctx, srv, "127.0.0.1:0") }()
	waitForAddr(t, srv)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveUntilDone = %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("serveUntilDone did not return after cancel")
	}
}

func TestServeUntilDone_ListenErrorIsReturned(t *testing.T) {
	srv := newProxy(nil)
	err := serveUntilDone(context.Background(), srv, "not-an-address")
	if err == nil || !strings.Contains(err.Error(), "listen on not-an-address") {
		t.Fatalf("serveUntilDone error = %v, want listen error", err)
	}
}

func TestRunProxy_InvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	err := RunProxy(context.Background(), ProxyOptions{ConfigPath: path})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("RunProxy error = %v, want load config error", err)
	}
}

func TestOpenLog_CreatesDirectories(t *testing.T) {
	prefix, out := log.Prefix(), log.Writer()
	t.Cleanup(func() {
		log.SetPrefix(prefix)
		log.SetOutput(out)
	})

	path := filepath.Join(t.TempDir(), "nested", "dir", "quotedrop.log")
	f, err := openLog(path)
	if err != nil {
		t.Fatalf("openLog: %v", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}
