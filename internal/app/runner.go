package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/five82/quotedrop/internal/proxy"
)

const shutdownTimeout = 5 * time.Second

// StartHealthProxy launches the health proxy in a background goroutine and
// stops it when ctx is cancelled. It returns immediately.
func StartHealthProxy(ctx context.Context, backend proxy.Fetcher, addr string) *proxy.Server {
	srv := newProxy(backend)
	go func() {
		if err := serveUntilDone(ctx, srv, addr); err != nil {
			log.Printf("health proxy stopped: %v", err)
		}
	}()
	return srv
}

func newProxy(backend proxy.Fetcher) *proxy.Server {
	return proxy.New(backend, proxy.Options{RequestLogging: true})
}

// serveUntilDone serves on addr until the listener fails or ctx is
// cancelled, in which case in-flight checks get shutdownTimeout to finish.
func serveUntilDone(ctx context.Context, srv *proxy.Server, addr string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(addr) }()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
