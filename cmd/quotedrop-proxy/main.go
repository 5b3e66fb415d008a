package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/quotedrop/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	addr := flag.String("addr", "", "listen address (optional, defaults to health_bind)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.RunProxy(ctx, app.ProxyOptions{ConfigPath: *configPath, Addr: *addr}); err != nil {
		fmt.Fprintf(os.Stderr, "quotedrop-proxy: %v\n", err)
		return 1
	}
	return 0
}
