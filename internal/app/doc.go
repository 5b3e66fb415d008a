// Package app provides the orchestration layer for quotedrop.
//
// # Overview
//
// This package wires configuration, preferences, the HTTP client, the health
// proxy and the UI together. It is the composition root: nothing below it
// reads config files or decides where logs go.
//
// # Components
//
//   - app.go: Run (the TUI) and RunProxy (the proxy alone)
//   - runner.go: runs the health proxy until its context is cancelled
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read config, apply env override
//	       ├─────> openLog()             Route log output to the log file
//	       ├─────> prefs.Load()          Theme and picker directory
//	       ├─────> api.NewClient()       One client for UI and proxy
//	       ├─────> StartHealthProxy()    Only with -health
//	       └─────> ui.Run()              Start TUI (blocks)
//
// # Logging
//
// Run hands the standard logger to tea.LogToFile because the terminal is in
// alt-screen mode. RunProxy leaves it on stderr.
//
// # Shutdown
//
// Cancelling the context stops the UI and the proxy. The proxy gets a short
// grace period to finish in-flight health checks.
package app
