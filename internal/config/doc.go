// Package config loads quotedrop's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/quotedrop/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// The QUOTEDROP_API_URL environment variable wins over api_url.
//
// # Default Values
//
//   - api_url: unset, which becomes the literal base "undefined"
//   - accept_ext: .json (a missing leading dot is added)
//   - health_bind: 127.0.0.1:3000
//   - log_file: ~/.local/share/quotedrop/quotedrop.log
//
// An unset backend URL is not an error. The client then builds URLs such as
// "undefined/upload", every request fails at the transport, and the UI shows
// the connectivity error. Failing at start would hide the page entirely.
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8000"
//	accept_ext = ".json"
//	health_bind = "127.0.0.1:3000"
//	log_file = "~/.local/share/quotedrop/quotedrop.log"
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// The configuration is read once at process start and never reloaded.
package config
