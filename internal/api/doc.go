// Package api provides an HTTP client for the quote service.
//
// # Overview
//
// The quote service accepts a JSON file and answers with a single stock quote.
// This package wraps the three calls quotedrop makes against it and turns
// every non-2xx answer into one typed error.
//
// # Architecture
//
//   - client.go: Client with Get, Post and UploadFile, and the Ping and
//     UploadQuote helpers that work against any Backend
//   - errors.go: APIError and the StatusOf / MessageOf helpers
//   - file.go: File, the opaque blob handed from the drop zone to the upload
//   - types.go: RootResponse, Quote and Timestamp
//
// # Client Usage
//
//	client := api.NewClient(cfg.APIURL, api.Options{})
//
//	root, err := client.Ping(ctx)
//	if err != nil {
//		log.Printf("backend unreachable: %v", err)
//	}
//
//	quote, err := client.UploadQuote(ctx, api.FileFromPath("quote.json"))
//	if err != nil {
//		log.Printf("upload failed (status %d): %s", api.StatusOf(err), api.MessageOf(err))
//	}
//
// # Endpoints
//
//   - GET /: connectivity probe, answers {"message": "..."}
//   - POST /upload: multipart body with the file under the "file" field,
//     answers a Quote
//
// # URL Handling
//
// Paths are appended to the configured base as plain strings. When no base is
// configured the base is the literal "undefined", so requests go to
// "undefined/upload" and fail at the transport. This is deliberate: the
// misconfiguration shows up as a failed probe instead of a refusal to start.
//
// # Error Handling
//
// Three kinds of failure come back from a call:
//
//   - *APIError for non-2xx answers, carrying the status and the body text
//     ("Request failed" when the body could not be read)
//   - "execute request: ..." for transport failures (no status)
//   - "decode response: ..." when a 2xx body is not the expected JSON
//
// Callers treat all of them the same way; StatusOf and MessageOf exist for
// display. There are no retries and no client-side timeout unless
// Options.Timeout is set.
//
// # Request Headers
//
// Every request sends Accept: application/json, a User-Agent and a fresh
// X-Request-ID UUID. Get and Post also send Content-Type: application/json.
package api
