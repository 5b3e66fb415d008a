package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Backend defines the calls the UI and the health proxy make against the
// quote service. It is implemented by *Client and can be faked in tests.
type Backend interface {
	Get(ctx context.Context, path string, dest any) error
	Post(ctx context.Context, path string, body any, dest any) error
	UploadFile(ctx context.Context, path string, file File, dest any) error
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// Client talks to the quote service over HTTP.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

// Options tune a Client. The zero value is usable.
type Options struct {
	// Timeout bounds every request. Zero leaves requests unbounded; callers
	// cancel through the context instead.
	Timeout   time.Duration
	UserAgent string
}

const (
	defaultUserAgent = "quotedrop/0.1"

	// UploadField is the multipart form field the backend reads the file from.
	UploadField = "file"

	// RequestIDHeader carries a per-request UUID for log correlation.
	RequestIDHeader = "X-Request-ID"

	fallbackErrorMessage = "Request failed"
)

// NewClient builds a Client for baseURL. The base is used verbatim: paths are
// appended to it as strings, so an unset base yields "undefined/<path>" and
// every request then fails at the transport.
func NewClient(baseURL string, opts Options) *Client {
	agent := strings.TrimSpace(opts.UserAgent)
	if agent == "" {
		agent = defaultUserAgent
	}
	return &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: opts.Timeout},
		userAgent: agent,
	}
}

// BaseURL returns the base the client resolves paths against.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// Get issues a GET for path and decodes the JSON response into dest.
func (c *Client) Get(ctx context.Context, path string, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

// Post JSON-encodes body, POSTs it to path and decodes the response into dest.
func (c *Client) Post(ctx context.Context, path string, body any, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

// UploadFile POSTs file to path as multipart/form-data under UploadField and
// decodes the response into dest. No JSON content type is set; the only
// Content-Type is the multipart one carrying the boundary.
func (c *Client) UploadFile(ctx context.Context, path string, file File, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	body, contentType, err := encodeMultipart(file)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, dest)
}

// Paths of the backend operations.
const (
	RootPath   = "/"
	UploadPath = "/upload"
)

// Ping probes the service root through b.
func Ping(ctx context.Context, b Backend) (RootResponse, error) {
	var payload RootResponse
	if err := b.Get(ctx, RootPath, &payload); err != nil {
		return RootResponse{}, err
	}
	return payload, nil
}

// UploadQuote uploads file through b and returns the quote the service
// derived from it.
func UploadQuote(ctx context.Context, b Backend, file File) (Quote, error) {
	var quote Quote
	if err := b.UploadFile(ctx, UploadPath, file, &quote); err != nil {
		return Quote{}, err
	}
	return quote, nil
}

// Ping probes the service root.
func (c *Client) Ping(ctx context.Context) (RootResponse, error) {
	return Ping(ctx, c)
}

// UploadQuote uploads file to /upload.
func (c *Client) UploadQuote(ctx context.Context, file File) (Quote, error) {
	return UploadQuote(ctx, c, file)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: fallbackErrorMessage}
	}
	return &APIError{Status: resp.StatusCode, Message: string(text)}
}

func encodeMultipart(file File) (io.Reader, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer func() { _ = src.Close() }()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreatePart(file.partHeader())
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("copy %s: %w", file.Name, err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
