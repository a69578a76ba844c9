// Package resumeparser is the HTTP client for the external résumé
// extraction service (POST {base}/parse-resume/, multipart field "file").
package resumeparser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// maxResponseBytes bounds the JSON body read from the parser
const maxResponseBytes = 4 << 20

// Result is the parser's response body. Every key is optional; nested
// records keep their loose shape because the service uses several aliases.
type Result struct {
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Skills     []string         `json:"skills"`
	Education  []map[string]any `json:"education"`
	Experience []map[string]any `json:"experience"`
	Projects   []map[string]any `json:"projects"`
	Portfolio  string           `json:"portfolio"`
	Website    string           `json:"website"`
	LinkedIn   string           `json:"linkedin"`
	Location   *Location        `json:"location"`
}

type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// StatusError is returned for a non-2xx reply after retries are exhausted.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("resume parser returned %d: %s", e.StatusCode, e.Body)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration // per attempt; 0 means no timeout
	MaxRetries int
	// Logger receives retry diagnostics; *slog.Logger satisfies
	// retryablehttp.LeveledLogger. nil silences it.
	Logger retryablehttp.LeveledLogger
}

type Client struct {
	endpoint string
	http     *retryablehttp.Client
}

func NewClient(cfg Config) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.CheckRetry = retryPolicy
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = cfg.Logger

	return &Client{
		endpoint: cfg.BaseURL + "/parse-resume/",
		http:     rc,
	}
}

// retryPolicy retries transport errors and 5xx replies only. 4xx means the
// parser rejected this document and a retry would get the same answer.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	return resp.StatusCode >= 500 && resp.StatusCode != http.StatusNotImplemented, nil
}

// Parse uploads the document and decodes the parser's JSON reply.
func (c *Client) Parse(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	body, contentType, err := multipartBody(filename, r)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build parser request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call resume parser: %w", err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxResponseBytes)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(limited, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	var result Result
	if err := json.NewDecoder(limited).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode parser response: %w", err)
	}
	return &result, nil
}

// multipartBody buffers the form so retries can replay it.
func multipartBody(filename string, r io.Reader) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", fmt.Errorf("copy resume into form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}
