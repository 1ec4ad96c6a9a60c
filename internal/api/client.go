// Package api is the HTTP client for the ledger service. It owns the wire
// contract (session cookie, CSRF mirror header, envelope-or-bare lists) and
// the error taxonomy; it issues exactly one request per call and never
// retries on its own.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/okaya/ledgerdesk/internal/model"
)

const csrfCookie = "csrftoken"

// Client talks to one ledger API base URL, e.g. http://host/api/v1/.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client with its own cookie jar for the session.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: base,
		http: &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

func (c *Client) endpoint(parts ...string) string {
	ref := strings.Join(parts, "")
	u, err := c.base.Parse(ref)
	if err != nil {
		return c.base.String() + ref
	}
	return u.String()
}

// csrfToken mirrors the csrftoken cookie into the X-CSRFToken header, the
// same double-submit the browser client performs.
func (c *Client) csrfToken() string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == csrfCookie {
			return ck.Value
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		if tok := c.csrfToken(); tok != "" {
			req.Header.Set("X-CSRFToken", tok)
		}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + rawURL, Err: err}
	}
	return resp, nil
}

// apiError drains the response into an APIError, pulling the server's
// {"detail": ...} message when the body carries one.
func apiError(resp *http.Response) *APIError {
	defer resp.Body.Close()
	out := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(data) == 0 {
		return out
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		out.Detail = body.Detail
		return out
	}
	// Validation failures come back as a field->errors object; show it raw.
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		out.Detail = trimmed
	}
	return out
}

// decodeList accepts either a pagination envelope {"results": [...]} or a
// bare JSON list.
func decodeList[T any](data []byte) ([]T, error) {
	var env struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &env); err == nil && env.Results != nil {
		return env.Results, nil
	}
	var bare []T
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return bare, nil
}

func getList[T any](ctx context.Context, c *Client, rawURL string) ([]T, error) {
	resp, err := c.do(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read " + rawURL, Err: err}
	}
	return decodeList[T](data)
}

// Login establishes the session. A prior GET primes the CSRF cookie the
// server expects on the POST.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if resp, err := c.do(ctx, http.MethodGet, c.endpoint("login/"), nil); err == nil {
		resp.Body.Close()
	}
	resp, err := c.do(ctx, http.MethodPost, c.endpoint("login/"), map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return nil
}

// ListTransactions fetches the record set matching the predicate.
func (c *Client) ListTransactions(ctx context.Context, query url.Values) ([]model.Transaction, error) {
	return getList[model.Transaction](ctx, c, c.endpoint("transactions/?"+query.Encode()))
}

// ListPaymentMethods fetches the payment-method reference list.
func (c *Client) ListPaymentMethods(ctx context.Context) ([]model.Reference, error) {
	return getList[model.Reference](ctx, c, c.endpoint("payment-methods/"))
}

// ListSubcategories fetches the subcategory reference list.
func (c *Client) ListSubcategories(ctx context.Context) ([]model.Reference, error) {
	return getList[model.Reference](ctx, c, c.endpoint("subcategories/"))
}

// CreateTransaction posts a new record.
func (c *Client) CreateTransaction(ctx context.Context, payload map[string]any) error {
	resp, err := c.do(ctx, http.MethodPost, c.endpoint("transactions/"), payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}
	return nil
}

// UpdateTransaction patches an existing record.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, payload map[string]any) error {
	resp, err := c.do(ctx, http.MethodPatch, c.endpoint("transactions/", fmt.Sprint(id), "/"), payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return nil
}

// SoftDelete marks a record inactive. The API signals success with 204 No
// Content and nothing else; any other status is a failure.
func (c *Client) SoftDelete(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, http.MethodDelete, c.endpoint("transactions/", fmt.Sprint(id), "/"), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	resp.Body.Close()
	return nil
}

// Restore reactivates a soft-deleted record.
func (c *Client) Restore(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, http.MethodPost, c.endpoint("transactions/", fmt.Sprint(id), "/restore/"), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return nil
}

// HardDelete permanently removes a record. Irreversible; callers are
// responsible for confirming first. Success is 204 No Content only.
func (c *Client) HardDelete(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, http.MethodDelete, c.endpoint("transactions/", fmt.Sprint(id), "/hard-delete/"), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	resp.Body.Close()
	return nil
}

// LogExport posts the export audit record. Best effort: callers fire it and
// ignore the error.
func (c *Client) LogExport(ctx context.Context, query string) error {
	resp, err := c.do(ctx, http.MethodPost, c.endpoint("export-log/"), map[string]string{"query": query})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	return nil
}
