package amizone

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"main/errors"
)

// Client talks to the Amizone JSON API. Credentials are passed
// explicitly on every call; the client holds no ambient user state.
type Client struct {
	base    string
	timeout time.Duration
	client  *http.Client
}

// NewClient returns a client for the API at base. The base URL must
// already be normalized to carry a scheme. Every call is bounded by
// timeout; zero means 20 seconds.
func NewClient(base string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		timeout: timeout,
		client:  &http.Client{},
	}
}

// call issues one request against the API and decodes the JSON response
// into out (which may be nil for calls with no interesting body).
// Failures map onto the package error taxonomy: missing credentials,
// a 401, any other non-2xx status, transport failure, and shape
// mismatch are all distinguishable via errors.Is.
func (c *Client) call(ctx context.Context, method, endpoint string, creds Credentials, payload any, out checker) error {
	if !creds.Valid() {
		return errors.NewError("amizone.call", "no credentials for "+endpoint, errors.ErrUnauthenticated)
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.NewError("amizone.call", "cannot encode request body", err)
		}
		body = bytes.NewReader(raw)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.base+endpoint, body)
	if err != nil {
		return errors.NewError("amizone.call", "cannot create request", err)
	}
	req.SetBasicAuth(creds.Username, creds.Password)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	family := metricFamily(endpoint)
	start := time.Now()
	resp, err := c.client.Do(req)
	observeCall(family, start, err == nil)
	if err != nil {
		// Transport failures read the same as API errors downstream.
		return errors.NewError("amizone.call", "request to "+endpoint+" failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 401 {
		countOutcome(family, "unauthorized")
		return errors.NewError("amizone.call", "credentials rejected", errors.ErrInvalidCreds)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		countOutcome(family, "error")
		msg := readBodyText(resp.Body)
		if msg == "" {
			msg = resp.Status
		}
		return errors.NewError("amizone.call", msg, nil)
	}
	countOutcome(family, "ok")

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewError("amizone.call", "cannot decode "+endpoint+" response", errors.ErrSchemaMismatch)
	}
	if err = out.check(); err != nil {
		return err
	}
	return nil
}

// readBodyText returns the response body as trimmed text, capped so a
// misbehaving server cannot flood error pages.
func readBodyText(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// metricFamily reduces an endpoint path to its family label, dropping
// per-request segments like semester references and dates.
func metricFamily(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "/api/v1/")
	if i := strings.Index(endpoint, "/"); i != -1 {
		endpoint = endpoint[:i]
	}
	return endpoint
}
