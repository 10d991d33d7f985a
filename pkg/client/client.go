/*
Copyright 2026 the Unikorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package client is a thin helper layer over the booking REST API.
// Every method performs exactly one synchronous HTTP call and hands back the
// raw exchange, status codes are for the caller to assert on.
package client

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/unikorn-cloud/booker/pkg/models"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	// ErrBaseURL is returned when the service address cannot be used.
	ErrBaseURL = errors.New("invalid base URL")
)

const redacted = "***"

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, *Response) {}

// Option customizes a client.
type Option func(*Client)

// DefaultTimeout bounds every request unless overridden.
const DefaultTimeout = 30 * time.Second

// WithTimeout sets a per-request timeout, zero disables it. It applies to a
// copy of the HTTP client whatever order the options are given in.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = &timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithRecorder attaches a recorder to every exchange.
func WithRecorder(recorder Recorder) Option {
	return func(c *Client) {
		c.recorder = recorder
	}
}

// WithExchangeLogging selects whether request and response bodies are logged.
func WithExchangeLogging(requests, responses bool) Option {
	return func(c *Client) {
		c.logRequests = requests
		c.logResponses = responses
	}
}

// Client talks to a single booking service.
type Client struct {
	baseURL      string
	client       *http.Client
	recorder     Recorder
	endpoints    *Endpoints
	timeout      *time.Duration
	logRequests  bool
	logResponses bool
}

// New returns a client for the service rooted at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrBaseURL, baseURL, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w %q: scheme and host are required", ErrBaseURL, baseURL)
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		recorder:     nopRecorder{},
		endpoints:    NewEndpoints(),
		logRequests:  true,
		logResponses: true,
	}

	for _, option := range options {
		option(c)
	}

	if c.timeout != nil {
		client := *c.client
		client.Timeout = *c.timeout

		c.client = &client
	}

	return c, nil
}

// BaseURL returns the service root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BookingURL returns the absolute URL of a booking.
func (c *Client) BookingURL(id int) string {
	return c.baseURL + c.endpoints.Booking(id)
}

// createTraceParent creates a W3C traceparent header value so a failing
// request can be found in the service logs.
func createTraceParent() string {
	traceID := make([]byte, 16)
	spanID := make([]byte, 8)

	_, _ = rand.Read(traceID)
	_, _ = rand.Read(spanID)

	return fmt.Sprintf("00-%s-%s-01", hex.EncodeToString(traceID), hex.EncodeToString(spanID))
}

// redactHeaders returns a copy of the headers that is safe to log, credentials
// are masked.
func redactHeaders(header http.Header) http.Header {
	out := header.Clone()

	if out.Get("Authorization") != "" {
		out.Set("Authorization", redacted)
	}

	for i, value := range out.Values("Cookie") {
		cookies := strings.Split(value, ";")

		for j, cookie := range cookies {
			name, _, _ := strings.Cut(strings.TrimSpace(cookie), "=")
			cookies[j] = name + "=" + redacted
		}

		out["Cookie"][i] = strings.Join(cookies, "; ")
	}

	return out
}

//nolint:cyclop
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any, token string) (*Response, error) {
	log := log.FromContext(ctx)

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var requestBody []byte

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		requestBody = data
	}

	var body io.Reader
	if requestBody != nil {
		body = bytes.NewReader(requestBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Accept", "application/json")

	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	log.Info("request", "method", method, "url", fullURL, "traceparent", traceParent)

	if c.logRequests && requestBody != nil {
		log.Info("request body", "body", string(requestBody))
	}

	log.Info("request headers", "headers", redactHeaders(req.Header))

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error(err, "http request failed", "method", method, "url", fullURL, "duration", duration, "traceparent", traceParent)
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err, "reading response body", "method", method, "url", fullURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	log.Info("response code", "status", resp.StatusCode, "duration", duration)
	log.V(1).Info("response headers", "headers", resp.Header)
	if c.logResponses {
		log.Info("response", "body", string(respBody))
	}

	response := &Response{
		Method:        method,
		URL:           fullURL,
		RequestHeader: req.Header.Clone(),
		RequestBody:   requestBody,
		StatusCode:    resp.StatusCode,
		Header:        resp.Header,
		Body:          respBody,
		Duration:      duration,
		TraceParent:   traceParent,
	}

	c.recorder.Record(ctx, response)

	return response, nil
}

// Ping checks the service is up, a healthy service answers 201.
func (c *Client) Ping(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Ping(), nil, nil, "")
}

// ListBookings lists booking IDs, optionally filtered.
func (c *Client) ListBookings(ctx context.Context, filter *Filter) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Bookings(), filter.Query(), nil, "")
}

// GetBooking fetches a single booking.
func (c *Client) GetBooking(ctx context.Context, id int) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Booking(id), nil, nil, "")
}

// CreateBooking creates a booking, the payload is validated before anything is sent.
func (c *Client) CreateBooking(ctx context.Context, booking models.Booking) (*Response, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	return c.doRequest(ctx, http.MethodPost, c.endpoints.Bookings(), nil, booking, "")
}

// Authenticate exchanges credentials with the auth endpoint.
func (c *Client) Authenticate(ctx context.Context, credentials models.AuthCredentials) (*Response, error) {
	if err := credentials.Validate(); err != nil {
		return nil, err
	}

	return c.doRequest(ctx, http.MethodPost, c.endpoints.Auth(), nil, credentials, "")
}

// CreateToken authenticates and returns just the issued token.
func (c *Client) CreateToken(ctx context.Context, credentials models.AuthCredentials) (string, error) {
	resp, err := c.Authenticate(ctx, credentials)
	if err != nil {
		return "", fmt.Errorf("creating token: %w", err)
	}

	return TokenFromResponse(resp)
}

// UpdateBooking replaces every field of a booking.
func (c *Client) UpdateBooking(ctx context.Context, token string, id int, booking models.Booking) (*Response, error) {
	if err := booking.Validate(); err != nil {
		return nil, err
	}

	return c.doRequest(ctx, http.MethodPut, c.endpoints.Booking(id), nil, booking, token)
}

// PartialUpdateBooking changes only the fields set in the patch.
func (c *Client) PartialUpdateBooking(ctx context.Context, token string, id int, patch models.BookingPatch) (*Response, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	return c.doRequest(ctx, http.MethodPatch, c.endpoints.Booking(id), nil, patch, token)
}

// DeleteBooking removes a booking, the service answers 201 on success.
func (c *Client) DeleteBooking(ctx context.Context, token string, id int) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, c.endpoints.Booking(id), nil, nil, token)
}
