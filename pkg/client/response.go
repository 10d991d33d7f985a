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

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrNoBookingID is returned when a create response carries no booking ID.
	ErrNoBookingID = errors.New("response has no booking ID")

	// ErrNoToken is returned when the auth endpoint did not issue a token.
	ErrNoToken = errors.New("response has no token")
)

// Response is a single, fully read, HTTP exchange with the booking service.
type Response struct {
	// Method is the request method.
	Method string
	// URL is the absolute request URL.
	URL string
	// RequestHeader is what was sent, cookies included.
	RequestHeader http.Header
	// RequestBody is nil when nothing was sent.
	RequestBody []byte
	// StatusCode is passed through untouched, non-2xx is not an error.
	StatusCode int
	// Header holds the response headers.
	Header http.Header
	// Body is the raw response body.
	Body []byte
	// Duration is the round trip time.
	Duration time.Duration
	// TraceParent is the W3C trace context sent with the request.
	TraceParent string
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s (status %d): %w", r.Method, r.URL, r.StatusCode, err)
	}

	return nil
}

// JSON returns the body as generic JSON, the form schema validation works on.
func (r *Response) JSON() (any, error) {
	var value any

	if err := r.Decode(&value); err != nil {
		return nil, err
	}

	return value, nil
}

// BookingIDFromResponse extracts the identifier the service assigned to a new booking.
func BookingIDFromResponse(r *Response) (int, error) {
	var body struct {
		BookingID *int `json:"bookingid"`
	}

	if err := r.Decode(&body); err != nil {
		return 0, err
	}

	if body.BookingID == nil {
		return 0, fmt.Errorf("%w: status %d, body: %s", ErrNoBookingID, r.StatusCode, string(r.Body))
	}

	return *body.BookingID, nil
}

// TokenFromResponse extracts the token issued by the auth endpoint.
func TokenFromResponse(r *Response) (string, error) {
	var body struct {
		Token  string `json:"token"`
		Reason string `json:"reason"`
	}

	if err := r.Decode(&body); err != nil {
		return "", err
	}

	if body.Token == "" {
		if body.Reason != "" {
			return "", fmt.Errorf("%w: %s", ErrNoToken, body.Reason)
		}

		return "", fmt.Errorf("%w: status %d", ErrNoToken, r.StatusCode)
	}

	return body.Token, nil
}
