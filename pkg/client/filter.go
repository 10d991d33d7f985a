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
	"net/url"
	"strings"

	"github.com/unikorn-cloud/booker/pkg/models"
)

// Filter narrows a booking listing, nil fields are not sent.
type Filter struct {
	Firstname *string
	Lastname  *string
	Checkin   *string
	Checkout  *string
}

// Query encodes the filter as URL query parameters.
func (f *Filter) Query() url.Values {
	values := url.Values{}

	if f == nil {
		return values
	}

	set := func(key string, value *string) {
		if value != nil {
			values.Set(key, *value)
		}
	}

	set("firstname", f.Firstname)
	set("lastname", f.Lastname)
	set("checkin", f.Checkin)
	set("checkout", f.Checkout)

	return values
}

// String is a compact human readable form used in reports.
func (f *Filter) String() string {
	query := f.Query()
	if len(query) == 0 {
		return "none"
	}

	decoded, err := url.QueryUnescape(query.Encode())
	if err != nil {
		return query.Encode()
	}

	return strings.ReplaceAll(decoded, "&", ", ")
}

// Matches reports whether the service should list the booking for this filter.
// Names match exactly, a booking matches a date when it starts or ends on or
// after it.
func (f *Filter) Matches(booking models.Booking) bool {
	if f == nil {
		return true
	}

	if f.Firstname != nil && booking.Firstname != *f.Firstname {
		return false
	}

	if f.Lastname != nil && booking.Lastname != *f.Lastname {
		return false
	}

	if f.Checkin != nil && booking.BookingDates.Checkin < *f.Checkin {
		return false
	}

	if f.Checkout != nil && booking.BookingDates.Checkout < *f.Checkout {
		return false
	}

	return true
}
