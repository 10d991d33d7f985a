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

// Package models mirrors the documented schema of the booking service.
// Nothing here is persisted, the remote service is the only source of truth.
package models

// DateFormat is the layout of check-in and check-out dates on the wire.
const DateFormat = "2006-01-02"

// BookingDates is the stay range of a booking.
type BookingDates struct {
	Checkin  string `json:"checkin" validate:"required,datetime=2006-01-02"`
	Checkout string `json:"checkout" validate:"required,datetime=2006-01-02"`
}

// Booking is a single reservation record.
type Booking struct {
	Firstname       string       `json:"firstname" validate:"required"`
	Lastname        string       `json:"lastname" validate:"required"`
	TotalPrice      int          `json:"totalprice" validate:"gt=0"`
	DepositPaid     bool         `json:"depositpaid"`
	BookingDates    BookingDates `json:"bookingdates" validate:"required"`
	AdditionalNeeds string       `json:"additionalneeds"`
}

// BookingResponse is returned by the service when a booking is created.
type BookingResponse struct {
	BookingID int     `json:"bookingid" validate:"gt=0"`
	Booking   Booking `json:"booking" validate:"required"`
}

// BookingID is a single element of the booking listing.
type BookingID struct {
	BookingID int `json:"bookingid" validate:"gt=0"`
}

// BookingPatch is a partial update, only non-nil fields are sent.
type BookingPatch struct {
	Firstname       *string       `json:"firstname,omitempty"`
	Lastname        *string       `json:"lastname,omitempty"`
	TotalPrice      *int          `json:"totalprice,omitempty" validate:"omitempty,gt=0"`
	DepositPaid     *bool         `json:"depositpaid,omitempty"`
	BookingDates    *BookingDates `json:"bookingdates,omitempty"`
	AdditionalNeeds *string       `json:"additionalneeds,omitempty"`
}

// NewBookingDates returns a validated date range.
func NewBookingDates(checkin, checkout string) (BookingDates, error) {
	dates := BookingDates{
		Checkin:  checkin,
		Checkout: checkout,
	}

	if err := dates.Validate(); err != nil {
		return BookingDates{}, err
	}

	return dates, nil
}

// NewBooking returns a validated booking.
func NewBooking(firstname, lastname string, totalPrice int, depositPaid bool, dates BookingDates, additionalNeeds string) (Booking, error) {
	booking := Booking{
		Firstname:       firstname,
		Lastname:        lastname,
		TotalPrice:      totalPrice,
		DepositPaid:     depositPaid,
		BookingDates:    dates,
		AdditionalNeeds: additionalNeeds,
	}

	if err := booking.Validate(); err != nil {
		return Booking{}, err
	}

	return booking, nil
}

// Validate checks both dates are present and in DateFormat.
func (d *BookingDates) Validate() error {
	return validateStruct(d)
}

// Validate checks the booking against the field constraints of the service.
func (b *Booking) Validate() error {
	return validateStruct(b)
}

// Validate checks the assigned ID and the embedded booking.
func (r *BookingResponse) Validate() error {
	return validateStruct(r)
}

// Validate checks the fields that are set, names may not be emptied.
func (p *BookingPatch) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}

	if p.Firstname != nil && *p.Firstname == "" {
		return validationError("firstname must not be empty")
	}

	if p.Lastname != nil && *p.Lastname == "" {
		return validationError("lastname must not be empty")
	}

	return nil
}

// IsEmpty reports whether the patch would change nothing.
func (p *BookingPatch) IsEmpty() bool {
	return *p == BookingPatch{}
}

// Apply returns the booking as the service should store it after the patch.
func (b Booking) Apply(patch BookingPatch) Booking {
	if patch.Firstname != nil {
		b.Firstname = *patch.Firstname
	}

	if patch.Lastname != nil {
		b.Lastname = *patch.Lastname
	}

	if patch.TotalPrice != nil {
		b.TotalPrice = *patch.TotalPrice
	}

	if patch.DepositPaid != nil {
		b.DepositPaid = *patch.DepositPaid
	}

	if patch.BookingDates != nil {
		b.BookingDates = *patch.BookingDates
	}

	if patch.AdditionalNeeds != nil {
		b.AdditionalNeeds = *patch.AdditionalNeeds
	}

	return b
}
