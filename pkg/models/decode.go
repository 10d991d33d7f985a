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

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// The wire shapes use pointers so absent fields can be told apart from zero values.
type wireBookingDates struct {
	Checkin  *string `json:"checkin"`
	Checkout *string `json:"checkout"`
}

type wireBooking struct {
	Firstname       *string           `json:"firstname"`
	Lastname        *string           `json:"lastname"`
	TotalPrice      *int              `json:"totalprice"`
	DepositPaid     *bool             `json:"depositpaid"`
	BookingDates    *wireBookingDates `json:"bookingdates"`
	AdditionalNeeds *string           `json:"additionalneeds"`
}

type wireBookingResponse struct {
	BookingID *int         `json:"bookingid"`
	Booking   *wireBooking `json:"booking"`
}

type wireBookingID struct {
	BookingID *int `json:"bookingid"`
}

func decodeStrict(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return fmt.Errorf("%w %s", ErrUnknownField, field)
		}

		return fmt.Errorf("decoding document: %w", err)
	}

	return nil
}

func missing(path string) error {
	return fmt.Errorf("%w %q", ErrMissingField, path)
}

func (w *wireBookingDates) convert(prefix string) (BookingDates, error) {
	if w == nil {
		return BookingDates{}, missing(prefix)
	}

	if w.Checkin == nil {
		return BookingDates{}, missing(prefix + ".checkin")
	}

	if w.Checkout == nil {
		return BookingDates{}, missing(prefix + ".checkout")
	}

	return BookingDates{
		Checkin:  *w.Checkin,
		Checkout: *w.Checkout,
	}, nil
}

// convert checks every field is present, optionalNeeds lets additionalneeds be absent.
//
//nolint:cyclop
func (w *wireBooking) convert(prefix string, optionalNeeds bool) (Booking, error) {
	if w == nil {
		return Booking{}, missing(strings.TrimSuffix(prefix, "."))
	}

	switch {
	case w.Firstname == nil:
		return Booking{}, missing(prefix + "firstname")
	case w.Lastname == nil:
		return Booking{}, missing(prefix + "lastname")
	case w.TotalPrice == nil:
		return Booking{}, missing(prefix + "totalprice")
	case w.DepositPaid == nil:
		return Booking{}, missing(prefix + "depositpaid")
	case w.AdditionalNeeds == nil && !optionalNeeds:
		return Booking{}, missing(prefix + "additionalneeds")
	}

	dates, err := w.BookingDates.convert(prefix + "bookingdates")
	if err != nil {
		return Booking{}, err
	}

	booking := Booking{
		Firstname:    *w.Firstname,
		Lastname:     *w.Lastname,
		TotalPrice:   *w.TotalPrice,
		DepositPaid:  *w.DepositPaid,
		BookingDates: dates,
	}

	if w.AdditionalNeeds != nil {
		booking.AdditionalNeeds = *w.AdditionalNeeds
	}

	return booking, nil
}

func decodeBooking(data []byte, optionalNeeds bool) (*Booking, error) {
	var w wireBooking

	if err := decodeStrict(data, &w); err != nil {
		return nil, err
	}

	booking, err := w.convert("", optionalNeeds)
	if err != nil {
		return nil, err
	}

	if err := booking.Validate(); err != nil {
		return nil, err
	}

	return &booking, nil
}

// DecodeBooking strictly decodes and validates a booking document, every
// field must be present.
func DecodeBooking(data []byte) (*Booking, error) {
	return decodeBooking(data, false)
}

// DecodeFetchedBooking decodes a booking as returned by a fetch. It is as
// strict as DecodeBooking except that a missing additionalneeds reads as empty.
func DecodeFetchedBooking(data []byte) (*Booking, error) {
	return decodeBooking(data, true)
}

// DecodeBookingResponse strictly decodes and validates a create response.
func DecodeBookingResponse(data []byte) (*BookingResponse, error) {
	var w wireBookingResponse

	if err := decodeStrict(data, &w); err != nil {
		return nil, err
	}

	if w.BookingID == nil {
		return nil, missing("bookingid")
	}

	booking, err := w.Booking.convert("booking.", false)
	if err != nil {
		return nil, err
	}

	response := &BookingResponse{
		BookingID: *w.BookingID,
		Booking:   booking,
	}

	if err := response.Validate(); err != nil {
		return nil, err
	}

	return response, nil
}

// DecodeBookingIDs strictly decodes a booking listing.
func DecodeBookingIDs(data []byte) ([]BookingID, error) {
	var w []wireBookingID

	if err := decodeStrict(data, &w); err != nil {
		return nil, err
	}

	ids := make([]BookingID, len(w))

	for i := range w {
		if w[i].BookingID == nil {
			return nil, missing(fmt.Sprintf("[%d].bookingid", i))
		}

		ids[i] = BookingID{
			BookingID: *w[i].BookingID,
		}
	}

	return ids, nil
}
