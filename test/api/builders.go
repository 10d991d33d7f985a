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

package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/unikorn-cloud/booker/pkg/models"
)

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

// GenerateTestID returns a unique name so created records can be told apart
// from other users' records on a shared service.
func GenerateTestID() string {
	return generateRandomName("test")
}

// BookingPayloadBuilder builds booking payloads for testing.
type BookingPayloadBuilder struct {
	booking models.Booking
}

// NewBookingPayload creates a builder with a valid booking.
func NewBookingPayload() *BookingPayloadBuilder {
	return &BookingPayloadBuilder{
		booking: models.Booking{
			Firstname:   "Jim",
			Lastname:    "Brown",
			TotalPrice:  111,
			DepositPaid: true,
			BookingDates: models.BookingDates{
				Checkin:  "2018-01-01",
				Checkout: "2019-01-01",
			},
			AdditionalNeeds: "Breakfast",
		},
	}
}

// WithFirstname sets the guest first name.
func (b *BookingPayloadBuilder) WithFirstname(firstname string) *BookingPayloadBuilder {
	b.booking.Firstname = firstname
	return b
}

// WithLastname sets the guest last name.
func (b *BookingPayloadBuilder) WithLastname(lastname string) *BookingPayloadBuilder {
	b.booking.Lastname = lastname
	return b
}

// WithUniqueLastname makes the booking findable by a last name filter.
func (b *BookingPayloadBuilder) WithUniqueLastname() *BookingPayloadBuilder {
	b.booking.Lastname = GenerateTestID()
	return b
}

func (b *BookingPayloadBuilder) WithTotalPrice(price int) *BookingPayloadBuilder {
	b.booking.TotalPrice = price
	return b
}

func (b *BookingPayloadBuilder) WithDepositPaid(paid bool) *BookingPayloadBuilder {
	b.booking.DepositPaid = paid
	return b
}

// WithDates sets the stay, dates are YYYY-MM-DD.
func (b *BookingPayloadBuilder) WithDates(checkin, checkout string) *BookingPayloadBuilder {
	b.booking.BookingDates = models.BookingDates{
		Checkin:  checkin,
		Checkout: checkout,
	}
	return b
}

func (b *BookingPayloadBuilder) WithAdditionalNeeds(needs string) *BookingPayloadBuilder {
	b.booking.AdditionalNeeds = needs
	return b
}

// Build returns the completed booking, it is validated when sent.
func (b *BookingPayloadBuilder) Build() models.Booking {
	return b.booking
}
