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

//nolint:testpackage,revive // test package in suites is standard for these tests
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/booker/pkg/models"
	"github.com/unikorn-cloud/booker/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("Booking Management", func() {
	Context("When listing bookings", func() {
		Describe("Given the service holds bookings", func() {
			It("should list every booking id in the documented shape", func() {
				resp, err := client.ListBookings(ctx, nil)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)
				api.ExpectSchema(schemas, "get_all_booking", resp)
			})
		})
	})

	Context("When retrieving a booking", func() {
		Describe("Given the first listed booking", func() {
			It("should return the booking in the documented shape", func() {
				bookingID := api.FirstBookingID(client, ctx)

				resp, err := client.GetBooking(ctx, bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)
				api.ExpectSchema(schemas, "get_one_booking", resp)

				GinkgoWriter.Printf("Retrieved booking %d\n", bookingID)
			})
		})
	})

	Context("When creating a booking", func() {
		Describe("Given a valid payload", func() {
			var booking models.Booking

			BeforeEach(func() {
				booking = api.NewBookingPayload().Build()
			})

			It("should return the assigned id and the booking in the documented shape", func() {
				By("creating the booking")

				_, resp := api.CreateBookingWithCleanup(client, ctx, booking)
				api.ExpectSchema(schemas, "post_booking", resp)

				created, err := models.DecodeBookingResponse(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(created.Booking).To(Equal(booking))
			})

			It("should return the same booking when fetched by id", func() {
				By("creating the booking")

				bookingID, _ := api.CreateBookingWithCleanup(client, ctx, booking)

				By("fetching the booking")

				resp, err := client.GetBooking(ctx, bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)
				api.ExpectBookingEqual(resp, booking)
			})
		})
	})

	Context("When changing a booking", func() {
		Describe("Given an existing booking and a valid token", func() {
			var (
				bookingID int
				booking   models.Booking
				token     string
			)

			BeforeEach(func() {
				booking = api.NewBookingPayload().Build()
				bookingID, _ = api.CreateBookingWithCleanup(client, ctx, booking)
				token = api.Authenticate(client, ctx)
			})

			It("should replace every field on a full update", func() {
				updated := api.NewBookingPayload().
					WithFirstname("Jim-Josef").
					WithLastname("Brown-Smith").
					WithTotalPrice(222).
					WithDepositPaid(false).
					WithDates("2018-05-01", "2019-05-01").
					WithAdditionalNeeds("Breakfast and wc in room").
					Build()

				By("updating the booking")

				resp, err := client.UpdateBooking(ctx, token, bookingID, updated)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)
				api.ExpectBookingEqual(resp, updated)

				By("fetching the booking")

				resp, err = client.GetBooking(ctx, bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)
				api.ExpectBookingEqual(resp, updated)
			})

			It("should change only the patched field on a partial update", func() {
				patch := models.BookingPatch{
					AdditionalNeeds: ptr.To("Nothing"),
				}

				By("patching the booking")

				resp, err := client.PartialUpdateBooking(ctx, token, bookingID, patch)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)

				By("fetching the booking")

				resp, err = client.GetBooking(ctx, bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)
				api.ExpectBookingEqual(resp, booking.Apply(patch))
			})

			It("should no longer return a deleted booking", func() {
				By("deleting the booking")

				resp, err := client.DeleteBooking(ctx, token, bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusCreated)

				By("fetching the booking")

				resp, err = client.GetBooking(ctx, bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusNotFound)
			})
		})
	})
})
