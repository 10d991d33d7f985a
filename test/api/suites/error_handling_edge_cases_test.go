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

	"github.com/unikorn-cloud/booker/test/api"
)

var _ = Describe("Error Handling and Edge Cases", func() {
	Context("When addressing a booking that does not exist", func() {
		Describe("Given a deleted booking", func() {
			var (
				bookingID int
				token     string
			)

			BeforeEach(func() {
				bookingID, _ = api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().Build())
				token = api.Authenticate(client, ctx)

				resp, err := client.DeleteBooking(ctx, token, bookingID)
				Expect(err).NotTo(HaveOccurred())
				api.ExpectStatus(resp, http.StatusCreated)
			})

			It("should return not found when fetched", func() {
				resp, err := client.GetBooking(ctx, bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusNotFound)
			})

			It("should refuse a full update", func() {
				resp, err := client.UpdateBooking(ctx, token, bookingID, api.NewBookingPayload().Build())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusMethodNotAllowed)
			})

			It("should refuse a second delete", func() {
				resp, err := client.DeleteBooking(ctx, token, bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusMethodNotAllowed)
			})
		})

		Describe("Given an id that was never issued", func() {
			It("should return not found", func() {
				resp, err := client.GetBooking(ctx, 0)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusNotFound)
			})
		})
	})
})
