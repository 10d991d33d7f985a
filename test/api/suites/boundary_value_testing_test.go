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
)

var _ = Describe("Boundary Value Testing", func() {
	Context("When submitting invalid data", func() {
		DescribeTable("should reject the booking before sending it",
			func(booking models.Booking, message string) {
				resp, err := client.CreateBooking(ctx, booking)

				Expect(err).To(MatchError(models.ErrValidation))
				Expect(err.Error()).To(ContainSubstring(message))
				Expect(resp).To(BeNil())
			},
			Entry("with an empty first name", api.NewBookingPayload().WithFirstname("").Build(), "firstname is required"),
			Entry("with an empty last name", api.NewBookingPayload().WithLastname("").Build(), "lastname is required"),
			Entry("with a zero price", api.NewBookingPayload().WithTotalPrice(0).Build(), "totalprice must be greater than 0"),
			Entry("with a negative price", api.NewBookingPayload().WithTotalPrice(-1).Build(), "totalprice must be greater than 0"),
			Entry("with a non ISO check in date", api.NewBookingPayload().WithDates("01/01/2018", "2019-01-01").Build(), "checkin must be a date"),
			Entry("with an impossible check out date", api.NewBookingPayload().WithDates("2018-01-01", "2019-02-30").Build(), "checkout must be a date"),
		)
	})

	Context("When submitting minimal data", func() {
		Describe("Given the smallest valid booking", func() {
			It("should accept a one night stay at the minimum price with no extras", func() {
				booking := api.NewBookingPayload().
					WithTotalPrice(1).
					WithDepositPaid(false).
					WithDates("2024-02-28", "2024-02-29").
					WithAdditionalNeeds("").
					Build()

				bookingID, _ := api.CreateBookingWithCleanup(client, ctx, booking)

				resp, err := client.GetBooking(ctx, bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)
				api.ExpectSchema(schemas, "get_one_booking", resp)
			})
		})
	})
})
