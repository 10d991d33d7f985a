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
	. "github.com/onsi/ginkgo/v2"

	booker "github.com/unikorn-cloud/booker/pkg/client"
	"github.com/unikorn-cloud/booker/pkg/models"
	"github.com/unikorn-cloud/booker/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("Booking Filtering", func() {
	Context("When listing bookings with a filter", func() {
		DescribeTable("should only list matching bookings",
			func(filter *booker.Filter, booking models.Booking, knownIssue string) {
				By("creating a booking the filter selects")

				bookingID, _ := api.CreateBookingWithCleanup(client, ctx, booking)

				By("listing bookings filtered by " + filter.String())

				verify := func() {
					api.VerifyFilterResults(client, ctx, filter, bookingID)
				}

				if knownIssue == "" {
					verify()
					return
				}

				api.KnownIssue(knownIssue, verify)
			},
			Entry("by first name",
				&booker.Filter{Firstname: ptr.To("Josh")},
				api.NewBookingPayload().WithFirstname("Josh").WithUniqueLastname().Build(),
				""),
			Entry("by last name",
				&booker.Filter{Lastname: ptr.To("Smith")},
				api.NewBookingPayload().WithFirstname("Mark").WithLastname("Smith").Build(),
				""),
			Entry("by check in date",
				&booker.Filter{Checkin: ptr.To("2023-06-10")},
				api.NewBookingPayload().WithDates("2023-06-12", "2023-06-20").Build(),
				"the check in filter lists bookings starting before the date"),
			Entry("by check out date",
				&booker.Filter{Checkout: ptr.To("2025-01-10")},
				api.NewBookingPayload().WithDates("2024-11-01", "2025-01-15").Build(),
				"the check out filter lists bookings ending before the date"),
			Entry("by first and last name",
				&booker.Filter{Firstname: ptr.To("Jim"), Lastname: ptr.To("Brown")},
				api.NewBookingPayload().WithFirstname("Jim").WithLastname("Brown").Build(),
				"combined filters are not applied together"),
		)
	})
})
