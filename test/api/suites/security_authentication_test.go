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

	booker "github.com/unikorn-cloud/booker/pkg/client"
	"github.com/unikorn-cloud/booker/pkg/models"
	"github.com/unikorn-cloud/booker/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("Security and Authentication", func() {
	Context("When requesting a token", func() {
		Describe("Given valid credentials", func() {
			It("should issue a token in the documented shape", func() {
				resp, err := client.Authenticate(ctx, client.Credentials())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)
				api.ExpectSchema(schemas, "post_auth", resp)

				token, err := booker.TokenFromResponse(resp)
				Expect(err).NotTo(HaveOccurred())
				Expect(token).NotTo(BeEmpty())
			})
		})

		Describe("Given invalid credentials", func() {
			It("should report bad credentials without a token", func() {
				credentials := client.Credentials()
				credentials.Password += "-wrong"

				resp, err := client.Authenticate(ctx, credentials)
				Expect(err).NotTo(HaveOccurred())

				// The service answers 200 either way, the body tells them apart.
				api.ExpectStatus(resp, http.StatusOK)

				var failure models.AuthFailure
				Expect(resp.Decode(&failure)).To(Succeed())
				Expect(failure.Reason).To(Equal("Bad credentials"))

				_, err = booker.TokenFromResponse(resp)
				Expect(err).To(MatchError(booker.ErrNoToken))
			})

			It("should reject empty credentials before sending", func() {
				_, err := client.Authenticate(ctx, models.AuthCredentials{})
				Expect(err).To(MatchError(models.ErrValidation))
			})
		})
	})

	Context("When changing a booking without authorization", func() {
		Describe("Given an existing booking", func() {
			var bookingID int

			BeforeEach(func() {
				bookingID, _ = api.CreateBookingWithCleanup(client, ctx, api.NewBookingPayload().Build())
			})

			It("should reject a full update without a token", func() {
				resp, err := client.UpdateBooking(ctx, "", bookingID, api.NewBookingPayload().WithFirstname("Mallory").Build())
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusForbidden)
			})

			It("should reject a partial update with a forged token", func() {
				resp, err := client.PartialUpdateBooking(ctx, "not-a-token", bookingID, models.BookingPatch{Firstname: ptr.To("Mallory")})
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusForbidden)
			})

			It("should reject a delete without a token and keep the booking", func() {
				resp, err := client.DeleteBooking(ctx, "", bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusForbidden)

				resp, err = client.GetBooking(ctx, bookingID)
				Expect(err).NotTo(HaveOccurred())

				api.ExpectStatus(resp, http.StatusOK)
			})
		})
	})
})
