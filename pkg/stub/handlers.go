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

package stub

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/unikorn-cloud/booker/pkg/models"
)

func writeText(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(http.StatusText(status)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeText(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// fetchedBooking is a stored booking as the service returns it, additionalneeds
// is left out when empty.
type fetchedBooking struct {
	models.Booking

	AdditionalNeeds string `json:"additionalneeds,omitempty"`
}

func bookingID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}

	return id, true
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusCreated)
}

func (s *Server) createToken(w http.ResponseWriter, r *http.Request) {
	var credentials models.AuthCredentials

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	if credentials.Username != s.options.Username || credentials.Password != s.options.Password {
		writeJSON(w, http.StatusOK, models.AuthFailure{Reason: "Bad credentials"})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthToken{Token: s.issueToken()})
}

// requireAuth accepts either a token cookie or basic auth with the admin credentials.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("token"); err == nil && s.validToken(cookie.Value) {
			next.ServeHTTP(w, r)
			return
		}

		if username, password, ok := r.BasicAuth(); ok && username == s.options.Username && password == s.options.Password {
			next.ServeHTTP(w, r)
			return
		}

		writeText(w, http.StatusForbidden)
	})
}

type listParams struct {
	Firstname *string
	Lastname  *string
	Checkin   *string
	Checkout  *string
}

func bindListParams(r *http.Request) (*listParams, error) {
	params := &listParams{}
	query := r.URL.Query()

	bindings := []struct {
		name string
		dest **string
	}{
		{"firstname", &params.Firstname},
		{"lastname", &params.Lastname},
		{"checkin", &params.Checkin},
		{"checkout", &params.Checkout},
	}

	for _, binding := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, binding.name, query, binding.dest); err != nil {
			return nil, err
		}
	}

	return params, nil
}

// matching returns the IDs of all bookings satisfying the predicate, the caller must hold the lock.
func (s *Server) matching(predicate func(models.Booking) bool) set.Set[int] {
	var ids []int

	for id, booking := range s.bookings {
		if predicate(booking) {
			ids = append(ids, id)
		}
	}

	return set.New[int](ids...)
}

// filter returns the IDs of bookings the listing parameters select, the caller must hold the lock.
func (s *Server) filter(params *listParams) set.Set[int] {
	result := s.matching(func(models.Booking) bool { return true })

	// Each filter narrows the result, so multiple filters combine as an intersection.
	narrow := func(value *string, predicate func(models.Booking, string) bool) {
		if value == nil {
			return
		}

		result = result.Intersection(s.matching(func(b models.Booking) bool {
			return predicate(b, *value)
		}))
	}

	firstname := func(b models.Booking, v string) bool { return b.Firstname == v }
	lastname := func(b models.Booking, v string) bool { return b.Lastname == v }

	if s.options.FilterDefects {
		if params.Firstname != nil && params.Lastname != nil {
			result = s.matching(func(b models.Booking) bool { return firstname(b, *params.Firstname) }).
				Union(s.matching(func(b models.Booking) bool { return lastname(b, *params.Lastname) }))
		} else {
			narrow(params.Firstname, firstname)
			narrow(params.Lastname, lastname)
		}

		narrow(params.Checkin, func(b models.Booking, v string) bool { return b.BookingDates.Checkin < v })
		narrow(params.Checkout, func(b models.Booking, v string) bool { return b.BookingDates.Checkout < v })

		return result
	}

	narrow(params.Firstname, firstname)
	narrow(params.Lastname, lastname)
	// Dates are YYYY-MM-DD so lexical order is chronological order.
	narrow(params.Checkin, func(b models.Booking, v string) bool { return b.BookingDates.Checkin >= v })
	narrow(params.Checkout, func(b models.Booking, v string) bool { return b.BookingDates.Checkout >= v })

	return result
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	result := s.filter(params)
	s.lock.Unlock()

	var ids []int

	for id := range result.All() {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	out := make([]models.BookingID, len(ids))

	for i, id := range ids {
		out[i] = models.BookingID{BookingID: id}
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeText(w, http.StatusNotFound)
		return
	}

	s.lock.Lock()
	booking, ok := s.bookings[id]
	s.lock.Unlock()

	if !ok {
		writeText(w, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, fetchedBooking{
		Booking:         booking,
		AdditionalNeeds: booking.AdditionalNeeds,
	})
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	// The hosted service answers malformed bookings with a 500.
	booking, err := models.DecodeBooking(data)
	if err != nil {
		writeText(w, http.StatusInternalServerError)
		return
	}

	id := s.add(*booking)

	writeJSON(w, http.StatusOK, models.BookingResponse{
		BookingID: id,
		Booking:   *booking,
	})
}

func (s *Server) updateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeText(w, http.StatusNotFound)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	booking, err := models.DecodeBooking(data)
	if err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	s.bookings[id] = *booking

	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) partialUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeText(w, http.StatusNotFound)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	var patch models.BookingPatch

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&patch); err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	if err := patch.Validate(); err != nil {
		writeText(w, http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	booking = booking.Apply(patch)
	s.bookings[id] = booking

	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(r)
	if !ok {
		writeText(w, http.StatusNotFound)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.bookings[id]; !ok {
		writeText(w, http.StatusMethodNotAllowed)
		return
	}

	delete(s.bookings, id)

	writeText(w, http.StatusCreated)
}
