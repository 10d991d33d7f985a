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

// Package stub is an in-memory implementation of the booking service.
// It follows the behaviour of the hosted service closely enough that the
// suites can run without network access, quirks such as delete answering
// 201 are kept on purpose.
package stub

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/unikorn-cloud/booker/pkg/models"
)

const (
	DefaultUsername = "admin"
	DefaultPassword = "password123"
)

// Options configure a stub service.
type Options struct {
	// Username and Password are the only credentials accepted by /auth.
	Username string
	Password string
	// Seed preloads the ambient bookings filter tests rely on.
	Seed bool
	// FilterDefects reproduces the hosted listing bugs: date filters select
	// bookings before the date and a first plus last name filter selects either.
	FilterDefects bool
	// Logger receives one line per request, discarded when unset.
	Logger logr.Logger
}

// Server holds the bookings and issued tokens.
type Server struct {
	options Options

	lock     sync.Mutex
	bookings map[int]models.Booking
	nextID   int
	tokens   map[string]time.Time
}

// New returns a stub service.
func New(options Options) *Server {
	if options.Username == "" {
		options.Username = DefaultUsername
	}

	if options.Password == "" {
		options.Password = DefaultPassword
	}

	if options.Logger.GetSink() == nil {
		options.Logger = logr.Discard()
	}

	s := &Server{
		options:  options,
		bookings: map[int]models.Booking{},
		nextID:   1,
		tokens:   map[string]time.Time{},
	}

	if options.Seed {
		for _, booking := range SeedBookings() {
			s.add(booking)
		}
	}

	return s
}

// SeedBookings are the records the hosted service usually carries.
func SeedBookings() []models.Booking {
	return []models.Booking{
		{Firstname: "Josh", Lastname: "Allen", TotalPrice: 111, DepositPaid: true, BookingDates: models.BookingDates{Checkin: "2023-06-12", Checkout: "2023-06-20"}, AdditionalNeeds: "Breakfast"},
		{Firstname: "Jim", Lastname: "Brown", TotalPrice: 250, DepositPaid: false, BookingDates: models.BookingDates{Checkin: "2024-11-01", Checkout: "2025-01-15"}, AdditionalNeeds: "Lunch"},
		{Firstname: "Mark", Lastname: "Smith", TotalPrice: 420, DepositPaid: true, BookingDates: models.BookingDates{Checkin: "2022-02-01", Checkout: "2022-02-05"}, AdditionalNeeds: "Dinner"},
		{Firstname: "Sally", Lastname: "Jackson", TotalPrice: 90, DepositPaid: false, BookingDates: models.BookingDates{Checkin: "2025-03-10", Checkout: "2025-03-12"}, AdditionalNeeds: ""},
		{Firstname: "Eric", Lastname: "Wilson", TotalPrice: 700, DepositPaid: true, BookingDates: models.BookingDates{Checkin: "2019-08-01", Checkout: "2019-08-30"}, AdditionalNeeds: "Late checkout"},
		{Firstname: "Jim", Lastname: "Jackson", TotalPrice: 150, DepositPaid: false, BookingDates: models.BookingDates{Checkin: "2021-04-01", Checkout: "2021-04-03"}, AdditionalNeeds: ""},
	}
}

// Handler returns the HTTP routes of the service.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.NoCache)
	router.Use(s.logRequests)

	router.Get("/ping", s.ping)
	router.Post("/auth", s.createToken)

	router.Route("/booking", func(r chi.Router) {
		r.Get("/", s.listBookings)
		r.Post("/", s.createBooking)
		r.Get("/{id}", s.getBooking)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Put("/{id}", s.updateBooking)
			r.Patch("/{id}", s.partialUpdateBooking)
			r.Delete("/{id}", s.deleteBooking)
		})
	})

	return router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.options.Logger.Info("handled request", "method", r.Method, "path", r.URL.RequestURI(), "status", ww.Status(), "duration", time.Since(start))
	})
}

// add stores a booking and returns its new identifier, the caller must not hold the lock.
func (s *Server) add(booking models.Booking) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	id := s.nextID
	s.nextID++

	s.bookings[id] = booking

	return id
}

func (s *Server) issueToken() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	// The hosted service issues 15 character tokens.
	token := hex.EncodeToString(bytes)[:15]

	s.lock.Lock()
	defer s.lock.Unlock()

	s.tokens[token] = time.Now()

	return token
}

func (s *Server) validToken(token string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.tokens[token]

	return ok
}
