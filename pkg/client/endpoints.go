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

package client

import (
	"net/url"
	"strconv"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Booking endpoints.
func (e *Endpoints) Bookings() string {
	return "/booking"
}

func (e *Endpoints) Booking(id int) string {
	return "/booking/" + url.PathEscape(strconv.Itoa(id))
}

// Authentication endpoints.
func (e *Endpoints) Auth() string {
	return "/auth"
}

// Health endpoints.
func (e *Endpoints) Ping() string {
	return "/ping"
}
