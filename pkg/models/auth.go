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

// AuthCredentials are exchanged once for a token.
type AuthCredentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthToken is the successful response of the auth endpoint.
type AuthToken struct {
	Token string `json:"token"`
}

// AuthFailure is what the auth endpoint returns, with a 200, on bad credentials.
type AuthFailure struct {
	Reason string `json:"reason"`
}

// NewAuthCredentials returns validated credentials.
func NewAuthCredentials(username, password string) (AuthCredentials, error) {
	credentials := AuthCredentials{
		Username: username,
		Password: password,
	}

	if err := credentials.Validate(); err != nil {
		return AuthCredentials{}, err
	}

	return credentials, nil
}

// Validate checks neither the username nor the password is empty.
func (c *AuthCredentials) Validate() error {
	return validateStruct(c)
}
