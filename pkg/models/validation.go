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

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation is returned when a value breaks a schema constraint.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownField is returned when a decoded document has fields the schema lacks.
	ErrUnknownField = errors.New("unknown field")

	// ErrMissingField is returned when a decoded document lacks a required field.
	ErrMissingField = errors.New("missing required field")
)

//nolint:gochecknoglobals
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func validationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	messages := make([]string, 0, len(fieldErrors))

	for _, fieldError := range fieldErrors {
		messages = append(messages, describe(fieldError))
	}

	return validationError(strings.Join(messages, "; "))
}

// describe renders a field error with the path below the root type.
func describe(fieldError validator.FieldError) string {
	path := fieldError.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}

	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format: %v", path, fieldError.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s: %v", path, fieldError.Param(), fieldError.Value())
	default:
		return fmt.Sprintf("%s failed %s check: %v", path, fieldError.Tag(), fieldError.Value())
	}
}
