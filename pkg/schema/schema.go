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

// Package schema loads JSON Schema fixtures and checks response bodies against them.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

var (
	// ErrNotFound is returned when a named fixture is not loaded.
	ErrNotFound = errors.New("schema not found")

	// ErrMismatch is returned when a document does not conform to its schema.
	ErrMismatch = errors.New("document does not match schema")
)

// Schema is a single loaded fixture.
type Schema struct {
	name   string
	schema *openapi3.Schema
}

// Name is the fixture file name without its extension.
func (s *Schema) Name() string {
	return s.name
}

// Load reads a fixture from disk.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}

	schema := &openapi3.Schema{}

	if err := json.Unmarshal(data, schema); err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", path, err)
	}

	return &Schema{
		name:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		schema: schema,
	}, nil
}

// Validate checks a raw JSON document, every violation is reported.
func (s *Schema) Validate(body []byte) error {
	var value any

	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("%w %s: body is not JSON: %w", ErrMismatch, s.name, err)
	}

	return s.ValidateValue(value)
}

// ValidateValue checks an already decoded document.
func (s *Schema) ValidateValue(value any) error {
	if err := s.schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w %s: %w", ErrMismatch, s.name, err)
	}

	return nil
}

// Set is a directory of fixtures indexed by name.
type Set struct {
	dir     string
	schemas map[string]*Schema
}

// LoadDir loads every *.json fixture in a directory.
func LoadDir(dir string) (*Set, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no fixtures in %s", ErrNotFound, dir)
	}

	set := &Set{
		dir:     dir,
		schemas: map[string]*Schema{},
	}

	for _, path := range paths {
		schema, err := Load(path)
		if err != nil {
			return nil, err
		}

		set.schemas[schema.Name()] = schema
	}

	return set, nil
}

// Get returns a named fixture, e.g. "get_one_booking".
func (s *Set) Get(name string) (*Schema, error) {
	schema, ok := s.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, s.dir)
	}

	return schema, nil
}

// Validate checks a document against a named fixture.
func (s *Set) Validate(name string, body []byte) error {
	schema, err := s.Get(name)
	if err != nil {
		return err
	}

	return schema.Validate(body)
}
