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

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/unikorn-cloud/booker/pkg/logging"
	"github.com/unikorn-cloud/booker/pkg/stub"
)

var (
	// ErrConfiguration is returned when the environment cannot be used.
	ErrConfiguration = errors.New("invalid test configuration")
)

type TestConfig struct {
	// BaseURL is the service under test, when empty an in-process stub is used.
	BaseURL          string
	Username         string
	Password         string
	RequestTimeout   time.Duration
	SchemaDir        string
	AllureResultsDir string
	LogFile          string
	DebugLogging     bool
	LogRequests      bool
	LogResponses     bool

	// StubFilterDefects makes the in-process stub reproduce the hosted listing bugs.
	StubFilterDefects bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:          os.Getenv("BASE_URL"),
		Username:         getStringWithDefault("USER_NAME", stub.DefaultUsername),
		Password:         getStringWithDefault("PASSWORD", stub.DefaultPassword),
		RequestTimeout:   getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		SchemaDir:        getStringWithDefault("SCHEMA_DIR", "../../schemas"),
		AllureResultsDir: getStringWithDefault("ALLURE_RESULTS_DIR", "allure-results"),
		LogFile:          getStringWithDefault("LOG_FILE", logging.DefaultFile),
		DebugLogging:     getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:      getBoolWithDefault("LOG_REQUESTS", true),
		LogResponses:     getBoolWithDefault("LOG_RESPONSES", true),

		StubFilterDefects: getBoolWithDefault("STUB_FILTER_DEFECTS", false),
	}

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// UseStub reports whether the suite should serve the API itself.
func (c *TestConfig) UseStub() bool {
	return c.BaseURL == ""
}

// LoggingOptions maps the environment onto logger options.
func (c *TestConfig) LoggingOptions() *logging.Options {
	options := &logging.Options{
		File:        c.LogFile,
		Development: true,
	}

	if c.DebugLogging {
		options.Level = 1
	}

	return options
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		os.Getenv("ENV_FILE"),
		"../../.env", // From test/api/suites directory
		".env",
	}

	for _, path := range envPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err != nil {
			continue
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}

		// Variables already in the environment win, as in CI.
		if err := godotenv.Load(absPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", absPath, err)
		}

		return
	}
}

func validate(config *TestConfig) error {
	if config.BaseURL != "" {
		u, err := url.Parse(config.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: BASE_URL %q must be an absolute URL", ErrConfiguration, config.BaseURL)
		}
	}

	// Zero disables the timeout.
	if config.RequestTimeout < 0 {
		return fmt.Errorf("%w: REQUEST_TIMEOUT must not be negative", ErrConfiguration)
	}

	return nil
}
