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

// Package logging configures a logr logger that writes to the console and to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// DefaultFile is where execution logs go when no other file is given.
const DefaultFile = "test_execution.log"

// Options control the logger.
type Options struct {
	// Level is the logr verbosity, 1 enables debug messages.
	Level int
	// File is appended to, an empty value disables file logging.
	File string
	// Development selects human readable console output.
	Development bool
	// Console defaults to stderr.
	Console io.Writer
}

// AddFlags registers logging flags.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.IntVar(&o.Level, "log-level", 0, "Log verbosity, 1 enables debug logging.")
	f.StringVar(&o.File, "log-file", DefaultFile, "File to write logs to in addition to the console.")
	f.BoolVar(&o.Development, "log-dev", false, "Use human readable console logging.")
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

// Setup builds the logger and installs it as the controller-runtime default
// so log.FromContext works without an explicit log.IntoContext.  The returned
// closer flushes the log file.
func (o *Options) Setup() (logr.Logger, io.Closer, error) {
	console := o.Console
	if console == nil {
		console = os.Stderr
	}

	out := console

	var closer io.Closer = nopCloser{}

	if o.File != "" {
		if dir := filepath.Dir(o.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return logr.Discard(), nil, fmt.Errorf("creating log directory: %w", err)
			}
		}

		file, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return logr.Discard(), nil, fmt.Errorf("opening log file: %w", err)
		}

		out = io.MultiWriter(console, file)
		closer = file
	}

	logger := zap.New(
		zap.UseDevMode(o.Development),
		zap.WriteTo(out),
		zap.Level(zapcore.Level(-o.Level)),
	)

	log.SetLogger(logger)

	return logger, closer, nil
}
