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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/booker/pkg/logging"
	"github.com/unikorn-cloud/booker/pkg/stub"
)

type options struct {
	listen          string
	username        string
	password        string
	seed            bool
	shutdownTimeout time.Duration
	logging         logging.Options
}

func (o *options) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.listen, "listen", ":3001", "Address to serve the booking API on.")
	f.StringVar(&o.username, "username", stub.DefaultUsername, "Username accepted by /auth.")
	f.StringVar(&o.password, "password", stub.DefaultPassword, "Password accepted by /auth.")
	f.BoolVar(&o.seed, "seed", true, "Preload the standard bookings.")
	f.DurationVar(&o.shutdownTimeout, "shutdown-timeout", 5*time.Second, "Time allowed for in-flight requests on shutdown.")

	o.logging.AddFlags(f)
}

func run(o *options) error {
	logger, closer, err := o.logging.Setup()
	if err != nil {
		return err
	}

	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service := stub.New(stub.Options{
		Username: o.username,
		Password: o.password,
		Seed:     o.seed,
		Logger:   logger.WithName("stub"),
	})

	server := &http.Server{
		Addr:              o.listen,
		Handler:           service.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		logger.Info("service starting", "listen", o.listen, "seeded", o.seed)

		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	logger.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), o.shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func main() {
	var o options

	o.addFlags(pflag.CommandLine)

	pflag.Parse()

	if err := run(&o); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
