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
	"context"
	"net/http/httptest"
	"strings"

	"github.com/go-logr/logr"
	"github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/booker/pkg/client"
	"github.com/unikorn-cloud/booker/pkg/models"
	"github.com/unikorn-cloud/booker/pkg/report"
	"github.com/unikorn-cloud/booker/pkg/stub"
)

// APIClient is the booking client with every exchange attached to the running spec.
type APIClient struct {
	*client.Client

	config *TestConfig
}

func NewAPIClientWithConfig(config *TestConfig) (*APIClient, error) {
	c, err := client.New(config.BaseURL,
		client.WithTimeout(config.RequestTimeout),
		client.WithRecorder(report.NewRecorder()),
		client.WithExchangeLogging(config.LogRequests, config.LogResponses),
	)
	if err != nil {
		return nil, err
	}

	return &APIClient{
		Client: c,
		config: config,
	}, nil
}

// Credentials are the configured username and password.
func (c *APIClient) Credentials() models.AuthCredentials {
	return models.AuthCredentials{
		Username: c.config.Username,
		Password: c.config.Password,
	}
}

// Token authenticates with the configured credentials.
func (c *APIClient) Token(ctx context.Context) (string, error) {
	return c.CreateToken(ctx, c.Credentials())
}

// StartStub serves an in-process booking service until the enclosing node's
// cleanup runs and returns its base URL.  Call it from BeforeSuite so it
// lives for the whole run.
func StartStub(config *TestConfig, logger logr.Logger) string {
	service := stub.New(stub.Options{
		Username:      config.Username,
		Password:      config.Password,
		Seed:          true,
		FilterDefects: config.StubFilterDefects,
		Logger:        logger.WithName("stub"),
	})

	server := httptest.NewServer(service.Handler())
	ginkgo.DeferCleanup(server.Close)

	ginkgo.GinkgoWriter.Printf("Serving stub booking service at %s\n", server.URL)

	return server.URL
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}
