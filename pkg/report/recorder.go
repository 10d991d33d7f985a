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

package report

import (
	"context"
	"mime"

	"github.com/unikorn-cloud/booker/pkg/client"
)

// Recorder attaches every client exchange to the running spec.
type Recorder struct{}

var _ client.Recorder = Recorder{}

// NewRecorder returns a recorder for use with client.WithRecorder.
func NewRecorder() Recorder {
	return Recorder{}
}

func (Recorder) Record(_ context.Context, response *client.Response) {
	AttachText("Request url", response.Method+" "+response.URL)

	if len(response.RequestBody) > 0 {
		AttachJSON("Request body", response.RequestBody)
	}

	if mediaType, _, err := mime.ParseMediaType(response.Header.Get("Content-Type")); err == nil && mediaType == string(HTML) {
		Attach("Response", response.Body, HTML)
		return
	}

	AttachJSON("Response", response.Body)
}
