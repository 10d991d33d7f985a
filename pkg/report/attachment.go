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

// Package report attaches diagnostic artifacts to the running spec and
// converts finished specs into Allure results.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/onsi/ginkgo/v2"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Type is the MIME type of an attachment.
type Type string

const (
	Text Type = "text/plain"
	JSON Type = "application/json"
	HTML Type = "text/html"
	PNG  Type = "image/png"
)

// Extension is the file extension Allure expects for the type.
func (t Type) Extension() string {
	switch t {
	case JSON:
		return "json"
	case HTML:
		return "html"
	case PNG:
		return "png"
	case Text:
		return "txt"
	}

	return "bin"
}

// Attachment is a named artifact attached to a spec.
type Attachment struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
	Body []byte `json:"body"`
}

// String renders textual attachments in the Ginkgo report.
func (a Attachment) String() string {
	if a.Type == PNG {
		return fmt.Sprintf("%s (%s, %d bytes)", a.Name, a.Type, len(a.Body))
	}

	return string(a.Body)
}

// Attach adds an artifact to the running spec, it is shown on failure or with -v.
func Attach(name string, body []byte, t Type) {
	ginkgo.AddReportEntry(name, Attachment{Name: name, Type: t, Body: body}, ginkgo.ReportEntryVisibilityFailureOrVerbose)
}

// AttachText is shorthand for a text attachment.
func AttachText(name, body string) {
	Attach(name, []byte(body), Text)
}

// AttachJSON pretty prints a JSON body, falling back to text when it is not JSON.
func AttachJSON(name string, body []byte) {
	var buffer bytes.Buffer

	if err := json.Indent(&buffer, body, "", "    "); err != nil {
		Attach(name, body, Text)
		return
	}

	Attach(name, buffer.Bytes(), JSON)
}

// Capturer is a source of UI artifacts, e.g. a browser session.
type Capturer interface {
	Screenshot() ([]byte, error)
	PageSource() (string, error)
}

// AttachScreenshot attaches a PNG screenshot, capture failures are logged only.
func AttachScreenshot(ctx context.Context, name string, capturer Capturer) {
	png, err := capturer.Screenshot()
	if err != nil {
		log.FromContext(ctx).Error(err, "failed to take screenshot", "name", name)
		return
	}

	Attach(name, png, PNG)
}

// AttachHTML attaches the page source, capture failures are logged only.
func AttachHTML(ctx context.Context, name string, capturer Capturer) {
	html, err := capturer.PageSource()
	if err != nil {
		log.FromContext(ctx).Error(err, "failed to get page source", "name", name)
		return
	}

	Attach(name, []byte(html), HTML)
}
