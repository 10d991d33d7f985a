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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2/types"
)

const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusBroken  = "broken"
	StatusSkipped = "skipped"
)

// AllureLabel is a name/value result label e.g. feature or story.
type AllureLabel struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AllureAttachment references an attachment file in the results directory.
type AllureAttachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// AllureStatusDetails describes why a result did not pass.
type AllureStatusDetails struct {
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

// AllureStep is a By() block within a spec.
type AllureStep struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Stage  string `json:"stage"`
	Start  int64  `json:"start"`
	Stop   int64  `json:"stop"`
}

// AllureResult is the <uuid>-result.json document.
type AllureResult struct {
	UUID          string               `json:"uuid"`
	HistoryID     string               `json:"historyId"`
	Name          string               `json:"name"`
	FullName      string               `json:"fullName"`
	Status        string               `json:"status"`
	StatusDetails *AllureStatusDetails `json:"statusDetails,omitempty"`
	Stage         string               `json:"stage"`
	Start         int64                `json:"start"`
	Stop          int64                `json:"stop"`
	Labels        []AllureLabel        `json:"labels"`
	Steps         []AllureStep         `json:"steps,omitempty"`
	Attachments   []AllureAttachment   `json:"attachments,omitempty"`
}

// AllureWriter writes Allure results for finished specs.
type AllureWriter struct {
	dir string
}

// NewAllureWriter creates the results directory if required.
func NewAllureWriter(dir string) (*AllureWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating allure results directory: %w", err)
	}

	return &AllureWriter{
		dir: dir,
	}, nil
}

// Dir is the results directory.
func (w *AllureWriter) Dir() string {
	return w.dir
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixMilli()
}

// Status maps a Ginkgo spec state onto an Allure status.  Assertion failures
// are failed, anything that stopped the spec from running to completion is broken.
func Status(state types.SpecState) string {
	switch state {
	case types.SpecStatePassed:
		return StatusPassed
	case types.SpecStateSkipped, types.SpecStatePending:
		return StatusSkipped
	case types.SpecStateFailed:
		return StatusFailed
	}

	return StatusBroken
}

func labels(report types.SpecReport) []AllureLabel {
	out := []AllureLabel{
		{Name: "framework", Value: "ginkgo"},
		{Name: "language", Value: "go"},
	}

	if containers := report.ContainerHierarchyTexts; len(containers) > 0 {
		out = append(out,
			AllureLabel{Name: "parentSuite", Value: containers[0]},
			AllureLabel{Name: "feature", Value: containers[0]},
			AllureLabel{Name: "story", Value: containers[len(containers)-1]},
		)
	}

	for _, label := range report.Labels() {
		out = append(out, AllureLabel{Name: "tag", Value: label})
	}

	return out
}

func steps(report types.SpecReport) []AllureStep {
	var out []AllureStep

	for _, event := range report.SpecEvents {
		if event.SpecEventType != types.SpecEventByEnd {
			continue
		}

		stop := event.TimelineLocation.Time

		out = append(out, AllureStep{
			Name:   event.Message,
			Status: StatusPassed,
			Stage:  "finished",
			Start:  millis(stop.Add(-event.Duration)),
			Stop:   millis(stop),
		})
	}

	// A failure interrupts the step that was running, By blocks without
	// callbacks never emit an end event so mark the last one.
	if len(out) > 0 && report.State.Is(types.SpecStateFailureStates) {
		out[len(out)-1].Status = Status(report.State)
	}

	return out
}

func (w *AllureWriter) attachments(id string, report types.SpecReport) ([]AllureAttachment, error) {
	var out []AllureAttachment

	for i, entry := range report.ReportEntries {
		attachment, ok := entry.GetRawValue().(Attachment)
		if !ok {
			continue
		}

		source := fmt.Sprintf("%s-%d-attachment.%s", id, i, attachment.Type.Extension())

		if err := os.WriteFile(filepath.Join(w.dir, source), attachment.Body, 0o600); err != nil {
			return nil, fmt.Errorf("writing allure attachment: %w", err)
		}

		out = append(out, AllureAttachment{
			Name:   attachment.Name,
			Source: source,
			Type:   string(attachment.Type),
		})
	}

	return out, nil
}

// Result converts a spec report, attachments are not written.
func Result(id string, report types.SpecReport) *AllureResult {
	fullName := report.FullText()
	history := sha256.Sum256([]byte(fullName))

	result := &AllureResult{
		UUID:      id,
		HistoryID: hex.EncodeToString(history[:16]),
		Name:      report.LeafNodeText,
		FullName:  fullName,
		Status:    Status(report.State),
		Stage:     "finished",
		Start:     millis(report.StartTime),
		Stop:      millis(report.EndTime),
		Labels:    labels(report),
		Steps:     steps(report),
	}

	if report.State != types.SpecStatePassed && report.Failure.Message != "" {
		trace := report.Failure.Location.String()
		if report.Failure.Location.FullStackTrace != "" {
			trace = strings.Join([]string{trace, report.Failure.Location.FullStackTrace}, "\n")
		}

		result.StatusDetails = &AllureStatusDetails{
			Message: report.Failure.Message,
			Trace:   trace,
		}
	}

	return result
}

// Write emits the result and its attachments for an It node, other nodes are ignored.
func (w *AllureWriter) Write(report types.SpecReport) error {
	if report.LeafNodeType != types.NodeTypeIt {
		return nil
	}

	id := uuid.NewString()

	result := Result(id, report)

	attachments, err := w.attachments(id, report)
	if err != nil {
		return err
	}

	result.Attachments = attachments

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(w.dir, id+"-result.json"), data, 0o600); err != nil {
		return fmt.Errorf("writing allure result: %w", err)
	}

	return nil
}
