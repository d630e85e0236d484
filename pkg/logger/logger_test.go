/*
copyright 2020 the Goployer authors

licensed under the apache license, version 2.0 (the "license");
you may not use this file except in compliance with the license.
you may obtain a copy of the license at

    http://www.apache.org/licenses/license-2.0

unless required by applicable law or agreed to in writing, software
distributed under the license is distributed on an "as is" basis,
without warranties or conditions of any kind, either express or implied.
see the license for the specific language governing permissions and
limitations under the license.
*/

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/sirupsen/logrus"
)

type recordingHandler struct {
	Threshold
	name    string
	records *[]string
	err     error
}

func (h recordingHandler) Handle(entry *logrus.Entry) (bool, error) {
	*h.records = append(*h.records, h.name+":"+entry.Message)
	return h.Stop(), h.err
}

func TestThreshold(t *testing.T) {
	th := Threshold{Level: logrus.WarnLevel}
	testData := []struct {
		Input    logrus.Level
		Expected bool
	}{
		{Input: logrus.PanicLevel, Expected: true},
		{Input: logrus.FatalLevel, Expected: true},
		{Input: logrus.ErrorLevel, Expected: true},
		{Input: logrus.WarnLevel, Expected: true},
		{Input: logrus.InfoLevel, Expected: false},
		{Input: logrus.DebugLevel, Expected: false},
		{Input: logrus.TraceLevel, Expected: false},
	}

	for _, td := range testData {
		if output := th.IsHandling(td.Input); output != td.Expected {
			t.Errorf("expected: %t, output: %t, input: %s", td.Expected, output, td.Input)
		}
	}
}

func TestHandlerOrder(t *testing.T) {
	var records []string
	l := New("pageon")
	l.PushHandler(recordingHandler{Threshold: Threshold{Level: logrus.DebugLevel, Bubble: true}, name: "bottom", records: &records})
	l.PushHandler(recordingHandler{Threshold: Threshold{Level: logrus.WarnLevel, Bubble: true}, name: "top", records: &records})

	l.Info("info")
	l.Warn("warn")

	expected := []string{"bottom:info", "top:warn", "bottom:warn"}
	if diff := deep.Equal(records, expected); diff != nil {
		t.Error(diff)
	}
}

func TestBubbleStopsPropagation(t *testing.T) {
	var records []string
	l := New("pageon")
	l.PushHandler(recordingHandler{Threshold: Threshold{Level: logrus.DebugLevel, Bubble: true}, name: "bottom", records: &records})
	l.PushHandler(recordingHandler{Threshold: Threshold{Level: logrus.WarnLevel, Bubble: false}, name: "top", records: &records})

	l.Info("info")
	l.Error("error")

	expected := []string{"bottom:info", "top:error"}
	if diff := deep.Equal(records, expected); diff != nil {
		t.Error(diff)
	}
}

func TestHandlerErrorDoesNotStopOthers(t *testing.T) {
	var records []string
	l := New("pageon")
	l.PushHandler(recordingHandler{Threshold: Threshold{Level: logrus.DebugLevel, Bubble: true}, name: "bottom", records: &records})
	l.PushHandler(recordingHandler{Threshold: Threshold{Level: logrus.DebugLevel, Bubble: true}, name: "top", records: &records, err: errors.New("boom")})

	entry := l.WithField("k", "v")
	entry.Level = logrus.WarnLevel
	entry.Message = "warn"

	err := l.dispatch(entry)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected handler error, got %v", err)
	}

	expected := []string{"top:warn", "bottom:warn"}
	if diff := deep.Equal(records, expected); diff != nil {
		t.Error(diff)
	}
}

func TestPushPopHandler(t *testing.T) {
	l := New("pageon")
	if len(l.Handlers()) != 0 {
		t.Fatalf("new logger should not have handlers")
	}

	if _, err := l.PopHandler(); err == nil {
		t.Errorf("pop from an empty stack should fail")
	}

	first := NewStreamHandler(&bytes.Buffer{}, logrus.DebugLevel, true)
	second := NewStreamHandler(&bytes.Buffer{}, logrus.WarnLevel, true)
	l.PushHandler(first)
	l.PushHandler(second)

	handlers := l.Handlers()
	if len(handlers) != 2 || handlers[0] != Handler(second) || handlers[1] != Handler(first) {
		t.Errorf("unexpected stack: %v", handlers)
	}

	h, err := l.PopHandler()
	if err != nil {
		t.Fatal(err)
	}
	if h != Handler(second) {
		t.Errorf("popped the wrong handler")
	}
}

func TestStreamHandlerChannelField(t *testing.T) {
	var buf bytes.Buffer
	l := New("pageon")
	l.PushHandler(NewJSONStreamHandler(&buf, logrus.InfoLevel, true))

	l.Debug("hidden")
	l.WithField("page", "home").Info("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var record map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatal(err)
	}

	if record[ChannelField] != "pageon" || record["page"] != "home" || record["msg"] != "visible" || record["level"] != "info" {
		t.Errorf("unexpected record: %v", record)
	}
}
