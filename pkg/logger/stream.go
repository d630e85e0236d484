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
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// StreamHandler writes formatted records to a writer
type StreamHandler struct {
	Threshold

	Out       io.Writer
	Formatter logrus.Formatter

	mu sync.Mutex
}

// NewStreamHandler creates a text stream handler
func NewStreamHandler(out io.Writer, level logrus.Level, bubble bool) *StreamHandler {
	return &StreamHandler{
		Threshold: Threshold{Level: level, Bubble: bubble},
		Out:       out,
		Formatter: &logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		},
	}
}

// NewJSONStreamHandler creates a stream handler writing one json object per line
func NewJSONStreamHandler(out io.Writer, level logrus.Level, bubble bool) *StreamHandler {
	h := NewStreamHandler(out, level, bubble)
	h.Formatter = &logrus.JSONFormatter{}

	return h
}

func (h *StreamHandler) Handle(entry *logrus.Entry) (bool, error) {
	b, err := h.Formatter.Format(entry)
	if err != nil {
		return h.Stop(), err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err = h.Out.Write(b)
	return h.Stop(), err
}
