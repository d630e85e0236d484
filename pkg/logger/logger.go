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
	"io/ioutil"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ChannelField is attached to every record with the logger name
const ChannelField = "channel"

// Handler receives the records dispatched by a Logger.
// Handle returns true when the record must not reach the handlers below.
// It runs while logrus holds the logger lock, a slow Handle stalls every
// goroutine logging through the same logger.
type Handler interface {
	IsHandling(level logrus.Level) bool
	Handle(entry *logrus.Entry) (bool, error)
}

// Threshold handles records at Level or more severe
type Threshold struct {
	Level  logrus.Level
	Bubble bool
}

// IsHandling checks the level against the threshold
func (t Threshold) IsHandling(level logrus.Level) bool {
	return level <= t.Level
}

// Stop reports whether a handled record stops here
func (t Threshold) Stop() bool {
	return !t.Bubble
}

// Logger is a named logrus entry whose records go through a stack of handlers
type Logger struct {
	*logrus.Entry

	name string

	mu       sync.RWMutex
	handlers []Handler
	fallback Handler
}

// New creates a logger without handlers.
// Until a handler is pushed, records are written to stderr.
func New(name string) *Logger {
	base := logrus.New()
	base.SetOutput(ioutil.Discard)
	base.SetLevel(logrus.TraceLevel)

	l := &Logger{name: name}
	base.AddHook(dispatcher{logger: l})
	l.Entry = base.WithField(ChannelField, name)

	return l
}

// Name returns the channel name
func (l *Logger) Name() string {
	return l.name
}

// PushHandler puts h on top of the stack
func (l *Logger) PushHandler(h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.handlers = append([]Handler{h}, l.handlers...)
}

// PopHandler removes the handler on top of the stack
func (l *Logger) PopHandler() (Handler, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.handlers) == 0 {
		return nil, errors.New("you tried to pop from an empty handler stack")
	}

	h := l.handlers[0]
	l.handlers = l.handlers[1:]

	return h, nil
}

// Handlers returns the stack, top first
func (l *Logger) Handlers() []Handler {
	l.mu.RLock()
	defer l.mu.RUnlock()

	handlers := make([]Handler, len(l.handlers))
	copy(handlers, l.handlers)

	return handlers
}

func (l *Logger) dispatch(entry *logrus.Entry) error {
	handlers := l.Handlers()
	if len(handlers) == 0 {
		handlers = []Handler{l.defaultHandler()}
	}

	var msgs []string
	for _, h := range handlers {
		if !h.IsHandling(entry.Level) {
			continue
		}

		stop, err := h.Handle(entry)
		if err != nil {
			msgs = append(msgs, err.Error())
		}

		if stop {
			break
		}
	}

	if len(msgs) > 0 {
		return errors.Errorf("%s: %s", l.name, strings.Join(msgs, "; "))
	}

	return nil
}

func (l *Logger) defaultHandler() Handler {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fallback == nil {
		l.fallback = NewStreamHandler(os.Stderr, logrus.DebugLevel, true)
	}

	return l.fallback
}

// dispatcher hands every logrus record to the handler stack
type dispatcher struct {
	logger *Logger
}

func (d dispatcher) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (d dispatcher) Fire(entry *logrus.Entry) error {
	return d.logger.dispatch(entry)
}
