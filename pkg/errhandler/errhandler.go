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

package errhandler

import (
	"fmt"
	"log"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/DevopsArtFactory/forkconfig/pkg/logger"
)

const (
	// TypeField tells whether a record comes from an error or a panic
	TypeField = "type"

	// TraceField holds the stack trace
	TraceField = "trace"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Handler is the error boundary of the application. Entry points run their
// work through it so that failures end up in the logger.
type Handler struct {
	logger *logger.Logger
}

// New binds a boundary to l
func New(l *logger.Logger) *Handler {
	return &Handler{logger: l}
}

// Logger returns the bound logger
func (h *Handler) Logger() *logger.Logger {
	return h.logger
}

// Guard runs fn. A returned error is logged, a panic is recovered, logged and
// returned as an error.
func (h *Handler) Guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = h.handlePanic(r, debug.Stack())
		}
	}()

	if err = fn(); err != nil {
		h.HandleError(err)
	}

	return err
}

// HandleError logs err at error level with its stack trace when it has one
func (h *Handler) HandleError(err error) {
	if err == nil {
		return
	}

	entry := h.logger.WithField(TypeField, "error").WithError(err)
	if st, ok := errors.Cause(err).(stackTracer); ok {
		entry = entry.WithField(TraceField, fmt.Sprintf("%+v", st.StackTrace()))
	} else if st, ok := err.(stackTracer); ok {
		entry = entry.WithField(TraceField, fmt.Sprintf("%+v", st.StackTrace()))
	}

	entry.Error(err.Error())
}

// CapturePanic is deferred by entry points. It logs a panic and panics again.
func (h *Handler) CapturePanic() {
	if r := recover(); r != nil {
		h.handlePanic(r, debug.Stack())
		panic(r)
	}
}

// RedirectStandardLog sends the standard log package to the logger at warning level.
// The returned func restores the previous output.
func (h *Handler) RedirectStandardLog() func() {
	w := h.logger.WithField(TypeField, "stdlog").WriterLevel(logrus.WarnLevel)

	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(w)
	log.SetFlags(0)

	return func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		w.Close()
	}
}

func (h *Handler) handlePanic(r interface{}, stack []byte) error {
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	err = errors.Wrap(err, "recovered from panic")

	h.logger.WithField(TypeField, "panic").
		WithField(TraceField, string(stack)).
		WithError(err).
		Error(err.Error())

	return err
}
