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

package bootstrap

import (
	"github.com/pkg/errors"
	Logger "github.com/sirupsen/logrus"

	"github.com/DevopsArtFactory/forkconfig/pkg/builder"
	"github.com/DevopsArtFactory/forkconfig/pkg/constants"
	"github.com/DevopsArtFactory/forkconfig/pkg/container"
	"github.com/DevopsArtFactory/forkconfig/pkg/errhandler"
	"github.com/DevopsArtFactory/forkconfig/pkg/logger"
	"github.com/DevopsArtFactory/forkconfig/pkg/schemas"
	"github.com/DevopsArtFactory/forkconfig/pkg/slack"
)

// ErrNoContainer is returned when Initialize gets a nil container
var ErrNoContainer = errors.New("no container provided")

// Result is what Initialize wired. Logger and ErrorHandler are nil in debug mode.
type Result struct {
	Debug        bool
	Logger       *logger.Logger
	ErrorHandler *errhandler.Handler
	Slack        *slack.Handler
}

// Option customizes the shared logger before the slack handler is attached
type Option func(l *logger.Logger)

// WithHandler pushes h under the slack handler
func WithHandler(h logger.Handler) Option {
	return func(l *logger.Logger) {
		l.PushHandler(h)
	}
}

// Initialize does nothing in debug mode. Otherwise it registers the shared
// logger, binds the error handler to it and attaches slack when configured.
// Parameters are resolved first so a failure leaves the container untouched.
func Initialize(c container.Container, opts ...Option) (*Result, error) {
	if c == nil {
		return nil, ErrNoContainer
	}

	params, err := builder.ResolveParameters(c)
	if err != nil {
		return nil, err
	}

	if params.Debug {
		Logger.Debugf("debug mode: %s is not registered", constants.LoggerServiceID)
		return &Result{Debug: true}, nil
	}

	l := logger.New(constants.LoggerName)
	for _, opt := range opts {
		opt(l)
	}
	c.Set(constants.LoggerServiceID, l)

	return &Result{
		Logger:       l,
		ErrorHandler: errhandler.New(l),
		Slack:        attachSlack(params, l),
	}, nil
}

// AttachSlackIfConfigured pushes a slack handler on l when a webhook is declared
// and debug mode is off. Every call pushes a new handler.
func AttachSlackIfConfigured(c container.Container, l *logger.Logger) (*slack.Handler, error) {
	if c == nil {
		return nil, ErrNoContainer
	}

	params, err := builder.ResolveParameters(c)
	if err != nil {
		return nil, err
	}

	return attachSlack(params, l), nil
}

// attachSlack only skips on a blank webhook. A malformed one is attached
// with a warning, its failed deliveries are reported by logrus on stderr.
func attachSlack(params schemas.Parameters, l *logger.Logger) *slack.Handler {
	if !params.Enabled() {
		Logger.Debugf("slack handler is not attached: debug=%t, webhook declared=%t", params.Debug, params.Slack != nil)
		return nil
	}

	webhook, err := slack.NewWebhook(params.Slack.Webhook, params.Slack.Channel)
	if err != nil {
		Logger.Warnf("slack handler is not attached: %s", err.Error())
		return nil
	}

	if err := webhook.Validate(); err != nil {
		Logger.Warnf("slack handler is attached with a suspicious webhook: %s", err.Error())
	}

	h := slack.NewHandler(slack.Config{
		Webhook: webhook,
		User:    slack.NewUser(params.Slack.Username, slack.ResolveIcon(params.Slack.IconEmoji, params.Slack.IconURL)),
	}, constants.DefaultSlackLevel, params.Slack.Bubble)

	l.PushHandler(h)
	Logger.Debugf("slack handler is attached to %s", l.Name())

	return h
}

// SharedLogger returns the logger registered by Initialize
func SharedLogger(c container.Container) (*logger.Logger, error) {
	s, err := c.Get(constants.LoggerServiceID)
	if err != nil {
		return nil, err
	}

	l, ok := s.(*logger.Logger)
	if !ok {
		return nil, errors.Errorf("%s is not a logger: %T", constants.LoggerServiceID, s)
	}

	return l, nil
}

// SlackHandlers returns the slack handlers attached to l
func SlackHandlers(l *logger.Logger) []*slack.Handler {
	var handlers []*slack.Handler
	for _, h := range l.Handlers() {
		if sh, ok := h.(*slack.Handler); ok {
			handlers = append(handlers, sh)
		}
	}

	return handlers
}
