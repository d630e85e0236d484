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

package slack

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"github.com/DevopsArtFactory/forkconfig/pkg/constants"
	"github.com/DevopsArtFactory/forkconfig/pkg/logger"
)

// Handler posts records to a slack webhook.
//
// Delivery is synchronous. logrus fires hooks while holding the logger lock,
// so every goroutine logging through the same logger waits for the post,
// up to Client.Timeout (DefaultSlackTimeout with NewHandler).
type Handler struct {
	logger.Threshold

	Config Config
	Client *http.Client
}

// NewHandler creates a handler forwarding records at level or more severe
func NewHandler(config Config, level logrus.Level, bubble bool) *Handler {
	return &Handler{
		Threshold: logger.Threshold{
			Level:  level,
			Bubble: bubble,
		},
		Config: config,
		Client: &http.Client{Timeout: constants.DefaultSlackTimeout},
	}
}

// Handle sends the record. Delivery errors are returned to the logger.
func (h *Handler) Handle(entry *logrus.Entry) (bool, error) {
	if err := slack.PostWebhookCustomHTTP(h.Config.Webhook.URL, h.Client, h.Message(entry)); err != nil {
		return h.Stop(), errors.Wrap(err, "send slack webhook")
	}

	return h.Stop(), nil
}

// Message builds the webhook payload of a record
func (h *Handler) Message(entry *logrus.Entry) *slack.WebhookMessage {
	msg := &slack.WebhookMessage{
		Username: string(h.Config.User.Username),
		Channel:  string(h.Config.Webhook.Channel),
		Text:     fmt.Sprintf("[%s] %s", strings.ToUpper(entry.Level.String()), entry.Message),
	}

	if h.Config.User.Icon != nil {
		h.Config.User.Icon.apply(msg)
	}

	color, ok := constants.SlackColorMapper[entry.Level]
	if !ok {
		color = constants.DefaultSlackColor
	}

	attachment := slack.Attachment{
		Color:  color,
		Fields: fields(entry.Data),
	}

	if !entry.Time.IsZero() {
		attachment.Ts = json.Number(strconv.FormatInt(entry.Time.Unix(), 10))
	}

	if ch, ok := entry.Data[logger.ChannelField]; ok {
		attachment.Footer = fmt.Sprint(ch)
	}

	msg.Attachments = []slack.Attachment{attachment}

	return msg
}

// fields lists record data sorted by key, without the logger channel
func fields(data logrus.Fields) []slack.AttachmentField {
	var keys []string
	for k := range data {
		if k == logger.ChannelField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var fs []slack.AttachmentField
	for _, k := range keys {
		value := data[k]
		if err, ok := value.(error); ok {
			value = err.Error()
		}

		fs = append(fs, slack.AttachmentField{
			Title: k,
			Value: fmt.Sprint(value),
			Short: len(fmt.Sprint(value)) < 40,
		})
	}

	return fs
}
