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
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// ErrEmptyWebhook is returned when a webhook is built from a blank url
var ErrEmptyWebhook = errors.New("slack webhook url is empty")

// Channel overrides the default channel of the webhook
type Channel string

// Webhook is where messages are posted
type Webhook struct {
	URL     string
	Channel Channel
}

// NewWebhook refuses a blank url. channel may be empty.
func NewWebhook(rawURL, channel string) (Webhook, error) {
	rawURL = strings.TrimSpace(rawURL)
	if len(rawURL) == 0 {
		return Webhook{}, ErrEmptyWebhook
	}

	return Webhook{
		URL:     rawURL,
		Channel: Channel(strings.TrimSpace(channel)),
	}, nil
}

// Validate checks that the url is an absolute http(s) url
func (w Webhook) Validate() error {
	u, err := url.Parse(w.URL)
	if err != nil {
		return errors.Wrap(err, "parse slack webhook url")
	}

	if (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
		return fmt.Errorf("slack webhook url should be an absolute http(s) url: %s", u.Redacted())
	}

	return nil
}

// Username is the display name of the messages
type Username string

// Icon decorates messages with an emoji or an image
type Icon interface {
	apply(msg *slack.WebhookMessage)
	String() string
}

// EmojiIcon is an emoji name like rocket or :rocket:
type EmojiIcon string

func (e EmojiIcon) apply(msg *slack.WebhookMessage) {
	msg.IconEmoji = e.String()
}

func (e EmojiIcon) String() string {
	return fmt.Sprintf(":%s:", strings.Trim(string(e), ":"))
}

// URLIcon is an image url
type URLIcon string

func (u URLIcon) apply(msg *slack.WebhookMessage) {
	msg.IconURL = u.String()
}

func (u URLIcon) String() string {
	return string(u)
}

// ResolveIcon prefers the emoji over the url. It returns nil when both are empty.
func ResolveIcon(emoji, iconURL string) Icon {
	if len(emoji) > 0 {
		return EmojiIcon(emoji)
	}

	if len(iconURL) > 0 {
		return URLIcon(iconURL)
	}

	return nil
}

// User is the identity messages are posted with
type User struct {
	Username Username
	Icon     Icon
}

// NewUser creates a user, the icon is optional
func NewUser(username string, icon Icon) User {
	return User{
		Username: Username(username),
		Icon:     icon,
	}
}

// Config groups the destination and the identity
type Config struct {
	Webhook Webhook
	User    User
}
