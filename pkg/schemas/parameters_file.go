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

package schemas

// ParametersFile is the layout of the parameters file.
type ParametersFile struct {
	// Kernel holds the primary debug switch.
	Kernel *DebugSection `yaml:"kernel,omitempty" json:"kernel,omitempty"`

	// Fork is read only when `kernel.debug` is not declared.
	Fork *DebugSection `yaml:"fork,omitempty" json:"fork,omitempty"`

	// Pageon configures the slack notifications of the pageon logger.
	Pageon *PageonSection `yaml:"pageon,omitempty" json:"pageon,omitempty"`

	// Site describes the application.
	Site *SiteSection `yaml:"site,omitempty" json:"site,omitempty"`
}

// DebugSection toggles debug mode.
type DebugSection struct {
	// Debug turns off the logger, the error handler and slack. Defaults to `false`.
	Debug bool `yaml:"debug" json:"debug"`
}

// PageonSection configures the slack handler.
type PageonSection struct {
	// SlackWebhook is the incoming webhook url. Slack is off when it is blank. For example: `https://hooks.slack.com/services/T000/B000/XXXX`
	SlackWebhook string `yaml:"slack_webhook" json:"slack_webhook"`

	// SlackChannel overrides the channel of the webhook. For example: `#alerts`
	SlackChannel string `yaml:"slack_channel,omitempty" json:"slack_channel,omitempty"`

	// SlackUsername is the display name of the messages. Defaults to `site.domain`.
	SlackUsername string `yaml:"slack_username,omitempty" json:"slack_username,omitempty"`

	// SlackIcon is the avatar of the messages.
	SlackIcon *SlackIcon `yaml:"slack_icon,omitempty" json:"slack_icon,omitempty"`

	// SlackBubble passes warnings on to the handlers below slack. Defaults to `true`.
	SlackBubble *bool `yaml:"slack_bubble,omitempty" json:"slack_bubble,omitempty"`
}

// SlackIcon is an emoji or an image. The emoji wins when both are set.
type SlackIcon struct {
	// Emoji name with or without colons. For example: `rocket`
	Emoji string `yaml:"emoji,omitempty" json:"emoji,omitempty"`

	// URL of the image.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
}

// SiteSection describes the application.
type SiteSection struct {
	// Domain is the username of the messages when `pageon.slack_username` is not set.
	Domain string `yaml:"domain" json:"domain"`
}
