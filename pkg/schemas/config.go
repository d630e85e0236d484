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

import "strings"

// Parameters are the resolved startup parameters
type Parameters struct {
	// Debug disables the logger, the error handler and slack
	Debug bool `json:"debug"`

	// SiteDomain is the fallback display name of slack notifications
	SiteDomain string `json:"site_domain,omitempty"`

	// Slack is nil when no webhook is declared
	Slack *SlackParameters `json:"slack,omitempty"`
}

// SlackParameters configures the slack handler
type SlackParameters struct {
	Webhook   string `json:"webhook"`
	Channel   string `json:"channel,omitempty"`
	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
	IconURL   string `json:"icon_url,omitempty"`
	Bubble    bool   `json:"bubble"`
}

// Enabled reports whether a slack handler should be attached
func (p Parameters) Enabled() bool {
	return !p.Debug && p.Slack != nil && p.Slack.HasWebhook()
}

// HasWebhook checks that the webhook is not blank
func (s SlackParameters) HasWebhook() bool {
	return len(strings.TrimSpace(s.Webhook)) > 0
}
