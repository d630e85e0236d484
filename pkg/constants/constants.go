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

package constants

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultLogLevel is the default global verbosity
	DefaultLogLevel = logrus.WarnLevel

	// EmptyString is the empty string
	EmptyString = ""

	// LoggerName is the channel name of the shared logger
	LoggerName = "pageon"

	// LoggerServiceID is the registry key of the shared logger
	LoggerServiceID = "pageon.monolog"

	// KernelDebugParameter is the primary debug flag
	KernelDebugParameter = "kernel.debug"

	// ForkDebugParameter is used when kernel.debug is not declared
	ForkDebugParameter = "fork.debug"

	// SlackWebhookParameter is the webhook url. Its presence gates the slack handler.
	SlackWebhookParameter = "pageon.slack_webhook"

	// SlackChannelParameter overrides the channel of the webhook
	SlackChannelParameter = "pageon.slack_channel"

	// SlackUsernameParameter is the display name of notifications
	SlackUsernameParameter = "pageon.slack_username"

	// SlackIconEmojiParameter is the emoji icon of notifications
	SlackIconEmojiParameter = "pageon.slack_icon.emoji"

	// SlackIconURLParameter is the image icon of notifications
	SlackIconURLParameter = "pageon.slack_icon.url"

	// SlackBubbleParameter decides whether records continue past the slack handler
	SlackBubbleParameter = "pageon.slack_bubble"

	// SiteDomainParameter is the fallback display name
	SiteDomainParameter = "site.domain"

	// DefaultSlackBubble is used when pageon.slack_bubble is not declared
	DefaultSlackBubble = true

	// DefaultSlackLevel is the minimum level forwarded to slack
	DefaultSlackLevel = logrus.WarnLevel

	// DefaultSlackTimeout is the timeout of one webhook request
	DefaultSlackTimeout = 10 * time.Second

	// DefaultConfigName is the parameters file looked up in the home directory
	DefaultConfigName = ".forkconfig"

	// EnvPrefix is empty so that PAGEON_SLACK_WEBHOOK maps to pageon.slack_webhook
	EnvPrefix = ""

	// S3Prefix marks a parameters file stored in s3
	S3Prefix = "s3://"

	// DefaultSlackColor is default slack color
	DefaultSlackColor = "#0BE6C1"
)

var (
	// LogLevelMapper is the default global verbosity
	LogLevelMapper = map[string]logrus.Level{
		"info":    logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"trace":   logrus.TraceLevel,
		"fatal":   logrus.FatalLevel,
		"error":   logrus.ErrorLevel,
	}

	// OutputFormats are the formats of `forkconfig check`
	OutputFormats = []string{"text", "yaml"}

	// SlackColorMapper is the attachment color per level
	SlackColorMapper = map[logrus.Level]string{
		logrus.PanicLevel: "#8b0000",
		logrus.FatalLevel: "#8b0000",
		logrus.ErrorLevel: "#ff0000",
		logrus.WarnLevel:  "#ffd700",
		logrus.InfoLevel:  "#1e90ff",
		logrus.DebugLevel: "#663399",
		logrus.TraceLevel: "#663399",
	}
)
