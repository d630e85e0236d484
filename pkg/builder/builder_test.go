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

package builder

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/DevopsArtFactory/forkconfig/pkg/container"
	"github.com/DevopsArtFactory/forkconfig/pkg/schemas"
)

func TestIsInDebugMode(t *testing.T) {
	testData := []struct {
		Input    map[string]interface{}
		Expected bool
	}{
		{Input: map[string]interface{}{}, Expected: false},
		{Input: map[string]interface{}{"kernel.debug": true}, Expected: true},
		{Input: map[string]interface{}{"kernel.debug": false}, Expected: false},
		{Input: map[string]interface{}{"fork.debug": true}, Expected: true},
		{Input: map[string]interface{}{"fork.debug": false}, Expected: false},
		{Input: map[string]interface{}{"fork.debug": "false"}, Expected: false},
		{Input: map[string]interface{}{"kernel.debug": false, "fork.debug": true}, Expected: false},
		{Input: map[string]interface{}{"kernel.debug": true, "fork.debug": false}, Expected: true},
	}

	for _, td := range testData {
		output, err := IsInDebugMode(container.FromMap(td.Input))
		if err != nil {
			t.Errorf("unexpected error for %v: %v", td.Input, err)
			continue
		}

		if output != td.Expected {
			t.Errorf("expected: %t, output: %t, input: %v", td.Expected, output, td.Input)
		}
	}
}

func TestResolveParameters(t *testing.T) {
	testData := []struct {
		Input    map[string]interface{}
		Expected schemas.Parameters
	}{
		{
			Input: map[string]interface{}{
				"site.domain": "example.com",
			},
			Expected: schemas.Parameters{
				SiteDomain: "example.com",
			},
		},
		{
			Input: map[string]interface{}{
				"pageon.slack_webhook": " https://hooks.slack.com/services/T/B/X ",
				"site.domain":          "example.com",
			},
			Expected: schemas.Parameters{
				SiteDomain: "example.com",
				Slack: &schemas.SlackParameters{
					Webhook:  "https://hooks.slack.com/services/T/B/X",
					Username: "example.com",
					Bubble:   true,
				},
			},
		},
		{
			Input: map[string]interface{}{
				"fork.debug":              "1",
				"pageon.slack_webhook":    "https://hooks.slack.com/services/T/B/X",
				"pageon.slack_channel":    "#errors",
				"pageon.slack_username":   "deploy-bot",
				"pageon.slack_icon.emoji": "rocket",
				"pageon.slack_icon.url":   "http://x/icon.png",
				"pageon.slack_bubble":     "false",
				"site.domain":             "example.com",
			},
			Expected: schemas.Parameters{
				Debug:      true,
				SiteDomain: "example.com",
				Slack: &schemas.SlackParameters{
					Webhook:   "https://hooks.slack.com/services/T/B/X",
					Channel:   "#errors",
					Username:  "deploy-bot",
					IconEmoji: "rocket",
					IconURL:   "http://x/icon.png",
					Bubble:    false,
				},
			},
		},
		{
			Input: map[string]interface{}{
				"pageon.slack_webhook": "https://hooks.slack.com/services/T/B/X",
				"pageon.slack_bubble":  "sometimes",
			},
			Expected: schemas.Parameters{
				Slack: &schemas.SlackParameters{
					Webhook: "https://hooks.slack.com/services/T/B/X",
					Bubble:  true,
				},
			},
		},
	}

	for _, td := range testData {
		output, err := ResolveParameters(container.FromMap(td.Input))
		if err != nil {
			t.Errorf("unexpected error for %v: %v", td.Input, err)
			continue
		}

		if diff := deep.Equal(output, td.Expected); diff != nil {
			t.Error(diff)
		}
	}
}

func TestResolveParametersEnabled(t *testing.T) {
	testData := []struct {
		Input    map[string]interface{}
		Expected bool
	}{
		{Input: map[string]interface{}{}, Expected: false},
		{Input: map[string]interface{}{"pageon.slack_webhook": ""}, Expected: false},
		{Input: map[string]interface{}{"pageon.slack_webhook": "  "}, Expected: false},
		{Input: map[string]interface{}{"pageon.slack_webhook": "https://hooks.slack.com/x"}, Expected: true},
		{Input: map[string]interface{}{"pageon.slack_webhook": "https://hooks.slack.com/x", "kernel.debug": true}, Expected: false},
	}

	for _, td := range testData {
		output, err := ResolveParameters(container.FromMap(td.Input))
		if err != nil {
			t.Errorf("unexpected error for %v: %v", td.Input, err)
			continue
		}

		if output.Enabled() != td.Expected {
			t.Errorf("expected: %t, output: %t, input: %v", td.Expected, output.Enabled(), td.Input)
		}
	}
}

func TestResolveParametersErrors(t *testing.T) {
	testData := []map[string]interface{}{
		{"kernel.debug": "maybe"},
		{"fork.debug": "sometimes"},
	}

	for _, input := range testData {
		if _, err := ResolveParameters(container.FromMap(input)); err == nil {
			t.Errorf("expected an error for %v", input)
		}
	}

	if _, err := ResolveParameters(nil); err == nil {
		t.Errorf("expected an error without container")
	}
}

func TestCheckValidation(t *testing.T) {
	b := Builder{Config: RefineConfig(Config{LogLevel: " INFO ", Level: "Warning"})}
	if err := b.CheckValidation(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	b.Config.LogLevel = "verbose"
	if err := b.CheckValidation(); err == nil || err.Error() != "log level is not supported: verbose" {
		t.Errorf("validation failed: log level")
	}
	b.Config.LogLevel = "info"

	b.Config.Level = "critical"
	if err := b.CheckValidation(); err == nil || err.Error() != "level is not supported: critical" {
		t.Errorf("validation failed: level")
	}
	b.Config.Level = "error"

	b.Config.Output = "xml"
	if err := b.CheckValidation(); err == nil || err.Error() != "output format is not supported: xml" {
		t.Errorf("validation failed: output")
	}
	b.Config.Output = "yaml"

	b.Config.ConfigFile = "does-not-exist.yaml"
	if err := b.CheckValidation(); err == nil || err.Error() != "parameters file does not exist: does-not-exist.yaml" {
		t.Errorf("validation failed: config file")
	}

	b.Config.ConfigFile = "s3://configs/parameters.yaml"
	if err := b.CheckValidation(); err == nil || err.Error() != "you should specify region to read parameters from aws" {
		t.Errorf("validation failed: s3 without region")
	}

	b.Config.Region = "ap-northeast-2"
	if err := b.CheckValidation(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	b.Config.ConfigFile = ""
	b.Config.Region = ""
	b.Config.SSMPath = "/forkconfig"
	if err := b.CheckValidation(); err == nil {
		t.Errorf("validation failed: ssm without region")
	}
}
