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
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	Logger "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/DevopsArtFactory/forkconfig/pkg/constants"
	"github.com/DevopsArtFactory/forkconfig/pkg/container"
	"github.com/DevopsArtFactory/forkconfig/pkg/schemas"
	"github.com/DevopsArtFactory/forkconfig/pkg/tool"
)

type Builder struct { // Do not add comments for this struct
	// Config from command
	Config Config

	// Parameters resolved from the container
	Parameters schemas.Parameters
}

type Config struct { // Do not add comments for this struct
	ConfigFile string `json:"config"`
	LogLevel   string `json:"log_level"`
	Level      string `json:"level"`
	Message    string `json:"message"`
	NoEnv      bool   `json:"no_env"`
	Output     string `json:"output"`
	Verbose    bool   `json:"verbose"`
	Region     string `json:"region"`
	SSMPath    string `json:"ssm_path"`
	AssumeRole string `json:"assume_role"`
	Profile    string `json:"profile"`
}

// NewBuilder creates a builder. Flags are read from viper when config is nil.
func NewBuilder(config *Config) (Builder, error) {
	builder := Builder{}

	// parsing argument
	if config == nil {
		c := argumentParsing()
		config = &c
	}

	builder.Config = *config

	return builder, nil
}

// SetParameters resolves the parameters of c into the builder
func (b Builder) SetParameters(c container.Container) (Builder, error) {
	params, err := ResolveParameters(c)
	if err != nil {
		return b, err
	}
	b.Parameters = params

	return b, nil
}

// CheckValidation validates flags
func (b Builder) CheckValidation() error {
	if len(b.Config.LogLevel) > 0 {
		if _, ok := constants.LogLevelMapper[b.Config.LogLevel]; !ok {
			return fmt.Errorf("log level is not supported: %s", b.Config.LogLevel)
		}
	}

	if len(b.Config.Level) > 0 {
		if _, ok := constants.LogLevelMapper[b.Config.Level]; !ok {
			return fmt.Errorf("level is not supported: %s", b.Config.Level)
		}
	}

	if len(b.Config.Output) > 0 && !tool.IsStringInArray(b.Config.Output, constants.OutputFormats) {
		return fmt.Errorf("output format is not supported: %s", b.Config.Output)
	}

	if b.Config.UseAWS() {
		if len(b.Config.Region) == 0 {
			return errors.New("you should specify region to read parameters from aws")
		}
	} else if len(b.Config.ConfigFile) > 0 && !tool.FileExists(b.Config.ConfigFile) {
		return fmt.Errorf("parameters file does not exist: %s", b.Config.ConfigFile)
	}

	return nil
}

// FromS3 checks if the parameters file is stored in s3
func (c Config) FromS3() bool {
	return strings.HasPrefix(c.ConfigFile, constants.S3Prefix)
}

// UseAWS checks if any parameter is read from aws
func (c Config) UseAWS() bool {
	return c.FromS3() || len(c.SSMPath) > 0
}

// ResolveParameters reads every startup parameter once
func ResolveParameters(c container.Container) (schemas.Parameters, error) {
	var params schemas.Parameters
	if c == nil {
		return params, errors.New("no container provided")
	}

	debug, err := IsInDebugMode(c)
	if err != nil {
		return params, err
	}
	params.Debug = debug

	params.SiteDomain, err = stringParameter(c, constants.SiteDomainParameter, constants.EmptyString)
	if err != nil {
		return params, err
	}

	if !c.HasParameter(constants.SlackWebhookParameter) {
		return params, nil
	}

	slack, err := resolveSlackParameters(c, params.SiteDomain)
	if err != nil {
		return params, err
	}
	params.Slack = &slack

	return params, nil
}

// IsInDebugMode uses the value of kernel.debug, then fork.debug, else false.
// A declared parameter with a false value is not debug mode.
func IsInDebugMode(c container.Container) (bool, error) {
	for _, name := range []string{constants.KernelDebugParameter, constants.ForkDebugParameter} {
		if c.HasParameter(name) {
			return boolParameter(c, name, false)
		}
	}

	return false, nil
}

func resolveSlackParameters(c container.Container, siteDomain string) (schemas.SlackParameters, error) {
	var (
		s   schemas.SlackParameters
		err error
	)

	if s.Webhook, err = stringParameter(c, constants.SlackWebhookParameter, constants.EmptyString); err != nil {
		return s, err
	}
	s.Webhook = strings.TrimSpace(s.Webhook)

	if s.Channel, err = stringParameter(c, constants.SlackChannelParameter, constants.EmptyString); err != nil {
		return s, err
	}

	if s.Username, err = stringParameter(c, constants.SlackUsernameParameter, siteDomain); err != nil {
		return s, err
	}

	if s.IconEmoji, err = stringParameter(c, constants.SlackIconEmojiParameter, constants.EmptyString); err != nil {
		return s, err
	}

	if s.IconURL, err = stringParameter(c, constants.SlackIconURLParameter, constants.EmptyString); err != nil {
		return s, err
	}

	if s.Bubble, err = boolParameter(c, constants.SlackBubbleParameter, constants.DefaultSlackBubble); err != nil {
		Logger.Warnf("%s, using %t", err.Error(), constants.DefaultSlackBubble)
		s.Bubble = constants.DefaultSlackBubble
	}

	return s, nil
}

func stringParameter(c container.Container, name, fallback string) (string, error) {
	v := container.Parameter(c, name, fallback)
	if v == nil {
		return fallback, nil
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fallback, errors.Wrapf(err, "parameter %s", name)
	}

	return s, nil
}

func boolParameter(c container.Container, name string, fallback bool) (bool, error) {
	v := container.Parameter(c, name, fallback)
	if v == nil {
		return fallback, nil
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return fallback, errors.Wrapf(err, "parameter %s", name)
	}

	return b, nil
}

// Parsing Config from command
func argumentParsing() Config {
	keys := viper.AllKeys()
	config := Config{}

	val := reflect.ValueOf(&config).Elem()
	for i := 0; i < val.NumField(); i++ {
		typeField := val.Type().Field(i)
		key := strings.ReplaceAll(typeField.Tag.Get("json"), "_", "-")
		if tool.IsStringInArray(key, keys) {
			t := val.FieldByName(typeField.Name)
			if t.CanSet() {
				switch t.Kind() {
				case reflect.String:
					t.SetString(viper.GetString(key))
				case reflect.Bool:
					t.SetBool(viper.GetBool(key))
				}
			}
		}
	}

	return RefineConfig(config)
}

// RefineConfig refines the values for clear setting
func RefineConfig(config Config) Config {
	config.LogLevel = strings.ToLower(strings.TrimSpace(config.LogLevel))
	config.Level = strings.ToLower(strings.TrimSpace(config.Level))
	config.Output = strings.ToLower(strings.TrimSpace(config.Output))

	return config
}
