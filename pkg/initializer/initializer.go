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

package initializer

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/ghodss/yaml"
	Logger "github.com/sirupsen/logrus"

	"github.com/DevopsArtFactory/forkconfig/pkg/constants"
	"github.com/DevopsArtFactory/forkconfig/pkg/schemas"
	"github.com/DevopsArtFactory/forkconfig/pkg/slack"
	"github.com/DevopsArtFactory/forkconfig/pkg/tool"
)

// Answers are collected by `forkconfig init`
type Answers struct {
	SiteDomain string `survey:"site_domain"`
	Webhook    string `survey:"slack_webhook"`
	Channel    string `survey:"slack_channel"`
	Username   string `survey:"slack_username"`
	IconEmoji  string `survey:"slack_icon_emoji"`
	Debug      bool   `survey:"debug"`
}

type Initializer struct {
	Path   string
	Out    io.Writer
	Logger *Logger.Logger
	Ask    func(qs []*survey.Question, response interface{}, opts ...survey.AskOpt) error
}

func NewInitializer(path string, out io.Writer) Initializer {
	if len(path) == 0 {
		path = constants.DefaultConfigName + ".yaml"
	}

	return Initializer{
		Path:   path,
		Out:    out,
		Logger: Logger.New(),
		Ask:    survey.Ask,
	}
}

// RunInit asks for the parameters and writes them to the parameters file
func (i Initializer) RunInit() error {
	if tool.FileExists(i.Path) {
		return fmt.Errorf("parameters file already exists: %s", i.Path)
	}

	var answers Answers
	if err := i.Ask(Questions(), &answers); err != nil {
		return err
	}

	data, err := yaml.Marshal(Document(answers))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(i.Path); !tool.FileExists(dir) {
		i.Logger.Debugf("%s directory does not exist", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	i.Logger.Debugf("starts to write parameters: %s", i.Path)
	if err := ioutil.WriteFile(i.Path, data, 0600); err != nil {
		return err
	}

	tool.Blue.Fprintf(i.Out, "parameters file is created: %s", i.Path)
	return nil
}

// Questions for the parameters file
func Questions() []*survey.Question {
	return []*survey.Question{
		{
			Name:   "site_domain",
			Prompt: &survey.Input{Message: "Site domain:", Help: "Used as the slack username when none is set"},
		},
		{
			Name:     "slack_webhook",
			Prompt:   &survey.Input{Message: "Slack webhook url (empty to disable):"},
			Validate: validateWebhook,
		},
		{
			Name:   "slack_channel",
			Prompt: &survey.Input{Message: "Slack channel (empty for the webhook default):"},
		},
		{
			Name:   "slack_username",
			Prompt: &survey.Input{Message: "Slack username (empty for the site domain):"},
		},
		{
			Name:   "slack_icon_emoji",
			Prompt: &survey.Input{Message: "Slack icon emoji:"},
		},
		{
			Name:   "debug",
			Prompt: &survey.Confirm{Message: "Turn on debug mode?", Default: false},
		},
	}
}

func validateWebhook(ans interface{}) error {
	s, ok := ans.(string)
	if !ok || len(s) == 0 {
		return nil
	}

	webhook, err := slack.NewWebhook(s, constants.EmptyString)
	if err != nil {
		return err
	}

	return webhook.Validate()
}

// Document lays out the answers as a parameters file
func Document(a Answers) schemas.ParametersFile {
	doc := schemas.ParametersFile{
		Kernel: &schemas.DebugSection{Debug: a.Debug},
	}

	if len(a.SiteDomain) > 0 {
		doc.Site = &schemas.SiteSection{Domain: a.SiteDomain}
	}

	if len(a.Webhook) == 0 {
		return doc
	}

	doc.Pageon = &schemas.PageonSection{
		SlackWebhook:  a.Webhook,
		SlackChannel:  a.Channel,
		SlackUsername: a.Username,
	}
	if len(a.IconEmoji) > 0 {
		doc.Pageon.SlackIcon = &schemas.SlackIcon{Emoji: a.IconEmoji}
	}

	return doc
}
