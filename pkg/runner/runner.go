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

package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	Logger "github.com/sirupsen/logrus"

	"github.com/DevopsArtFactory/forkconfig/pkg/aws"
	"github.com/DevopsArtFactory/forkconfig/pkg/bootstrap"
	"github.com/DevopsArtFactory/forkconfig/pkg/builder"
	"github.com/DevopsArtFactory/forkconfig/pkg/constants"
	"github.com/DevopsArtFactory/forkconfig/pkg/container"
	"github.com/DevopsArtFactory/forkconfig/pkg/initializer"
	"github.com/DevopsArtFactory/forkconfig/pkg/logger"
	"github.com/DevopsArtFactory/forkconfig/pkg/slack"
	"github.com/DevopsArtFactory/forkconfig/pkg/templates"
	"github.com/DevopsArtFactory/forkconfig/pkg/tool"
)

type Runner struct {
	Logger     *Logger.Logger
	Builder    builder.Builder
	Container  *container.ParameterBag
	Result     *bootstrap.Result
	Out        io.Writer
	Stderr     io.Writer
	FuncMapper map[string]func(ctx context.Context, args []string) error
}

// Summary is the data rendered by `forkconfig check`
type Summary struct {
	Debug           bool
	SiteDomain      string
	LoggerName      string
	LoggerServiceID string
	HandlerCount    int
	SlackEnabled    bool
	Webhook         string
	Channel         string
	Username        string
	Icon            string
	Level           string
	Bubble          bool
}

// NewRunner loads the parameters and bootstraps the shared logger
func NewRunner(newBuilder builder.Builder, out, stderr io.Writer) (Runner, error) {
	newRunner := Runner{
		Logger:  Logger.New(),
		Builder: newBuilder,
		Out:     out,
		Stderr:  stderr,
	}
	newRunner.LogFormatting(newBuilder.Config.LogLevel)

	c, err := loadContainer(newBuilder.Config)
	if err != nil {
		return Runner{}, err
	}
	newRunner.Container = c

	newRunner.Builder, err = newBuilder.SetParameters(c)
	if err != nil {
		return Runner{}, err
	}

	newRunner.Logger.Debugf("parameters are loaded from %q", newBuilder.Config.ConfigFile)

	newRunner.Result, err = bootstrap.Initialize(c, bootstrap.WithHandler(logger.NewStreamHandler(stderr, Logger.DebugLevel, true)))
	if err != nil {
		return Runner{}, err
	}

	newRunner.FuncMapper = map[string]func(ctx context.Context, args []string) error{
		"check":  newRunner.Check,
		"notify": newRunner.Notify,
		"run":    newRunner.RunCommand,
	}

	return newRunner, nil
}

// loadContainer reads the parameters file from disk or s3 and merges ssm parameters
func loadContainer(config builder.Config) (*container.ParameterBag, error) {
	if !config.UseAWS() {
		return container.Load(config.ConfigFile, !config.NoEnv)
	}

	client, err := aws.BootstrapServices(config.Region, config.AssumeRole, config.Profile)
	if err != nil {
		return nil, err
	}

	var c *container.ParameterBag
	if config.FromS3() {
		body, err := client.S3Service.GetParametersFile(aws.FilterS3Path(config.ConfigFile))
		if err != nil {
			return nil, err
		}

		c, err = container.LoadBytes(config.ConfigFile, body, !config.NoEnv)
		if err != nil {
			return nil, err
		}
	} else {
		c, err = container.Load(config.ConfigFile, !config.NoEnv)
		if err != nil {
			return nil, err
		}
	}

	if len(config.SSMPath) > 0 {
		params, err := client.SSMService.GetParametersByPath(config.SSMPath)
		if err != nil {
			return nil, err
		}
		c.Merge(params)
	}

	return c, nil
}

// SetupBuilder setup builder struct for configuration
func SetupBuilder() (builder.Builder, error) {
	builderSt, err := builder.NewBuilder(nil)
	if err != nil {
		return builder.Builder{}, err
	}

	if err := builderSt.CheckValidation(); err != nil {
		return builder.Builder{}, err
	}

	return builderSt, nil
}

// Start function is the starting point of all processes.
func Start(ctx context.Context, builderSt builder.Builder, mode string, args []string, out, stderr io.Writer) error {
	runner, err := NewRunner(builderSt, out, stderr)
	if err != nil {
		return err
	}

	return runner.Run(ctx, mode, args)
}

// Initialize creates a parameters file
func Initialize(out io.Writer, args []string) error {
	if len(args) > 1 {
		return errors.New("usage: forkconfig init [path]")
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}

	return initializer.NewInitializer(path, out).RunInit()
}

// LogFormatting sets log format
func (r Runner) LogFormatting(logLevel string) {
	r.Logger.SetOutput(r.Stderr)
	level, ok := constants.LogLevelMapper[logLevel]
	if !ok {
		level = constants.DefaultLogLevel
	}
	r.Logger.SetLevel(level)
}

// Run executes the function of mode
func (r Runner) Run(ctx context.Context, mode string, args []string) error {
	f, ok := r.FuncMapper[mode]
	if !ok {
		return fmt.Errorf("no function exists to run for %s", mode)
	}

	if r.Result.ErrorHandler != nil {
		defer r.Result.ErrorHandler.CapturePanic()
	}

	return f(ctx, args)
}

// Check prints what has been wired
func (r Runner) Check(_ context.Context, _ []string) error {
	summary := r.Summary()

	if r.Builder.Config.Output == "yaml" {
		return tool.PrintYAML(r.Out, struct {
			Parameters interface{} `json:"parameters"`
			Services   []string    `json:"services"`
			Handlers   int         `json:"handlers"`
		}{
			Parameters: maskParameters(r.Builder),
			Services:   r.Container.ServiceIDs(),
			Handlers:   summary.HandlerCount,
		})
	}

	funcMap := template.FuncMap{
		"decorate": tool.DecorateAttr,
		"status":   tool.Status,
	}

	t := template.Must(template.New("Bootstrap Summary").Funcs(funcMap).Parse(templates.BootstrapSummary))

	if err := tool.PrintTemplate(r.Out, summary, t); err != nil {
		return err
	}

	if r.Result.Logger != nil {
		tool.PrintTable(r.Out, []string{"Order", "Handler", "Level", "Bubble"}, handlerRows(r.Result.Logger.Handlers()))
	}

	return nil
}

// Summary collects the state of the bootstrap
func (r Runner) Summary() Summary {
	params := r.Builder.Parameters
	summary := Summary{
		Debug:           r.Result.Debug,
		SiteDomain:      params.SiteDomain,
		LoggerName:      constants.LoggerName,
		LoggerServiceID: constants.LoggerServiceID,
	}

	if r.Result.Logger != nil {
		summary.HandlerCount = len(r.Result.Logger.Handlers())
	}

	if r.Result.Slack != nil {
		h := r.Result.Slack
		summary.SlackEnabled = true
		summary.Webhook = tool.MaskSecret(h.Config.Webhook.URL)
		summary.Channel = string(h.Config.Webhook.Channel)
		summary.Username = string(h.Config.User.Username)
		if h.Config.User.Icon != nil {
			summary.Icon = h.Config.User.Icon.String()
		}
		summary.Level = h.Level.String()
		summary.Bubble = h.Bubble
	}

	return summary
}

// Notify logs the message through the shared logger
func (r Runner) Notify(_ context.Context, args []string) error {
	if r.Result.Debug {
		return errors.New("debug mode is on: nothing is wired to notify")
	}

	message := r.Builder.Config.Message
	if len(message) == 0 {
		message = strings.Join(args, " ")
	}

	if len(message) == 0 {
		return errors.New("usage: forkconfig notify --message=<message> [--level=warning]")
	}

	levelName := r.Builder.Config.Level
	if len(levelName) == 0 {
		levelName = "warning"
	}

	level := constants.LogLevelMapper[levelName]
	if r.Result.Slack == nil || !r.Result.Slack.IsHandling(level) {
		r.Logger.Warnf("the message will not be sent to slack: level=%s", level.String())
	}

	r.Result.Logger.WithField("source", "forkconfig").Log(level, message)

	return nil
}

// RunCommand runs args under the error handler
func (r Runner) RunCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: forkconfig run -- <command> [args...]")
	}

	run := func() error {
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = r.Out
		cmd.Stderr = r.Stderr

		return errors.Wrapf(cmd.Run(), "command failed: %s", strings.Join(args, " "))
	}

	if r.Result.Debug {
		return run()
	}

	restore := r.Result.ErrorHandler.RedirectStandardLog()
	defer restore()

	return r.Result.ErrorHandler.Guard(run)
}

// handlerRows describes the handler stack, top first
func handlerRows(handlers []logger.Handler) [][]string {
	var data [][]string
	for i, h := range handlers {
		var (
			name      string
			threshold logger.Threshold
		)

		switch v := h.(type) {
		case *slack.Handler:
			name, threshold = "slack", v.Threshold
		case *logger.StreamHandler:
			name, threshold = "stream", v.Threshold
		default:
			data = append(data, []string{strconv.Itoa(i), fmt.Sprintf("%T", h), "-", "-"})
			continue
		}

		data = append(data, []string{strconv.Itoa(i), name, threshold.Level.String(), strconv.FormatBool(threshold.Bubble)})
	}

	return data
}

func maskParameters(b builder.Builder) interface{} {
	params := b.Parameters
	if params.Slack != nil {
		s := *params.Slack
		s.Webhook = tool.MaskSecret(s.Webhook)
		params.Slack = &s
	}

	return params
}
