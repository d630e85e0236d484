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

package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/DevopsArtFactory/forkconfig/pkg/runner"
)

// Create new notify command
func NewNotifyCommand() *cobra.Command {
	return NewCmd("notify").
		WithDescription("Log a message through the pageon logger").
		WithLongDescription("Log a message through the pageon logger. Messages at warning or above are sent to slack when pageon.slack_webhook is set.").
		WithExample("  forkconfig notify --level=error deployment failed").
		SetFlags().
		RunWithArgs(funcNotify)
}

// funcNotify sends a message
func funcNotify(ctx context.Context, out io.Writer, args []string, mode string) error {
	return runWithoutExecutor(ctx, func() error {
		builderSt, err := runner.SetupBuilder()
		if err != nil {
			return err
		}

		return runner.Start(ctx, builderSt, mode, args, out, errOut)
	})
}
