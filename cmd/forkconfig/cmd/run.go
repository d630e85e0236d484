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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/DevopsArtFactory/forkconfig/pkg/runner"
)

// Create new run command
func NewRunCommand() *cobra.Command {
	return NewCmd("run").
		WithDescription("Run a command and report its failure through the pageon logger").
		WithExample("  forkconfig run -c parameters.yaml -- ./migrate.sh --force").
		SetFlags().
		StopFlagsAtArgs().
		RunWithArgs(funcRun)
}

// funcRun runs the command under the error handler
func funcRun(ctx context.Context, out io.Writer, args []string, mode string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: forkconfig run -- <command> [args...]")
	}

	return runWithoutExecutor(ctx, func() error {
		builderSt, err := runner.SetupBuilder()
		if err != nil {
			return err
		}

		return runner.Start(ctx, builderSt, mode, args, out, errOut)
	})
}
