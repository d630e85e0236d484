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

// Create new check command
func NewCheckCommand() *cobra.Command {
	return NewCmd("check").
		WithDescription("Show how the logger is wired from the parameters").
		WithExample("  forkconfig check -c parameters.yaml -o yaml").
		SetFlags().
		RunWithNoArgs(funcCheck)
}

// funcCheck prints the bootstrap summary
func funcCheck(ctx context.Context, out io.Writer, mode string) error {
	return runWithoutExecutor(ctx, func() error {
		builderSt, err := runner.SetupBuilder()
		if err != nil {
			return err
		}

		return runner.Start(ctx, builderSt, mode, nil, out, errOut)
	})
}
