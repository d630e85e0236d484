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
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	Logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DevopsArtFactory/forkconfig/pkg/constants"
	"github.com/DevopsArtFactory/forkconfig/pkg/tool"
)

var errOut io.Writer = os.Stderr

// Get root command
func NewRootCommand(out, stderr io.Writer) *cobra.Command {
	cobra.OnInitialize(initConfig)
	errOut = stderr

	rootCmd := &cobra.Command{
		Use:   "forkconfig",
		Short: "Bootstrap the pageon logger from parameters",
		Long: `forkconfig reads the kernel, fork, pageon and site parameters,
wires the "pageon" logger and sends warnings to slack when pageon.slack_webhook is set.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewNotifyCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// initConfig looks up the default parameters file and reads flags from environment variables
func initConfig() {
	home, err := homedir.Dir()
	if err != nil {
		Logger.Debugf("cannot find home directory: %v", err)
	} else {
		for _, ext := range []string{"yaml", "yml", "json", "toml"} {
			path := filepath.Join(home, constants.DefaultConfigName+"."+ext)
			if tool.FileExists(path) {
				viper.SetDefault("config", path)
				break
			}
		}
	}

	viper.SetEnvPrefix("forkconfig")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

func alwaysSucceedWhenCancelled(ctx context.Context, err error) error {
	// if the context was cancelled act as if all is well
	if err != nil && ctx.Err() == context.Canceled {
		return nil
	}
	return err
}
