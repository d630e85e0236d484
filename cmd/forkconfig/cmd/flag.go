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
	"reflect"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/DevopsArtFactory/forkconfig/pkg/constants"
)

type Flag struct {
	Name          string
	Shorthand     string
	Usage         string
	Value         interface{}
	DefValue      interface{}
	FlagAddMethod string
	Hidden        bool

	pflag *pflag.Flag
}

var flagKey = map[string]string{
	"check":   "checkSet",
	"notify":  "notifySet",
	"run":     "runSet",
	"version": "versionSet",
}

var CommonFlagRegistry = []Flag{
	{
		Name:          "config",
		Shorthand:     "c",
		Usage:         "Parameters file (yaml, json or toml) or s3://bucket/key. Defaults to $HOME/.forkconfig.yaml when it exists.",
		Value:         new(string),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "log-level",
		Shorthand:     "v",
		Usage:         "Level of logging",
		Value:         new(string),
		DefValue:      "warning",
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "region",
		Usage:         "AWS region of the s3 bucket or the ssm parameters (required with s3:// or --ssm-path)",
		Value:         new(string),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "ssm-path",
		Usage:         "SSM parameter store path. /forkconfig/pageon/slack_webhook under /forkconfig is read as pageon.slack_webhook.",
		Value:         new(string),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "assume-role",
		Usage:         "IAM role ARN to assume when reading parameters from aws",
		Value:         new(string),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "profile",
		Usage:         "Profile of the AWS shared credentials file",
		Value:         new(string),
		DefValue:      constants.EmptyString,
		FlagAddMethod: "StringVar",
	},
	{
		Name:          "no-env",
		Usage:         "Do not read parameters from environment variables like PAGEON_SLACK_WEBHOOK",
		Value:         new(bool),
		DefValue:      false,
		FlagAddMethod: "BoolVar",
	},
}

var FlagRegistry = map[string][]Flag{
	"checkSet": {
		{
			Name:          "output",
			Shorthand:     "o",
			Usage:         "Output format: text or yaml",
			Value:         new(string),
			DefValue:      "text",
			FlagAddMethod: "StringVar",
		},
	},
	"notifySet": {
		{
			Name:          "level",
			Shorthand:     "l",
			Usage:         "Level of the message. Only warning or above reaches slack.",
			Value:         new(string),
			DefValue:      "warning",
			FlagAddMethod: "StringVar",
		},
		{
			Name:          "message",
			Shorthand:     "m",
			Usage:         "Message to send. Arguments are joined when it is empty.",
			Value:         new(string),
			DefValue:      constants.EmptyString,
			FlagAddMethod: "StringVar",
		},
	},
	"versionSet": {
		{
			Name:          "verbose",
			Usage:         "Print build details",
			Value:         new(bool),
			DefValue:      false,
			FlagAddMethod: "BoolVar",
		},
	},
}

func (fl *Flag) flag() *pflag.Flag {
	if fl.pflag != nil {
		return fl.pflag
	}

	inputs := []interface{}{fl.Value, fl.Name}
	if fl.FlagAddMethod != "Var" {
		inputs = append(inputs, fl.DefValue)
	}
	inputs = append(inputs, fl.Usage)

	fs := pflag.NewFlagSet(fl.Name, pflag.ContinueOnError)
	reflect.ValueOf(fs).MethodByName(fl.FlagAddMethod).Call(reflectValueOf(inputs))
	f := fs.Lookup(fl.Name)
	if fl.Shorthand != constants.EmptyString {
		f.Shorthand = fl.Shorthand
	}
	f.Hidden = fl.Hidden
	fl.pflag = f

	return f
}

func reflectValueOf(values []interface{}) []reflect.Value {
	var results []reflect.Value
	for _, v := range values {
		results = append(results, reflect.ValueOf(v))
	}
	return results
}

// Add command flags
func SetCommandFlags(cmd *cobra.Command) {
	var flagsForCommand []*Flag

	var registries []Flag
	registries = append(registries, CommonFlagRegistry...)
	registries = append(registries, FlagRegistry[flagKey[cmd.Use]]...)
	for i := range registries {
		fl := &registries[i]
		cmd.PersistentFlags().AddFlag(fl.flag())
		flagsForCommand = append(flagsForCommand, fl)
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		for _, fl := range flagsForCommand {
			viper.BindPFlag(fl.Name, cmd.PersistentFlags().Lookup(fl.Name))
		}

		if parent := cmd.Parent(); parent != nil {
			if preRun := parent.PersistentPreRunE; preRun != nil {
				if err := preRun(cmd, args); err != nil {
					return err
				}
			} else if preRun := parent.PersistentPreRun; preRun != nil {
				preRun(cmd, args)
			}
		}

		return nil
	}
}
