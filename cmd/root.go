/*
   Licensed under the MIT License <http://opensource.org/licenses/MIT>.

   Copyright © 2023-2025 Seagate Technology LLC and/or its Affiliates
   Copyright © 2020-2025 Microsoft Corporation. All rights reserved.

   Permission is hereby granted, free of charge, to any person obtaining a copy
   of this software and associated documentation files (the "Software"), to deal
   in the Software without restriction, including without limitation the rights
   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
   copies of the Software, and to permit persons to whom the Software is
   furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in all
   copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
   SOFTWARE
*/

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Seagate/cortx-test-sub002/common"
	"github.com/Seagate/cortx-test-sub002/common/config"
	"github.com/Seagate/cortx-test-sub002/common/log"

	"github.com/spf13/cobra"
)

type LogOptions struct {
	Type        string `config:"type"      yaml:"type,omitempty"`
	LogLevel    string `config:"level"     yaml:"level,omitempty"`
	LogFilePath string `config:"file-path" yaml:"file-path,omitempty"`
	Tag         string `config:"tag"       yaml:"tag,omitempty"`
}

var configFile string

var rootCmd = &cobra.Command{
	Use:          common.ToolName,
	Short:        "cortxtest builds and checks multipart upload test data for S3 compatible object stores.",
	Long:         "cortxtest cuts files into multipart upload parts, computes the Content-MD5, multipart ETag and whole-file checksums an S3 compatible store must agree with, writes completion manifests and drives verified uploads against a store under test.",
	Version:      common.CortxTestVersion,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("missing command options\n\nRun 'cortxtest --help' for usage")
	},
}

// initConfig : Load the config file, when there is one, and set up the logger from its logging section
func initConfig() error {
	bindLoggingFlags()

	if configFile == "" && common.FileExists(common.DefaultConfigFilePath) {
		configFile = common.DefaultConfigFilePath
	}

	if configFile != "" {
		err := config.ReadFromConfigFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to read config file %s [%s]", configFile, err.Error())
		}
	}

	logOpts := LogOptions{}
	err := config.UnmarshalKey("logging", &logOpts)
	if err != nil {
		return fmt.Errorf("invalid logging options [%s]", err.Error())
	}

	if !config.IsSet("logging.level") {
		logOpts.LogLevel = "LOG_WARNING"
	}

	var logLevel common.LogLevel
	err = logLevel.Parse(logOpts.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level [%s]", err.Error())
	}

	if logOpts.Type != "silent" && logOpts.LogFilePath == common.DefaultLogFilePath {
		if err = common.CreateDefaultDirectory(); err != nil {
			return fmt.Errorf("failed to create default work dir [%s]", err.Error())
		}
	}

	err = log.SetDefaultLogger(logOpts.Type, common.LogConfig{
		Level:    logLevel,
		FilePath: logOpts.LogFilePath,
		Tag:      logOpts.Tag,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger [%s]", err.Error())
	}

	if configFile != "" {
		log.Debug("initConfig : using config file %s", config.ConfigFilePath())
	}
	return nil
}

// bindLoggingFlags : Flags take precedence over the logging section of the config file
func bindLoggingFlags() {
	config.BindPFlag("logging.type", rootCmd.PersistentFlags().Lookup("log-type"))
	config.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	config.BindPFlag("logging.file-path", rootCmd.PersistentFlags().Lookup("log-file-path"))
}

// Execute : Actual command execution starts from here
func Execute() error {
	rootCmd.SetArgs(os.Args[1:])

	err := rootCmd.Execute()
	_ = log.Destroy()
	if err != nil {
		os.Exit(1)
	}
	return err
}

func init() {
	// set here rather than in the literal, initConfig refers back to rootCmd
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initConfig()
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "",
		"Configures the path of the config file. Default is "+common.DefaultConfigFilePath+" in the current directory, when present.")
	_ = rootCmd.MarkPersistentFlagFilename("config-file", "yaml")

	rootCmd.PersistentFlags().String("log-type", "base", "Type of logger to be used. Allowed values are silent|base.")
	_ = rootCmd.RegisterFlagCompletionFunc(
		"log-type",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"silent", "base"}, cobra.ShellCompDirectiveNoFileComp
		},
	)

	rootCmd.PersistentFlags().String("log-level", "LOG_WARNING",
		"Set to LOG_WARNING by default. Allowed values are LOG_OFF|LOG_CRIT|LOG_ERR|LOG_WARNING|LOG_INFO|LOG_TRACE|LOG_DEBUG")
	_ = rootCmd.RegisterFlagCompletionFunc(
		"log-level",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{
				"LOG_OFF",
				"LOG_CRIT",
				"LOG_ERR",
				"LOG_WARNING",
				"LOG_INFO",
				"LOG_TRACE",
				"LOG_DEBUG",
			}, cobra.ShellCompDirectiveNoFileComp
		},
	)

	rootCmd.PersistentFlags().String("log-file-path", common.DefaultLogFilePath,
		"Configures the path for log files. Default is "+common.DefaultLogFilePath)
}
