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
	"fmt"
	"os"
	"path/filepath"

	"github.com/Seagate/cortx-test-sub002/common"
	"github.com/Seagate/cortx-test-sub002/common/config"
	"github.com/Seagate/cortx-test-sub002/component/s3storage"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// sampleConfig is the document gen-config writes
type sampleConfig struct {
	Logging   LogOptions        `config:"logging"   yaml:"logging"`
	Split     SplitConfig       `config:"split"     yaml:"split"`
	S3Storage s3storage.Options `config:"s3storage" yaml:"s3storage"`
}

var genConfigOpts = struct {
	outputFile string
	bucketName string
	endpoint   string
}{}

func newSampleConfig() sampleConfig {
	return sampleConfig{
		Logging: LogOptions{
			Type:        "base",
			LogLevel:    "LOG_WARNING",
			LogFilePath: common.DefaultLogFilePath,
		},
		Split: SplitConfig{
			Policy:     "aligned",
			TotalParts: 3,
			ChunkSize:  "5MiB",
		},
		S3Storage: s3storage.Options{
			BucketName:        genConfigOpts.bucketName,
			Region:            "us-east-1",
			Endpoint:          genConfigOpts.endpoint,
			UploadConcurrency: 4,
		},
	}
}

// checkSampleConfig : Load content the way a config file is loaded and make sure the split and storage sections decode
func checkSampleConfig(content string) error {
	err := config.ReadFromConfigBuffer([]byte(content))
	if err != nil {
		return err
	}

	loaded := sampleConfig{}
	err = config.Unmarshal(&loaded)
	if err != nil {
		return err
	}

	var policy s3utils.SplitPolicy
	if err = policy.Parse(loaded.Split.Policy); err != nil || policy == s3utils.ESplitPolicy.INVALID() {
		return fmt.Errorf("invalid split policy %q", loaded.Split.Policy)
	}
	if _, err = humanize.ParseBytes(loaded.Split.ChunkSize); err != nil {
		return fmt.Errorf("invalid chunk size [%s]", err.Error())
	}
	if loaded.S3Storage.BucketName != genConfigOpts.bucketName || loaded.S3Storage.Endpoint != genConfigOpts.endpoint {
		return fmt.Errorf("s3storage section does not round trip")
	}
	return nil
}

var genConfigCmd = &cobra.Command{
	Use:        "gen-config",
	Short:      "Generate a sample config file.",
	Long:       "Generate a sample config file with the logging, split and s3storage sections and their default values.",
	SuggestFor: []string{"generate default config", "generate config"},
	Args:       cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(newSampleConfig())
		if err != nil {
			return fmt.Errorf("failed to generate config [%s]", err.Error())
		}

		header := "# Credentials may be given as s3storage.key-id and s3storage.secret-key,\n" +
			"# or through AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.\n" +
			"# A precalculated split takes split.part-list entries of part-size (in chunks) and count.\n"
		content := header + string(data)

		if err = checkSampleConfig(content); err != nil {
			return fmt.Errorf("generated config does not load [%s]", err.Error())
		}

		if genConfigOpts.outputFile == "console" {
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		}

		if dir := filepath.Dir(genConfigOpts.outputFile); !common.DirectoryExists(dir) {
			return fmt.Errorf("failed to write %s [directory %s does not exist]", genConfigOpts.outputFile, dir)
		}

		err = common.WriteToFile(genConfigOpts.outputFile, content, common.WriteToFileOptions{Flags: os.O_TRUNC, Permission: 0644})
		if err != nil {
			return fmt.Errorf("failed to write %s [%s]", genConfigOpts.outputFile, err.Error())
		}
		fmt.Fprintln(cmd.OutOrStdout(), genConfigOpts.outputFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genConfigCmd)
	genConfigCmd.Flags().StringVarP(&genConfigOpts.outputFile, "output-file", "o", common.DefaultConfigFilePath,
		"Output file location. Use console to print the config instead.")
	genConfigCmd.Flags().StringVar(&genConfigOpts.bucketName, "bucket-name", "cortx-mpu-test", "Bucket name to put in the config.")
	genConfigCmd.Flags().StringVar(&genConfigOpts.endpoint, "endpoint", "http://127.0.0.1:9000", "Endpoint to put in the config.")
}
