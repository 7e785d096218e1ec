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
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Seagate/cortx-test-sub002/common/config"
	"github.com/Seagate/cortx-test-sub002/common/log"
	"github.com/Seagate/cortx-test-sub002/component/s3storage"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type uploadOptions struct {
	key          string
	manifestPath string
	roundTrip    bool
	window       string
}

var uploadOpts uploadOptions

// storageFlagKeys maps the connection flags to the s3storage section
var storageFlagKeys = map[string]string{
	"bucket-name":         "s3storage.bucket-name",
	"endpoint":            "s3storage.endpoint",
	"region":              "s3storage.region",
	"upload-concurrency":  "s3storage.upload-concurrency",
	"disable-content-md5": "s3storage.disable-content-md5",
}

func addStorageFlags(cmd *cobra.Command) {
	cmd.Flags().String("bucket-name", "", "Bucket the object is uploaded to.")
	cmd.Flags().String("endpoint", "", "Endpoint of the S3 compatible store under test.")
	cmd.Flags().String("region", "", "Region used for signing. Defaults to us-east-1.")
	cmd.Flags().Int("upload-concurrency", 0, "Number of parts uploaded at the same time.")
	cmd.Flags().Bool("disable-content-md5", false, "Do not send Content-MD5 with the parts.")
}

// bindStorageFlags : Flags and the AWS credential variables override the s3storage section
func bindStorageFlags(cmd *cobra.Command) {
	for flag, key := range storageFlagKeys {
		config.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
	config.BindEnv("s3storage.key-id", "AWS_ACCESS_KEY_ID")
	config.BindEnv("s3storage.secret-key", "AWS_SECRET_ACCESS_KEY")
}

// newStorage and newConnection are replaced in tests to run against a fake store
var newStorage = func() (uploadStorage, error) {
	s3 := s3storage.NewS3StorageComponent()
	if err := s3.Configure(); err != nil {
		return nil, err
	}
	return s3, nil
}

var newConnection = func() (s3storage.S3Connection, error) {
	s3 := s3storage.NewS3StorageComponent()
	if err := s3.Configure(); err != nil {
		return nil, err
	}
	return s3.Storage(), nil
}

type uploadStorage interface {
	UploadAndVerify(ctx context.Context, key string, parts *s3utils.PartCollection) (*s3storage.UploadResult, s3storage.ETagCheck, error)
	RoundTrip(ctx context.Context, key string, sourcePath string, downloadPath string, windowSize int64) (string, error)
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file in parts and verify the ETag the store reports",
	Long:  "Split a file, upload the parts in their (possibly shuffled) order as one multipart upload, complete it and check that the store reports the synthesized multipart ETag. Optionally download the object again and compare whole-file checksums.",
	Example: `  cortxtest upload data.bin --bucket-name mpu --endpoint http://127.0.0.1:9000 --parts 4 --randomize
  cortxtest upload data.bin --config-file config.yaml --round-trip --manifest parts.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]
		bindStorageFlags(cmd)

		var window uint64
		if uploadOpts.window != "" {
			var err error
			window, err = humanize.ParseBytes(uploadOpts.window)
			if err != nil {
				return fmt.Errorf("invalid window size [%s]", err.Error())
			}
		}

		parts, err := splitFile(cmd, source)
		if err != nil {
			return fmt.Errorf("failed to split %s [%s]", source, err.Error())
		}

		storage, err := newStorage()
		if err != nil {
			return fmt.Errorf("failed to initialize s3storage [%s]", err.Error())
		}

		key := uploadOpts.key
		if key == "" {
			key = filepath.Base(source) + "-" + uuid.NewString()
		}

		out := cmd.OutOrStdout()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		result, check, err := storage.UploadAndVerify(ctx, key, parts)
		if result != nil {
			fmt.Fprintf(out, "key: %s\nupload id: %s\nparts: %d (%s)\n", result.Key, result.UploadID, parts.Len(), humanize.IBytes(uint64(parts.TotalSize())))
			fmt.Fprintf(out, "expected etag: %s\nreported etag: %s\n", check.Expected, check.Actual)

			if uploadOpts.manifestPath != "" {
				_, path, merr := s3utils.WriteCompletionManifest(uploadOpts.manifestPath, result.Manifest)
				if merr != nil {
					err = errors.Join(err, merr)
				} else {
					fmt.Fprintf(out, "manifest: %s\n", path)
				}
			}
		}
		if err != nil {
			log.Err("upload : %s failed [%s]", key, err.Error())
			return err
		}

		if uploadOpts.roundTrip {
			dir, err := os.MkdirTemp("", "cortxtest-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(dir)

			checksum, err := storage.RoundTrip(ctx, key, source, filepath.Join(dir, filepath.Base(source)), int64(window))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "round trip checksum: %s\n", checksum)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	addSplitFlags(uploadCmd.Flags())

	uploadCmd.Flags().StringVar(&uploadOpts.key, "key", "", "Object key. Defaults to the file name with a random suffix.")
	uploadCmd.Flags().StringVar(&uploadOpts.manifestPath, "manifest", "", "Write the completion manifest of the upload to this file.")
	uploadCmd.Flags().BoolVar(&uploadOpts.roundTrip, "round-trip", false, "Download the object and compare its whole-file checksum with the source.")
	uploadCmd.Flags().StringVar(&uploadOpts.window, "window", "", "Window size of the round trip checksum, for example 8MiB. By default the file is hashed in one window.")
	addStorageFlags(uploadCmd)
}
