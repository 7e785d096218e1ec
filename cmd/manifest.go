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
	"fmt"
	"strconv"
	"strings"

	"github.com/Seagate/cortx-test-sub002/common"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"

	"github.com/spf13/cobra"
)

var manifestOutput string

// parseManifestArgs : Read <part-number>=<etag> pairs
func parseManifestArgs(args []string) ([]s3utils.ManifestEntry, error) {
	entries := make([]s3utils.ManifestEntry, 0, len(args))
	for _, arg := range args {
		number, etag, found := strings.Cut(arg, "=")
		if !found || etag == "" {
			return nil, fmt.Errorf("%q is not in <part-number>=<etag> form", arg)
		}
		n, err := strconv.Atoi(number)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%q has an invalid part number", arg)
		}
		entries = append(entries, s3utils.ManifestEntry{PartNumber: n, ETag: etag})
	}
	return entries, nil
}

var manifestCmd = &cobra.Command{
	Use:   "manifest <part-number>=<etag>...",
	Short: "Write a completion manifest",
	Long:  "Write the parts, sorted by part number, as the JSON document complete-multipart-upload expects.",
	Example: `  cortxtest manifest 2='"9b2cf535f27731c974343645a3985328"' 1='"5d41402abc4b2a76b9719d911017c592"' -o parts.json`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := parseManifestArgs(args)
		if err != nil {
			return err
		}

		if manifestOutput == "console" {
			data, err := s3utils.MarshalManifest(entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		exists, path, err := s3utils.WriteCompletionManifest(manifestOutput, entries)
		if err != nil {
			return fmt.Errorf("failed to write manifest [%s]", err.Error())
		}
		if !exists {
			return fmt.Errorf("manifest %s was not created", path)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var completeOpts = struct {
	key      string
	uploadID string
}{}

var completeCmd = &cobra.Command{
	Use:   "complete <manifest>",
	Short: "Complete a multipart upload from a manifest file",
	Long:  "Complete a multipart upload whose parts were sent by another tool, using a manifest written by the manifest or upload command.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if completeOpts.key == "" || completeOpts.uploadID == "" {
			return fmt.Errorf("--key and --upload-id are required")
		}

		bindStorageFlags(cmd)
		conn, err := newConnection()
		if err != nil {
			return fmt.Errorf("failed to initialize s3storage [%s]", err.Error())
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		etag, err := conn.CompleteFromManifest(ctx, completeOpts.key, completeOpts.uploadID, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "etag: %s\n", etag)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.Flags().StringVarP(&manifestOutput, "output", "o", common.DefaultManifestName,
		"File the manifest is written to. Use console to print it instead.")

	rootCmd.AddCommand(completeCmd)
	addStorageFlags(completeCmd)
	completeCmd.Flags().StringVar(&completeOpts.key, "key", "", "Key of the object being uploaded.")
	completeCmd.Flags().StringVar(&completeOpts.uploadID, "upload-id", "", "Id of the multipart upload.")
}
