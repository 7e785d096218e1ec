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

	"github.com/Seagate/cortx-test-sub002/internal/s3utils"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var etagPartSize string

var etagCmd = &cobra.Command{
	Use:   "etag <file>",
	Short: "Print the ETag an upload of a file in fixed size parts must get",
	Long:  "Print the ETag an S3 compatible store must report for a file uploaded in parts of --part-size bytes. A file that fits in one part gets the plain MD5 ETag of a single PUT.",
	Example: `  cortxtest etag data.bin --part-size 8MiB`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		partSize, err := humanize.ParseBytes(etagPartSize)
		if err != nil {
			return fmt.Errorf("invalid part size [%s]", err.Error())
		}

		etag, err := s3utils.FileMultipartETag(args[0], int64(partSize))
		if err != nil {
			return fmt.Errorf("failed to compute etag of %s [%s]", args[0], err.Error())
		}
		fmt.Fprintln(cmd.OutOrStdout(), etag)
		return nil
	},
}

var checksumWindow string

var checksumCmd = &cobra.Command{
	Use:   "checksum <file>...",
	Short: "Print the whole-file checksum of files",
	Long:  "Print the chained SHA-256 checksum of each file, hashed in windows of --window bytes. Files with the same content give the same checksum however they were uploaded.",
	Example: `  cortxtest checksum source.bin downloaded.bin --window 8MiB`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var window uint64
		if checksumWindow != "" {
			var err error
			window, err = humanize.ParseBytes(checksumWindow)
			if err != nil {
				return fmt.Errorf("invalid window size [%s]", err.Error())
			}
		}

		var first string
		for i, path := range args {
			checksum, err := s3utils.WholeFileChecksum(path, int64(window))
			if err != nil {
				return fmt.Errorf("failed to compute checksum of %s [%s]", path, err.Error())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", checksum, path)

			if i == 0 {
				first = checksum
			} else if checksum != first {
				return fmt.Errorf("checksum of %s differs from %s", path, args[0])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(etagCmd)
	etagCmd.Flags().StringVar(&etagPartSize, "part-size", "5MiB", "Size of every part but the last.")

	rootCmd.AddCommand(checksumCmd)
	checksumCmd.Flags().StringVar(&checksumWindow, "window", "", "Window size, for example 8MiB. By default the file is hashed in one window.")
}
