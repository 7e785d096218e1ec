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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var cleanupPrefix string

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Abort pending multipart uploads and delete test objects",
	Long:  "Abort the multipart uploads left in the bucket under --prefix and delete the objects under it. Without a prefix the whole bucket is emptied.",
	Example: `  cortxtest cleanup --bucket-name mpu --endpoint http://127.0.0.1:9000 --prefix data.bin-`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bindStorageFlags(cmd)
		conn, err := newConnection()
		if err != nil {
			return fmt.Errorf("failed to initialize s3storage [%s]", err.Error())
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		result, err := conn.Cleanup(ctx, cleanupPrefix)
		fmt.Fprintf(cmd.OutOrStdout(), "aborted uploads: %d\ndeleted objects: %d (%s)\n",
			result.AbortedUploads, result.DeletedObjects, humanize.IBytes(uint64(result.DeletedBytes)))
		return err
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	addStorageFlags(cleanupCmd)
	cleanupCmd.Flags().StringVar(&cleanupPrefix, "prefix", "", "Only touch keys starting with this prefix.")
}
