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
	"time"

	"github.com/Seagate/cortx-test-sub002/common"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsOutputLocation string

// ensureOutputDir : Create dir when missing and reject a path that is a file
func ensureOutputDir(dir string) error {
	f, err := os.Stat(dir)
	if err != nil && os.IsNotExist(err) {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create output location: %w", err)
		}
		return nil
	} else if err != nil {
		return fmt.Errorf("cannot access output location: %w", err)
	} else if !f.IsDir() {
		return fmt.Errorf("output location is invalid as it is pointing to a file")
	}
	return nil
}

var docCmd = &cobra.Command{
	Use:    "doc",
	Hidden: true,
	Short:  "Generates Markdown documentation for every cortxtest command",
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureOutputDir(docsOutputLocation); err != nil {
			return err
		}
		if err := doc.GenMarkdownTree(rootCmd, docsOutputLocation); err != nil {
			return fmt.Errorf("cannot generate command tree: %w", err)
		}
		return nil
	},
}

var manCmd = &cobra.Command{
	Use:    "man",
	Hidden: true,
	Short:  "Generates man pages for every cortxtest command",
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureOutputDir(docsOutputLocation); err != nil {
			return err
		}

		fixedDate := time.Unix(0, 0)
		header := &doc.GenManHeader{
			Title:   common.ToolName,
			Section: "1",
			Date:    &fixedDate,
		}
		if err := doc.GenManTree(rootCmd, header, docsOutputLocation); err != nil {
			return fmt.Errorf("cannot generate man pages: %w", err)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{docCmd, manCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVar(&docsOutputLocation, "output-location", "./doc", "where to put the generated files")
		_ = c.MarkFlagDirname("output-location")
	}
}
