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
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Seagate/cortx-test-sub002/common"
	"github.com/Seagate/cortx-test-sub002/common/config"
	"github.com/Seagate/cortx-test-sub002/common/log"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// SplitConfig is the split section of the config file. Flags of the split and upload commands override it.
type SplitConfig struct {
	Policy     string             `config:"policy"      yaml:"policy,omitempty"`
	TotalParts int                `config:"total-parts" yaml:"total-parts,omitempty"`
	ChunkSize  string             `config:"chunk-size"  yaml:"chunk-size,omitempty"`
	Randomize  bool               `config:"randomize"   yaml:"randomize,omitempty"`
	Seed       int64              `config:"seed"        yaml:"seed,omitempty"`
	Strict     bool               `config:"strict"      yaml:"strict,omitempty"`
	PartList   []s3utils.PartSpec `config:"part-list"   yaml:"part-list,omitempty"`
}

// splitFlagKeys maps each split flag to its key in the config
var splitFlagKeys = map[string]string{
	"policy":     "split.policy",
	"parts":      "split.total-parts",
	"chunk-size": "split.chunk-size",
	"randomize":  "split.randomize",
	"seed":       "split.seed",
	"strict":     "split.strict",
}

func addSplitFlags(fs *pflag.FlagSet) {
	fs.String("policy", "aligned", "How the file is cut into parts. Allowed values are aligned|unaligned|precalculated.")
	fs.Int("parts", 1, "Number of parts the aligned and unaligned policies aim for.")
	fs.String("chunk-size", "", "Chunk unit, for example 5MiB. Defaults to 5MiB, or 1MiB for the precalculated policy.")
	fs.Bool("randomize", false, "Shuffle the order in which parts are handed out.")
	fs.Int64("seed", 0, "Seed for the shuffles, for a reproducible split.")
	fs.Bool("strict", false, "Reject a part list that does not describe the file exactly.")
	fs.String("part-list", "", "Part descriptors for the precalculated policy as <count>x<chunks>, for example 2x5,1x3.")
}

// bindSplitFlags : Bind the split flags of cmd, done at run time as split and upload share the keys
func bindSplitFlags(cmd *cobra.Command) {
	for flag, key := range splitFlagKeys {
		config.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

// splitFile : Resolve the split settings from flags and config and split path accordingly
func splitFile(cmd *cobra.Command, path string) (*s3utils.PartCollection, error) {
	bindSplitFlags(cmd)

	opts := SplitConfig{}
	err := config.UnmarshalKey("split", &opts)
	if err != nil {
		return nil, fmt.Errorf("invalid split options [%s]", err.Error())
	}

	var policy s3utils.SplitPolicy
	err = policy.Parse(opts.Policy)
	if err != nil || policy == s3utils.ESplitPolicy.INVALID() {
		return nil, fmt.Errorf("invalid split policy %q", opts.Policy)
	}

	var chunkSize uint64
	if opts.ChunkSize != "" {
		chunkSize, err = humanize.ParseBytes(opts.ChunkSize)
		if err != nil {
			return nil, fmt.Errorf("invalid chunk size [%s]", err.Error())
		}
	}

	partList := opts.PartList
	if cmd.Flags().Changed("part-list") {
		value, _ := cmd.Flags().GetString("part-list")
		partList, err = s3utils.ParsePartList(value)
		if err != nil {
			return nil, err
		}
	}
	if policy == s3utils.ESplitPolicy.PRECALCULATED() {
		if len(partList) == 0 {
			return nil, fmt.Errorf("the precalculated policy needs a part list")
		}
		log.Debug("splitFile : part list describes %d parts", s3utils.TotalParts(partList))
	}

	splitOpts := s3utils.SplitOptions{
		ChunkSize: int64(chunkSize),
		Randomize: opts.Randomize,
		Strict:    opts.Strict,
	}
	if config.IsSet("split.seed") {
		seed := opts.Seed
		splitOpts.Seed = &seed
	}

	log.Info("splitFile : splitting %s with policy %s", path, policy.String())
	return s3utils.Split(path, policy, opts.TotalParts, partList, splitOpts)
}

// printSplitSummary : Write the parts in upload order followed by their size statistics and the expected ETag
func printSplitSummary(out io.Writer, parts *s3utils.PartCollection) {
	for _, p := range parts.Parts() {
		fmt.Fprintf(out, "part %d: %s content-md5 %s\n", p.Number, humanize.IBytes(uint64(p.Size())), p.ContentMD5)
	}

	sizes := stats.LoadRawData(parts.Sizes())
	mean, _ := stats.Mean(sizes)
	stddev, _ := stats.StandardDeviation(sizes)
	smallest, _ := stats.Min(sizes)
	largest, _ := stats.Max(sizes)

	fmt.Fprintf(out, "parts: %d randomized: %t\n", parts.Len(), parts.Randomized())
	fmt.Fprintf(out, "total: %s\n", humanize.IBytes(uint64(parts.TotalSize())))
	fmt.Fprintf(out, "part size min/mean/max/stddev: %s / %s / %s / %s\n",
		humanize.IBytes(uint64(smallest)), humanize.IBytes(uint64(mean)), humanize.IBytes(uint64(largest)), humanize.IBytes(uint64(stddev)))
	fmt.Fprintf(out, "expected etag: %s\n", s3utils.SynthesizeMultipartETag(parts))
}

// writePartFiles : Write every part to <dir>/<base>.part.<n> for tools that upload parts from files
func writePartFiles(dir string, source string, parts *s3utils.PartCollection) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s [%s]", dir, err.Error())
	}

	base := filepath.Base(source)
	for _, p := range parts.Sorted() {
		name := filepath.Join(dir, base+".part."+strconv.Itoa(p.Number))
		err := common.WriteToFile(name, string(p.Data), common.WriteToFileOptions{Flags: os.O_TRUNC})
		if err != nil {
			log.Err("writePartFiles : failed to write %s [%s]", name, err.Error())
			return err
		}
	}
	return nil
}

var splitOutDir string

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Cut a file into multipart upload parts",
	Long:  "Cut a file into multipart upload parts with the aligned, unaligned or precalculated policy and print the parts, their Content-MD5 and the ETag the store must report for them.",
	Example: `  cortxtest split data.bin --policy aligned --parts 3 --chunk-size 5MiB
  cortxtest split data.bin --policy precalculated --part-list 2x5,1x3 --randomize --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts, err := splitFile(cmd, args[0])
		if err != nil {
			return fmt.Errorf("failed to split %s [%s]", args[0], err.Error())
		}

		printSplitSummary(cmd.OutOrStdout(), parts)

		if splitOutDir != "" {
			return writePartFiles(splitOutDir, args[0], parts)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
	addSplitFlags(splitCmd.Flags())
	splitCmd.Flags().StringVar(&splitOutDir, "out-dir", "", "Write every part to a file in this directory.")
	_ = splitCmd.MarkFlagDirname("out-dir")
	_ = splitCmd.RegisterFlagCompletionFunc(
		"policy",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"aligned", "unaligned", "precalculated"}, cobra.ShellCompDirectiveNoFileComp
		},
	)
}
