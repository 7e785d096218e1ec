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
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Seagate/cortx-test-sub002/common"
	"github.com/Seagate/cortx-test-sub002/common/log"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type splitCmdTestSuite struct {
	suite.Suite
	assert *assert.Assertions
	dir    string
	source string
	data   []byte
}

func (suite *splitCmdTestSuite) SetupTest() {
	suite.assert = assert.New(suite.T())
	err := log.SetDefaultLogger("silent", common.LogConfig{Level: common.ELogLevel.LOG_DEBUG()})
	suite.assert.NoError(err)

	suite.dir = suite.T().TempDir()
	suite.source, suite.data = testDataFile(suite.dir, 10000)
}

func (suite *splitCmdTestSuite) cleanupTest() {
	resetCLIFlags(*splitCmd)
	resetCLIFlags(*rootCmd)
}

func (suite *splitCmdTestSuite) TestAligned() {
	defer suite.cleanupTest()

	output, err := executeCommandC(rootCmd, "split", suite.source, "--log-type=silent", "--parts=3", "--chunk-size=1KiB")
	suite.assert.NoError(err)

	// 9 whole chunks over 3 parts gives 3 KiB blocks and a short fourth part
	suite.assert.Contains(output, "part 1: 3.0 KiB")
	suite.assert.Contains(output, "part 4: 784 B")
	suite.assert.Contains(output, "parts: 4 randomized: false")
	suite.assert.Contains(output, "content-md5 "+s3utils.ContentMD5(suite.data[:3072]))

	expected, err := s3utils.SplitAligned(suite.source, 3, s3utils.SplitOptions{ChunkSize: 1024})
	suite.assert.NoError(err)
	suite.assert.Contains(output, "expected etag: "+s3utils.SynthesizeMultipartETag(expected))
}

func (suite *splitCmdTestSuite) TestSeededShuffleIsRepeatable() {
	defer suite.cleanupTest()

	args := []string{"split", suite.source, "--log-type=silent", "--parts=3", "--chunk-size=1KiB", "--randomize", "--seed=7"}
	first, err := executeCommandC(rootCmd, args...)
	suite.assert.NoError(err)
	suite.assert.Contains(first, "randomized: true")
	resetCLIFlags(*splitCmd)

	second, err := executeCommandC(rootCmd, args...)
	suite.assert.NoError(err)
	suite.assert.Equal(first, second)
}

func (suite *splitCmdTestSuite) TestPrecalculated() {
	defer suite.cleanupTest()
	source, _ := testDataFile(suite.T().TempDir(), 5*1024)

	output, err := executeCommandC(rootCmd, "split", source, "--log-type=silent", "--policy=precalculated", "--part-list=2x2,1x1", "--chunk-size=1KiB")
	suite.assert.NoError(err)
	suite.assert.Contains(output, "parts: 3")
	suite.assert.Contains(output, "total: 5.0 KiB")
}

func (suite *splitCmdTestSuite) TestPrecalculatedStrictMismatch() {
	defer suite.cleanupTest()

	_, err := executeCommandC(rootCmd, "split", suite.source, "--log-type=silent", "--policy=precalculated", "--part-list=2x2", "--chunk-size=1KiB", "--strict")
	suite.assert.Error(err)
	suite.assert.Contains(err.Error(), "failed to split")
}

func (suite *splitCmdTestSuite) TestPrecalculatedNeedsPartList() {
	defer suite.cleanupTest()

	_, err := executeCommandC(rootCmd, "split", suite.source, "--log-type=silent", "--policy=precalculated")
	suite.assert.Error(err)
	suite.assert.Contains(err.Error(), "needs a part list")
}

func (suite *splitCmdTestSuite) TestBadPartList() {
	defer suite.cleanupTest()

	_, err := executeCommandC(rootCmd, "split", suite.source, "--log-type=silent", "--policy=precalculated", "--part-list=2by5")
	suite.assert.Error(err)
}

func (suite *splitCmdTestSuite) TestInvalidPolicy() {
	defer suite.cleanupTest()

	_, err := executeCommandC(rootCmd, "split", suite.source, "--log-type=silent", "--policy=sideways")
	suite.assert.Error(err)
	suite.assert.Contains(err.Error(), "invalid split policy")
}

func (suite *splitCmdTestSuite) TestInvalidChunkSize() {
	defer suite.cleanupTest()

	_, err := executeCommandC(rootCmd, "split", suite.source, "--log-type=silent", "--chunk-size=lots")
	suite.assert.Error(err)
	suite.assert.Contains(err.Error(), "invalid chunk size")
}

func (suite *splitCmdTestSuite) TestMissingFile() {
	defer suite.cleanupTest()

	_, err := executeCommandC(rootCmd, "split", filepath.Join(suite.dir, "missing.bin"), "--log-type=silent")
	suite.assert.Error(err)
}

func (suite *splitCmdTestSuite) TestNoArgs() {
	defer suite.cleanupTest()

	output, err := executeCommandC(rootCmd, "split", "--log-type=silent")
	suite.assert.Error(err)
	suite.assert.Contains(output, "accepts 1 arg(s), received 0")
}

func (suite *splitCmdTestSuite) TestOutDir() {
	defer suite.cleanupTest()
	outDir := filepath.Join(suite.dir, "parts")

	_, err := executeCommandC(rootCmd, "split", suite.source, "--log-type=silent", "--parts=3", "--chunk-size=1KiB", "--randomize", "--out-dir="+outDir)
	suite.assert.NoError(err)

	var joined []byte
	for n := 1; n <= 4; n++ {
		data, err := os.ReadFile(filepath.Join(outDir, "data.bin.part."+strconv.Itoa(n)))
		suite.assert.NoError(err)
		joined = append(joined, data...)
	}
	suite.assert.True(bytes.Equal(suite.data, joined))
}

func (suite *splitCmdTestSuite) TestConfigFileSection() {
	defer suite.cleanupTest()
	source, _ := testDataFile(suite.T().TempDir(), 4*1024)
	cfgFile := filepath.Join(suite.dir, "config.yaml")
	cfg := "split:\n" +
		"  policy: precalculated\n" +
		"  chunk-size: 1KiB\n" +
		"  part-list:\n" +
		"    - part-size: 1\n" +
		"      count: 4\n"
	suite.assert.NoError(os.WriteFile(cfgFile, []byte(cfg), 0644))

	output, err := executeCommandC(rootCmd, "split", source, "--log-type=silent", "--config-file="+cfgFile)
	suite.assert.NoError(err)
	suite.assert.Contains(output, "parts: 4")
	suite.assert.Contains(output, "part size min/mean/max/stddev: 1.0 KiB / 1.0 KiB / 1.0 KiB / 0 B")
}

func (suite *splitCmdTestSuite) TestFlagOverridesConfigFile() {
	defer suite.cleanupTest()
	cfgFile := filepath.Join(suite.dir, "config.yaml")
	suite.assert.NoError(os.WriteFile(cfgFile, []byte("split:\n  policy: sideways\n  total-parts: 5\n"), 0644))

	output, err := executeCommandC(rootCmd, "split", suite.source, "--log-type=silent", "--config-file="+cfgFile, "--policy=aligned", "--chunk-size=1000")
	suite.assert.NoError(err)
	suite.assert.Contains(output, "parts: 5")
}

func TestSplitCommand(t *testing.T) {
	suite.Run(t, new(splitCmdTestSuite))
}
