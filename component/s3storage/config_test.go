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

package s3storage

import (
	"strings"
	"testing"

	"github.com/Seagate/cortx-test-sub002/common"
	"github.com/Seagate/cortx-test-sub002/common/config"
	"github.com/Seagate/cortx-test-sub002/common/log"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type configTestSuite struct {
	suite.Suite
	assert *assert.Assertions
	s3     *S3Storage
	opt    Options
}

func (s *configTestSuite) SetupTest() {
	// Silent logger
	err := log.SetDefaultLogger("silent", common.LogConfig{Level: common.ELogLevel.LOG_DEBUG()})
	if err != nil {
		panic("Unable to set silent logger as default.")
	}

	// Set S3Storage
	s.s3 = NewS3StorageComponent()

	// Set Options
	s.opt = Options{
		BucketName: "testBucketName",
		KeyID:      "testKeyId",
		SecretKey:  "testSecretKey",
		Region:     "testRegion",
		Endpoint:   "http://testEndpoint",
	}

	// Create assertions
	s.assert = assert.New(s.T())
}

func (s *configTestSuite) TearDownTest() {
	config.ResetConfig()
}

func (s *configTestSuite) TestEmptyBucketName() {
	// When
	s.opt.BucketName = ""

	// Then
	err := ParseAndValidateConfig(s.s3, s.opt)
	s.assert.ErrorIs(err, errConfigFieldEmpty)
}

func (s *configTestSuite) TestKeyWithoutSecret() {
	// When
	s.opt.SecretKey = ""

	// Then
	err := ParseAndValidateConfig(s.s3, s.opt)
	s.assert.ErrorIs(err, errConfigFieldEmpty)
}

func (s *configTestSuite) TestNoCredentials() {
	// When
	s.opt.KeyID = ""
	s.opt.SecretKey = ""

	// Then
	err := ParseAndValidateConfig(s.s3, s.opt)
	s.assert.NoError(err)
	s.assert.Empty(s.s3.stConfig.authConfig.KeyID)
}

func (s *configTestSuite) TestDefaults() {
	// When
	s.opt.Region = ""

	// Then
	err := ParseAndValidateConfig(s.s3, s.opt)
	s.assert.NoError(err)
	s.assert.Equal(defaultRegion, s.s3.stConfig.authConfig.Region)
	s.assert.Equal(defaultConcurrency, s.s3.stConfig.concurrency)
	s.assert.Equal(s3utils.DefaultChunkSize, s.s3.stConfig.partSize)
	s.assert.False(s.s3.stConfig.disableContentMD5)
}

func (s *configTestSuite) TestConfigValues() {
	// When
	s.opt.UploadConcurrency = 16
	s.opt.PartSizeMb = 8
	s.opt.DisableContentMD5 = true

	// Then
	err := ParseAndValidateConfig(s.s3, s.opt)
	s.assert.NoError(err)
	s.assert.Equal(s.opt.BucketName, s.s3.stConfig.authConfig.BucketName)
	s.assert.Equal(s.opt.KeyID, s.s3.stConfig.authConfig.KeyID)
	s.assert.Equal(s.opt.SecretKey, s.s3.stConfig.authConfig.SecretKey)
	s.assert.Equal(s.opt.Region, s.s3.stConfig.authConfig.Region)
	s.assert.Equal(s.opt.Endpoint, s.s3.stConfig.authConfig.Endpoint)
	s.assert.Equal(16, s.s3.stConfig.concurrency)
	s.assert.Equal(int64(8*1024*1024), s.s3.stConfig.partSize)
	s.assert.True(s.s3.stConfig.disableContentMD5)
}

func (s *configTestSuite) TestNegativeConcurrency() {
	// When
	s.opt.UploadConcurrency = -1

	// Then
	err := ParseAndValidateConfig(s.s3, s.opt)
	s.assert.Error(err)
}

func (s *configTestSuite) TestBadContentTypes() {
	// When
	s.opt.ContentTypes = "not json"

	// Then
	err := ParseAndValidateConfig(s.s3, s.opt)
	s.assert.Error(err)
}

func (s *configTestSuite) TestConfigureFromYaml() {
	// When
	cfg := "s3storage:\n  bucket-name: mpu\n  key-id: AKID\n  secret-key: SECRET\n  endpoint: http://127.0.0.1:9000\n  upload-concurrency: 2\n"
	s.assert.NoError(config.ReadConfigFromReader(strings.NewReader(cfg)))

	// Then
	err := s.s3.Configure()
	s.assert.NoError(err)
	s.assert.NotNil(s.s3.Storage())
	s.assert.Equal("mpu", s.s3.stConfig.authConfig.BucketName)
	s.assert.Equal(2, s.s3.stConfig.concurrency)

	client, ok := s.s3.Storage().(*Client)
	s.assert.True(ok)
	s.assert.NotNil(client.awsS3Client)
	s.assert.NotNil(client.downloader)
}

func (s *configTestSuite) TestConfigureMissingBucket() {
	cfg := "s3storage:\n  region: us-east-1\n"
	s.assert.NoError(config.ReadConfigFromReader(strings.NewReader(cfg)))

	err := s.s3.Configure()
	s.assert.Error(err)
	s.assert.Contains(err.Error(), "config error in s3storage")
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(configTestSuite))
}
