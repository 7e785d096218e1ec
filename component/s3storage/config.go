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
	"errors"
	"fmt"

	"github.com/Seagate/cortx-test-sub002/common/log"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"
)

type Options struct {
	BucketName        string `config:"bucket-name" yaml:"bucket-name,omitempty"`
	KeyID             string `config:"key-id" yaml:"key-id,omitempty"`
	SecretKey         string `config:"secret-key" yaml:"secret-key,omitempty"`
	Region            string `config:"region" yaml:"region,omitempty"`
	Endpoint          string `config:"endpoint" yaml:"endpoint,omitempty"`
	UploadConcurrency int    `config:"upload-concurrency" yaml:"upload-concurrency,omitempty"`
	DisableContentMD5 bool   `config:"disable-content-md5" yaml:"disable-content-md5,omitempty"`
	PartSizeMb        int64  `config:"part-size-mb" yaml:"part-size-mb,omitempty"`
	ContentTypes      string `config:"content-types" yaml:"content-types,omitempty"`
}

const (
	defaultRegion      = "us-east-1"
	defaultConcurrency = 4
)

var errConfigFieldEmpty = errors.New("config field is empty")

// ParseAndValidateConfig : Parse and validate config
func ParseAndValidateConfig(s3 *S3Storage, opt Options) error {
	log.Trace("ParseAndValidateConfig : Parsing config")

	// Validate bucket name is present or not
	if opt.BucketName == "" {
		return fmt.Errorf("%w: bucket-name", errConfigFieldEmpty)
	}
	if (opt.KeyID == "") != (opt.SecretKey == "") {
		return fmt.Errorf("%w: key-id and secret-key must be given together", errConfigFieldEmpty)
	}
	s3.stConfig.authConfig.BucketName = opt.BucketName
	s3.stConfig.authConfig.KeyID = opt.KeyID
	s3.stConfig.authConfig.SecretKey = opt.SecretKey

	if opt.Region == "" {
		log.Info("ParseAndValidateConfig : region not provided, using %s", defaultRegion)
		opt.Region = defaultRegion
	}
	s3.stConfig.authConfig.Region = opt.Region

	if opt.Endpoint == "" {
		log.Warn("ParseAndValidateConfig : endpoint not provided, the SDK will resolve the AWS endpoint for %s", opt.Region)
	}
	s3.stConfig.authConfig.Endpoint = opt.Endpoint

	if opt.UploadConcurrency < 0 {
		return fmt.Errorf("upload-concurrency must not be negative (got %d)", opt.UploadConcurrency)
	}
	if opt.UploadConcurrency == 0 {
		opt.UploadConcurrency = defaultConcurrency
	}
	s3.stConfig.concurrency = opt.UploadConcurrency
	s3.stConfig.disableContentMD5 = opt.DisableContentMD5

	// part size only drives the downloader, the upload part sizes come from the split
	s3.stConfig.partSize = s3utils.DefaultChunkSize
	if opt.PartSizeMb > 0 {
		s3.stConfig.partSize = opt.PartSizeMb * 1024 * 1024
	}

	if opt.ContentTypes != "" {
		if err := populateContentType(opt.ContentTypes); err != nil {
			return fmt.Errorf("content-types is not a JSON object of extension to type [%s]", err.Error())
		}
	}

	return nil
}
