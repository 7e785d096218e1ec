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
	"context"
	"fmt"

	"github.com/Seagate/cortx-test-sub002/common/config"
	"github.com/Seagate/cortx-test-sub002/common/log"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"
)

// S3Storage Wrapper type around aws-sdk-go-v2/service/s3
type S3Storage struct {
	name     string
	storage  S3Connection
	stConfig Config
}

const compName = "s3storage"

func NewS3StorageComponent() *S3Storage {
	return &S3Storage{name: compName}
}

func (s3 *S3Storage) Name() string {
	return s3.name
}

// Configure : Read the s3storage section of the config and connect
func (s3 *S3Storage) Configure() error {
	log.Trace("S3Storage::Configure : %s", s3.Name())

	conf := Options{}
	err := config.UnmarshalKey(s3.Name(), &conf)
	if err != nil {
		log.Err("S3Storage::Configure : config error [invalid config attributes]")
		return fmt.Errorf("config error in %s [%s]", s3.Name(), err.Error())
	}

	err = ParseAndValidateConfig(s3, conf)
	if err != nil {
		log.Err("S3Storage::Configure : Config validation failed [%s]", err.Error())
		return fmt.Errorf("config error in %s [%s]", s3.Name(), err.Error())
	}

	s3.storage, err = NewConnection(s3.stConfig)
	if err != nil {
		log.Err("S3Storage::Configure : Failed to create connection [%s]", err.Error())
		return err
	}
	return nil
}

// UploadAndVerify : Upload the parts as one object and compare the store's ETag with the synthesized one.
// A mismatch is returned as an error wrapping ErrETagMismatch together with the result.
func (s3 *S3Storage) UploadAndVerify(ctx context.Context, key string, parts *s3utils.PartCollection) (*UploadResult, ETagCheck, error) {
	log.Trace("S3Storage::UploadAndVerify : key %s", key)

	result, err := s3.storage.UploadParts(ctx, key, parts)
	if err != nil {
		return nil, ETagCheck{}, err
	}

	check := ETagCheck{Expected: s3utils.SynthesizeMultipartETag(parts), Actual: result.ETag}
	if err = check.Err(); err != nil {
		log.Err("S3Storage::UploadAndVerify : %s", err.Error())
		return result, check, err
	}

	// the completion response and a later HEAD must agree
	headCheck, err := s3.storage.VerifyETag(ctx, key, parts)
	if err != nil {
		return result, headCheck, err
	}
	return result, headCheck, headCheck.Err()
}

// RoundTrip : Download key to path and compare its whole-file checksum with the source file's.
func (s3 *S3Storage) RoundTrip(ctx context.Context, key string, sourcePath string, downloadPath string, windowSize int64) (string, error) {
	log.Trace("S3Storage::RoundTrip : key %s", key)

	want, err := s3utils.WholeFileChecksum(sourcePath, windowSize)
	if err != nil {
		return "", err
	}

	_, err = s3.storage.Download(ctx, key, downloadPath)
	if err != nil {
		return "", err
	}

	got, err := s3utils.WholeFileChecksum(downloadPath, windowSize)
	if err != nil {
		return "", err
	}
	if got != want {
		log.Err("S3Storage::RoundTrip : %s checksum %s does not match source %s", key, got, want)
		return got, fmt.Errorf("downloaded checksum %s does not match source checksum %s", got, want)
	}
	return got, nil
}

// Storage returns the connection used by the component.
func (s3 *S3Storage) Storage() S3Connection {
	return s3.storage
}
