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

	"github.com/Seagate/cortx-test-sub002/common/log"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3AuthConfig struct {
	BucketName string
	KeyID      string
	SecretKey  string
	Region     string
	Endpoint   string
}

type Config struct {
	authConfig        s3AuthConfig
	concurrency       int
	disableContentMD5 bool
	partSize          int64
}

// S3API is the subset of the aws-sdk-go-v2 S3 client used by the multipart tests.
type S3API interface {
	CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error)
	UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error)
	CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error)
	AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error)
	ListParts(ctx context.Context, params *s3.ListPartsInput, optFns ...func(*s3.Options)) (*s3.ListPartsOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListMultipartUploads(ctx context.Context, params *s3.ListMultipartUploadsInput, optFns ...func(*s3.Options)) (*s3.ListMultipartUploadsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Connection is what the test commands need from the object store.
type S3Connection interface {
	Configure(cfg Config) error

	UploadParts(ctx context.Context, key string, parts *s3utils.PartCollection) (*UploadResult, error)
	CreateUpload(ctx context.Context, key string) (string, error)
	CompleteFromManifest(ctx context.Context, key string, uploadID string, manifestPath string) (string, error)
	AbortUpload(ctx context.Context, key string, uploadID string) error

	HeadETag(ctx context.Context, key string) (string, error)
	VerifyETag(ctx context.Context, key string, parts *s3utils.PartCollection) (ETagCheck, error)
	Download(ctx context.Context, key string, path string) (int64, error)

	Cleanup(ctx context.Context, prefix string) (CleanupResult, error)
}

// NewConnection : Create a configured S3 client
func NewConnection(cfg Config) (S3Connection, error) {
	stg := &Client{}
	err := stg.Configure(cfg)
	if err != nil {
		log.Err("NewConnection : Failed to configure S3 client [%s]", err.Error())
		return nil, err
	}
	return stg, nil
}
