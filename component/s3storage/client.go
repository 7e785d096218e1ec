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
	"errors"
	"fmt"
	"os"

	"github.com/Seagate/cortx-test-sub002/common/log"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Client struct {
	Config      Config
	awsS3Client S3API // S3 client library supplied by AWS
	downloader  *manager.Downloader
}

// Verify that Client implements S3Connection interface
var _ S3Connection = &Client{}

// UploadResult describes a completed multipart upload.
type UploadResult struct {
	Key      string
	UploadID string
	Manifest []s3utils.ManifestEntry
	ETag     string
}

// ETagCheck holds the ETag the store reported next to the one synthesized from the parts.
type ETagCheck struct {
	Expected string
	Actual   string
}

func (c ETagCheck) Match() bool {
	return c.Expected == c.Actual
}

// Err returns ErrETagMismatch, with both values, when the ETags differ.
func (c ETagCheck) Err() error {
	if c.Match() {
		return nil
	}
	return fmt.Errorf("%w: expected %s, got %s", ErrETagMismatch, c.Expected, c.Actual)
}

// Configure : Initialize the awsS3Client
func (cl *Client) Configure(cfg Config) error {
	log.Trace("Client::Configure : initialize awsS3Client")
	cl.Config = cfg

	loadOptions := []func(*config.LoadOptions) error{
		config.WithRegion(cl.Config.authConfig.Region),
	}
	// without keys the default chain (environment, shared files) is used
	if cl.Config.authConfig.KeyID != "" {
		staticProvider := credentials.NewStaticCredentialsProvider(
			cl.Config.authConfig.KeyID,
			cl.Config.authConfig.SecretKey,
			"",
		)
		loadOptions = append(loadOptions, config.WithCredentialsProvider(staticProvider))
	}

	defaultConfig, err := config.LoadDefaultConfig(context.TODO(), loadOptions...)
	if err != nil {
		log.Err("Client::Configure : config.LoadDefaultConfig() failed. Here's why: %v", err)
		return err
	}

	// Create an Amazon S3 service client
	awsS3Client := s3.NewFromConfig(defaultConfig, func(o *s3.Options) {
		if cl.Config.authConfig.Endpoint != "" {
			o.BaseEndpoint = aws.String(cl.Config.authConfig.Endpoint)
		}
		// the cluster under test serves buckets on the path, not as virtual hosts
		o.UsePathStyle = true
	})
	cl.setAPI(awsS3Client)
	return nil
}

// setAPI swaps in the S3 API and rebuilds the downloader around it.
func (cl *Client) setAPI(api S3API) {
	cl.awsS3Client = api
	cl.downloader = manager.NewDownloader(api, func(d *manager.Downloader) {
		if cl.Config.partSize > 0 {
			d.PartSize = cl.Config.partSize
		}
		if cl.Config.concurrency > 0 {
			d.Concurrency = cl.Config.concurrency
		}
	})
}

// CreateUpload : Start a multipart upload and return its id
func (cl *Client) CreateUpload(ctx context.Context, key string) (string, error) {
	log.Trace("Client::CreateUpload : key %s", key)
	return cl.createMultipartUpload(ctx, key)
}

// UploadParts : Upload every part of the collection as one multipart object.
// Parts are sent in the collection's iteration order, so a randomized collection is uploaded out of order.
// On failure the upload is aborted.
func (cl *Client) UploadParts(ctx context.Context, key string, parts *s3utils.PartCollection) (*UploadResult, error) {
	log.Trace("Client::UploadParts : key %s, %d parts", key, parts.Len())

	uploadID, err := cl.createMultipartUpload(ctx, key)
	if err != nil {
		log.Err("Client::UploadParts : Failed to create upload for %s. Here's why: %v", key, err)
		return nil, err
	}

	etags, err := cl.uploadParts(ctx, key, uploadID, parts.Parts())
	if err != nil {
		log.Err("Client::UploadParts : Failed to upload parts of %s. Here's why: %v", key, err)
		return nil, errors.Join(err, cl.abortMultipartUpload(context.WithoutCancel(ctx), key, uploadID))
	}

	manifest := parts.ManifestEntries(etags)
	etag, err := cl.completeMultipartUpload(ctx, key, uploadID, manifest)
	if err != nil {
		log.Err("Client::UploadParts : Failed to complete upload of %s. Here's why: %v", key, err)
		return nil, errors.Join(err, cl.abortMultipartUpload(context.WithoutCancel(ctx), key, uploadID))
	}

	log.Info("Client::UploadParts : Uploaded %s in %d parts, ETag %s", key, parts.Len(), etag)
	return &UploadResult{
		Key:      key,
		UploadID: uploadID,
		Manifest: s3utils.SortManifestEntries(manifest),
		ETag:     etag,
	}, nil
}

// CompleteFromManifest : Complete an upload from a manifest file written by s3utils.WriteCompletionManifest
func (cl *Client) CompleteFromManifest(ctx context.Context, key string, uploadID string, manifestPath string) (string, error) {
	log.Trace("Client::CompleteFromManifest : key %s, manifest %s", key, manifestPath)

	manifest, err := s3utils.ReadCompletionManifest(manifestPath)
	if err != nil {
		log.Err("Client::CompleteFromManifest : Failed to read manifest %s. Here's why: %v", manifestPath, err)
		return "", err
	}
	return cl.completeMultipartUpload(ctx, key, uploadID, manifest.Parts)
}

// AbortUpload : Abort an upload and check that no parts are left behind
func (cl *Client) AbortUpload(ctx context.Context, key string, uploadID string) error {
	log.Trace("Client::AbortUpload : key %s, upload %s", key, uploadID)
	return cl.abortMultipartUpload(ctx, key, uploadID)
}

// HeadETag : Return the ETag the store reports for an object
func (cl *Client) HeadETag(ctx context.Context, key string) (string, error) {
	result, err := cl.headObject(ctx, key)
	if err != nil {
		return "", err
	}
	return aws.ToString(result.ETag), nil
}

// VerifyETag : Compare the stored object's ETag with the one synthesized from parts
func (cl *Client) VerifyETag(ctx context.Context, key string, parts *s3utils.PartCollection) (ETagCheck, error) {
	check := ETagCheck{Expected: s3utils.SynthesizeMultipartETag(parts)}

	actual, err := cl.HeadETag(ctx, key)
	if err != nil {
		return check, err
	}
	check.Actual = actual

	if !check.Match() {
		log.Err("Client::VerifyETag : %s has ETag %s, expected %s", key, check.Actual, check.Expected)
	}
	return check, nil
}

// Download : Fetch an object into a local file using ranged parallel GETs
func (cl *Client) Download(ctx context.Context, key string, path string) (int64, error) {
	log.Trace("Client::Download : key %s to %s", key, path)

	fi, err := os.Create(path)
	if err != nil {
		log.Err("Client::Download : Failed to create %s. Here's why: %v", path, err)
		return 0, err
	}
	defer fi.Close()

	n, err := cl.downloader.Download(ctx, fi, &s3.GetObjectInput{
		Bucket: aws.String(cl.Config.authConfig.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		attemptedAction := fmt.Sprintf("GetObject(%s)", key)
		return n, parseS3Err(err, attemptedAction)
	}
	return n, nil
}
