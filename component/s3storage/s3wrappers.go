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
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Seagate/cortx-test-sub002/common/log"
	"github.com/Seagate/cortx-test-sub002/internal/s3utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/errgroup"
)

// Wrapper for awsS3Client.CreateMultipartUpload.
func (cl *Client) createMultipartUpload(ctx context.Context, key string) (string, error) {
	log.Trace("Client::createMultipartUpload : key %s", key)

	result, err := cl.awsS3Client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket:      aws.String(cl.Config.authConfig.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(getContentType(key)),
	})
	if err != nil {
		attemptedAction := fmt.Sprintf("CreateMultipartUpload(%s)", key)
		return "", parseS3Err(err, attemptedAction)
	}
	if result.UploadId == nil {
		return "", fmt.Errorf("CreateMultipartUpload(%s) returned no upload id", key)
	}
	return *result.UploadId, nil
}

// Wrapper for awsS3Client.UploadPart. Returns the ETag the store assigned to the part.
func (cl *Client) uploadPart(ctx context.Context, key string, uploadID string, part s3utils.Part) (string, error) {
	log.Trace("Client::uploadPart : key %s part %d (%d bytes)", key, part.Number, part.Size())

	input := &s3.UploadPartInput{
		Bucket:        aws.String(cl.Config.authConfig.BucketName),
		Key:           aws.String(key),
		UploadId:      aws.String(uploadID),
		PartNumber:    aws.Int32(int32(part.Number)),
		Body:          bytes.NewReader(part.Data),
		ContentLength: aws.Int64(part.Size()),
	}
	if !cl.Config.disableContentMD5 {
		input.ContentMD5 = aws.String(part.ContentMD5)
	}

	result, err := cl.awsS3Client.UploadPart(ctx, input)
	if err != nil {
		attemptedAction := fmt.Sprintf("UploadPart(%s, %d)", key, part.Number)
		return "", parseS3Err(err, attemptedAction)
	}
	return aws.ToString(result.ETag), nil
}

// uploadParts sends parts in the order given, at most cl.Config.concurrency at a time,
// and returns part number -> ETag. The first failure cancels the parts not yet sent.
func (cl *Client) uploadParts(ctx context.Context, key string, uploadID string, parts []s3utils.Part) (map[int]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	limit := cl.Config.concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	var mu sync.Mutex
	etags := make(map[int]string, len(parts))

	for _, part := range parts {
		part := part
		g.Go(func() error {
			etag, err := cl.uploadPart(gctx, key, uploadID, part)
			if err != nil {
				return err
			}
			mu.Lock()
			etags[part.Number] = etag
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return etags, nil
}

// Wrapper for awsS3Client.CompleteMultipartUpload. The manifest is sorted before it is sent.
func (cl *Client) completeMultipartUpload(ctx context.Context, key string, uploadID string, manifest []s3utils.ManifestEntry) (string, error) {
	log.Trace("Client::completeMultipartUpload : key %s with %d parts", key, len(manifest))

	sorted := s3utils.SortManifestEntries(manifest)
	completed := make([]types.CompletedPart, 0, len(sorted))
	for _, entry := range sorted {
		completed = append(completed, types.CompletedPart{
			ETag:       aws.String(entry.ETag),
			PartNumber: aws.Int32(int32(entry.PartNumber)),
		})
	}

	result, err := cl.awsS3Client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(cl.Config.authConfig.BucketName),
		Key:             aws.String(key),
		UploadId:        aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{Parts: completed},
	})
	if err != nil {
		attemptedAction := fmt.Sprintf("CompleteMultipartUpload(%s)", key)
		return "", parseS3Err(err, attemptedAction)
	}
	return aws.ToString(result.ETag), nil
}

// abortMultipartUpload stops a multipart upload and verifys that the parts are deleted.
func (cl *Client) abortMultipartUpload(ctx context.Context, key string, uploadID string) error {
	_, abortErr := cl.awsS3Client.AbortMultipartUpload(
		ctx,
		&s3.AbortMultipartUploadInput{
			Bucket:   aws.String(cl.Config.authConfig.BucketName),
			Key:      aws.String(key),
			UploadId: aws.String(uploadID),
		},
	)
	if abortErr != nil {
		log.Err("Client::abortMultipartUpload : Error aborting multipart upload: %s", abortErr.Error())
		abortErr = parseS3Err(abortErr, fmt.Sprintf("AbortMultipartUpload(%s)", key))
	}

	// AWS states you need to call listparts to verify that multipart upload was properly aborted
	resp, listErr := cl.awsS3Client.ListParts(ctx, &s3.ListPartsInput{
		Bucket:   aws.String(cl.Config.authConfig.BucketName),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})
	if listErr != nil {
		listErr = parseS3Err(listErr, fmt.Sprintf("ListParts(%s)", key))
		if errors.Is(listErr, ErrNoSuchUpload) {
			// the upload is gone, which is what the abort was for
			listErr = nil
		} else {
			log.Err(
				"Client::abortMultipartUpload : Error calling list parts. Unable to verify if multipart upload was properly aborted with key: %s, uploadId: %s, error: %s",
				key,
				uploadID,
				listErr.Error(),
			)
		}
	} else if resp != nil && len(resp.Parts) != 0 {
		log.Err(
			"Client::abortMultipartUpload : Error aborting multipart upload. There are parts remaining in the object with key: %s, uploadId: %s ",
			key,
			uploadID,
		)
		listErr = fmt.Errorf("%d parts remain after aborting upload %s", len(resp.Parts), uploadID)
	}
	return errors.Join(abortErr, listErr)
}

// Wrapper for awsS3Client.HeadObject.
func (cl *Client) headObject(ctx context.Context, key string) (*s3.HeadObjectOutput, error) {
	log.Trace("Client::headObject : key %s", key)

	result, err := cl.awsS3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(cl.Config.authConfig.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		attemptedAction := fmt.Sprintf("HeadObject(%s)", key)
		return nil, parseS3Err(err, attemptedAction)
	}
	return result, nil
}
