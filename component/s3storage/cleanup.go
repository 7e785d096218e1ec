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

	"github.com/Seagate/cortx-test-sub002/common/log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// CleanupResult counts what Cleanup removed from the bucket.
type CleanupResult struct {
	AbortedUploads int
	DeletedObjects int
	DeletedBytes   int64
}

// Cleanup : Abort the multipart uploads left under prefix and delete the objects under it.
// An empty prefix empties the whole bucket.
func (cl *Client) Cleanup(ctx context.Context, prefix string) (CleanupResult, error) {
	log.Trace("Client::Cleanup : prefix %q", prefix)

	var result CleanupResult
	aborted, abortErr := cl.abortPendingUploads(ctx, prefix)
	result.AbortedUploads = aborted

	objects, size, deleteErr := cl.deleteObjects(ctx, prefix)
	result.DeletedObjects = objects
	result.DeletedBytes = size

	log.Info("Client::Cleanup : aborted %d uploads, deleted %d objects (%d bytes) under %q",
		result.AbortedUploads, result.DeletedObjects, result.DeletedBytes, prefix)
	return result, errors.Join(abortErr, deleteErr)
}

// abortPendingUploads pages through ListMultipartUploads and aborts every upload it returns.
func (cl *Client) abortPendingUploads(ctx context.Context, prefix string) (int, error) {
	var (
		aborted   int
		errs      []error
		keyMarker *string
		idMarker  *string
	)

	for {
		resp, err := cl.awsS3Client.ListMultipartUploads(ctx, &s3.ListMultipartUploadsInput{
			Bucket:         aws.String(cl.Config.authConfig.BucketName),
			Prefix:         aws.String(prefix),
			KeyMarker:      keyMarker,
			UploadIdMarker: idMarker,
		})
		if err != nil {
			return aborted, errors.Join(append(errs, parseS3Err(err, "ListMultipartUploads("+prefix+")"))...)
		}

		for _, upload := range resp.Uploads {
			key := aws.ToString(upload.Key)
			err = cl.abortMultipartUpload(ctx, key, aws.ToString(upload.UploadId))
			if err != nil && !errors.Is(err, ErrNoSuchUpload) {
				errs = append(errs, err)
				continue
			}
			aborted++
		}

		if !aws.ToBool(resp.IsTruncated) {
			break
		}
		keyMarker = resp.NextKeyMarker
		idMarker = resp.NextUploadIdMarker
	}
	return aborted, errors.Join(errs...)
}

// deleteObjects deletes the objects under prefix one listing page at a time and sums their sizes.
func (cl *Client) deleteObjects(ctx context.Context, prefix string) (int, int64, error) {
	var (
		deleted int
		size    int64
		errs    []error
	)

	paginator := s3.NewListObjectsV2Paginator(cl.awsS3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(cl.Config.authConfig.BucketName),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			errs = append(errs, parseS3Err(err, "ListObjectsV2("+prefix+")"))
			break
		}
		if len(page.Contents) == 0 {
			continue
		}

		sizes := make(map[string]int64, len(page.Contents))
		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			sizes[aws.ToString(obj.Key)] = aws.ToInt64(obj.Size)
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}

		resp, err := cl.awsS3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(cl.Config.authConfig.BucketName),
			Delete: &types.Delete{Objects: objects},
		})
		if err != nil {
			errs = append(errs, parseS3Err(err, "DeleteObjects("+prefix+")"))
			continue
		}

		for _, obj := range resp.Deleted {
			deleted++
			size += sizes[aws.ToString(obj.Key)]
		}
		for _, failure := range resp.Errors {
			log.Err("Client::deleteObjects : failed to delete %s [%s: %s]",
				aws.ToString(failure.Key), aws.ToString(failure.Code), aws.ToString(failure.Message))
			errs = append(errs, fmt.Errorf("failed to delete %s [%s]", aws.ToString(failure.Key), aws.ToString(failure.Code)))
		}
	}
	return deleted, size, errors.Join(errs...)
}
