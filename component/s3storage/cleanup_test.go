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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/golang/mock/gomock"
)

func (s *clientTestSuite) expectObjectListing(contents ...types.Object) {
	s.mock.EXPECT().ListObjectsV2(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			s.assert.Equal(testBucket, aws.ToString(in.Bucket))
			s.assert.Equal("run-1/", aws.ToString(in.Prefix))
			return &s3.ListObjectsV2Output{Contents: contents, IsTruncated: aws.Bool(false)}, nil
		})
}

func (s *clientTestSuite) TestCleanup() {
	// two listing pages of pending uploads
	gomock.InOrder(
		s.mock.EXPECT().ListMultipartUploads(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *s3.ListMultipartUploadsInput, _ ...func(*s3.Options)) (*s3.ListMultipartUploadsOutput, error) {
				s.assert.Nil(in.KeyMarker)
				return &s3.ListMultipartUploadsOutput{
					Uploads: []types.MultipartUpload{
						{Key: aws.String("run-1/a"), UploadId: aws.String("u1")},
						{Key: aws.String("run-1/b"), UploadId: aws.String("u2")},
					},
					IsTruncated:        aws.Bool(true),
					NextKeyMarker:      aws.String("run-1/b"),
					NextUploadIdMarker: aws.String("u2"),
				}, nil
			}),
		s.mock.EXPECT().ListMultipartUploads(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *s3.ListMultipartUploadsInput, _ ...func(*s3.Options)) (*s3.ListMultipartUploadsOutput, error) {
				s.assert.Equal("run-1/b", aws.ToString(in.KeyMarker))
				s.assert.Equal("u2", aws.ToString(in.UploadIdMarker))
				return &s3.ListMultipartUploadsOutput{
					Uploads:     []types.MultipartUpload{{Key: aws.String("run-1/c"), UploadId: aws.String("u3")}},
					IsTruncated: aws.Bool(false),
				}, nil
			}),
	)
	s.mock.EXPECT().AbortMultipartUpload(gomock.Any(), gomock.Any()).Times(3).Return(&s3.AbortMultipartUploadOutput{}, nil)
	s.mock.EXPECT().ListParts(gomock.Any(), gomock.Any()).Times(3).Return(&s3.ListPartsOutput{}, nil)

	s.expectObjectListing(
		types.Object{Key: aws.String("run-1/x"), Size: aws.Int64(100)},
		types.Object{Key: aws.String("run-1/y"), Size: aws.Int64(23)},
	)
	s.mock.EXPECT().DeleteObjects(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
			s.assert.Len(in.Delete.Objects, 2)
			return &s3.DeleteObjectsOutput{Deleted: []types.DeletedObject{
				{Key: aws.String("run-1/x")}, {Key: aws.String("run-1/y")},
			}}, nil
		})

	result, err := s.client.Cleanup(context.Background(), "run-1/")
	s.assert.NoError(err)
	s.assert.Equal(CleanupResult{AbortedUploads: 3, DeletedObjects: 2, DeletedBytes: 123}, result)
}

func (s *clientTestSuite) TestCleanupPartialDelete() {
	s.mock.EXPECT().ListMultipartUploads(gomock.Any(), gomock.Any()).Return(&s3.ListMultipartUploadsOutput{}, nil)
	s.expectObjectListing(
		types.Object{Key: aws.String("run-1/x"), Size: aws.Int64(100)},
		types.Object{Key: aws.String("run-1/y"), Size: aws.Int64(23)},
	)
	s.mock.EXPECT().DeleteObjects(gomock.Any(), gomock.Any()).Return(&s3.DeleteObjectsOutput{
		Deleted: []types.DeletedObject{{Key: aws.String("run-1/y")}},
		Errors:  []types.Error{{Key: aws.String("run-1/x"), Code: aws.String("AccessDenied")}},
	}, nil)

	result, err := s.client.Cleanup(context.Background(), "run-1/")
	s.assert.Error(err)
	s.assert.Contains(err.Error(), "run-1/x")
	s.assert.Equal(1, result.DeletedObjects)
	s.assert.Equal(int64(23), result.DeletedBytes)
}

func (s *clientTestSuite) TestCleanupListUploadsFailure() {
	listErr := errors.New("injected listing failure")
	s.mock.EXPECT().ListMultipartUploads(gomock.Any(), gomock.Any()).Return(nil, listErr)
	s.expectObjectListing()

	// objects are still deleted when the uploads cannot be listed
	result, err := s.client.Cleanup(context.Background(), "run-1/")
	s.assert.ErrorIs(err, listErr)
	s.assert.Equal(CleanupResult{}, result)
}
