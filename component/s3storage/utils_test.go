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
	"net/http"
	"strconv"
	"syscall"
	"testing"

	awsHttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyHttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type utilsTestSuite struct {
	suite.Suite
}

func (s *utilsTestSuite) TestParseS3errNil() {
	assert := assert.New(s.T())
	assert.NoError(parseS3Err(nil, "test"))
}

func (s *utilsTestSuite) TestParseS3errGetObjectNoSuchKey() {
	assert := assert.New(s.T())

	errMessage := "No Such Key"
	getObjectS3Err := generateS3Error("GetObject", 404, &types.NoSuchKey{
		Message: &errMessage,
	})
	err := parseS3Err(getObjectS3Err, "test")
	assert.Equal(syscall.ENOENT, err)
}

func (s *utilsTestSuite) TestParseS3errHeadObjectNotFound() {
	assert := assert.New(s.T())

	errMessage := "Not Found"
	apiErrCode := "NotFound"
	headObjectS3Err := generateS3Error("HeadObject", 404, &smithy.GenericAPIError{
		Message: errMessage,
		Code:    apiErrCode,
		Fault:   smithy.FaultClient,
	})
	err := parseS3Err(headObjectS3Err, "test")
	assert.Equal(syscall.ENOENT, err)
}

func (s *utilsTestSuite) TestParseS3errUploadPartNoSuchUpload() {
	assert := assert.New(s.T())

	errMessage := "No Such Upload"
	uploadPartS3Err := generateS3Error("UploadPart", 404, &types.NoSuchUpload{
		Message: &errMessage,
	})
	err := parseS3Err(uploadPartS3Err, "test")
	assert.ErrorIs(err, ErrNoSuchUpload)
}

func (s *utilsTestSuite) TestParseS3errCompleteInvalidPart() {
	assert := assert.New(s.T())

	errMessage := "One or more of the specified parts could not be found"
	apiErrCode := "InvalidPart"
	completeS3Err := generateS3Error("CompleteMultipartUpload", 400, &smithy.GenericAPIError{
		Message: errMessage,
		Code:    apiErrCode,
		Fault:   smithy.FaultClient,
	})
	err := parseS3Err(completeS3Err, "test")
	// for an error like this, there is no mapping
	// so we expect to get the original error back
	assert.Equal(completeS3Err, err)
}

func (s *utilsTestSuite) TestParseS3errPlainError() {
	assert := assert.New(s.T())

	plain := errors.New("connection reset by peer")
	assert.Equal(plain, parseS3Err(plain, "test"))
}

func generateS3Error(operation string, httpStatusCode int, apiErr error) *smithy.OperationError {
	return &smithy.OperationError{
		ServiceID:     "S3",
		OperationName: operation,
		Err: &awsHttp.ResponseError{
			RequestID: "",
			ResponseError: &smithyHttp.ResponseError{
				Response: &smithyHttp.Response{
					Response: &http.Response{
						Status:     strconv.Itoa(httpStatusCode),
						StatusCode: httpStatusCode,
					},
				},
				Err: apiErr,
			},
		},
	}
}

func (s *utilsTestSuite) TestContentType() {
	assert := assert.New(s.T())

	val := getContentType("a.tst")
	assert.Equal("application/octet-stream", val, "Content-type mismatch")

	newSet := `{
		".tst": "application/test",
		".dum": "dummy/test"
		}`
	err := populateContentType(newSet)
	assert.NoError(err, "Failed to populate new config")

	val = getContentType("a.tst")
	assert.Equal("application/test", val, "Content-type mismatch")

	// assert mp4 content type would get deserialized correctly
	val = getContentType("file.mp4")
	assert.Equal("video/mp4", val)
}

func (s *utilsTestSuite) TestContentTypeBadJSON() {
	assert := assert.New(s.T())

	err := populateContentType(`{".tst": `)
	assert.Error(err)
}

type contentTypeVal struct {
	val    string
	result string
}

func (s *utilsTestSuite) TestGetContentType() {
	assert := assert.New(s.T())
	var inputs = []contentTypeVal{
		{val: "a.txt", result: "text/plain"},
		{val: "a.dat", result: "text/plain"},
		{val: "a.csv", result: "text/csv"},
		{val: "a.json", result: "application/json"},
		{val: "a.xml", result: "text/xml"},
		{val: "a.bin", result: "application/octet-stream"},
		{val: "a.gz", result: "application/x-gzip"},
		{val: "a.tar", result: "application/x-tar"},
		{val: "a.zip", result: "application/x-zip-compressed"},
		{val: "a.Mp4", result: "video/mp4"},
		{val: "a.TXT", result: "text/plain"},
		{val: "noextension", result: "application/octet-stream"},
	}
	for _, i := range inputs {
		s.Run(i.val, func() {
			output := getContentType(i.val)
			assert.Equal(i.result, output)
		})
	}
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(utilsTestSuite))
}
