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
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Seagate/cortx-test-sub002/common/log"

	"github.com/aws/smithy-go"
)

// ErrNoSuchUpload is returned when the store no longer knows the upload id.
var ErrNoSuchUpload = errors.New("multipart upload does not exist")

// ErrETagMismatch is returned when the store reports a different ETag than the one synthesized from the parts.
var ErrETagMismatch = errors.New("object ETag does not match the synthesized multipart ETag")

//    ----------- Content-type handling  ---------------

// ContentTypes : Store file extension to content-type mapping
var ContentTypes = map[string]string{
	".txt":  "text/plain",
	".dat":  "text/plain",
	".csv":  "text/csv",
	".json": "application/json",
	".xml":  "text/xml",
	".bin":  "application/octet-stream",
	".gz":   "application/x-gzip",
	".tar":  "application/x-tar",
	".zip":  "application/x-zip-compressed",
	".mp4":  "video/mp4",
}

// getContentType : Based on the file extension retrieve the content type to be set
func getContentType(key string) string {
	value, found := ContentTypes[strings.ToLower(filepath.Ext(key))]
	if found {
		return value
	}
	return "application/octet-stream"
}

func populateContentType(newSet string) error {
	var data map[string]string
	if err := json.Unmarshal([]byte(newSet), &data); err != nil {
		log.Err("Failed to parse content types : %s [%s]", newSet, err.Error())
		return err
	}

	for k, v := range data {
		ContentTypes[k] = v
	}
	return nil
}

// parseS3Err converts the errors the S3 API returns into errors the tests can compare against.
// Errors without a known mapping come back unchanged.
func parseS3Err(err error, attemptedAction string) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			log.Warn("parseS3Err : %s failed, object does not exist", attemptedAction)
			return syscall.ENOENT
		case "NoSuchUpload":
			log.Err("parseS3Err : %s failed, upload does not exist", attemptedAction)
			return ErrNoSuchUpload
		case "NoSuchBucket":
			log.Err("parseS3Err : %s failed, bucket does not exist", attemptedAction)
			return syscall.ENOENT
		}
		log.Err("parseS3Err : %s failed with %s [%s]", attemptedAction, apiErr.ErrorCode(), apiErr.ErrorMessage())
		return err
	}

	log.Err("parseS3Err : %s failed. Here's why: %v", attemptedAction, err)
	return err
}
