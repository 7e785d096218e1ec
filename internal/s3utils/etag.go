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

package s3utils

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/Seagate/cortx-test-sub002/common/log"
)

// formatMultipartETag renders the digest of the concatenated part digests the way
// S3 returns it in an ETag header: quoted, with the part count appended.
func formatMultipartETag(sumOfSums []byte, count int) string {
	sum := md5.Sum(sumOfSums)
	return `"` + hex.EncodeToString(sum[:]) + "-" + strconv.Itoa(count) + `"`
}

// SynthesizeMultipartETag computes the ETag an S3 compatible store should report once the
// parts are completed as one object: md5 over the raw md5 of every part in part number order.
// The iteration order of parts does not matter.
func SynthesizeMultipartETag(parts *PartCollection) string {
	sums := make([]byte, 0, md5.Size*parts.Len())
	for _, p := range parts.Sorted() {
		sums = append(sums, RawMD5(p.Data)...)
	}
	return formatMultipartETag(sums, parts.Len())
}

// MultipartETagFromUploaded computes the same value as SynthesizeMultipartETag from the
// part number -> (data, content-md5) map kept for parts already sent.
func MultipartETagFromUploaded(parts map[int]UploadedPart) string {
	numbers := make([]int, 0, len(parts))
	for n := range parts {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	sums := make([]byte, 0, md5.Size*len(numbers))
	for _, n := range numbers {
		sums = append(sums, RawMD5(parts[n].Data)...)
	}
	return formatMultipartETag(sums, len(numbers))
}

// FileMultipartETag returns the ETag an upload of filePath in fixed partSize parts would get.
// A file that fits in one part gets the plain quoted md5, as a single PUT would.
func FileMultipartETag(filePath string, partSize int64) (string, error) {
	log.Trace("s3utils::FileMultipartETag : %s with part size %d", filePath, partSize)

	if partSize <= 0 {
		return "", ErrInvalidChunkSize
	}

	fi, err := os.Open(filePath)
	if err != nil {
		return "", newIOError("open", filePath, err)
	}
	defer fi.Close()

	var sums []byte
	var lastSum []byte
	count := 0
	for {
		h := md5.New()
		n, err := io.CopyN(h, fi, partSize)
		if err != nil && err != io.EOF {
			return "", newIOError("read", filePath, err)
		}
		if n == 0 && count > 0 {
			break
		}
		lastSum = h.Sum(nil)
		sums = append(sums, lastSum...)
		count++
		if n < partSize {
			break
		}
	}

	if count == 1 {
		return `"` + hex.EncodeToString(lastSum) + `"`, nil
	}
	return formatMultipartETag(sums, count), nil
}
