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
	"encoding/hex"
	"io"
	"os"
	"strconv"

	"github.com/Seagate/cortx-test-sub002/common/log"

	"github.com/minio/sha256-simd"
)

// WholeFileChecksum hashes filePath in windows of windowSize bytes (or in one go when windowSize
// is 0 or not smaller than the file) and returns sha256 over the concatenated window digests,
// followed by "-" and the window count.
// The result only depends on the file content and windowSize, never on how the file was uploaded.
func WholeFileChecksum(filePath string, windowSize int64) (string, error) {
	log.Trace("s3utils::WholeFileChecksum : %s with window %d", filePath, windowSize)

	fi, err := os.Open(filePath)
	if err != nil {
		log.Err("s3utils::WholeFileChecksum : failed to open %s [%s]", filePath, err.Error())
		return "", newIOError("open", filePath, err)
	}
	defer fi.Close()

	stat, err := fi.Stat()
	if err != nil {
		return "", newIOError("stat", filePath, err)
	}

	if windowSize <= 0 || stat.Size() <= windowSize {
		windowSize = stat.Size()
	}

	var sums []byte
	count := 0
	for {
		h := sha256.New()
		n, err := io.CopyN(h, fi, windowSize)
		if err != nil && err != io.EOF {
			log.Err("s3utils::WholeFileChecksum : failed to read %s [%s]", filePath, err.Error())
			return "", newIOError("read", filePath, err)
		}
		if n == 0 && count > 0 {
			break
		}
		sums = append(sums, h.Sum(nil)...)
		count++
		if n < windowSize || windowSize == 0 {
			break
		}
	}

	total := sha256.Sum256(sums)
	return hex.EncodeToString(total[:]) + "-" + strconv.Itoa(count), nil
}
