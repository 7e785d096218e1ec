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
	"os"
	"sort"

	"github.com/Seagate/cortx-test-sub002/common"
	"github.com/Seagate/cortx-test-sub002/common/log"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ManifestEntry is one part of a CompleteMultipartUpload request.
type ManifestEntry struct {
	PartNumber int    `json:"PartNumber"`
	ETag       string `json:"ETag"`
}

// CompletionManifest is the document handed to complete-multipart-upload.
type CompletionManifest struct {
	Parts []ManifestEntry `json:"Parts"`
}

// SortManifestEntries returns a copy of entries ordered by part number.
func SortManifestEntries(entries []ManifestEntry) []ManifestEntry {
	sorted := make([]ManifestEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].PartNumber != sorted[j].PartNumber {
			return sorted[i].PartNumber < sorted[j].PartNumber
		}
		return sorted[i].ETag < sorted[j].ETag
	})
	return sorted
}

// MarshalManifest renders entries, sorted, as a completion manifest.
func MarshalManifest(entries []ManifestEntry) ([]byte, error) {
	return json.Marshal(CompletionManifest{Parts: SortManifestEntries(entries)})
}

// WriteCompletionManifest sorts entries by part number and writes them to path.
// It reports whether path exists afterwards and the path itself.
func WriteCompletionManifest(path string, entries []ManifestEntry) (bool, string, error) {
	log.Trace("s3utils::WriteCompletionManifest : writing %d parts to %s", len(entries), path)

	data, err := MarshalManifest(entries)
	if err != nil {
		return false, path, err
	}

	err = common.WriteToFile(path, string(data), common.WriteToFileOptions{Flags: os.O_TRUNC})
	if err != nil {
		log.Err("s3utils::WriteCompletionManifest : failed to write %s [%s]", path, err.Error())
		return false, path, newIOError("write", path, err)
	}

	_, err = os.Stat(path)
	return err == nil, path, nil
}

// ReadCompletionManifest loads a manifest written by WriteCompletionManifest.
func ReadCompletionManifest(path string) (CompletionManifest, error) {
	var manifest CompletionManifest

	data, err := os.ReadFile(path)
	if err != nil {
		return manifest, newIOError("read", path, err)
	}

	err = json.Unmarshal(data, &manifest)
	return manifest, err
}
