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
	"io"
	"reflect"
	"sort"

	"github.com/JeffreyRichter/enum/enum"
)

// Part is one contiguous byte range of a source file, numbered for a single UploadPart call.
type Part struct {
	Number     int
	Data       []byte
	ContentMD5 string
}

func newPart(number int, data []byte) Part {
	return Part{
		Number:     number,
		Data:       data,
		ContentMD5: ContentMD5(data),
	}
}

// Size returns the number of bytes in the part.
func (p Part) Size() int64 {
	return int64(len(p.Data))
}

// UploadedPart is the (data, content-md5) pair kept for a part that was already sent to the object store.
type UploadedPart struct {
	Data       []byte
	ContentMD5 string
}

// PartCollection maps part numbers 1..N to parts.
// Iteration order is ascending unless the collection was randomized, in which case only
// the order in which parts are handed out changes. Number to bytes never changes.
type PartCollection struct {
	parts      []Part // parts[i].Number == i+1
	order      []int
	randomized bool
}

func newPartCollection(parts []Part) *PartCollection {
	order := make([]int, len(parts))
	for i := range parts {
		order[i] = i + 1
	}
	return &PartCollection{parts: parts, order: order}
}

// shuffle permutes the iteration order with the supplied source.
func (pc *PartCollection) shuffle(r randSource) {
	r.Shuffle(len(pc.order), func(i, j int) {
		pc.order[i], pc.order[j] = pc.order[j], pc.order[i]
	})
	pc.randomized = true
}

// Len returns the number of parts.
func (pc *PartCollection) Len() int {
	return len(pc.parts)
}

// Randomized reports whether the iteration order was shuffled.
func (pc *PartCollection) Randomized() bool {
	return pc.randomized
}

// Get returns part number n.
func (pc *PartCollection) Get(n int) (Part, bool) {
	if n < 1 || n > len(pc.parts) {
		return Part{}, false
	}
	return pc.parts[n-1], true
}

// Numbers returns the part numbers in iteration order.
func (pc *PartCollection) Numbers() []int {
	numbers := make([]int, len(pc.order))
	copy(numbers, pc.order)
	return numbers
}

// Parts returns the parts in iteration order.
func (pc *PartCollection) Parts() []Part {
	parts := make([]Part, 0, len(pc.order))
	for _, n := range pc.order {
		parts = append(parts, pc.parts[n-1])
	}
	return parts
}

// Sorted returns the parts in ascending part number order.
func (pc *PartCollection) Sorted() []Part {
	parts := make([]Part, len(pc.parts))
	copy(parts, pc.parts)
	return parts
}

// Sizes returns the part sizes in ascending part number order.
func (pc *PartCollection) Sizes() []int64 {
	sizes := make([]int64, len(pc.parts))
	for i, p := range pc.parts {
		sizes[i] = p.Size()
	}
	return sizes
}

// TotalSize returns the sum of all part sizes.
func (pc *PartCollection) TotalSize() int64 {
	var total int64
	for _, p := range pc.parts {
		total += p.Size()
	}
	return total
}

// WriteTo writes the parts to w in ascending part number order, rebuilding the source file.
func (pc *PartCollection) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for _, p := range pc.parts {
		n, err := w.Write(p.Data)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Uploaded returns the collection in the part number -> (data, content-md5) form.
func (pc *PartCollection) Uploaded() map[int]UploadedPart {
	uploaded := make(map[int]UploadedPart, len(pc.parts))
	for _, p := range pc.parts {
		uploaded[p.Number] = UploadedPart{Data: p.Data, ContentMD5: p.ContentMD5}
	}
	return uploaded
}

// ManifestEntries pairs every part number with the ETag the object store returned for it.
// Entries come out in ascending part number order; parts with no ETag in etags are skipped.
func (pc *PartCollection) ManifestEntries(etags map[int]string) []ManifestEntry {
	numbers := make([]int, 0, len(etags))
	for n := range etags {
		if _, ok := pc.Get(n); ok {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)

	entries := make([]ManifestEntry, 0, len(numbers))
	for _, n := range numbers {
		entries = append(entries, ManifestEntry{PartNumber: n, ETag: etags[n]})
	}
	return entries
}

// SplitPolicy selects how a file is cut into parts.
type SplitPolicy int

var ESplitPolicy = SplitPolicy(0).INVALID()

func (SplitPolicy) INVALID() SplitPolicy {
	return SplitPolicy(0)
}

func (SplitPolicy) ALIGNED() SplitPolicy {
	return SplitPolicy(1)
}

func (SplitPolicy) UNALIGNED() SplitPolicy {
	return SplitPolicy(2)
}

func (SplitPolicy) PRECALCULATED() SplitPolicy {
	return SplitPolicy(3)
}

func (p SplitPolicy) String() string {
	return enum.StringInt(p, reflect.TypeOf(p))
}

func (p *SplitPolicy) Parse(s string) error {
	enumVal, err := enum.ParseInt(reflect.TypeOf(p), s, true, false)
	if enumVal != nil {
		*p = enumVal.(SplitPolicy)
	}
	return err
}
