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
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/Seagate/cortx-test-sub002/common/log"
)

const (
	// DefaultChunkSize is the chunk unit of aligned and unaligned splits.
	DefaultChunkSize int64 = 5 * 1024 * 1024

	// DefaultPrecalculatedChunkSize is the unit PartSpec sizes are expressed in.
	DefaultPrecalculatedChunkSize int64 = 1024 * 1024

	// MaxSplitFileSize is the largest source file the aligned and unaligned policies support.
	// It is not enforced.
	MaxSplitFileSize int64 = 10 * 1024 * 1024 * 1024
)

// jitterTable holds the block size perturbations of an unaligned split.
var jitterTable = [10]int64{
	100 * 1024, 200 * 1024, 300 * 1024, 400 * 1024, 500 * 1024,
	600 * 1024, 700 * 1024, 800 * 1024, 900 * 1024, 1000 * 1024,
}

type randSource interface {
	Shuffle(n int, swap func(i, j int))
}

// SplitOptions tune SplitAligned and SplitUnaligned.
type SplitOptions struct {
	// ChunkSize defaults to DefaultChunkSize.
	ChunkSize int64
	// Randomize shuffles the iteration order of the resulting collection.
	Randomize bool
	// Rand is used for every shuffle of the call. When nil, Seed (if set) or the clock seeds a new source.
	Rand *rand.Rand
	Seed *int64
	// Strict is handed to SplitPrecalculated by Split.
	Strict bool
}

// PartSpec describes Count parts of Size chunks each.
type PartSpec struct {
	Size  int64 `config:"part-size" json:"part_size" yaml:"part-size"`
	Count int   `config:"count" json:"count" yaml:"count"`
}

// PrecalculatedOptions tune SplitPrecalculated.
type PrecalculatedOptions struct {
	// ChunkSize defaults to DefaultPrecalculatedChunkSize.
	ChunkSize int64
	// Strict rejects a part list that does not add up to the file size instead of
	// stopping quietly at EOF.
	Strict bool
	Rand   *rand.Rand
	Seed   *int64
}

func newRand(r *rand.Rand, seed *int64) *rand.Rand {
	if r != nil {
		return r
	}
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func chunkSizeOrDefault(chunkSize int64, def int64) (int64, error) {
	if chunkSize == 0 {
		return def, nil
	}
	if chunkSize < 0 {
		return 0, ErrInvalidChunkSize
	}
	return chunkSize, nil
}

// alignedPartSize returns how many chunks go into each block.
// A file smaller than totalParts chunks still gets one chunk per block.
func alignedPartSize(fileSize int64, chunkSize int64, totalParts int) int64 {
	partSize := (fileSize / chunkSize) / int64(totalParts)
	if partSize < 1 {
		partSize = 1
	}
	return partSize
}

// SplitAligned cuts filePath into blocks of ChunkSize * floor(floor(size/ChunkSize)/totalParts) bytes.
// The final block takes whatever is left, so the number of parts may exceed totalParts when the
// division is not exact.
func SplitAligned(filePath string, totalParts int, opts SplitOptions) (*PartCollection, error) {
	log.Trace("s3utils::SplitAligned : %s into %d parts", filePath, totalParts)

	if totalParts < 1 {
		return nil, ErrInvalidPartCount
	}
	chunkSize, err := chunkSizeOrDefault(opts.ChunkSize, DefaultChunkSize)
	if err != nil {
		return nil, err
	}

	fi, fileSize, err := openSource(filePath)
	if err != nil {
		return nil, err
	}
	defer fi.Close()

	partSize := alignedPartSize(fileSize, chunkSize, totalParts)
	blockSize := chunkSize * partSize

	parts, err := readBlocks(fi, filePath, fileSize, func() int64 { return blockSize })
	if err != nil {
		return nil, err
	}

	pc := newPartCollection(parts)
	if opts.Randomize {
		pc.shuffle(newRand(opts.Rand, opts.Seed))
	}
	log.Debug("s3utils::SplitAligned : %s split into %d parts of %d bytes", filePath, pc.Len(), blockSize)
	return pc, nil
}

// SplitUnaligned works like SplitAligned but every block is (ChunkSize + jitter) * partSize bytes,
// where jitter is drawn from a fixed table reshuffled before each read.
func SplitUnaligned(filePath string, totalParts int, opts SplitOptions) (*PartCollection, error) {
	log.Trace("s3utils::SplitUnaligned : %s into %d parts", filePath, totalParts)

	if totalParts < 1 {
		return nil, ErrInvalidPartCount
	}
	chunkSize, err := chunkSizeOrDefault(opts.ChunkSize, DefaultChunkSize)
	if err != nil {
		return nil, err
	}

	fi, fileSize, err := openSource(filePath)
	if err != nil {
		return nil, err
	}
	defer fi.Close()

	r := newRand(opts.Rand, opts.Seed)
	partSize := alignedPartSize(fileSize, chunkSize, totalParts)
	jitter := jitterTable

	parts, err := readBlocks(fi, filePath, fileSize, func() int64 {
		r.Shuffle(len(jitter), func(i, j int) {
			jitter[i], jitter[j] = jitter[j], jitter[i]
		})
		return (chunkSize + jitter[0]) * partSize
	})
	if err != nil {
		return nil, err
	}

	pc := newPartCollection(parts)
	if opts.Randomize {
		pc.shuffle(r)
	}
	log.Debug("s3utils::SplitUnaligned : %s split into %d parts", filePath, pc.Len())
	return pc, nil
}

// SplitPrecalculated reads one part per size in partList, in a shuffled order.
// Sizes are in units of ChunkSize. Unless Strict is set, a file shorter than the list
// describes ends in a short final part or fewer parts.
func SplitPrecalculated(filePath string, partList []PartSpec, opts PrecalculatedOptions) (*PartCollection, error) {
	log.Trace("s3utils::SplitPrecalculated : %s with %d descriptors", filePath, len(partList))

	chunkSize, err := chunkSizeOrDefault(opts.ChunkSize, DefaultPrecalculatedChunkSize)
	if err != nil {
		return nil, err
	}

	sizes, err := expandPartList(partList, chunkSize)
	if err != nil {
		return nil, err
	}

	fi, fileSize, err := openSource(filePath)
	if err != nil {
		return nil, err
	}
	defer fi.Close()

	if opts.Strict {
		var requested int64
		for _, s := range sizes {
			if requested > math.MaxInt64-s {
				requested = math.MaxInt64
				break
			}
			requested += s
		}
		if requested != fileSize {
			return nil, &SizeMismatchError{Path: filePath, FileSize: fileSize, Requested: requested}
		}
	}

	r := newRand(opts.Rand, opts.Seed)
	r.Shuffle(len(sizes), func(i, j int) {
		sizes[i], sizes[j] = sizes[j], sizes[i]
	})

	next := 0
	parts, err := readBlocks(fi, filePath, fileSize, func() int64 {
		if next >= len(sizes) {
			return 0
		}
		size := sizes[next]
		next++
		return size
	})
	if err != nil {
		return nil, err
	}

	pc := newPartCollection(parts)
	if pc.Len() < len(sizes) || pc.TotalSize() < fileSize {
		log.Warn("s3utils::SplitPrecalculated : %s produced %d of %d parts (%d of %d bytes)",
			filePath, pc.Len(), len(sizes), pc.TotalSize(), fileSize)
	}
	return pc, nil
}

// Split dispatches to the splitter for policy.
func Split(filePath string, policy SplitPolicy, totalParts int, partList []PartSpec, opts SplitOptions) (*PartCollection, error) {
	switch policy {
	case ESplitPolicy.ALIGNED():
		return SplitAligned(filePath, totalParts, opts)
	case ESplitPolicy.UNALIGNED():
		return SplitUnaligned(filePath, totalParts, opts)
	case ESplitPolicy.PRECALCULATED():
		pc, err := SplitPrecalculated(filePath, partList, PrecalculatedOptions{
			ChunkSize: opts.ChunkSize,
			Strict:    opts.Strict,
			Rand:      opts.Rand,
			Seed:      opts.Seed,
		})
		if err != nil {
			return nil, err
		}
		if opts.Randomize {
			pc.shuffle(newRand(opts.Rand, opts.Seed))
		}
		return pc, nil
	}
	return nil, errors.New("unknown split policy " + policy.String())
}

// expandPartList returns one byte size per part. A descriptor whose byte size
// does not fit in an int64 is rejected.
func expandPartList(partList []PartSpec, chunkSize int64) ([]int64, error) {
	var sizes []int64
	for _, spec := range partList {
		if spec.Size <= 0 || spec.Count < 0 {
			return nil, ErrInvalidPartSpec
		}
		if spec.Size > math.MaxInt64/chunkSize {
			return nil, fmt.Errorf("part size of %d chunks of %d bytes overflows: %w", spec.Size, chunkSize, ErrInvalidPartSpec)
		}
		for i := 0; i < spec.Count; i++ {
			sizes = append(sizes, spec.Size*chunkSize)
		}
	}
	return sizes, nil
}

func openSource(filePath string) (*os.File, int64, error) {
	fi, err := os.Open(filePath)
	if err != nil {
		log.Err("s3utils::openSource : failed to open %s [%s]", filePath, err.Error())
		return nil, 0, newIOError("open", filePath, err)
	}

	stat, err := fi.Stat()
	if err != nil {
		fi.Close()
		log.Err("s3utils::openSource : failed to stat %s [%s]", filePath, err.Error())
		return nil, 0, newIOError("stat", filePath, err)
	}
	return fi, stat.Size(), nil
}

// readBlocks reads fi sequentially, asking nextSize for the length of every block, until EOF
// or until nextSize returns 0. An empty file gives one empty part.
func readBlocks(fi *os.File, filePath string, fileSize int64, nextSize func() int64) ([]Part, error) {
	if fileSize == 0 {
		return []Part{newPart(1, []byte{})}, nil
	}

	var parts []Part
	var offset int64
	for offset < fileSize {
		size := nextSize()
		if size <= 0 {
			break
		}
		if remaining := fileSize - offset; size > remaining {
			size = remaining
		}

		buf := make([]byte, size)
		n, err := io.ReadFull(fi, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			log.Err("s3utils::readBlocks : failed to read %s at offset %d [%s]", filePath, offset, err.Error())
			return nil, newIOError("read", filePath, err)
		}
		if n == 0 {
			break
		}

		parts = append(parts, newPart(len(parts)+1, buf[:n]))
		offset += int64(n)
	}
	return parts, nil
}
