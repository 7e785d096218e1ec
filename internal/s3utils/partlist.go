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
	"fmt"
	"strconv"
	"strings"
)

// ParsePartList reads descriptors written as "<count>x<size>" separated by commas,
// for example "2x5,1x3" for two parts of 5 chunks and one part of 3 chunks.
func ParsePartList(s string) ([]PartSpec, error) {
	var specs []PartSpec
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		count, size, found := strings.Cut(strings.ToLower(field), "x")
		if !found {
			return nil, fmt.Errorf("part descriptor %q is not in <count>x<size> form", field)
		}

		c, err := strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("part descriptor %q has a bad count [%s]", field, err.Error())
		}
		sz, err := strconv.ParseInt(size, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("part descriptor %q has a bad size [%s]", field, err.Error())
		}
		if c < 0 || sz <= 0 {
			return nil, fmt.Errorf("part descriptor %q: %w", field, ErrInvalidPartSpec)
		}

		specs = append(specs, PartSpec{Size: sz, Count: c})
	}
	return specs, nil
}

// TotalParts returns the number of parts a part list expands to.
func TotalParts(partList []PartSpec) int {
	total := 0
	for _, spec := range partList {
		total += spec.Count
	}
	return total
}
