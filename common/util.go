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

package common

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DirectoryExists is a utility function that returns true if the directory at that path exists and returns false if it does not exist.
func DirectoryExists(path string) bool {
	_, err := os.Stat(path)

	if os.IsNotExist(err) {
		return false
	} else if err != nil {
		return false
	}
	return true
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// JoinUnixFilepath uses filepath.join to join a path and ensures that
// path only uses unix path delimiters.
func JoinUnixFilepath(elem ...string) string {
	return NormalizeObjectName(path.Join(elem...))
}

// normalizeObjectName : If file contains \\ in name replace it with ..
func NormalizeObjectName(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}

// convert ~ to $HOME in path
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		path = JoinUnixFilepath(homeDir, path[2:])
	} else if strings.HasPrefix(path, "$HOME/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		path = JoinUnixFilepath(homeDir, path[6:])
	}

	path = os.ExpandEnv(path)
	path, _ = filepath.Abs(path)
	return JoinUnixFilepath(path)
}

// CreateDefaultDirectory makes sure the work directory used for logs and manifests exists.
func CreateDefaultDirectory() error {
	dir, err := os.Stat(ExpandPath(DefaultWorkDir))
	if err == nil && !dir.IsDir() {
		return fmt.Errorf("%s is not a directory", DefaultWorkDir)
	}

	if err != nil && os.IsNotExist(err) {
		// create the default work dir
		if err = os.MkdirAll(ExpandPath(DefaultWorkDir), 0755); err != nil {
			return err
		}
	}
	return nil
}

type WriteToFileOptions struct {
	Flags      int
	Permission os.FileMode
}

func WriteToFile(filename string, data string, options WriteToFileOptions) error {
	// Open the file with the provided flags, create it if it doesn't exist
	//check if options.Permission is 0 if so then assign 0644
	if options.Permission == 0 {
		options.Permission = 0644
	}
	file, err := os.OpenFile(filename, options.Flags|os.O_CREATE|os.O_WRONLY, options.Permission)
	if err != nil {
		return fmt.Errorf("error opening file: [%w]", err)
	}

	return writeAndClose(file, data)
}

// writeAndClose writes data to w and closes it. A failed close is reported as
// a failed write, as buffered data may not have reached the disk.
func writeAndClose(w io.WriteCloser, data string) error {
	if _, err := io.WriteString(w, data); err != nil {
		_ = w.Close()
		return fmt.Errorf("error writing to file [%w]", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("error closing file [%w]", err)
	}
	return nil
}
