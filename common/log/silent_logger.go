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

package log

import (
	"github.com/Seagate/cortx-test-sub002/common"
)

// SilentLogger drops every message.
type SilentLogger struct {
}

func (*SilentLogger) GetLoggerObj() interface{} {
	return nil
}

func (*SilentLogger) SetLogLevel(_ common.LogLevel) {
}

func (*SilentLogger) GetLogLevel() common.LogLevel {
	return common.ELogLevel.LOG_OFF()
}

func (*SilentLogger) GetType() string {
	return "silent"
}

func (*SilentLogger) Debug(_ string, _ ...interface{}) {}
func (*SilentLogger) Trace(_ string, _ ...interface{}) {}
func (*SilentLogger) Info(_ string, _ ...interface{})  {}
func (*SilentLogger) Warn(_ string, _ ...interface{})  {}
func (*SilentLogger) Err(_ string, _ ...interface{})   {}
func (*SilentLogger) Crit(_ string, _ ...interface{})  {}

func (*SilentLogger) Destroy() error {
	return nil
}
