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
	"errors"
	"strings"

	"github.com/Seagate/cortx-test-sub002/common"
)

// Logger : Interface to define a generic Logger. Implement this to create your new logging lib
type Logger interface {
	GetType() string
	GetLogLevel() common.LogLevel
	SetLogLevel(common.LogLevel)

	Debug(format string, args ...interface{})
	Trace(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Err(format string, args ...interface{})
	Crit(format string, args ...interface{})

	Destroy() error
}

var logObj Logger

func init() {
	logObj, _ = NewLogger("silent", common.LogConfig{})
}

// NewLogger : Method to create Logger object
func NewLogger(name string, config common.LogConfig) (Logger, error) {
	if len(strings.TrimSpace(config.Tag)) == 0 {
		config.Tag = common.ToolName
	}

	switch name {
	case "silent":
		return &SilentLogger{}, nil
	case "", "default", "base":
		baseLogger, err := newBaseLogger(config)
		if err != nil {
			return nil, err
		}
		return baseLogger, nil
	}
	return nil, errors.New("invalid logger type")
}

// SetDefaultLogger : Reset the default logger to something else
func SetDefaultLogger(name string, config common.LogConfig) error {
	newLog, err := NewLogger(name, config)
	if err != nil {
		return err
	}

	if logObj != nil {
		_ = logObj.Destroy()
	}
	logObj = newLog
	return nil
}

// GetType : Get the current logger type
func GetType() string {
	return logObj.GetType()
}

// SetLogLevel : Reset the log level
func SetLogLevel(lvl common.LogLevel) {
	logObj.SetLogLevel(lvl)
}

// GetLogLevel : Get the current log level
func GetLogLevel() common.LogLevel {
	return logObj.GetLogLevel()
}

// Destroy : Destroy the logger
func Destroy() error {
	return logObj.Destroy()
}

// ------------------ Public methods for logging events ------------------

// Debug : Debug message logging
func Debug(msg string, args ...interface{}) {
	logObj.Debug(msg, args...)
}

// Trace : Trace message logging
func Trace(msg string, args ...interface{}) {
	logObj.Trace(msg, args...)
}

// Info : Info message logging
func Info(msg string, args ...interface{}) {
	logObj.Info(msg, args...)
}

// Warn : Warning message logging
func Warn(msg string, args ...interface{}) {
	logObj.Warn(msg, args...)
}

// Err : Error message logging
func Err(msg string, args ...interface{}) {
	logObj.Err(msg, args...)
}

// Crit : Critical message logging
func Crit(msg string, args ...interface{}) {
	logObj.Crit(msg, args...)
}
