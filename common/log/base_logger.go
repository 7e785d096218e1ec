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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Seagate/cortx-test-sub002/common"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// BaseLogger writes structured lines through zerolog, to a file when one is configured and to stderr otherwise.
type BaseLogger struct {
	level  *atomic.Int32
	logger zerolog.Logger
	file   *os.File
	tag    string
}

func newBaseLogger(config common.LogConfig) (*BaseLogger, error) {
	l := &BaseLogger{
		level: atomic.NewInt32(int32(config.Level)),
		tag:   config.Tag,
	}
	if config.Level == common.ELogLevel.INVALID() {
		l.level.Store(int32(common.ELogLevel.LOG_WARNING()))
	}

	var out io.Writer = os.Stderr
	if config.FilePath != "" {
		path := common.ExpandPath(config.FilePath)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory [%s]", err.Error())
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s [%s]", path, err.Error())
		}
		l.file = f
		out = f
	}

	l.logger = zerolog.New(out).With().Timestamp().Str("tag", l.tag).Int("pid", os.Getpid()).Logger()
	return l, nil
}

func (l *BaseLogger) GetType() string {
	return "base"
}

func (l *BaseLogger) GetLogLevel() common.LogLevel {
	return common.LogLevel(l.level.Load())
}

func (l *BaseLogger) SetLogLevel(level common.LogLevel) {
	l.level.Store(int32(level))
}

func (l *BaseLogger) enabled(level common.LogLevel) bool {
	return level <= l.GetLogLevel()
}

func (l *BaseLogger) logEvent(level common.LogLevel, zl zerolog.Level, format string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	l.logger.WithLevel(zl).Str("severity", level.String()).Msgf(format, args...)
}

func (l *BaseLogger) Debug(format string, args ...interface{}) {
	l.logEvent(common.ELogLevel.LOG_DEBUG(), zerolog.DebugLevel, format, args...)
}

func (l *BaseLogger) Trace(format string, args ...interface{}) {
	// zerolog drops its own trace level unless the global level is lowered, so trace is written as debug
	l.logEvent(common.ELogLevel.LOG_TRACE(), zerolog.DebugLevel, format, args...)
}

func (l *BaseLogger) Info(format string, args ...interface{}) {
	l.logEvent(common.ELogLevel.LOG_INFO(), zerolog.InfoLevel, format, args...)
}

func (l *BaseLogger) Warn(format string, args ...interface{}) {
	l.logEvent(common.ELogLevel.LOG_WARNING(), zerolog.WarnLevel, format, args...)
}

func (l *BaseLogger) Err(format string, args ...interface{}) {
	l.logEvent(common.ELogLevel.LOG_ERR(), zerolog.ErrorLevel, format, args...)
}

// Crit is written at fatal severity but, unlike zerolog's Fatal, does not exit.
func (l *BaseLogger) Crit(format string, args ...interface{}) {
	l.logEvent(common.ELogLevel.LOG_CRIT(), zerolog.FatalLevel, format, args...)
}

func (l *BaseLogger) Destroy() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
