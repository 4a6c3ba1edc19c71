// Copyright 2017 The Crate Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package log is the process-wide logging front-end: severity-tagged,
// caller-annotated lines on stderr. Components take a context.Context
// so that request-scoped tags can be threaded through later without
// touching call sites.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Severity of a log event.
type Severity int

const (
	// SeverityInfo is for normal operational events.
	SeverityInfo Severity = iota
	// SeverityWarning is for events that need attention but do not fail
	// the operation.
	SeverityWarning
	// SeverityError is for failed operations.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "I"
	case SeverityWarning:
		return "W"
	case SeverityError:
		return "E"
	default:
		return "?"
	}
}

var (
	mu  sync.Mutex
	out io.Writer = os.Stderr
)

// SetOutput redirects log output, returning the previous writer. Used
// by tests.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func output(sev Severity, depth int, format string, args []interface{}) {
	file := "???"
	line := 0
	if _, f, l, ok := runtime.Caller(depth + 1); ok {
		file, line = filepath.Base(f), l
	}
	now := time.Now().Format("060102 15:04:05.000000")
	msg := fmt.Sprintf(format, args...)
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s%s %s:%d  %s\n", sev, now, file, line, msg)
}

// Infof logs at info severity.
func Infof(_ context.Context, format string, args ...interface{}) {
	output(SeverityInfo, 1, format, args)
}

// Warningf logs at warning severity.
func Warningf(_ context.Context, format string, args ...interface{}) {
	output(SeverityWarning, 1, format, args)
}

// Errorf logs at error severity.
func Errorf(_ context.Context, format string, args ...interface{}) {
	output(SeverityError, 1, format, args)
}
