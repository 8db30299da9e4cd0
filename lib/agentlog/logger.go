// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package agentlog

import (
	"fmt"
	"io"
)

// Logger writes severity-gated messages to the log side channel. It
// must be given a stream distinct from the protocol's record stream:
// a log line interleaved into the record stream would corrupt a
// protocol record.
//
// Logger is not safe for concurrent use. The executor's request loop
// is single-threaded, so the threshold set for a request is always
// observed by every message emitted while handling that request.
type Logger struct {
	out       io.Writer
	threshold Level
}

// New returns a Logger writing to out. The initial threshold is
// Critical; the executor raises it from each request's log_level
// before dispatching.
func New(out io.Writer) *Logger {
	return &Logger{out: out, threshold: Critical}
}

// SetThreshold replaces the current severity threshold.
func (l *Logger) SetThreshold(threshold Level) {
	l.threshold = threshold
}

// Threshold returns the current severity threshold.
func (l *Logger) Threshold() Level {
	return l.threshold
}

// Logf emits a message at the given level. Messages less severe than
// the current threshold are dropped.
func (l *Logger) Logf(level Level, format string, args ...any) {
	if !level.AtLeast(l.threshold) {
		return
	}
	fmt.Fprintf(l.out, "log_%s=%s\n", level, fmt.Sprintf(format, args...))
}

// Criticalf emits a message at Critical severity.
func (l *Logger) Criticalf(format string, args ...any) {
	l.Logf(Critical, format, args...)
}

// Errorf emits a message at Error severity.
func (l *Logger) Errorf(format string, args ...any) {
	l.Logf(Error, format, args...)
}

// Warningf emits a message at Warning severity.
func (l *Logger) Warningf(format string, args ...any) {
	l.Logf(Warning, format, args...)
}

// Noticef emits a message at Notice severity.
func (l *Logger) Noticef(format string, args ...any) {
	l.Logf(Notice, format, args...)
}

// Infof emits a message at Info severity.
func (l *Logger) Infof(format string, args ...any) {
	l.Logf(Info, format, args...)
}

// Verbosef emits a message at Verbose severity.
func (l *Logger) Verbosef(format string, args ...any) {
	l.Logf(Verbose, format, args...)
}

// Debugf emits a message at Debug severity.
func (l *Logger) Debugf(format string, args ...any) {
	l.Logf(Debug, format, args...)
}
