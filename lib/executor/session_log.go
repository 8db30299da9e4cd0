// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/promisekit/promisekit/lib/protocol"
)

// sessionLog appends one compact JSON line per dispatched request to
// a trace file, plus a closing summary line. All methods are nil-safe
// so the executor can call through an absent trace unconditionally.
// No mutex: the request loop that feeds the trace is single-threaded.
type sessionLog struct {
	file    *os.File
	encoder *json.Encoder
	closed  bool

	startTime time.Time
	requests  int64
	kept      int64
	repaired  int64
	notKept   int64
	errors    int64
}

// sessionLogEntry is one traced request.
type sessionLogEntry struct {
	Time      time.Time `json:"time"`
	Operation string    `json:"operation"`
	Promiser  string    `json:"promiser,omitempty"`
	Result    string    `json:"result"`
	CheckOnly bool      `json:"check_only,omitempty"`
}

// sessionLogSummary is the closing line of a trace.
type sessionLogSummary struct {
	Time     time.Time     `json:"time"`
	Summary  bool          `json:"summary"`
	Requests int64         `json:"requests"`
	Kept     int64         `json:"kept"`
	Repaired int64         `json:"repaired"`
	NotKept  int64         `json:"not_kept"`
	Errors   int64         `json:"errors"`
	Duration time.Duration `json:"duration"`
}

// newSessionLog creates (or truncates) the trace file at path.
func newSessionLog(path string) (*sessionLog, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating session log %q: %w", path, err)
	}
	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	return &sessionLog{
		file:      file,
		encoder:   encoder,
		startTime: time.Now(),
	}, nil
}

// Record appends one traced request. The trace exists only because it
// was explicitly requested, so a write failure is an error rather
// than a silently incomplete file.
func (l *sessionLog) Record(operation, promiser, result string, checkOnly bool) error {
	if l == nil {
		return nil
	}
	entry := sessionLogEntry{
		Time:      time.Now().UTC(),
		Operation: operation,
		Promiser:  promiser,
		Result:    result,
		CheckOnly: checkOnly,
	}
	if err := l.encoder.Encode(entry); err != nil {
		return fmt.Errorf("writing session log entry: %w", err)
	}

	l.requests++
	switch result {
	case string(protocol.OutcomeKept):
		l.kept++
	case string(protocol.OutcomeRepaired):
		l.repaired++
	case string(protocol.OutcomeNotKept):
		l.notKept++
	case string(protocol.OutcomeEvaluateError):
		l.errors++
	}
	return nil
}

// Close writes the summary line and closes the file. Close is
// idempotent and nil-safe.
func (l *sessionLog) Close() error {
	if l == nil || l.closed {
		return nil
	}
	l.closed = true

	summary := sessionLogSummary{
		Time:     time.Now().UTC(),
		Summary:  true,
		Requests: l.requests,
		Kept:     l.kept,
		Repaired: l.repaired,
		NotKept:  l.notKept,
		Errors:   l.errors,
		Duration: time.Since(l.startTime),
	}
	if err := l.encoder.Encode(summary); err != nil {
		l.file.Close()
		return fmt.Errorf("writing session log summary: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing session log: %w", err)
	}
	return nil
}
