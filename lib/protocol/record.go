// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrFraming reports a violation of the record framing convention:
// the line after a record's content was not empty, or the stream
// ended in the middle of a record.
var ErrFraming = errors.New("record framing violated")

// RecordReader reads framed records from a byte stream. A record is
// the next line of input followed by exactly one further line that
// must be empty. Lines carry no length limit: an attribute map can
// make a record arbitrarily large.
type RecordReader struct {
	reader *bufio.Reader
}

// NewRecordReader returns a RecordReader consuming from r.
func NewRecordReader(r io.Reader) *RecordReader {
	return &RecordReader{reader: bufio.NewReader(r)}
}

// readLine returns the next line with its terminator stripped. It
// returns io.EOF only when the stream ends with no bytes pending; a
// final line without a trailing newline is still a line.
func (r *RecordReader) readLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// ReadRecord returns the content line of the next record. It returns
// io.EOF when the stream is cleanly exhausted before a record starts,
// and an ErrFraming-wrapped error when the terminating empty line is
// missing or non-empty.
func (r *RecordReader) ReadRecord() (string, error) {
	content, err := r.readLine()
	if err == io.EOF {
		return "", io.EOF
	}
	if err != nil {
		return "", fmt.Errorf("reading record: %w", err)
	}

	terminator, err := r.readLine()
	if err == io.EOF {
		return "", fmt.Errorf("%w: stream ended before record terminator", ErrFraming)
	}
	if err != nil {
		return "", fmt.Errorf("reading record terminator: %w", err)
	}
	if terminator != "" {
		return "", fmt.Errorf("%w: expected empty line after record, got %q", ErrFraming, terminator)
	}
	return content, nil
}

// RecordWriter writes framed records to a byte stream. Each record is
// flushed as soon as it is written: the peer may be reading
// synchronously with no buffering of its own, so a record must be
// fully delivered before the next one is produced.
type RecordWriter struct {
	writer *bufio.Writer
}

// NewRecordWriter returns a RecordWriter emitting to w.
func NewRecordWriter(w io.Writer) *RecordWriter {
	return &RecordWriter{writer: bufio.NewWriter(w)}
}

// WriteRecord writes one record: the content, its newline, and the
// empty terminator line, then flushes.
func (w *RecordWriter) WriteRecord(content string) error {
	if _, err := w.writer.WriteString(content); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if _, err := w.writer.WriteString("\n\n"); err != nil {
		return fmt.Errorf("writing record terminator: %w", err)
	}
	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("flushing record: %w", err)
	}
	return nil
}

// WriteJSON serializes v as one compact JSON line and writes it as a
// record.
func (w *RecordWriter) WriteJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return w.WriteRecord(string(data))
}
