// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

// Package protocol implements the wire format of the promise module
// protocol: the blank-line record framing, the one-shot header
// exchange, and the JSON request/response shapes with their outcome
// vocabulary.
//
// The protocol is carried on two text streams. Each logical record is
// one line of content terminated by a single empty line. The first
// record each side sends is its identity in the form
// "<name> <version>"; every later record is a JSON object
// discriminated by its "operation" field.
//
// The codec is transport-agnostic: it reads from any io.Reader and
// writes to any io.Writer, so tests can feed canned input and capture
// output without touching process standard streams.
package protocol
