// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

// Package executor runs the promise module protocol against a
// promise.Module implementation.
//
// The executor owns the whole session lifecycle: it performs the
// header exchange with the agent, lazily initializes the module on
// the first request, then loops — read one request record, validate
// its attributes against the module's schema, dispatch to the module,
// write the response — until a terminate request ends the loop.
//
// The loop is strictly single-threaded and half-duplex: one request
// is fully processed before the next is read, and the only blocking
// point is the read of the next record. There is deliberately no read
// timeout; the agent is a trusted co-process, and a peer that stops
// talking simply blocks the module. The passed context is handed to
// every module hook so implementations can bound their own work.
//
// Protocol violations — a malformed handshake, broken record framing,
// an unknown operation, attributes that fail schema validation — are
// fatal: Run returns the error without writing a response for the
// offending record. A promise that is merely invalid, unrepaired, or
// erroring inside the module is not a violation; it is reported as a
// structured outcome and the loop continues.
package executor
