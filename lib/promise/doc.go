// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

// Package promise defines the contract between the executor and a
// promise module implementation.
//
// A promise module declares an identity and an attribute schema, and
// implements five hooks: Init (once, before the first request is
// dispatched), Validate (parameter checks beyond the schema), Check
// (test whether the promised state holds), Apply (enforce it), and
// Terminate (cleanup at end of session). Check and Apply are split so
// the executor can implement audit mode — evaluate without mutating —
// once, instead of every module reimplementing it.
//
// Hooks return rich results (a category plus a human-readable reason).
// The executor projects each result to its coarse wire outcome; the
// reason never crosses the record stream, it is dropped into the log
// side channel at the severity the protocol prescribes.
package promise
