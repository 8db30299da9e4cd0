// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

// Package agentlog implements the log side channel of the promise
// module protocol.
//
// The agent assigns each request a severity threshold via the
// log_level field. Messages the module emits while handling that
// request are delivered to the agent as lines of the form
//
//	log_<level>=<message>
//
// on a stream distinct from the protocol's record stream, and only
// when the message severity reaches the current threshold. The
// threshold is state on the Logger, owned by the executor and handed
// to each promise hook — there is no process-global level.
package agentlog
