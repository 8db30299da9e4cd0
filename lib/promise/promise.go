// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package promise

import (
	"context"

	"github.com/promisekit/promisekit/lib/agentlog"
	"github.com/promisekit/promisekit/lib/attribute"
)

// Module is a promise module implementation: one concrete type per
// promise kind. The executor constructs the instance once; it outlives
// the whole request loop.
//
// The executor guarantees ordering: Init runs at most once, strictly
// before the first Validate/Check/Apply dispatch; Terminate runs at
// most once and ends the session. Validate, Check, and Apply are only
// called with attribute maps that already passed schema validation.
type Module interface {
	// Name is the module's identity for the handshake.
	Name() string

	// Version is the module's version for the handshake.
	Version() string

	// Schema declares the required and optional attributes. It is
	// consulted on every request; implementations should return a
	// fixed value (a method rather than a field so the set can depend
	// on the platform, not on request state).
	Schema() attribute.Schema

	// Init runs set-up work. It is called lazily, on receipt of the
	// first request, so an expensive Init costs nothing when the
	// agent terminates the session immediately. A Failure or Error
	// result aborts the session before any request is dispatched.
	Init(ctx context.Context, log *agentlog.Logger) ProtocolResult

	// Validate checks parameter validity beyond what the schema
	// expresses, e.g. cross-attribute constraints.
	Validate(ctx context.Context, log *agentlog.Logger, promiser string, attributes attribute.Map) ValidateResult

	// Check tests whether the promised state already holds, without
	// mutating anything. Modules that are pure actions with no
	// sensible test should return CheckAlwaysApply.
	Check(ctx context.Context, log *agentlog.Logger, promiser string, attributes attribute.Map) CheckResult

	// Apply enforces the promised state. It is only called when Check
	// reported drift (or CheckAlwaysApply) and the request permits
	// repair; it never runs in check-only mode.
	Apply(ctx context.Context, log *agentlog.Logger, promiser string, attributes attribute.Map) ApplyResult

	// Terminate runs clean-up work before the session ends.
	Terminate(ctx context.Context, log *agentlog.Logger) ProtocolResult
}
