// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package promise

import (
	"errors"

	"github.com/promisekit/promisekit/lib/agentlog"
	"github.com/promisekit/promisekit/lib/protocol"
)

// ValidateResult is the rich result of a Validate hook.
type ValidateResult struct {
	outcome protocol.ValidateOutcome
	reason  string
}

// Valid reports that the parameters are valid.
func Valid() ValidateResult {
	return ValidateResult{outcome: protocol.OutcomeValid}
}

// Invalid reports a policy error in the parameters. The reason is
// logged at error severity.
func Invalid(reason string) ValidateResult {
	return ValidateResult{outcome: protocol.OutcomeInvalid, reason: reason}
}

// ValidateError reports an unexpected failure during validation. The
// reason is logged at error severity.
func ValidateError(reason string) ValidateResult {
	return ValidateResult{outcome: protocol.OutcomeValidateError, reason: reason}
}

// Outcome projects the result to its wire outcome, dropping the
// reason into the log.
func (r ValidateResult) Outcome(log *agentlog.Logger) protocol.ValidateOutcome {
	if r.outcome != protocol.OutcomeValid {
		log.Errorf("%s", r.reason)
	}
	return r.outcome
}

type checkKind int

const (
	checkKept checkKind = iota
	checkAlwaysApply
	checkNotKept
	checkError
)

// CheckResult is the rich result of a Check hook. In check-only
// (audit) mode it is also the final result of the whole evaluation.
type CheckResult struct {
	kind   checkKind
	reason string
}

// CheckKept reports that the promised state already holds.
func CheckKept() CheckResult {
	return CheckResult{kind: checkKept}
}

// CheckAlwaysApply reports that the promise is an action with no
// sensible test and must be applied on every evaluation.
func CheckAlwaysApply() CheckResult {
	return CheckResult{kind: checkAlwaysApply}
}

// CheckNotKept reports detected drift. The reason is logged at error
// severity in check-only mode (the drift will not be fixed) and at
// info severity otherwise (a fix is about to be attempted).
func CheckNotKept(reason string) CheckResult {
	return CheckResult{kind: checkNotKept, reason: reason}
}

// CheckError reports an unexpected failure during the check. The
// reason is logged at error severity.
func CheckError(reason string) CheckResult {
	return CheckResult{kind: checkError, reason: reason}
}

// Outcome projects the result to its wire outcome, dropping the
// reason into the log at the severity the audit policy prescribes.
func (r CheckResult) Outcome(log *agentlog.Logger, checkOnly bool) protocol.EvaluateOutcome {
	switch r.kind {
	case checkKept:
		return protocol.OutcomeKept
	case checkAlwaysApply:
		log.Infof("this promise must be applied every time")
		return protocol.OutcomeNotKept
	case checkNotKept:
		if checkOnly {
			log.Errorf("%s", r.reason)
		} else {
			log.Infof("%s", r.reason)
		}
		return protocol.OutcomeNotKept
	default:
		log.Errorf("%s", r.reason)
		return protocol.OutcomeEvaluateError
	}
}

type applyKind int

const (
	applyKept applyKind = iota
	applyRepaired
	applyNotKept
	applyError
	applyAuditOnly
)

// ApplyResult is the rich result of an Apply hook.
type ApplyResult struct {
	kind   applyKind
	reason string
}

// ApplyKept reports that the promised state already held, so nothing
// was changed.
func ApplyKept() ApplyResult {
	return ApplyResult{kind: applyKept}
}

// ApplyRepaired reports that drift was fixed. The reason is logged at
// info severity.
func ApplyRepaired(reason string) ApplyResult {
	return ApplyResult{kind: applyRepaired, reason: reason}
}

// ApplyNotKept reports that drift could not be fixed. The reason is
// logged at error severity.
func ApplyNotKept(reason string) ApplyResult {
	return ApplyResult{kind: applyNotKept, reason: reason}
}

// ApplyError reports an unexpected failure during the repair. The
// reason is logged at error severity.
func ApplyError(reason string) ApplyResult {
	return ApplyResult{kind: applyError, reason: reason}
}

// ApplyAuditOnly marks a promise that must only ever be checked.
// Reaching Apply on such a promise is a module bug, reported as an
// error outcome.
func ApplyAuditOnly() ApplyResult {
	return ApplyResult{kind: applyAuditOnly}
}

// Outcome projects the result to its wire outcome, dropping the
// reason into the log.
func (r ApplyResult) Outcome(log *agentlog.Logger) protocol.EvaluateOutcome {
	switch r.kind {
	case applyKept:
		return protocol.OutcomeKept
	case applyRepaired:
		log.Infof("%s", r.reason)
		return protocol.OutcomeRepaired
	case applyNotKept:
		log.Errorf("%s", r.reason)
		return protocol.OutcomeNotKept
	case applyError:
		log.Errorf("%s", r.reason)
		return protocol.OutcomeEvaluateError
	default:
		log.Errorf("promise is audit-only and must never be applied")
		return protocol.OutcomeEvaluateError
	}
}

// ProtocolResult is the rich result of an Init or Terminate hook.
type ProtocolResult struct {
	outcome protocol.ProtocolOutcome
	reason  string
}

// ProtocolSuccess reports that the hook completed.
func ProtocolSuccess() ProtocolResult {
	return ProtocolResult{outcome: protocol.OutcomeSuccess}
}

// ProtocolFailure reports that the hook failed. The reason is logged
// at error severity.
func ProtocolFailure(reason string) ProtocolResult {
	return ProtocolResult{outcome: protocol.OutcomeFailure, reason: reason}
}

// ProtocolError reports an unexpected failure inside the hook. The
// reason is logged at error severity.
func ProtocolError(reason string) ProtocolResult {
	return ProtocolResult{outcome: protocol.OutcomeProtocolError, reason: reason}
}

// Outcome projects the result to its wire outcome, dropping the
// reason into the log.
func (r ProtocolResult) Outcome(log *agentlog.Logger) protocol.ProtocolOutcome {
	if r.outcome != protocol.OutcomeSuccess {
		log.Errorf("%s", r.reason)
	}
	return r.outcome
}

// Err converts a non-success result into an error carrying the
// reason. Used for Init, whose failure must abort the session rather
// than surface as a response.
func (r ProtocolResult) Err() error {
	if r.outcome == protocol.OutcomeSuccess {
		return nil
	}
	return errors.New(r.reason)
}
