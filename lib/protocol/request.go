// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/promisekit/promisekit/lib/agentlog"
	"github.com/promisekit/promisekit/lib/attribute"
)

// Operation values discriminate requests on the wire.
const (
	OperationValidate  = "validate_promise"
	OperationEvaluate  = "evaluate_promise"
	OperationTerminate = "terminate"
)

// ActionPolicy values select whether an evaluate request may repair
// drift or only report it.
const (
	// ActionPolicyFix lets the module apply changes when its check
	// detects drift. An absent action_policy means the same.
	ActionPolicyFix = "fix"

	// ActionPolicyWarn selects check-only (audit) mode: drift is
	// reported, never repaired.
	ActionPolicyWarn = "warn"
)

// ErrUnknownOperation reports a request whose operation field names
// none of the three known request shapes.
var ErrUnknownOperation = errors.New("unknown operation")

// Request is one decoded request record. The Operation field selects
// which of the remaining fields are meaningful: validate_promise and
// evaluate_promise carry a log level, a promiser, and attributes;
// terminate carries nothing further.
type Request struct {
	Operation  string          `json:"operation"`
	LogLevel   *agentlog.Level `json:"log_level,omitempty"`
	Promiser   string          `json:"promiser,omitempty"`
	Attributes attribute.Map   `json:"attributes,omitempty"`

	// ActionPolicy is the protocol-level execution mode of an
	// evaluate request, carried as an explicit field rather than
	// smuggled through the attribute map.
	ActionPolicy string `json:"action_policy,omitempty"`
}

// CheckOnly reports whether an evaluate request is in audit mode.
func (r *Request) CheckOnly() bool {
	return r.ActionPolicy == ActionPolicyWarn
}

// DecodeRequest parses one record's content into a Request and
// enforces the per-operation field contract. Any failure here is a
// protocol error: the caller must abort rather than skip the record.
func DecodeRequest(content string) (*Request, error) {
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()

	var request Request
	if err := decoder.Decode(&request); err != nil {
		return nil, fmt.Errorf("unparseable request %q: %w", content, err)
	}

	switch request.Operation {
	case OperationValidate, OperationEvaluate:
		if request.LogLevel == nil {
			return nil, fmt.Errorf("%s request is missing log_level", request.Operation)
		}
		if request.Promiser == "" {
			return nil, fmt.Errorf("%s request is missing promiser", request.Operation)
		}
		if request.Attributes == nil {
			request.Attributes = attribute.Map{}
		}
	case OperationTerminate:
		// Carries no attributes and no log level; whatever threshold
		// the previous request set remains in force.
	case "":
		return nil, fmt.Errorf("%w: request %q has no operation field", ErrUnknownOperation, content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, request.Operation)
	}

	switch request.ActionPolicy {
	case "":
	case ActionPolicyFix, ActionPolicyWarn:
		if request.Operation != OperationEvaluate {
			return nil, fmt.Errorf("%s request carries action_policy %q, which only %s accepts",
				request.Operation, request.ActionPolicy, OperationEvaluate)
		}
	default:
		return nil, fmt.Errorf("unknown action_policy %q", request.ActionPolicy)
	}

	return &request, nil
}
