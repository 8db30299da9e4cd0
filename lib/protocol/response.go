// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import "github.com/promisekit/promisekit/lib/attribute"

// ValidateOutcome is the wire-visible result of a validate_promise
// request.
type ValidateOutcome string

const (
	OutcomeValid   ValidateOutcome = "valid"
	OutcomeInvalid ValidateOutcome = "invalid"

	// OutcomeValidateError reports an unexpected failure inside the
	// module's validation, as opposed to a policy error.
	OutcomeValidateError ValidateOutcome = "error"
)

// EvaluateOutcome is the wire-visible result of an evaluate_promise
// request.
type EvaluateOutcome string

const (
	// OutcomeKept means the promise was already satisfied.
	OutcomeKept EvaluateOutcome = "kept"

	// OutcomeRepaired means the promise was not satisfied and the
	// module fixed it.
	OutcomeRepaired EvaluateOutcome = "repaired"

	// OutcomeNotKept means the promise was not satisfied and remains
	// so, either because repair failed or because the request was
	// check-only.
	OutcomeNotKept EvaluateOutcome = "not_kept"

	// OutcomeEvaluateError reports an unexpected failure during
	// check or apply.
	OutcomeEvaluateError EvaluateOutcome = "error"
)

// ProtocolOutcome is the wire-visible result of a terminate request.
type ProtocolOutcome string

const (
	OutcomeSuccess ProtocolOutcome = "success"
	OutcomeFailure ProtocolOutcome = "failure"

	// OutcomeProtocolError reports an unexpected failure inside the
	// module's terminate hook.
	OutcomeProtocolError ProtocolOutcome = "error"
)

// ValidateResponse answers a validate_promise request, echoing the
// promiser and attributes alongside the outcome.
type ValidateResponse struct {
	Operation  string          `json:"operation"`
	Promiser   string          `json:"promiser"`
	Attributes attribute.Map   `json:"attributes"`
	Result     ValidateOutcome `json:"result"`
}

// NewValidateResponse builds the response for a validate request.
func NewValidateResponse(request *Request, result ValidateOutcome) ValidateResponse {
	return ValidateResponse{
		Operation:  OperationValidate,
		Promiser:   request.Promiser,
		Attributes: request.Attributes,
		Result:     result,
	}
}

// EvaluateResponse answers an evaluate_promise request, echoing the
// promiser and attributes alongside the outcome.
type EvaluateResponse struct {
	Operation  string          `json:"operation"`
	Promiser   string          `json:"promiser"`
	Attributes attribute.Map   `json:"attributes"`
	Result     EvaluateOutcome `json:"result"`
}

// NewEvaluateResponse builds the response for an evaluate request.
func NewEvaluateResponse(request *Request, result EvaluateOutcome) EvaluateResponse {
	return EvaluateResponse{
		Operation:  OperationEvaluate,
		Promiser:   request.Promiser,
		Attributes: request.Attributes,
		Result:     result,
	}
}

// TerminateResponse answers a terminate request.
type TerminateResponse struct {
	Operation string          `json:"operation"`
	Result    ProtocolOutcome `json:"result"`
}

// NewTerminateResponse builds the response for a terminate request.
func NewTerminateResponse(result ProtocolOutcome) TerminateResponse {
	return TerminateResponse{
		Operation: OperationTerminate,
		Result:    result,
	}
}
