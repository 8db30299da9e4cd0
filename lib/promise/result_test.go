// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package promise

import (
	"bytes"
	"strings"
	"testing"

	"github.com/promisekit/promisekit/lib/agentlog"
	"github.com/promisekit/promisekit/lib/protocol"
)

// newTestLogger returns a logger passing everything through, plus the
// buffer capturing the side channel.
func newTestLogger() (*agentlog.Logger, *bytes.Buffer) {
	var buffer bytes.Buffer
	logger := agentlog.New(&buffer)
	logger.SetThreshold(agentlog.Debug)
	return logger, &buffer
}

func TestValidateResultOutcome(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		result  ValidateResult
		want    protocol.ValidateOutcome
		wantLog string
	}{
		{name: "valid", result: Valid(), want: protocol.OutcomeValid},
		{name: "invalid logs reason", result: Invalid("bad state"), want: protocol.OutcomeInvalid, wantLog: "log_error=bad state\n"},
		{name: "error logs reason", result: ValidateError("boom"), want: protocol.OutcomeValidateError, wantLog: "log_error=boom\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			logger, sideChannel := newTestLogger()
			if got := test.result.Outcome(logger); got != test.want {
				t.Errorf("Outcome: got %q, want %q", got, test.want)
			}
			if got := sideChannel.String(); got != test.wantLog {
				t.Errorf("log: got %q, want %q", got, test.wantLog)
			}
		})
	}
}

func TestCheckResultOutcome(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		result      CheckResult
		checkOnly   bool
		want        protocol.EvaluateOutcome
		wantLogLine string
	}{
		{name: "kept", result: CheckKept(), want: protocol.OutcomeKept},
		{name: "kept check-only", result: CheckKept(), checkOnly: true, want: protocol.OutcomeKept},
		{
			name:        "always apply projects to not kept",
			result:      CheckAlwaysApply(),
			want:        protocol.OutcomeNotKept,
			wantLogLine: "log_info=",
		},
		{
			name:        "not kept in enforce mode logs info",
			result:      CheckNotKept("drift"),
			want:        protocol.OutcomeNotKept,
			wantLogLine: "log_info=drift",
		},
		{
			name:        "not kept in check-only mode logs error",
			result:      CheckNotKept("drift"),
			checkOnly:   true,
			want:        protocol.OutcomeNotKept,
			wantLogLine: "log_error=drift",
		},
		{
			name:        "error",
			result:      CheckError("boom"),
			want:        protocol.OutcomeEvaluateError,
			wantLogLine: "log_error=boom",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			logger, sideChannel := newTestLogger()
			if got := test.result.Outcome(logger, test.checkOnly); got != test.want {
				t.Errorf("Outcome: got %q, want %q", got, test.want)
			}
			log := sideChannel.String()
			if test.wantLogLine == "" && log != "" {
				t.Errorf("log: got %q, want nothing", log)
			}
			if test.wantLogLine != "" && !strings.HasPrefix(log, test.wantLogLine) {
				t.Errorf("log: got %q, want prefix %q", log, test.wantLogLine)
			}
		})
	}
}

func TestApplyResultOutcome(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		result      ApplyResult
		want        protocol.EvaluateOutcome
		wantLogLine string
	}{
		{name: "kept", result: ApplyKept(), want: protocol.OutcomeKept},
		{name: "repaired logs info", result: ApplyRepaired("fixed"), want: protocol.OutcomeRepaired, wantLogLine: "log_info=fixed"},
		{name: "not kept logs error", result: ApplyNotKept("stuck"), want: protocol.OutcomeNotKept, wantLogLine: "log_error=stuck"},
		{name: "error logs error", result: ApplyError("boom"), want: protocol.OutcomeEvaluateError, wantLogLine: "log_error=boom"},
		{name: "audit-only is an error", result: ApplyAuditOnly(), want: protocol.OutcomeEvaluateError, wantLogLine: "log_error="},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			logger, sideChannel := newTestLogger()
			if got := test.result.Outcome(logger); got != test.want {
				t.Errorf("Outcome: got %q, want %q", got, test.want)
			}
			log := sideChannel.String()
			if test.wantLogLine == "" && log != "" {
				t.Errorf("log: got %q, want nothing", log)
			}
			if test.wantLogLine != "" && !strings.HasPrefix(log, test.wantLogLine) {
				t.Errorf("log: got %q, want prefix %q", log, test.wantLogLine)
			}
		})
	}
}

func TestProtocolResultOutcomeAndErr(t *testing.T) {
	t.Parallel()
	logger, sideChannel := newTestLogger()

	if got := ProtocolSuccess().Outcome(logger); got != protocol.OutcomeSuccess {
		t.Errorf("Outcome: got %q, want success", got)
	}
	if err := ProtocolSuccess().Err(); err != nil {
		t.Errorf("Err: got %v, want nil", err)
	}
	if sideChannel.Len() != 0 {
		t.Errorf("log: got %q, want nothing", sideChannel.String())
	}

	if got := ProtocolFailure("no lock").Outcome(logger); got != protocol.OutcomeFailure {
		t.Errorf("Outcome: got %q, want failure", got)
	}
	if err := ProtocolError("boom").Err(); err == nil || err.Error() != "boom" {
		t.Errorf("Err: got %v, want boom", err)
	}
}
