// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/promisekit/promisekit/lib/agentlog"
	"github.com/promisekit/promisekit/lib/promise"
	"github.com/promisekit/promisekit/lib/protocol"
)

// phase is the lifecycle state of a session. Initialization is an
// explicit phase transition, not a flag re-checked on every loop
// iteration: a session moves through the phases exactly once, in
// order.
type phase int

const (
	// phaseUninitialized means the header exchange has not completed.
	phaseUninitialized phase = iota

	// phaseReady means the handshake is done but no request has
	// arrived yet; the module's Init hook has not run.
	phaseReady

	// phaseRunning means Init succeeded and requests are being
	// dispatched.
	phaseRunning

	// phaseTerminated means a terminate request was processed; no
	// further input is read.
	phaseTerminated
)

// Executor drives a promise.Module through the promise module
// protocol. The zero value is a working executor with strict
// attribute handling and no session log.
type Executor struct {
	// IgnoreUnknownAttributes disables the rejection of attributes
	// outside the module's declared schema. Tolerating unknown
	// attributes is a decision for the process embedding the module,
	// not for the promise implementation itself.
	IgnoreUnknownAttributes bool

	// SessionLogPath, when set, appends one JSON line per dispatched
	// request to the named file, plus a closing summary line. The
	// trace is for debugging a module against a live agent; it never
	// touches the protocol streams.
	SessionLogPath string
}

// Run executes the protocol for the given module on the process
// standard streams: records on stdin/stdout, log side channel on
// stderr. It returns nil after a terminate request completes,
// regardless of the terminate outcome value.
func (e *Executor) Run(ctx context.Context, module promise.Module) error {
	return e.RunWithStreams(ctx, module, os.Stdin, os.Stdout, os.Stderr)
}

// RunWithStreams executes the protocol over arbitrary streams. Tests
// feed canned input and capture the record and log outputs.
func (e *Executor) RunWithStreams(ctx context.Context, module promise.Module, input io.Reader, output, logOutput io.Writer) error {
	session := &session{
		executor: e,
		module:   module,
		reader:   protocol.NewRecordReader(input),
		writer:   protocol.NewRecordWriter(output),
		logger:   agentlog.New(logOutput),
		phase:    phaseUninitialized,
	}

	if e.SessionLogPath != "" {
		trace, err := newSessionLog(e.SessionLogPath)
		if err != nil {
			return err
		}
		session.trace = trace
	}

	runErr := session.run(ctx)
	if closeErr := session.trace.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}
	return runErr
}

// RunWithInput executes the protocol against a canned input string
// and returns the record output that would have been sent.
func (e *Executor) RunWithInput(ctx context.Context, module promise.Module, input string) (string, error) {
	var output, logOutput bytes.Buffer
	err := e.RunWithStreams(ctx, module, strings.NewReader(input), &output, &logOutput)
	return output.String(), err
}

// session is the mutable state of one protocol run.
type session struct {
	executor *Executor
	module   promise.Module
	reader   *protocol.RecordReader
	writer   *protocol.RecordWriter
	logger   *agentlog.Logger
	trace    *sessionLog
	phase    phase
}

func (s *session) run(ctx context.Context) error {
	if err := s.handshake(); err != nil {
		return err
	}

	for s.phase != phaseTerminated {
		content, err := s.reader.ReadRecord()
		if err == io.EOF {
			return fmt.Errorf("agent closed the stream without sending terminate")
		}
		if err != nil {
			return err
		}

		// The module's Init hook may be expensive, so it runs lazily:
		// not at start-up, but on receipt of the first request record
		// of any kind, exactly once. Receipt, not successful decode:
		// a malformed first record still runs Init before the decode
		// failure aborts the run.
		if s.phase == phaseReady {
			if err := s.initialize(ctx); err != nil {
				return err
			}
		}

		request, err := protocol.DecodeRequest(content)
		if err != nil {
			return err
		}

		switch request.Operation {
		case protocol.OperationValidate:
			err = s.handleValidate(ctx, request)
		case protocol.OperationEvaluate:
			err = s.handleEvaluate(ctx, request)
		case protocol.OperationTerminate:
			err = s.handleTerminate(ctx)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// handshake reads the agent's identity record, checks compatibility,
// and announces the module's own identity. It runs exactly once,
// before any request record is read.
func (s *session) handshake() error {
	line, err := s.reader.ReadRecord()
	if err != nil {
		return fmt.Errorf("reading agent header: %w", err)
	}
	header, err := protocol.ParseHeader(line)
	if err != nil {
		return err
	}
	if err := header.Compatibility(); err != nil {
		return err
	}

	own := protocol.Header{Name: s.module.Name(), Version: s.module.Version()}
	if err := s.writer.WriteRecord(own.String()); err != nil {
		return err
	}
	s.phase = phaseReady
	return nil
}

// initialize runs the module's Init hook. A failing Init aborts the
// session: no request is ever dispatched in that run.
func (s *session) initialize(ctx context.Context) error {
	if err := s.module.Init(ctx, s.logger).Err(); err != nil {
		return fmt.Errorf("initializing promise module %s: %w", s.module.Name(), err)
	}
	s.phase = phaseRunning
	return nil
}

// checkAttributes validates the request's attribute map against the
// module's declared schema. A failure is fatal for the run and
// happens strictly before any hook dispatch for the request.
func (s *session) checkAttributes(request *protocol.Request) error {
	err := s.module.Schema().Validate(request.Attributes, s.executor.IgnoreUnknownAttributes)
	if err != nil {
		return fmt.Errorf("invalid attributes for promiser %q: %w", request.Promiser, err)
	}
	return nil
}

func (s *session) handleValidate(ctx context.Context, request *protocol.Request) error {
	s.logger.SetThreshold(*request.LogLevel)
	if err := s.checkAttributes(request); err != nil {
		return err
	}

	result := s.module.Validate(ctx, s.logger, request.Promiser, request.Attributes)
	outcome := result.Outcome(s.logger)

	if err := s.trace.Record(request.Operation, request.Promiser, string(outcome), false); err != nil {
		return err
	}
	return s.writer.WriteJSON(protocol.NewValidateResponse(request, outcome))
}

func (s *session) handleEvaluate(ctx context.Context, request *protocol.Request) error {
	s.logger.SetThreshold(*request.LogLevel)
	if err := s.checkAttributes(request); err != nil {
		return err
	}
	checkOnly := request.CheckOnly()

	// Check always runs first. A Kept result is final and skips
	// Apply entirely; so does check-only mode, which must never
	// mutate. Apply runs only on detected drift in enforce mode —
	// a check error is final too, repair is not attempted on a
	// state the module could not even determine.
	check := s.module.Check(ctx, s.logger, request.Promiser, request.Attributes)
	outcome := check.Outcome(s.logger, checkOnly)
	if !checkOnly && outcome == protocol.OutcomeNotKept {
		outcome = s.module.Apply(ctx, s.logger, request.Promiser, request.Attributes).Outcome(s.logger)
	}

	if err := s.trace.Record(request.Operation, request.Promiser, string(outcome), checkOnly); err != nil {
		return err
	}
	return s.writer.WriteJSON(protocol.NewEvaluateResponse(request, outcome))
}

// handleTerminate runs the module's Terminate hook and ends the
// session. Termination always completes the loop: a failing Terminate
// is reported in the response but does not turn the run into an
// error.
func (s *session) handleTerminate(ctx context.Context) error {
	outcome := s.module.Terminate(ctx, s.logger).Outcome(s.logger)

	if err := s.trace.Record(protocol.OperationTerminate, "", string(outcome), false); err != nil {
		return err
	}
	if err := s.writer.WriteJSON(protocol.NewTerminateResponse(outcome)); err != nil {
		return err
	}
	s.phase = phaseTerminated
	return nil
}
