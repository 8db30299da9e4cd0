// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/promisekit/promisekit/lib/agentlog"
	"github.com/promisekit/promisekit/lib/attribute"
	"github.com/promisekit/promisekit/lib/promise"
)

const (
	moduleName    = "directory_module"
	moduleVersion = "0.1.0"
)

const defaultMode = 0o755

// directoryModule promises the presence or absence of the directory
// named by the promiser.
type directoryModule struct{}

func (m *directoryModule) Name() string {
	return moduleName
}

func (m *directoryModule) Version() string {
	return moduleVersion
}

func (m *directoryModule) Schema() attribute.Schema {
	return attribute.Schema{
		Required: []attribute.Field{
			{Name: "state", Type: attribute.StringEnum("present", "absent")},
		},
		Optional: []attribute.Field{
			{Name: "mode", Type: attribute.String},
		},
	}
}

func (m *directoryModule) Init(ctx context.Context, log *agentlog.Logger) promise.ProtocolResult {
	return promise.ProtocolSuccess()
}

func (m *directoryModule) Validate(ctx context.Context, log *agentlog.Logger, promiser string, attributes attribute.Map) promise.ValidateResult {
	if !filepath.IsAbs(promiser) {
		return promise.Invalid(fmt.Sprintf("promiser %q must be an absolute path", promiser))
	}
	if mode, present := attributes.String("mode"); present {
		if _, err := parseMode(mode); err != nil {
			return promise.Invalid(err.Error())
		}
	}
	return promise.Valid()
}

func (m *directoryModule) Check(ctx context.Context, log *agentlog.Logger, promiser string, attributes attribute.Map) promise.CheckResult {
	wantPresent := wantsPresent(attributes)

	info, err := os.Stat(promiser)
	switch {
	case err != nil && !os.IsNotExist(err):
		return promise.CheckError(fmt.Sprintf("cannot stat %q: %v", promiser, err))
	case err != nil:
		if wantPresent {
			return promise.CheckNotKept(fmt.Sprintf("directory %q should be present but is not", promiser))
		}
		return promise.CheckKept()
	case !info.IsDir():
		return promise.CheckNotKept(fmt.Sprintf("%q exists but is not a directory", promiser))
	case wantPresent:
		return promise.CheckKept()
	default:
		return promise.CheckNotKept(fmt.Sprintf("directory %q should be absent but is present", promiser))
	}
}

func (m *directoryModule) Apply(ctx context.Context, log *agentlog.Logger, promiser string, attributes attribute.Map) promise.ApplyResult {
	wantPresent := wantsPresent(attributes)

	info, err := os.Stat(promiser)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return promise.ApplyError(fmt.Sprintf("cannot stat %q: %v", promiser, err))
	}
	if exists && !info.IsDir() {
		return promise.ApplyNotKept(fmt.Sprintf("%q exists but is not a directory", promiser))
	}

	switch {
	case wantPresent && exists, !wantPresent && !exists:
		return promise.ApplyKept()
	case wantPresent:
		if err := os.Mkdir(promiser, defaultMode); err != nil {
			return promise.ApplyNotKept(fmt.Sprintf("creating %q: %v", promiser, err))
		}
		if text, present := attributes.String("mode"); present {
			// Validated before dispatch; a parse failure here means
			// the agent skipped validate_promise with bad input.
			mode, err := parseMode(text)
			if err != nil {
				return promise.ApplyError(err.Error())
			}
			// Chmod rather than Mkdir permissions: the requested mode
			// must land exactly, not filtered through the umask.
			if err := os.Chmod(promiser, mode); err != nil {
				return promise.ApplyNotKept(fmt.Sprintf("setting mode of %q: %v", promiser, err))
			}
		}
		return promise.ApplyRepaired(fmt.Sprintf("created directory %q", promiser))
	default:
		if err := os.Remove(promiser); err != nil {
			return promise.ApplyNotKept(fmt.Sprintf("removing %q: %v", promiser, err))
		}
		return promise.ApplyRepaired(fmt.Sprintf("removed directory %q", promiser))
	}
}

func (m *directoryModule) Terminate(ctx context.Context, log *agentlog.Logger) promise.ProtocolResult {
	return promise.ProtocolSuccess()
}

// wantsPresent reads the validated "state" attribute.
func wantsPresent(attributes attribute.Map) bool {
	state, _ := attributes.String("state")
	return state == "present"
}

// parseMode parses an octal permission string such as "0755".
func parseMode(text string) (os.FileMode, error) {
	value, err := strconv.ParseUint(text, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("mode %q is not an octal permission string", text)
	}
	return os.FileMode(value), nil
}
