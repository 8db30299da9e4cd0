// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/promisekit/promisekit/lib/agentlog"
	"github.com/promisekit/promisekit/lib/attribute"
	"github.com/promisekit/promisekit/lib/gitrun"
	"github.com/promisekit/promisekit/lib/promise"
)

const (
	moduleName    = "git_module"
	moduleVersion = "0.1.0"
)

// gitModule promises that the directory named by the promiser is a
// checkout of the repository in the "repo" attribute.
type gitModule struct {
	runner       *gitrun.Runner
	cloneTimeout time.Duration
}

func newGitModule(config Config) *gitModule {
	return &gitModule{
		runner:       gitrun.NewRunner(config.GitBinary),
		cloneTimeout: time.Duration(config.CloneTimeoutSeconds) * time.Second,
	}
}

func (m *gitModule) Name() string {
	return moduleName
}

func (m *gitModule) Version() string {
	return moduleVersion
}

func (m *gitModule) Schema() attribute.Schema {
	return attribute.Schema{
		Required: []attribute.Field{
			{Name: "repo", Type: attribute.String},
		},
		Optional: []attribute.Field{
			{Name: "version", Type: attribute.String},
			{Name: "depth", Type: attribute.Integer},
		},
	}
}

// Init verifies the git binary is usable. Running it once up front
// turns a missing binary into a clear session abort instead of a
// confusing not_kept on every promise.
func (m *gitModule) Init(ctx context.Context, log *agentlog.Logger) promise.ProtocolResult {
	output, err := m.runner.Run(ctx, "--version")
	if err != nil {
		return promise.ProtocolFailure(fmt.Sprintf("git is not usable: %v", err))
	}
	log.Debugf("using %s", output)
	return promise.ProtocolSuccess()
}

func (m *gitModule) Validate(ctx context.Context, log *agentlog.Logger, promiser string, attributes attribute.Map) promise.ValidateResult {
	if !filepath.IsAbs(promiser) {
		return promise.Invalid(fmt.Sprintf("promiser %q must be an absolute path", promiser))
	}
	if repo, _ := attributes.String("repo"); repo == "" {
		return promise.Invalid("repo must not be empty")
	}
	if depth, present := attributes.Int("depth"); present && depth <= 0 {
		return promise.Invalid(fmt.Sprintf("depth must be positive, got %d", depth))
	}
	return promise.Valid()
}

func (m *gitModule) Check(ctx context.Context, log *agentlog.Logger, promiser string, attributes attribute.Map) promise.CheckResult {
	info, err := os.Stat(promiser)
	switch {
	case err != nil && !os.IsNotExist(err):
		return promise.CheckError(fmt.Sprintf("cannot stat %q: %v", promiser, err))
	case err != nil:
		return promise.CheckNotKept(fmt.Sprintf("checkout %q does not exist", promiser))
	case !info.IsDir():
		return promise.CheckNotKept(fmt.Sprintf("%q exists but is not a directory", promiser))
	case !m.runner.IsRepository(ctx, promiser):
		return promise.CheckNotKept(fmt.Sprintf("%q exists but is not a git work tree", promiser))
	default:
		return promise.CheckKept()
	}
}

func (m *gitModule) Apply(ctx context.Context, log *agentlog.Logger, promiser string, attributes attribute.Map) promise.ApplyResult {
	if _, err := os.Stat(promiser); err == nil {
		if m.runner.IsRepository(ctx, promiser) {
			return promise.ApplyKept()
		}
		// Never clobber an existing non-checkout directory: the
		// promiser may name a path the policy author mistyped.
		return promise.ApplyNotKept(fmt.Sprintf("%q exists and is not a git work tree", promiser))
	} else if !os.IsNotExist(err) {
		return promise.ApplyError(fmt.Sprintf("cannot stat %q: %v", promiser, err))
	}

	url, _ := attributes.String("repo")
	reference, _ := attributes.String("version")
	depth, _ := attributes.Int("depth")

	log.Verbosef("cloning %q into %q", url, promiser)
	cloneCtx, cancel := context.WithTimeout(ctx, m.cloneTimeout)
	defer cancel()
	if err := m.runner.Clone(cloneCtx, url, promiser, reference, depth); err != nil {
		return promise.ApplyNotKept(fmt.Sprintf("cloning %q: %v", url, err))
	}
	return promise.ApplyRepaired(fmt.Sprintf("cloned %q into %q", url, promiser))
}

func (m *gitModule) Terminate(ctx context.Context, log *agentlog.Logger) promise.ProtocolResult {
	return promise.ProtocolSuccess()
}
