// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

// Package gitrun provides typed access to the git CLI for promise
// modules that manage checkouts. All repository operations target an
// explicit directory via the -C flag — there is no default directory,
// callers always say which checkout they mean.
package gitrun

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Runner executes git commands with a configurable binary path. The
// zero value runs "git" from PATH.
type Runner struct {
	binary string
}

// NewRunner returns a Runner using the given git binary. An empty
// binary means "git" from PATH.
func NewRunner(binary string) *Runner {
	if binary == "" {
		binary = "git"
	}
	return &Runner{binary: binary}
}

// Run executes a git command and returns stdout. Stderr is captured
// separately and included in the error on failure.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, r.binary, args...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w (stderr: %s)",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Clone clones url into directory. A non-empty reference selects the
// branch or tag to check out; a positive depth makes the clone
// shallow.
func (r *Runner) Clone(ctx context.Context, url, directory, reference string, depth int64) error {
	args := []string{"clone"}
	if reference != "" {
		args = append(args, "--branch", reference)
	}
	if depth > 0 {
		args = append(args, "--depth", strconv.FormatInt(depth, 10))
	}
	args = append(args, url, directory)
	_, err := r.Run(ctx, args...)
	return err
}

// IsRepository reports whether directory is inside a git work tree.
func (r *Runner) IsRepository(ctx context.Context, directory string) bool {
	output, err := r.Run(ctx, "-C", directory, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(output) == "true"
}
