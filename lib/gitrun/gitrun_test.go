// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package gitrun

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRunnerDefaultsToPathLookup(t *testing.T) {
	t.Parallel()
	if got := NewRunner("").binary; got != "git" {
		t.Errorf("binary: got %q, want git", got)
	}
	if got := NewRunner("/opt/git/bin/git").binary; got != "/opt/git/bin/git" {
		t.Errorf("binary: got %q, want configured path", got)
	}
}

func TestRunMissingBinary(t *testing.T) {
	t.Parallel()
	runner := NewRunner(filepath.Join(t.TempDir(), "no-such-git"))
	if _, err := runner.Run(context.Background(), "--version"); err == nil {
		t.Fatal("Run: want error for missing binary, got nil")
	}
}

func TestRunReportsStderrOnFailure(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	runner := NewRunner("")
	_, err := runner.Run(context.Background(), "definitely-not-a-subcommand")
	if err == nil {
		t.Fatal("Run: want error for unknown subcommand, got nil")
	}
	if !strings.Contains(err.Error(), "stderr") {
		t.Errorf("error %q should carry captured stderr", err)
	}
}

func TestIsRepositoryFalseForPlainDirectory(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	runner := NewRunner("")
	if runner.IsRepository(context.Background(), t.TempDir()) {
		t.Error("IsRepository: plain directory reported as work tree")
	}
}
