// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/promisekit/promisekit/lib/agentlog"
	"github.com/promisekit/promisekit/lib/attribute"
	"github.com/promisekit/promisekit/lib/protocol"
)

func discardLogger() *agentlog.Logger {
	return agentlog.New(io.Discard)
}

func present() attribute.Map {
	return attribute.Map{"state": "present"}
}

func absent() attribute.Map {
	return attribute.Map{"state": "absent"}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	module := &directoryModule{}
	ctx := context.Background()

	tests := []struct {
		name       string
		promiser   string
		attributes attribute.Map
		want       protocol.ValidateOutcome
	}{
		{name: "absolute promiser", promiser: "/srv/www", attributes: present(), want: protocol.OutcomeValid},
		{name: "relative promiser", promiser: "srv/www", attributes: present(), want: protocol.OutcomeInvalid},
		{name: "octal mode", promiser: "/srv/www", attributes: attribute.Map{"state": "present", "mode": "0750"}, want: protocol.OutcomeValid},
		{name: "garbage mode", promiser: "/srv/www", attributes: attribute.Map{"state": "present", "mode": "rwxr-x"}, want: protocol.OutcomeInvalid},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			result := module.Validate(ctx, discardLogger(), test.promiser, test.attributes)
			if got := result.Outcome(discardLogger()); got != test.want {
				t.Errorf("Validate: got %q, want %q", got, test.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()
	module := &directoryModule{}
	ctx := context.Background()
	base := t.TempDir()

	existing := filepath.Join(base, "existing")
	if err := os.Mkdir(existing, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(base, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(base, "missing")

	tests := []struct {
		name       string
		promiser   string
		attributes attribute.Map
		want       protocol.EvaluateOutcome
	}{
		{name: "present and exists", promiser: existing, attributes: present(), want: protocol.OutcomeKept},
		{name: "present but missing", promiser: missing, attributes: present(), want: protocol.OutcomeNotKept},
		{name: "absent and missing", promiser: missing, attributes: absent(), want: protocol.OutcomeKept},
		{name: "absent but exists", promiser: existing, attributes: absent(), want: protocol.OutcomeNotKept},
		{name: "exists as plain file", promiser: file, attributes: present(), want: protocol.OutcomeNotKept},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			result := module.Check(ctx, discardLogger(), test.promiser, test.attributes)
			if got := result.Outcome(discardLogger(), false); got != test.want {
				t.Errorf("Check: got %q, want %q", got, test.want)
			}
		})
	}
}

func TestApplyCreatesDirectory(t *testing.T) {
	t.Parallel()
	module := &directoryModule{}
	target := filepath.Join(t.TempDir(), "new")

	result := module.Apply(context.Background(), discardLogger(), target, present())
	if got := result.Outcome(discardLogger()); got != protocol.OutcomeRepaired {
		t.Fatalf("Apply: got %q, want repaired", got)
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		t.Fatalf("target after apply: info=%v err=%v, want directory", info, err)
	}
}

func TestApplyCreatesDirectoryWithMode(t *testing.T) {
	t.Parallel()
	module := &directoryModule{}
	target := filepath.Join(t.TempDir(), "new")
	attributes := attribute.Map{"state": "present", "mode": "0700"}

	result := module.Apply(context.Background(), discardLogger(), target, attributes)
	if got := result.Outcome(discardLogger()); got != protocol.OutcomeRepaired {
		t.Fatalf("Apply: got %q, want repaired", got)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("permissions: got %o, want 0700", perm)
	}
}

func TestApplyRemovesDirectory(t *testing.T) {
	t.Parallel()
	module := &directoryModule{}
	target := filepath.Join(t.TempDir(), "old")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}

	result := module.Apply(context.Background(), discardLogger(), target, absent())
	if got := result.Outcome(discardLogger()); got != protocol.OutcomeRepaired {
		t.Fatalf("Apply: got %q, want repaired", got)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("target after apply: %v, want gone", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()
	module := &directoryModule{}
	target := filepath.Join(t.TempDir(), "dir")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := module.Apply(context.Background(), discardLogger(), target, present()).Outcome(discardLogger()); got != protocol.OutcomeKept {
		t.Errorf("Apply on satisfied promise: got %q, want kept", got)
	}
	missing := filepath.Join(t.TempDir(), "missing")
	if got := module.Apply(context.Background(), discardLogger(), missing, absent()).Outcome(discardLogger()); got != protocol.OutcomeKept {
		t.Errorf("Apply on satisfied absence: got %q, want kept", got)
	}
}

func TestApplyRefusesPlainFile(t *testing.T) {
	t.Parallel()
	module := &directoryModule{}
	target := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := module.Apply(context.Background(), discardLogger(), target, absent()).Outcome(discardLogger()); got != protocol.OutcomeNotKept {
		t.Errorf("Apply on plain file: got %q, want not_kept", got)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("plain file must survive: %v", err)
	}
}
