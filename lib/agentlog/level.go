// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package agentlog

import (
	"encoding/json"
	"fmt"
)

// Level is a message severity. Lower values are more severe:
// Critical ranks above Error, Error above Warning, and so on down
// to Debug. The zero value is Critical.
type Level int

const (
	// Critical is for serious errors in the protocol or the module
	// itself, as opposed to errors in the policy being evaluated.
	Critical Level = iota

	// Error is for errors encountered while validating or evaluating
	// a promise, including invalid attributes and unrepaired drift.
	Error

	// Warning is for conditions the policy author should fix even
	// though the promise did not fail.
	Warning

	// Notice is for unusual events worth surfacing to the user that
	// are not tied to an individual promise outcome.
	Notice

	// Info is for changes made to the system, typically one message
	// per repaired promise.
	Info

	// Verbose is for detailed human-readable progress information.
	Verbose

	// Debug is for module-developer diagnostics.
	Debug
)

// levelNames maps each Level to its wire name, indexed by the Level
// value itself.
var levelNames = [...]string{
	Critical: "critical",
	Error:    "error",
	Warning:  "warning",
	Notice:   "notice",
	Info:     "info",
	Verbose:  "verbose",
	Debug:    "debug",
}

// String returns the wire name of the level.
func (l Level) String() string {
	if l < Critical || l > Debug {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel converts a wire name into a Level.
func ParseLevel(name string) (Level, error) {
	for level, levelName := range levelNames {
		if name == levelName {
			return Level(level), nil
		}
	}
	return Critical, fmt.Errorf("unknown log level %q", name)
}

// AtLeast reports whether the level is at least as severe as the
// given threshold.
func (l Level) AtLeast(threshold Level) bool {
	return l <= threshold
}

// MarshalJSON encodes the level as its wire name.
func (l Level) MarshalJSON() ([]byte, error) {
	if l < Critical || l > Debug {
		return nil, fmt.Errorf("cannot marshal invalid log level %d", int(l))
	}
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a level from its wire name.
func (l *Level) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("log level must be a string: %w", err)
	}
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}
	*l = level
	return nil
}
