// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SupportedAgentMajor is the agent generation this protocol
// implementation speaks. A peer announcing a different major version
// is rejected during the handshake.
const SupportedAgentMajor = 3

// ErrIncompatibleVersion reports a peer whose announced version does
// not satisfy the compatibility rule.
var ErrIncompatibleVersion = errors.New("incompatible peer version")

// Header is a peer's identity, exchanged exactly once at the start of
// a session and immutable afterwards.
type Header struct {
	Name    string
	Version string
}

// ParseHeader parses the textual identity form "<name> <version>".
func ParseHeader(line string) (Header, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Header{}, fmt.Errorf("malformed header %q: want \"<name> <version>\"", line)
	}
	return Header{Name: fields[0], Version: fields[1]}, nil
}

// String renders the identity in its textual wire form.
func (h Header) String() string {
	return h.Name + " " + h.Version
}

// Compatibility checks the peer's version against the supported agent
// generation: the major component must equal SupportedAgentMajor.
func (h Header) Compatibility() error {
	major, _, _ := strings.Cut(h.Version, ".")
	value, err := strconv.Atoi(major)
	if err != nil {
		return fmt.Errorf("%w: cannot parse version %q", ErrIncompatibleVersion, h.Version)
	}
	if value != SupportedAgentMajor {
		return fmt.Errorf("%w: peer %s speaks version %s, want major %d",
			ErrIncompatibleVersion, h.Name, h.Version, SupportedAgentMajor)
	}
	return nil
}
