// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package attribute

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Field declares one attribute a promise module accepts.
type Field struct {
	Name string
	Type Type
}

// Schema declares the attributes a promise module accepts: required
// attributes must be present on every request, optional ones may be.
// A module declares its schema once; it is immutable for the process
// lifetime.
type Schema struct {
	Required []Field
	Optional []Field
}

// Validate checks an attribute map against the schema. Every required
// name must be present, every present declared name must match its
// declared type, and — unless ignoreUnknown is set — every name in
// the map must be declared. All checks run; every failure is reported
// in one aggregate error. A nil return means the map is valid.
//
// Validation never invokes promise hooks and never mutates the map.
func (s Schema) Validate(attributes Map, ignoreUnknown bool) error {
	var problems []error

	for _, field := range s.Required {
		if _, present := attributes[field.Name]; !present {
			problems = append(problems, fmt.Errorf("missing required attribute %q", field.Name))
		}
	}

	declared := make(map[string]Type, len(s.Required)+len(s.Optional))
	for _, field := range s.Required {
		declared[field.Name] = field.Type
	}
	for _, field := range s.Optional {
		declared[field.Name] = field.Type
	}

	// Type-check declared attributes in declaration order so the
	// aggregate error is deterministic.
	for _, field := range append(slices.Clone(s.Required), s.Optional...) {
		value, present := attributes[field.Name]
		if present && !field.Type.Matches(value) {
			problems = append(problems, fmt.Errorf("attribute %q must be %s", field.Name, field.Type))
		}
	}

	if !ignoreUnknown {
		for _, name := range slices.Sorted(maps.Keys(attributes)) {
			if _, known := declared[name]; !known {
				problems = append(problems, fmt.Errorf("unexpected attribute %q", name))
			}
		}
	}

	return errors.Join(problems...)
}
