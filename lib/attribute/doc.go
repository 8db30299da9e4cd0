// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

// Package attribute defines the typed attribute schema a promise
// module declares and the validation the executor runs against every
// request's attribute map before any promise hook is invoked.
//
// A module declares required and optional attributes as a Schema of
// (name, Type) pairs, fixed for the life of the process. Each
// validate_promise or evaluate_promise request carries an attribute
// Map; Schema.Validate checks presence, typing, and (unless unknown
// attributes are ignored) the absence of undeclared names, reporting
// every problem in a single aggregate error.
package attribute
