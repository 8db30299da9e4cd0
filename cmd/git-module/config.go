// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultCloneTimeoutSeconds bounds a single clone. Large repositories
// over slow links take minutes; ten of them is a policy error.
const defaultCloneTimeoutSeconds = 600

// Config tunes the git runner. Zero values select the built-in
// defaults.
type Config struct {
	// GitBinary is the git executable to run. Default: "git" from PATH.
	GitBinary string `yaml:"git_binary"`

	// CloneTimeoutSeconds bounds a single clone operation.
	CloneTimeoutSeconds int64 `yaml:"clone_timeout_seconds"`
}

// loadConfig reads the config file at path. An empty path returns the
// defaults without touching the filesystem.
func loadConfig(path string) (Config, error) {
	config := Config{CloneTimeoutSeconds: defaultCloneTimeoutSeconds}
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if config.CloneTimeoutSeconds <= 0 {
		config.CloneTimeoutSeconds = defaultCloneTimeoutSeconds
	}
	return config, nil
}
