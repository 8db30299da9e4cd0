// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

// git-module is a promise module that manages git checkouts. The
// promiser is the checkout directory; the required "repo" attribute
// is the clone URL, with optional "version" (branch or tag) and
// "depth" (shallow clone) attributes.
//
// Runner defaults (git binary path, clone timeout) come from an
// optional yaml config file passed via --config. There is no config
// discovery: no flag means built-in defaults.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/promisekit/promisekit/lib/executor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "git-module: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var ignoreUnknown bool
	var sessionLog string
	var configPath string

	flagSet := pflag.NewFlagSet("git-module", pflag.ContinueOnError)
	flagSet.BoolVar(&ignoreUnknown, "ignore-unknown-attributes", false, "accept attributes outside the declared schema")
	flagSet.StringVar(&sessionLog, "session-log", "", "write a JSONL trace of dispatched requests to this file")
	flagSet.StringVar(&configPath, "config", "", "path to a yaml config file for runner defaults")
	showVersion := flagSet.Bool("version", false, "print name and version, then exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}
	if *showVersion {
		fmt.Printf("%s %s\n", moduleName, moduleVersion)
		return nil
	}

	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	runner := &executor.Executor{
		IgnoreUnknownAttributes: ignoreUnknown,
		SessionLogPath:          sessionLog,
	}
	return runner.Run(context.Background(), newGitModule(config))
}
