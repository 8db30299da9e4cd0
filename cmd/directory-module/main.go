// Copyright 2026 The Promisekit Authors
// SPDX-License-Identifier: Apache-2.0

// directory-module is a promise module that manages the existence of
// a directory. The promiser is the directory path; the required
// "state" attribute says whether it should be present or absent, and
// an optional "mode" attribute (octal string) sets permissions when
// the directory is created.
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
		fmt.Fprintf(os.Stderr, "directory-module: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var ignoreUnknown bool
	var sessionLog string

	flagSet := pflag.NewFlagSet("directory-module", pflag.ContinueOnError)
	flagSet.BoolVar(&ignoreUnknown, "ignore-unknown-attributes", false, "accept attributes outside the declared schema")
	flagSet.StringVar(&sessionLog, "session-log", "", "write a JSONL trace of dispatched requests to this file")
	showVersion := flagSet.Bool("version", false, "print name and version, then exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}
	if *showVersion {
		fmt.Printf("%s %s\n", moduleName, moduleVersion)
		return nil
	}

	runner := &executor.Executor{
		IgnoreUnknownAttributes: ignoreUnknown,
		SessionLogPath:          sessionLog,
	}
	return runner.Run(context.Background(), &directoryModule{})
}
