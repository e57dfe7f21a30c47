// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program catj reads JSON from standard input and writes each leaf value to
// standard output as a line of the form "path = value".
//
// Usage:
//
//	catj [-c] [-v] < input.json
//
// With -c, the input may contain comments and trailing commas. This requires
// the whole input to be read into memory before it is flattened.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/catj"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/tailscale/hujson"
)

const version = "1.0.0"

// Exit codes.
const (
	exitOK     = 0
	exitUsage  = 1
	exitFailed = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	exitCode := -1
	app := kingpin.New("catj", "Flatten JSON from stdin into path = value lines.").
		UsageWriter(stderr).
		ErrorWriter(stderr).
		Terminate(func(code int) { exitCode = code })
	app.HelpFlag.Short('h')

	showVersion := app.Flag("version", "Print version information and exit.").Short('V').Bool()
	comments := app.Flag("comments", "Accept comments and trailing commas in the input.").Short('c').Bool()
	verbose := app.Flag("verbose", "Log parsing progress to stderr.").Short('v').Bool()

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(stderr, "catj: %v\n", err)
		app.Usage(nil)
		return exitUsage
	} else if exitCode >= 0 {
		return exitCode // --help
	}
	if *showVersion {
		fmt.Fprintf(stderr, "catj v%s\nCopyright (C) 2021 Michael J. Fromberger\nhttps://github.com/creachadair/catj\n", version)
		return exitUsage
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	if *verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowWarn())
	}
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	input := stdin
	if *comments {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading input: %v\n", err)
			return exitFailed
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			fmt.Fprintf(stderr, "Error in input: %v\n", err)
			return exitFailed
		}
		level.Debug(logger).Log("msg", "standardized input", "bytes", len(data), "json", len(std))
		input = bytes.NewReader(std)
	}

	out := bufio.NewWriter(stdout)
	p := catj.NewParser(input)
	p.SetLogger(logger)
	perr := p.Parse(catj.NewPrinter(out))

	// Flush what was produced before the failure, so the error follows it.
	if err := out.Flush(); err != nil && perr == nil {
		level.Error(logger).Log("msg", "writing output", "err", err)
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return exitFailed
	}
	if perr != nil {
		var e *catj.Error
		if errors.As(perr, &e) {
			fmt.Fprintf(stderr, "Error in input at line %d column %d: %s\n", e.Location.Line, e.Location.Column, e.Message)
		} else {
			fmt.Fprintf(stderr, "Error in input: %v\n", perr)
		}
		return exitFailed
	}
	return exitOK
}
