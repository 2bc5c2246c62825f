// Copyright 2025 The udon Project Contributors
// SPDX-License-Identifier: Apache-2.0

// udon-cat reads a file or stdin, drives the streaming UDON parser,
// and prints one line per event, grounded on cmd/go-yaml/main.go's
// stdin/file plumbing (SPEC_FULL.md 6.4).
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/udon-lang/udon"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		jsonOut      bool
		strict       bool
		ringCapacity int
	)

	cmd := &cobra.Command{
		Use:           "udon-cat [file]",
		Short:         "Parse a UDON document and print its event stream",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closeFunc, err := openInput(args)
			if err != nil {
				return err
			}
			defer func() { _ = closeFunc() }()

			src, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			return run(cmd.OutOrStdout(), src, ringCapacity, jsonOut, strict)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit one JSON object per event instead of plain text")
	cmd.Flags().BoolVar(&strict, "strict", false, "stop at the first Error event")
	cmd.Flags().IntVar(&ringCapacity, "ring-capacity", 256, "event ring capacity (rounded up to a power of two)")

	return cmd
}

func openInput(args []string) (io.Reader, func() error, error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", args[0], err)
	}
	return f, f.Close, nil
}

func run(w io.Writer, src []byte, ringCapacity int, jsonOut, strict bool) error {
	p := udon.NewParser(udon.WithRingCapacity(ringCapacity))
	p.Feed(src)
	p.Finish()

	format := formatLine
	if jsonOut {
		format = formatJSON
	}

	for {
		ev, ok := p.Read()
		if !ok {
			break
		}
		line, err := format(p, ev)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if strict && ev.Type == udon.ErrorEvent {
			return fmt.Errorf("udon-cat: stopped at %s (%s)", ev.Type, ev.Code)
		}
	}
	return nil
}
