// Copyright 2018 The Crate Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

// crate-wiredump decodes wire-encoded symbols and prints their
// human-readable form. Useful when inspecting persisted plan fragments.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/eagle518/crate/pkg/sql/symbol"
)

var hexInput string

var rootCmd = &cobra.Command{
	Use:   "crate-wiredump [file]",
	Short: "decode wire-encoded symbols",
	Long: `Decodes one or more wire-encoded symbols and prints each with its
kind tag. Input is raw bytes from the given file (or stdin), or a hex
string via --hex.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDump,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&hexInput, "hex", "", "hex-encoded input instead of a file")
	f.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})
}

func readInput(args []string) ([]byte, error) {
	if hexInput != "" {
		b, err := hex.DecodeString(strings.TrimSpace(hexInput))
		return b, errors.Wrap(err, "decoding --hex input")
	}
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		return b, errors.Wrapf(err, "reading %s", args[0])
	}
	b, err := io.ReadAll(os.Stdin)
	return b, errors.Wrap(err, "reading stdin")
}

func runDump(cmd *cobra.Command, args []string) error {
	b, err := readInput(args)
	if err != nil {
		return err
	}
	for i := 0; len(b) > 0; i++ {
		rest, sym, err := symbol.Decode(b)
		if err != nil {
			return errors.Wrapf(err, "symbol %d", i)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d: kind=%s(%d) %s\n", i, sym.Kind(), sym.Kind(), sym)
		b = rest
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
