// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Command nanocc is the CLI shim: it reads one source file, invokes the
// compiler, and writes the generated NASM text next to it (or wherever
// -o points). It never shells out to nasm/ld -- that driver, like the
// CLI's own UX, is out of scope per spec.md. Grounded on
// ajroetker-goat's cobra-based "one source file in, one generated file
// out" command shape.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nanocc/nanocc/internal/clog"
	"github.com/nanocc/nanocc/internal/compiler"
	"github.com/nanocc/nanocc/internal/config"
)

func defaultOutputPath(sourcePath string) string {
	ext := strings.TrimSuffix(sourcePath, ".c")
	if ext == sourcePath {
		return sourcePath + ".asm"
	}
	return ext + ".asm"
}

var command = &cobra.Command{
	Use:  "nanocc source [-o output]",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		verbose, _ := cmd.Flags().GetBool("verbose")
		cfg := config.Config{
			SourcePath: args[0],
			OutputPath: output,
			Verbose:    verbose,
		}
		if cfg.OutputPath == "" {
			cfg.OutputPath = defaultOutputPath(cfg.SourcePath)
		}
		clog.SetVerbose(cfg.Verbose)
		return run(cfg)
	},
}

func run(cfg config.Config) error {
	src, err := os.ReadFile(cfg.SourcePath)
	if err != nil {
		return err
	}

	asmText, err := compiler.Compile(src, compiler.Options{
		Colorize: clog.IsTerminalFile(os.Stderr),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.SourcePath, err)
	}

	return os.WriteFile(cfg.OutputPath, []byte(asmText), 0o644)
}

func init() {
	command.Flags().StringP("output", "o", "", "output path for the generated NASM text")
	command.Flags().BoolP("verbose", "v", false, "trace lexing/parsing/codegen passes")
}

func main() {
	if err := command.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
