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

// Package clog is the compiler's internal trace logger: -v Debug-level
// messages as each lexing/parsing/codegen pass starts, distinct from the user-facing
// CompileError/ParseError diagnostics in internal/diag, which are
// returned rather than logged. Grounded on smoynes-elsie's internal/log
// (a package-level *slog.Logger plus a shared LevelVar) but trimmed to a
// plain text handler -- that repo's custom slog.Handler is a learning
// exercise in handler-writing this compiler has no use for.
package clog

import (
	"log/slog"
	"os"
)

// Level is the shared level controlling both the default logger below
// and any other *slog.Logger the CLI wires up. SetVerbose(true) lowers
// it to Debug; it starts at Info.
var Level = &slog.LevelVar{}

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: Level}))

// Logger returns the package-level logger used for compiler-internal
// trace output.
func Logger() *slog.Logger { return logger }

// SetVerbose toggles Debug-level tracing on or off.
func SetVerbose(verbose bool) {
	if verbose {
		Level.Set(slog.LevelDebug)
		return
	}
	Level.Set(slog.LevelInfo)
}

// IsTerminalFile reports whether f is attached to a terminal, used to
// decide whether diag output should carry ANSI color. A char-device mode
// bit check stands in for golang.org/x/term.IsTerminal, which this repo
// does not depend on (see DESIGN.md).
func IsTerminalFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
