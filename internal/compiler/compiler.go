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

// Package compiler ties the four passes together: lex, parse, generate.
// There is no separate semantic-analysis pass (spec §4.7) -- the code
// generator performs type checking inline with emission -- so this
// package is a thin sequential driver, grounded on falcon's
// compile.CompileFile entry point.
package compiler

import (
	"github.com/nanocc/nanocc/internal/clog"
	"github.com/nanocc/nanocc/internal/codegen"
	"github.com/nanocc/nanocc/internal/lexer"
	"github.com/nanocc/nanocc/internal/parser"
)

// Options controls how a single translation unit is compiled.
type Options struct {
	// Colorize enables ANSI highlighting of identifier names in
	// VariableRedeclaration/FunctionRedefinition/FunctionSignatureMismatch
	// diagnostics (spec §6, original_source's error.c behavior).
	Colorize bool
}

// Compile runs the full pipeline over src and returns the generated NASM
// assembly text, or the first error encountered. A *parser.Error or
// *diag.CompileError both satisfy the standard error interface; the
// caller distinguishes them with a type switch if it needs to.
func Compile(src []byte, opts Options) (string, error) {
	clog.Logger().Debug("lexing", "bytes", len(src))
	lx := lexer.New(src)

	clog.Logger().Debug("parsing")
	p := parser.New(lx)
	root, err := p.Parse()
	if err != nil {
		return "", err
	}

	clog.Logger().Debug("generating code", "items", len(root.Items))
	gen := codegen.New(opts.Colorize)
	asmText, err := gen.CompileRoot(root)
	if err != nil {
		return "", err
	}
	return asmText, nil
}
