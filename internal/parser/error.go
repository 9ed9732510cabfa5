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
package parser

import (
	"fmt"
	"strings"

	"github.com/nanocc/nanocc/internal/diag"
	"github.com/nanocc/nanocc/internal/token"
)

type ErrorKind int

const (
	ExpectedToken ErrorKind = iota
	InvalidIntegerType
	Join
)

// Error is the parser's structured error: either a leaf (ExpectedToken,
// InvalidIntegerType) or a Join node representing "one of these
// alternatives failed", grounded on original_source's parser.c
// join_parse_errors and spec §4.2.
type Error struct {
	Kind ErrorKind
	Pos  diag.Position

	Expected token.Kind
	Got      token.Kind

	Left  *Error
	Right *Error
}

func expectedToken(pos diag.Position, expected, got token.Kind) *Error {
	return &Error{Kind: ExpectedToken, Pos: pos, Expected: expected, Got: got}
}

func invalidIntegerType(pos diag.Position) *Error {
	return &Error{Kind: InvalidIntegerType, Pos: pos}
}

// joinAll folds 2+ alternative failures into a left-nested Join tree,
// matching the iterative two-at-a-time construction in
// original_source's join_parse_errors.
func joinAll(errs ...*Error) *Error {
	if len(errs) == 0 {
		return nil
	}
	left := errs[0]
	for _, right := range errs[1:] {
		left = &Error{Kind: Join, Left: left, Right: right}
	}
	return left
}

func (e *Error) Error() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

func (e *Error) writeTo(b *strings.Builder) {
	switch e.Kind {
	case ExpectedToken:
		fmt.Fprintf(b, "(%s) expected %s, got %s", e.Pos, e.Expected, e.Got)
	case InvalidIntegerType:
		fmt.Fprintf(b, "(%s) invalid combination of integer type keywords", e.Pos)
	case Join:
		e.Left.writeTo(b)
		b.WriteString(" | ")
		e.Right.writeTo(b)
	}
}
