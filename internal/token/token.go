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

// Package token defines the token kinds and payloads produced by the lexer
// and consumed by the parser.
package token

import (
	"fmt"

	"github.com/nanocc/nanocc/internal/diag"
)

type Kind int

const (
	INVALID Kind = iota
	EOF

	// Punctuation
	SEMICOLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA

	// Operators
	ASSIGN
	EQ
	PLUS
	MINUS
	STAR
	SLASH

	// Literals / identifiers
	IDENT
	INT_LITERAL

	// Keywords
	KW_RETURN
	KW_IF
	KW_ELSE
	KW_DO
	KW_WHILE
	KW_FOR
	KW_SWITCH
	KW_CONTINUE
	KW_BREAK
	KW_CONST
	KW_VOID
	KW_INT
	KW_SIGNED
	KW_UNSIGNED
	KW_LONG
	KW_SHORT
	KW_CHAR
	KW_FLOAT
	KW_DOUBLE
)

var names = map[Kind]string{
	INVALID:     "<invalid>",
	EOF:         "<eof>",
	SEMICOLON:   ";",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	LBRACKET:    "[",
	RBRACKET:    "]",
	COMMA:       ",",
	ASSIGN:      "=",
	EQ:          "==",
	PLUS:        "+",
	MINUS:       "-",
	STAR:        "*",
	SLASH:       "/",
	IDENT:       "<identifier>",
	INT_LITERAL: "<integer>",
	KW_RETURN:   "return",
	KW_IF:       "if",
	KW_ELSE:     "else",
	KW_DO:       "do",
	KW_WHILE:    "while",
	KW_FOR:      "for",
	KW_SWITCH:   "switch",
	KW_CONTINUE: "continue",
	KW_BREAK:    "break",
	KW_CONST:    "const",
	KW_VOID:     "void",
	KW_INT:      "int",
	KW_SIGNED:   "signed",
	KW_UNSIGNED: "unsigned",
	KW_LONG:     "long",
	KW_SHORT:    "short",
	KW_CHAR:     "char",
	KW_FLOAT:    "float",
	KW_DOUBLE:   "double",
}

func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps the fixed keyword lexemes to their token kind.
var Keywords = map[string]Kind{
	"return":   KW_RETURN,
	"if":       KW_IF,
	"else":     KW_ELSE,
	"do":       KW_DO,
	"while":    KW_WHILE,
	"for":      KW_FOR,
	"switch":   KW_SWITCH,
	"continue": KW_CONTINUE,
	"break":    KW_BREAK,
	"const":    KW_CONST,
	"void":     KW_VOID,
	"int":      KW_INT,
	"signed":   KW_SIGNED,
	"unsigned": KW_UNSIGNED,
	"long":     KW_LONG,
	"short":    KW_SHORT,
	"char":     KW_CHAR,
	"float":    KW_FLOAT,
	"double":   KW_DOUBLE,
}

// IsTypeKeyword reports whether k is one of the keywords that can appear in
// an integer_type production (spec grammar, §4.2).
func (k Kind) IsTypeKeyword() bool {
	switch k {
	case KW_INT, KW_SIGNED, KW_UNSIGNED, KW_LONG, KW_SHORT, KW_CHAR:
		return true
	}
	return false
}

// Token is a single lexical unit: a tag plus span, with payload fields
// populated only for the kinds that carry one (IDENT and keywords for their
// lexeme, INT_LITERAL, and INVALID for the offending lexeme).
type Token struct {
	Kind Kind
	Span diag.Span

	// Text holds the identifier or keyword lexeme, or the raw lexeme of an
	// unrecognized byte run for an INVALID token.
	Text string

	// Populated only when Kind == INT_LITERAL.
	IntValue uint64
	IsLong   bool
	IsSigned bool
}

func (t Token) String() string {
	switch t.Kind {
	case IDENT:
		return fmt.Sprintf("IDENT(%s)", t.Text)
	case INT_LITERAL:
		return fmt.Sprintf("INT(%d)", t.IntValue)
	default:
		return t.Kind.String()
	}
}
