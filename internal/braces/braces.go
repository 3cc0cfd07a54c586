// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package braces wraps single-statement if bodies of C source code in braces.
//
// The rewrite is a textual heuristic built on one regular expression, not a
// parser. It only recognizes an if header whose condition contains no
// parentheses, followed on the next line by a single statement terminated
// with a semicolon:
//
//	if (x > 0)
//	        return x;
//
// becomes
//
//	if (x > 0) {
//	        return x;
//	    }
//
// Conditions with function calls or nested grouping are left alone, and so
// are bodies that already start with an opening brace, which makes repeated
// runs a no-op.
//
// Whitespace means any Unicode white space, including vertical tabs and
// no-break spaces. Files with CRLF line endings keep them: the inserted lines
// end with CRLF when the rewritten header does.
package braces

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
)

// space is the set of characters that count as white space in a pattern.
// RE2's \s covers only ASCII space, \t, \n, \f and \r.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

// singleStmtIf matches an if header, a line break with indentation, and one
// statement not starting with '{'. Group 1 is the statement.
var singleStmtIf = regexp.MustCompile(strings.NewReplacer(`\s`, space).Replace(
	`if\s*\([^)]+\)\s*\n\s+([^{][^;]*;)\s*\n`,
))

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

const (
	bodyIndent  = "        "
	closeIndent = "    "
)

// Fix returns src with every single-statement if body wrapped in braces, and
// reports whether the result differs from src.
//
// Only the first line of each match is kept as the header, so anything after
// the condition on that line (trailing spaces, a comment) is preserved as is.
func Fix(src []byte) ([]byte, bool) {
	matches := singleStmtIf.FindAllSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, false
	}

	var buf bytes.Buffer
	buf.Grow(len(src) + len(matches)*(len(bodyIndent)+len(closeIndent)+4))

	last := 0
	for _, m := range matches {
		buf.Write(src[last:m[0]])

		header, _, _ := bytes.Cut(src[m[0]:m[1]], []byte("\n"))
		eol := "\n"
		if h, ok := bytes.CutSuffix(header, []byte("\r")); ok {
			header, eol = h, "\r\n"
		}
		stmt := bytes.TrimFunc(src[m[2]:m[3]], isSpace)

		buf.Write(header)
		buf.WriteString(" {" + eol)
		buf.WriteString(bodyIndent)
		buf.Write(stmt)
		buf.WriteString(eol)
		buf.WriteString(closeIndent)
		buf.WriteString("}" + eol)

		last = m[1]
	}
	buf.Write(src[last:])

	out := buf.Bytes()
	return out, !bytes.Equal(out, src)
}

// Count returns the number of places in src that Fix would rewrite.
func Count(src []byte) int {
	return len(singleStmtIf.FindAllIndex(src, -1))
}
