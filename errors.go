package pgquery

import (
	"fmt"
)

// ParseError is returned by Parse for lexical and syntax errors.
//
// Location is the 1-based character position of the offending lexeme in
// the caller's text, as PostgreSQL reports its error cursor. Line and
// Column locate the same character.
type ParseError struct {
	Message  string
	Location int
	Line     int
	Column   int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Message
}

// Warning is a non-fatal diagnostic about deprecated or lossy input.
// Location is a 1-based character position, like ParseError's.
type Warning struct {
	Message  string
	Location int
}

func (w Warning) String() string {
	return fmt.Sprintf("%d: %s", w.Location, w.Message)
}

// maxFragmentLen bounds the text quoted in error messages, in characters.
const maxFragmentLen = 64

// fragment returns s truncated to maxFragmentLen characters.
func fragment(s string) string {
	n := 0
	for i := range s {
		if n == maxFragmentLen {
			return s[:i]
		}
		n++
	}
	return s
}
