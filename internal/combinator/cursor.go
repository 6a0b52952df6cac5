package combinator

import "fmt"

// Cursor is an immutable view over the input text: the full input plus the
// byte offset of the first unconsumed character. Combinators never mutate a
// cursor; they return a new one on success and the original one on failure,
// so alternation can retry from the same position.
type Cursor struct {
	input string
	off   int
}

// NewCursor returns a cursor positioned at the start of input.
func NewCursor(input string) Cursor {
	return Cursor{input: input}
}

// Rest returns the unconsumed portion of the input.
func (c Cursor) Rest() string {
	return c.input[c.off:]
}

// Offset returns the byte offset of the cursor within the full input.
func (c Cursor) Offset() int {
	return c.off
}

// EOF reports whether the cursor has consumed the entire input.
func (c Cursor) EOF() bool {
	return c.off >= len(c.input)
}

// advance returns a cursor moved forward by n bytes.
func (c Cursor) advance(n int) Cursor {
	return Cursor{input: c.input, off: c.off + n}
}

// ParseError is a low-level token or structural failure: something expected
// was not found at a particular offset. Semantic failures (enum conversion,
// out-of-range values) are reported by the grammar packages through the same
// error channel but with their own types.
type ParseError struct {
	Offset   int
	Expected string
	Got      string
}

func (e *ParseError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("expected %s at offset %d, found end of input", e.Expected, e.Offset)
	}
	return fmt.Sprintf("expected %s at offset %d, found %q", e.Expected, e.Offset, e.Got)
}

// newError builds a ParseError at the cursor's position with a short snippet
// of the remaining input.
func newError(c Cursor, expected string) *ParseError {
	return &ParseError{
		Offset:   c.off,
		Expected: expected,
		Got:      snippet(c.Rest()),
	}
}

const snippetLen = 20

// snippet truncates the remaining input for error messages.
func snippet(s string) string {
	if len(s) <= snippetLen {
		return s
	}
	return s[:snippetLen] + "..."
}
