// Package combinator provides the cursor and the generic parsing primitives
// the grammar packages are assembled from. A parser is any function that
// takes a cursor and returns a value plus the advanced cursor, or an error
// plus the original cursor. Primitives compose parsers without knowing
// anything about the grammar being built.
package combinator

import (
	"fmt"
	"strings"
)

// Parser attempts to parse a T from the cursor position. On success it
// returns the value and the cursor advanced past the consumed input. On
// failure it returns a non-nil error and the cursor it was given, so the
// caller can backtrack by simply reusing it.
type Parser[T any] func(Cursor) (T, Cursor, error)

// Pair holds the results of two sequenced parsers.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Literal matches the exact string lit and returns it.
func Literal(lit string) Parser[string] {
	return func(c Cursor) (string, Cursor, error) {
		if strings.HasPrefix(c.Rest(), lit) {
			return lit, c.advance(len(lit)), nil
		}
		return "", c, newError(c, fmt.Sprintf("%q", lit))
	}
}

// Digits1 matches one or more ASCII decimal digits.
func Digits1(c Cursor) (string, Cursor, error) {
	rest := c.Rest()
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	if n == 0 {
		return "", c, newError(c, "digits")
	}
	return rest[:n], c.advance(n), nil
}

// Multispace0 consumes zero or more spaces, tabs, and newlines.
func Multispace0(c Cursor) (string, Cursor, error) {
	rest := c.Rest()
	n := 0
	for n < len(rest) {
		switch rest[n] {
		case ' ', '\t', '\r', '\n':
			n++
		default:
			return rest[:n], c.advance(n), nil
		}
	}
	return rest[:n], c.advance(n), nil
}

// Space0 consumes zero or more space characters only. The log-line grammar
// uses this after each field; the fields are separated by single space runs,
// never tabs or newlines.
func Space0(c Cursor) (string, Cursor, error) {
	rest := c.Rest()
	n := 0
	for n < len(rest) && rest[n] == ' ' {
		n++
	}
	return rest[:n], c.advance(n), nil
}

// TakeUntil matches everything before the first occurrence of stop, which
// must exist in the remaining input, and leaves stop unconsumed. min (0 or 1)
// is the minimum number of characters to take.
func TakeUntil(min int, stop byte) Parser[string] {
	return func(c Cursor) (string, Cursor, error) {
		rest := c.Rest()
		i := strings.IndexByte(rest, stop)
		if i < 0 || i < min {
			return "", c, newError(c, fmt.Sprintf("at least %d characters before %q", min, stop))
		}
		return rest[:i], c.advance(i), nil
	}
}

// TakeTill1 matches one or more characters up to the first occurrence of
// stop or the end of the input, leaving stop unconsumed. Unlike TakeUntil,
// the stop byte need not be present.
func TakeTill1(stop byte) Parser[string] {
	return func(c Cursor) (string, Cursor, error) {
		rest := c.Rest()
		i := strings.IndexByte(rest, stop)
		if i < 0 {
			i = len(rest)
		}
		if i == 0 {
			return "", c, newError(c, fmt.Sprintf("at least 1 character before %q", stop))
		}
		return rest[:i], c.advance(i), nil
	}
}

// Opt applies p and succeeds whether or not p matched. When p fails, Opt
// returns the zero value and the unadvanced cursor.
func Opt[T any](p Parser[T]) Parser[T] {
	return func(c Cursor) (T, Cursor, error) {
		v, rest, err := p(c)
		if err != nil {
			var zero T
			return zero, c, nil
		}
		return v, rest, nil
	}
}

// Alt tries each alternative in order from the same position and commits to
// the first one that succeeds. If every alternative fails, the first
// alternative's error is reported; all alternatives were attempted at the
// same offset, so that is the earliest failure position.
func Alt[T any](ps ...Parser[T]) Parser[T] {
	return func(c Cursor) (T, Cursor, error) {
		var firstErr error
		for _, p := range ps {
			v, rest, err := p(c)
			if err == nil {
				return v, rest, nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		var zero T
		return zero, c, firstErr
	}
}

// Map transforms the output of p with fn.
func Map[T, U any](p Parser[T], fn func(T) U) Parser[U] {
	return func(c Cursor) (U, Cursor, error) {
		v, rest, err := p(c)
		if err != nil {
			var zero U
			return zero, c, err
		}
		return fn(v), rest, nil
	}
}

// Delimited runs open, inner, and close in sequence and returns inner's
// value. Any of the three failing fails the whole parse with nothing
// consumed.
func Delimited[O, T, C any](open Parser[O], inner Parser[T], close Parser[C]) Parser[T] {
	return func(c Cursor) (T, Cursor, error) {
		var zero T
		_, rest, err := open(c)
		if err != nil {
			return zero, c, err
		}
		v, rest, err := inner(rest)
		if err != nil {
			return zero, c, err
		}
		_, rest, err = close(rest)
		if err != nil {
			return zero, c, err
		}
		return v, rest, nil
	}
}

// SeparatedPair runs first, sep, and second in sequence, returning the two
// outer values and discarding the separator's.
func SeparatedPair[A, S, B any](first Parser[A], sep Parser[S], second Parser[B]) Parser[Pair[A, B]] {
	return func(c Cursor) (Pair[A, B], Cursor, error) {
		var zero Pair[A, B]
		a, rest, err := first(c)
		if err != nil {
			return zero, c, err
		}
		_, rest, err = sep(rest)
		if err != nil {
			return zero, c, err
		}
		b, rest, err := second(rest)
		if err != nil {
			return zero, c, err
		}
		return Pair[A, B]{First: a, Second: b}, rest, nil
	}
}

// SeparatedList repeats item interleaved with sep, requiring at least min
// items (0 or 1). Repetition stops at the first sep-then-item step that
// fails, and that step is not consumed: a trailing separator is left in the
// input for the surrounding grammar to reject.
func SeparatedList[T, S any](min int, item Parser[T], sep Parser[S]) Parser[[]T] {
	return func(c Cursor) ([]T, Cursor, error) {
		var out []T
		v, rest, err := item(c)
		if err != nil {
			if min == 0 {
				return nil, c, nil
			}
			return nil, c, err
		}
		out = append(out, v)
		for {
			_, afterSep, err := sep(rest)
			if err != nil {
				return out, rest, nil
			}
			v, afterItem, err := item(afterSep)
			if err != nil {
				return out, rest, nil
			}
			out = append(out, v)
			rest = afterItem
		}
	}
}

// Padded matches lit with any amount of whitespace before and after it. The
// JSON grammar wraps its punctuation in this so inter-token whitespace is
// tolerated.
func Padded(lit string) Parser[string] {
	p := Literal(lit)
	return func(c Cursor) (string, Cursor, error) {
		_, rest, _ := Multispace0(c)
		v, rest, err := p(rest)
		if err != nil {
			return "", c, err
		}
		_, rest, _ = Multispace0(rest)
		return v, rest, nil
	}
}
