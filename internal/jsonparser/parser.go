// Package jsonparser parses a single JSON document into a models.Value tree
// using the combinator primitives.
//
// The grammar deliberately trims the JSON standard: string escape sequences are
// not interpreted (content runs to the next quote), exponent notation is not
// supported, and an object requires at least one key/value pair while an
// array may be empty. These are scope limitations of the grammar, not bugs
// to patch here.
package jsonparser

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mcncl/parsekit/internal/combinator"
	"github.com/mcncl/parsekit/internal/errors"
	"github.com/mcncl/parsekit/internal/models"
)

// ParseString parses one JSON document from the given text and returns the
// value tree. Input after the first complete value is left unread; framing
// the document is the caller's responsibility.
func ParseString(input string) (models.Value, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	v, _, err := parseValue(combinator.NewCursor(input))
	if err != nil {
		return nil, wrapParseError(err)
	}
	return v, nil
}

// Parse reads the full contents of reader and parses them as one JSON
// document.
func Parse(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	return ParseString(string(data))
}

// ParseFile parses one JSON document from the file at filePath.
func ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseString(string(data))
}

// wrapParseError turns the lowest-level failure into a single descriptive
// application error. Conversion failures already carry their category and
// pass through unchanged.
func wrapParseError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return errors.NewSyntaxError("failed to parse JSON value", err)
}

// parseValue parses any JSON value. Alternatives are tried in a fixed
// order; the literal-prefixed ones (null, bool, number) are distinguished
// by their first token before falling through to string, array, and object,
// which require a quote, bracket, or brace.
func parseValue(c combinator.Cursor) (models.Value, combinator.Cursor, error) {
	return combinator.Alt(
		parseNull,
		parseBool,
		parseNumber,
		parseStringValue,
		parseArray,
		parseObject,
	)(c)
}

func parseNull(c combinator.Cursor) (models.Value, combinator.Cursor, error) {
	_, rest, err := combinator.Literal("null")(c)
	if err != nil {
		return nil, c, err
	}
	return models.Null{}, rest, nil
}

func parseBool(c combinator.Cursor) (models.Value, combinator.Cursor, error) {
	tok, rest, err := combinator.Alt(combinator.Literal("true"), combinator.Literal("false"))(c)
	if err != nil {
		return nil, c, err
	}
	return models.Bool(tok == "true"), rest, nil
}

// parseNumber parses an optional sign and a digit run as an Int. If a `.`
// immediately follows, the fractional digit run is concatenated onto the
// integer text and the whole literal is converted in one ParseFloat call,
// yielding a Float. Exponent notation is not supported.
func parseNumber(c combinator.Cursor) (models.Value, combinator.Cursor, error) {
	sign, rest, _ := combinator.Opt(combinator.Literal("-"))(c)
	digits, rest, err := combinator.Digits1(rest)
	if err != nil {
		return nil, c, err
	}
	if _, afterDot, dotErr := combinator.Literal(".")(rest); dotErr == nil {
		frac, afterFrac, err := combinator.Digits1(afterDot)
		if err != nil {
			return nil, c, err
		}
		// Digit runs always scan; a literal beyond float64 range saturates
		// to ±Inf, same as converting the source text directly.
		f, _ := strconv.ParseFloat(digits+"."+frac, 64)
		if sign == "-" {
			f = -f
		}
		return models.Float(f), afterFrac, nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, c, errors.NewConvertError(
			fmt.Sprintf("integer literal %q out of range", sign+digits), err)
	}
	if sign == "-" {
		n = -n
	}
	return models.Int(n), rest, nil
}

// parseStringRaw parses a quoted string and returns its raw content: every
// character up to the first closing quote, with no escape interpretation.
func parseStringRaw(c combinator.Cursor) (string, combinator.Cursor, error) {
	return combinator.Delimited(
		combinator.Literal(`"`),
		combinator.TakeUntil(0, '"'),
		combinator.Literal(`"`),
	)(c)
}

func parseStringValue(c combinator.Cursor) (models.Value, combinator.Cursor, error) {
	s, rest, err := parseStringRaw(c)
	if err != nil {
		return nil, c, err
	}
	return models.String(s), rest, nil
}

// parseArray parses `[` value,* `]` with whitespace-tolerant punctuation.
// An empty array is accepted.
func parseArray(c combinator.Cursor) (models.Value, combinator.Cursor, error) {
	items, rest, err := combinator.Delimited(
		combinator.Padded("["),
		combinator.SeparatedList(0, parseValue, combinator.Padded(",")),
		combinator.Padded("]"),
	)(c)
	if err != nil {
		return nil, c, err
	}
	return models.Array(items), rest, nil
}

// parseObject parses `{` pair,+ `}` with whitespace-tolerant punctuation.
// The pair list requires at least one pair, so `{}` is rejected — a known
// asymmetry with the empty array, preserved deliberately and pinned by a
// regression test. A duplicate key overwrites the earlier value.
func parseObject(c combinator.Cursor) (models.Value, combinator.Cursor, error) {
	pair := combinator.SeparatedPair(parseStringRaw, combinator.Padded(":"), parseValue)
	pairs, rest, err := combinator.Delimited(
		combinator.Padded("{"),
		combinator.SeparatedList(1, pair, combinator.Padded(",")),
		combinator.Padded("}"),
	)(c)
	if err != nil {
		return nil, c, err
	}
	obj := make(models.Object, len(pairs))
	for _, p := range pairs {
		obj[p.First] = p.Second
	}
	return obj, rest, nil
}
