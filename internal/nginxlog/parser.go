// Package nginxlog parses NGINX combined-format access log lines into
// models.LogRecord values. Only the single fixed combined format is
// understood; the whole line parse is atomic, so the first field failure
// aborts the record.
package nginxlog

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"net/netip"
	"strconv"
	"time"

	"github.com/mcncl/parsekit/internal/combinator"
	"github.com/mcncl/parsekit/internal/errors"
	"github.com/mcncl/parsekit/internal/models"
)

// timeLayout is the timestamp format between the square brackets, e.g.
// 17/May/2015:08:05:32 +0000.
const timeLayout = "02/Jan/2006:15:04:05 -0700"

// ParseLine parses one combined-format log line. Every field must parse in
// strict left-to-right order; no partially populated record is returned.
func ParseLine(line string) (models.LogRecord, error) {
	rec, _, err := parseLine(combinator.NewCursor(line))
	if err != nil {
		return models.LogRecord{}, wrapParseError(err)
	}
	return rec, nil
}

// ErrorPolicy controls how ParseReader treats lines that fail to parse.
type ErrorPolicy int

const (
	// FailFast aborts the batch on the first bad line.
	FailFast ErrorPolicy = iota
	// SkipInvalid drops bad lines and reports how many were dropped.
	SkipInvalid
)

// ParseReader reads reader line by line and parses each non-empty line as a
// combined-format record. The field parsers themselves know nothing about
// batching; this is the caller-side loop that decides whether a bad line
// skips or aborts. It returns the parsed records and the number of lines
// skipped (always zero under FailFast).
func ParseReader(reader io.Reader, policy ErrorPolicy) ([]models.LogRecord, int, error) {
	var records []models.LogRecord
	skipped := 0
	lineno := 0

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			if policy == SkipInvalid {
				skipped++
				continue
			}
			return nil, 0, errors.NewInputError(fmt.Sprintf("line %d", lineno), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, errors.NewInputError("failed to read input", err)
	}
	return records, skipped, nil
}

// wrapParseError mirrors the JSON parser's top-level wrapping: conversion
// failures keep their category, anything else is a syntax failure.
func wrapParseError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return errors.NewSyntaxError("failed to parse log line", err)
}

func parseLine(c combinator.Cursor) (models.LogRecord, combinator.Cursor, error) {
	var rec models.LogRecord
	var err error

	rec.Addr, c, err = parseAddr(c)
	if err != nil {
		return models.LogRecord{}, c, err
	}
	c, err = parseIgnored(c)
	if err != nil {
		return models.LogRecord{}, c, err
	}
	rec.Time, c, err = parseTime(c)
	if err != nil {
		return models.LogRecord{}, c, err
	}
	rec.Method, rec.Path, rec.Version, c, err = parseRequest(c)
	if err != nil {
		return models.LogRecord{}, c, err
	}
	rec.Status, c, err = parseStatus(c)
	if err != nil {
		return models.LogRecord{}, c, err
	}
	rec.Size, c, err = parseSize(c)
	if err != nil {
		return models.LogRecord{}, c, err
	}
	rec.Referer, c, err = parseQuoted(c)
	if err != nil {
		return models.LogRecord{}, c, err
	}
	rec.UserAgent, c, err = parseQuoted(c)
	if err != nil {
		return models.LogRecord{}, c, err
	}
	return rec, c, nil
}

// parseAddr parses a dotted-quad IPv4 address. Each octet must fit in an
// unsigned 8-bit integer; an out-of-range octet fails the whole address.
func parseAddr(c combinator.Cursor) (netip.Addr, combinator.Cursor, error) {
	var octets [4]byte
	rest := c
	for i := 0; i < 4; i++ {
		var err error
		if i > 0 {
			if _, rest, err = combinator.Literal(".")(rest); err != nil {
				return netip.Addr{}, c, err
			}
		}
		var digits string
		if digits, rest, err = combinator.Digits1(rest); err != nil {
			return netip.Addr{}, c, err
		}
		octet, err := strconv.ParseUint(digits, 10, 8)
		if err != nil {
			return netip.Addr{}, c, errors.NewConvertError(
				fmt.Sprintf("address octet %q out of range", digits), err)
		}
		octets[i] = byte(octet)
	}
	_, rest, _ = combinator.Space0(rest)
	return netip.AddrFrom4(octets), rest, nil
}

// parseIgnored matches the two unused identity fields as one fixed literal.
// Their values are neither decoded nor retained.
func parseIgnored(c combinator.Cursor) (combinator.Cursor, error) {
	_, rest, err := combinator.Literal("- - ")(c)
	if err != nil {
		return c, err
	}
	return rest, nil
}

// parseTime parses the bracketed timestamp and normalizes it to UTC.
func parseTime(c combinator.Cursor) (time.Time, combinator.Cursor, error) {
	text, rest, err := combinator.Delimited(
		combinator.Literal("["),
		combinator.TakeUntil(0, ']'),
		combinator.Literal("]"),
	)(c)
	if err != nil {
		return time.Time{}, c, err
	}
	t, err := time.Parse(timeLayout, text)
	if err != nil {
		return time.Time{}, c, errors.NewConvertError(
			fmt.Sprintf("malformed timestamp %q", text), err)
	}
	_, rest, _ = combinator.Space0(rest)
	return t.UTC(), rest, nil
}

// parseRequest parses the quoted request line: method, path, and protocol
// version. The method and version tokens go through their exhaustive enum
// conversions, so an unsupported verb or protocol surfaces as a conversion
// error rather than matching some fallback.
func parseRequest(c combinator.Cursor) (models.Method, string, models.Version, combinator.Cursor, error) {
	_, rest, err := combinator.Literal(`"`)(c)
	if err != nil {
		return 0, "", 0, c, err
	}

	methodTok, rest, err := combinator.TakeTill1(' ')(rest)
	if err != nil {
		return 0, "", 0, c, err
	}
	method, err := models.ParseMethod(methodTok)
	if err != nil {
		return 0, "", 0, c, err
	}
	_, rest, _ = combinator.Space0(rest)

	path, rest, err := combinator.TakeTill1(' ')(rest)
	if err != nil {
		return 0, "", 0, c, err
	}
	_, rest, _ = combinator.Space0(rest)

	versionTok, rest, err := combinator.TakeUntil(1, '"')(rest)
	if err != nil {
		return 0, "", 0, c, err
	}
	version, err := models.ParseVersion(versionTok)
	if err != nil {
		return 0, "", 0, c, err
	}

	_, rest, err = combinator.Literal(`"`)(rest)
	if err != nil {
		return 0, "", 0, c, err
	}
	_, rest, _ = combinator.Space0(rest)
	return method, path, version, rest, nil
}

// parseStatus parses the response status as an unsigned 16-bit integer.
func parseStatus(c combinator.Cursor) (uint16, combinator.Cursor, error) {
	digits, rest, err := combinator.Digits1(c)
	if err != nil {
		return 0, c, err
	}
	status, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, c, errors.NewConvertError(
			fmt.Sprintf("status code %q out of range", digits), err)
	}
	_, rest, _ = combinator.Space0(rest)
	return uint16(status), rest, nil
}

// parseSize parses the response byte count as an unsigned 64-bit integer.
func parseSize(c combinator.Cursor) (uint64, combinator.Cursor, error) {
	digits, rest, err := combinator.Digits1(c)
	if err != nil {
		return 0, c, err
	}
	size, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, c, errors.NewConvertError(
			fmt.Sprintf("response size %q out of range", digits), err)
	}
	_, rest, _ = combinator.Space0(rest)
	return size, rest, nil
}

// parseQuoted parses a quoted field (referer, user agent) of at least one
// character, taken verbatim with no escape interpretation.
func parseQuoted(c combinator.Cursor) (string, combinator.Cursor, error) {
	s, rest, err := combinator.Delimited(
		combinator.Literal(`"`),
		combinator.TakeUntil(1, '"'),
		combinator.Literal(`"`),
	)(c)
	if err != nil {
		return "", c, err
	}
	_, rest, _ = combinator.Space0(rest)
	return s, rest, nil
}
