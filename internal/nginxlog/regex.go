package nginxlog

import (
	"regexp"

	"github.com/mcncl/parsekit/internal/errors"
)

// RawLine is a combined-format line split into its nine fields with no
// decoding at all: every field keeps its source text.
type RawLine struct {
	Addr      string
	Time      string
	Method    string
	Path      string
	Version   string
	Status    string
	Size      string
	Referer   string
	UserAgent string
}

var lineRegex = regexp.MustCompile(
	`^(?P<ip>\S+)\s+\S+\s+\S+\s+\[(?P<time>[^\]]+)\]\s+"(?P<method>\S+)\s+(?P<path>\S+)\s+(?P<version>[^"]+)"\s+(?P<status>\d+)\s+(?P<size>\d+)\s+"(?P<referer>[^"]+)"\s+"(?P<ua>[^"]+)"$`)

// ParseLineRegex is the regex shortcut: one anchored expression instead of
// composed field parsers. It is kept as an illustration of the trade-off —
// a fraction of the code, but every field comes back as an unvalidated
// string. The combinator path in ParseLine is the real parser.
func ParseLineRegex(line string) (RawLine, error) {
	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return RawLine{}, errors.NewSyntaxError("line does not match combined log format", nil)
	}
	group := func(name string) string {
		return m[lineRegex.SubexpIndex(name)]
	}
	return RawLine{
		Addr:      group("ip"),
		Time:      group("time"),
		Method:    group("method"),
		Path:      group("path"),
		Version:   group("version"),
		Status:    group("status"),
		Size:      group("size"),
		Referer:   group("referer"),
		UserAgent: group("ua"),
	}, nil
}
