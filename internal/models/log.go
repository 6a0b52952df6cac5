package models

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/mcncl/parsekit/internal/errors"
)

// Method is one of the nine fixed HTTP request verbs.
type Method int

const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodDelete
	MethodHead
	MethodOptions
	MethodConnect
	MethodTrace
	MethodPatch
)

// ParseMethod converts a verb token to its Method. There is no fallback
// variant: anything outside the nine verbs is a conversion error, so
// unsupported literals stay observable.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "GET":
		return MethodGet, nil
	case "POST":
		return MethodPost, nil
	case "PUT":
		return MethodPut, nil
	case "DELETE":
		return MethodDelete, nil
	case "HEAD":
		return MethodHead, nil
	case "OPTIONS":
		return MethodOptions, nil
	case "CONNECT":
		return MethodConnect, nil
	case "TRACE":
		return MethodTrace, nil
	case "PATCH":
		return MethodPatch, nil
	default:
		return 0, errors.NewConvertError(fmt.Sprintf("invalid HTTP method %q", s), errors.ErrUnknownMethod)
	}
}

// String returns the wire form of the method.
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodDelete:
		return "DELETE"
	case MethodHead:
		return "HEAD"
	case MethodOptions:
		return "OPTIONS"
	case MethodConnect:
		return "CONNECT"
	case MethodTrace:
		return "TRACE"
	case MethodPatch:
		return "PATCH"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Version is one of the four fixed HTTP protocol version tokens.
type Version int

const (
	VersionHTTP10 Version = iota
	VersionHTTP11
	VersionHTTP20
	VersionHTTP30
)

// ParseVersion converts a protocol token to its Version, or reports a
// conversion error for anything else.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "HTTP/1.0":
		return VersionHTTP10, nil
	case "HTTP/1.1":
		return VersionHTTP11, nil
	case "HTTP/2.0":
		return VersionHTTP20, nil
	case "HTTP/3.0":
		return VersionHTTP30, nil
	default:
		return 0, errors.NewConvertError(fmt.Sprintf("invalid HTTP version %q", s), errors.ErrUnknownVersion)
	}
}

// String returns the wire form of the version.
func (v Version) String() string {
	switch v {
	case VersionHTTP10:
		return "HTTP/1.0"
	case VersionHTTP11:
		return "HTTP/1.1"
	case VersionHTTP20:
		return "HTTP/2.0"
	case VersionHTTP30:
		return "HTTP/3.0"
	default:
		return fmt.Sprintf("Version(%d)", int(v))
	}
}

// LogRecord is one fully parsed NGINX combined-format log line. A record is
// all-or-nothing: the parser never returns one with missing or defaulted
// fields.
type LogRecord struct {
	Addr      netip.Addr // client IPv4 address
	Time      time.Time  // request instant, normalized to UTC
	Method    Method
	Path      string
	Version   Version
	Status    uint16
	Size      uint64 // response body bytes
	Referer   string
	UserAgent string
}
