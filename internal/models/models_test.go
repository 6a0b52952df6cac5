package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/parsekit/internal/errors"
)

func TestParseMethod(t *testing.T) {
	valid := map[string]Method{
		"GET":     MethodGet,
		"POST":    MethodPost,
		"PUT":     MethodPut,
		"DELETE":  MethodDelete,
		"HEAD":    MethodHead,
		"OPTIONS": MethodOptions,
		"CONNECT": MethodConnect,
		"TRACE":   MethodTrace,
		"PATCH":   MethodPatch,
	}
	for token, want := range valid {
		m, err := ParseMethod(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, m)
		assert.Equal(t, token, m.String(), "String must round-trip the wire form")
	}
}

func TestParseMethod_Unknown(t *testing.T) {
	tests := []string{"FETCH", "get", "GETX", ""}
	for _, token := range tests {
		t.Run(token, func(t *testing.T) {
			_, err := ParseMethod(token)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrUnknownMethod)

			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errors.ErrorTypeConvert, appErr.Type)
		})
	}
}

func TestParseVersion(t *testing.T) {
	valid := map[string]Version{
		"HTTP/1.0": VersionHTTP10,
		"HTTP/1.1": VersionHTTP11,
		"HTTP/2.0": VersionHTTP20,
		"HTTP/3.0": VersionHTTP30,
	}
	for token, want := range valid {
		v, err := ParseVersion(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, v)
		assert.Equal(t, token, v.String())
	}
}

func TestParseVersion_Unknown(t *testing.T) {
	for _, token := range []string{"HTTP/9.9", "HTTP/1", "http/1.1", ""} {
		t.Run(token, func(t *testing.T) {
			_, err := ParseVersion(token)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrUnknownVersion)
		})
	}
}

func TestValueKinds(t *testing.T) {
	tests := []struct {
		value Value
		kind  Kind
		name  string
	}{
		{value: Null{}, kind: KindNull, name: "null"},
		{value: Bool(true), kind: KindBool, name: "bool"},
		{value: Int(-3), kind: KindInt, name: "int"},
		{value: Float(1.5), kind: KindFloat, name: "float"},
		{value: String("hi"), kind: KindString, name: "string"},
		{value: Array{Int(1)}, kind: KindArray, name: "array"},
		{value: Object{"a": Int(1)}, kind: KindObject, name: "object"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.value.Kind())
		assert.Equal(t, tt.name, tt.value.Kind().String())
	}
}

func TestNumberVariants(t *testing.T) {
	// Int and Float are the only Number variants
	var n Number = Int(42)
	assert.Equal(t, KindInt, n.Kind())
	n = Float(42.5)
	assert.Equal(t, KindFloat, n.Kind())

	_, ok := Value(String("42")).(Number)
	assert.False(t, ok, "String must not satisfy Number")
}
