package coerce

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"float64", 12.5, 12.5, true},
		{"int", 7, 7, true},
		{"int64", int64(-3), -3, true},
		{"json number", json.Number("42"), 42, true},
		{"numeric string", " 3.25 ", 3.25, true},
		{"percent string", "85%", 85, true},
		{"empty string", "", 0, false},
		{"word", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
		{"NaN", math.NaN(), 0, false},
		{"Inf", math.Inf(1), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	s, ok := String("hello")
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	s, ok = String(12.0)
	assert.True(t, ok)
	assert.Equal(t, "12", s)

	s, ok = String(false)
	assert.True(t, ok)
	assert.Equal(t, "false", s)

	_, ok = String(nil)
	assert.False(t, ok)

	_, ok = String(map[string]any{})
	assert.False(t, ok)
}

func TestBool(t *testing.T) {
	tests := []struct {
		input  any
		want   bool
		wantOK bool
	}{
		{true, true, true},
		{"yes", true, true},
		{"Enabled", true, true},
		{"off", false, true},
		{1.0, true, true},
		{0, false, true},
		{"maybe", false, false},
		{nil, false, false},
	}

	for _, tt := range tests {
		got, ok := Bool(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input %v", tt.input)
		assert.Equal(t, tt.want, got, "input %v", tt.input)
	}
}

func TestSliceAndStrings(t *testing.T) {
	assert.Empty(t, Slice(nil))
	assert.NotNil(t, Slice("not a slice"))
	assert.Len(t, Slice([]any{1, 2}), 2)

	assert.Equal(t, []string{"a", "1"}, Strings([]any{"a", 1.0, nil, "", map[string]any{}}))
	assert.Equal(t, []string{}, Strings("x"))
}

func TestRoundAndClamp(t *testing.T) {
	assert.Equal(t, 33.3, Round(33.333, 1))
	assert.Equal(t, 34.0, Round(33.5, 0))
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(150, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
}

func TestDecode(t *testing.T) {
	obj, err := Decode([]byte(`{"a": 1, "b": {"c": "d"}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, obj.Int("a", 0))
	assert.Equal(t, "d", obj.Object("b").String("c"))

	_, err = Decode([]byte(`[1,2,3]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Decode([]byte(`   `))
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Decode([]byte(`{"a":`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotObject)

	_, err = Decode([]byte(`null`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestObject_Accessors(t *testing.T) {
	obj := Object{
		"title":    "",
		"message":  "fallback title",
		"count":    "12",
		"enabled":  "true",
		"list":     []any{map[string]any{"x": 1.0}, "skip", map[string]any{"x": 2.0}},
		"tags":     []any{"a", "b"},
		"nested":   map[string]any{"k": "v"},
		"nullable": nil,
	}

	assert.Equal(t, "fallback title", obj.String("title", "message"))
	assert.Equal(t, 12, obj.Int("count", 0))
	assert.Equal(t, 9.5, obj.Float("missing", 9.5))
	assert.True(t, obj.Bool("enabled", false))
	assert.True(t, obj.Bool("missing", true))
	assert.Len(t, obj.Objects("list"), 2)
	assert.Equal(t, []string{"a", "b"}, obj.Strings("tags"))
	assert.Equal(t, []string{}, obj.Strings("missing"))
	assert.Equal(t, "v", obj.Object("missing", "nested").String("k"))
	assert.False(t, obj.Has("nullable"))
	assert.True(t, obj.Has("nested"))
	assert.Nil(t, obj.Value("nullable"))
	assert.Equal(t, "12", obj.Value("nullable", "count"))
}

func TestObject_NilSafe(t *testing.T) {
	var obj Object

	assert.Equal(t, "", obj.String("a"))
	assert.Equal(t, 3, obj.Int("a", 3))
	assert.Nil(t, obj.Object("a"))
	assert.Empty(t, obj.Objects("a"))
	assert.NotNil(t, obj.Slice("a"))
	assert.False(t, obj.Has("a"))
}

func TestValidatePositiveNumber(t *testing.T) {
	assert.Equal(t, 0.0, ValidatePositiveNumber(0, 10))
	assert.Equal(t, 5.5, ValidatePositiveNumber("5.5", 10))
	assert.Equal(t, 10.0, ValidatePositiveNumber(-1, 10))
	assert.Equal(t, 10.0, ValidatePositiveNumber("abc", 10))
	assert.Equal(t, 10.0, ValidatePositiveNumber(nil, 10))
	assert.Equal(t, 3, ValidatePositiveInt(3.9, 0))
	assert.Equal(t, 7, ValidatePositiveInt(-3, 7))
}

func TestValidatePercentage(t *testing.T) {
	assert.Equal(t, 0.0, ValidatePercentage("n/a"))
	assert.Equal(t, 0.0, ValidatePercentage(-20))
	assert.Equal(t, 100.0, ValidatePercentage(250))
	assert.Equal(t, 55.5, ValidatePercentage(55.5))
}

func TestValidateISODate(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"rfc3339", "2024-06-15T10:30:00Z", "2024-06-15T10:30:00.000Z"},
		{"offset converted to utc", "2024-06-15T12:30:00+02:00", "2024-06-15T10:30:00.000Z"},
		{"date only", "2024-06-15", "2024-06-15T00:00:00.000Z"},
		{"unix seconds", 1718447400.0, "2024-06-15T10:30:00.000Z"},
		{"unix millis", json.Number("1718447400000"), "2024-06-15T10:30:00.000Z"},
		{"garbage", "not a date", "2025-03-01T12:00:00.000Z"},
		{"missing", nil, "2025-03-01T12:00:00.000Z"},
		{"negative", -5, "2025-03-01T12:00:00.000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateISODate(tt.input, now))
		})
	}
}

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		input any
		want  int
	}{
		{200, 200},
		{"404", 404},
		{301.7, 301},
		{99, ServerErrorStatus},
		{600, ServerErrorStatus},
		{"oops", ServerErrorStatus},
		{nil, ServerErrorStatus},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateStatusCode(tt.input), "input %v", tt.input)
	}
}
