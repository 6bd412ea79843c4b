package pathutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{name: "relative payload", path: "payload.json", want: "payload.json"},
		{name: "nested output", path: "out/report.json", want: filepath.Join("out", "report.json")},
		{name: "dots cleaned", path: "./reports/../payload.json", want: "payload.json"},
		{name: "empty", path: "", wantErr: ErrEmptyPath},
		{name: "null byte", path: "payload\x00.json", wantErr: ErrNullBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePath(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePath_ResolvesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "technical.json")
	require.NoError(t, os.WriteFile(target, []byte(`{}`), 0600))
	link := filepath.Join(dir, "latest.json")
	if err := os.Symlink(target, link); err != nil {
		t.Skip("symlinks not supported")
	}

	got, err := ValidatePath(link)

	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, resolved, got)
}

func TestIsPathSafe(t *testing.T) {
	tests := []struct {
		path   string
		expect bool
	}{
		{"salamander.prom", true},
		{"/var/lib/node_exporter/salamander.prom", true},
		{"./metrics/salamander.prom", true},
		{"metrics/../salamander.prom", true},
		{"", false},
		{"salamander\x00.prom", false},
		{"../salamander.prom", false},
		{"..", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expect, IsPathSafe(tt.path))
		})
	}
}

func TestReadPayload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overview.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"overall_score": 82}`), 0600))

	data, err := ReadPayload(path, 0)

	require.NoError(t, err)
	assert.JSONEq(t, `{"overall_score": 82}`, string(data))
}

func TestReadPayload_Errors(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.json")
	require.NoError(t, os.WriteFile(big, []byte(`{"pages": []}`), 0600))

	_, err := ReadPayload(big, 4)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = ReadPayload(dir, 0)
	assert.ErrorIs(t, err, ErrNotRegular)

	_, err = ReadPayload(filepath.Join(dir, "missing.json"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadPayload("", 0)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestReadLimited(t *testing.T) {
	data, err := ReadLimited(strings.NewReader("abcd"), 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(data))

	_, err = ReadLimited(strings.NewReader("abcde"), 4)
	assert.ErrorIs(t, err, ErrTooLarge)
}
