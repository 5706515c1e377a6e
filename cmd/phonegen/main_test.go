package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidleathers/placeholder-numbers/internal/testutil/mocks"
)

func useMemoryBackend(t *testing.T) {
	t.Helper()
	t.Setenv("PHONEGEN_KV_BACKEND", "memory")
}

func useSQLiteBackend(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phonegen.db")
	t.Setenv("PHONEGEN_KV_BACKEND", "sqlite")
	t.Setenv("PHONEGEN_KV_SQLITE_PATH", path)
	return path
}

func execute(t *testing.T, opts *rootOptions, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCmd(opts)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.ExecuteContext(context.Background())
	if opts.app != nil {
		require.NoError(t, opts.app.close(context.Background()))
		opts.app = nil
	}
	return out.String(), errOut.String(), err
}

func TestGenerate_Text(t *testing.T) {
	useMemoryBackend(t)

	out, _, err := execute(t, &rootOptions{}, "generate", "--quantity", "3", "--area-code", "212", "--format", "dashes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	numberLine := regexp.MustCompile(`^212-[2-9]\d{2}-\d{4}\s+#(\d) • 212 • \w{6}$`)
	for i, line := range lines[:3] {
		m := numberLine.FindStringSubmatch(line)
		require.NotNil(t, m, line)
		assert.Equal(t, string(rune('1'+i)), m[1])
	}
	assert.Regexp(t, `^Generated 3 unique phone numbers in \d+\.\d{3}s$`, lines[3])
}

func TestGenerate_JSON(t *testing.T) {
	useMemoryBackend(t)

	out, _, err := execute(t, &rootOptions{}, "generate", "-q", "2", "--json", "--format", "plain")
	require.NoError(t, err)

	var got struct {
		SessionID string `json:"session_id"`
		Count     int    `json:"count"`
		Saved     bool   `json:"saved"`
		Numbers   []struct {
			Number   string `json:"number"`
			AreaCode string `json:"area_code"`
			Format   string `json:"format"`
		} `json:"numbers"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.True(t, strings.HasPrefix(got.SessionID, "panda_"))
	assert.Equal(t, 2, got.Count)
	assert.True(t, got.Saved)
	require.Len(t, got.Numbers, 2)
	for _, n := range got.Numbers {
		assert.Regexp(t, `^[2-9]\d{2}[2-9]\d{2}\d{4}$`, n.Number)
		assert.Equal(t, "plain", n.Format)
		assert.Equal(t, n.AreaCode, n.Number[:3])
	}
}

func TestGenerate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"quantity too large", []string{"--quantity", "51"}, "Please select between 1 and 50 numbers"},
		{"quantity zero", []string{"--quantity", "0"}, "Please select between 1 and 50 numbers"},
		{"bad area code", []string{"--area-code", "123"}, "Invalid area code"},
		{"unknown format", []string{"--format", "fancy"}, "number format 'fancy' is not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useMemoryBackend(t)

			out, errOut, err := execute(t, &rootOptions{}, append([]string{"generate"}, tt.args...)...)
			require.NoError(t, err, "validation failures are not fatal")
			assert.Empty(t, out)
			assert.Contains(t, errOut, "Rejected: "+tt.want)
		})
	}
}

func TestGenerate_Copy(t *testing.T) {
	useMemoryBackend(t)

	clip := &mocks.Clipboard{}
	clip.On("WriteAll", mock.MatchedBy(func(text string) bool {
		return len(strings.Split(text, "\n")) == 2
	})).Return(nil).Once()

	_, errOut, err := execute(t, &rootOptions{clipboard: clip}, "generate", "-q", "2", "--copy")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Copied 2 phone numbers to clipboard")
	clip.AssertExpectations(t)
}

func TestGenerate_CopyFallsBackToStdout(t *testing.T) {
	useMemoryBackend(t)

	clip := &mocks.Clipboard{}
	clip.On("WriteAll", mock.Anything).Return(errors.New("no display"))

	out, errOut, err := execute(t, &rootOptions{clipboard: clip}, "generate", "-q", "1", "--area-code", "415", "--copy")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Regexp(t, `^\(415\) [2-9]\d{2}-\d{4}$`, lines[2])
	assert.True(t, strings.HasPrefix(lines[0], lines[2]))
	assert.NotContains(t, errOut, "Copied")
}

func TestStatsAndReset_PersistAcrossRuns(t *testing.T) {
	useSQLiteBackend(t)

	_, _, err := execute(t, &rootOptions{}, "generate", "-q", "4")
	require.NoError(t, err)
	_, _, err = execute(t, &rootOptions{}, "generate", "-q", "3")
	require.NoError(t, err)

	out, _, err := execute(t, &rootOptions{}, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total generated: 7\n")
	assert.Contains(t, out, "Unique today:    7\n")

	out, _, err = execute(t, &rootOptions{}, "reset")
	require.NoError(t, err)
	assert.Equal(t, "Cleared 7 generated numbers\n", out)

	out, _, err = execute(t, &rootOptions{}, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total generated: 0\n")
	assert.Contains(t, out, "Unique today:    0\n")
}

func TestTheme(t *testing.T) {
	useSQLiteBackend(t)

	out, _, err := execute(t, &rootOptions{}, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, _, err = execute(t, &rootOptions{}, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "Theme set to dark\n", out)

	out, _, err = execute(t, &rootOptions{}, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	out, _, err = execute(t, &rootOptions{}, "theme", "light")
	require.NoError(t, err)
	assert.Equal(t, "Theme set to light\n", out)

	out, errOut, err := execute(t, &rootOptions{}, "theme", "blue")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Rejected:")
}

func TestRun_SetupErrorsExitNonZero(t *testing.T) {
	t.Setenv("PHONEGEN_KV_BACKEND", "floppy")

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"stats"}, &out, &errOut)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), `unknown kv backend "floppy"`)
}

func TestRun_MissingConfigFile(t *testing.T) {
	useMemoryBackend(t)

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "stats"}, &out, &errOut)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "failed to load configuration")
}

func TestRun_Success(t *testing.T) {
	useMemoryBackend(t)

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"stats"}, &out, &errOut)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Total generated: 0")
}

func TestGenerate_HelpListsFormats(t *testing.T) {
	out, _, err := execute(t, &rootOptions{}, "generate", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "dashes    555-555-5555")
	assert.Contains(t, out, "standard  (555) 555-5555")
}
