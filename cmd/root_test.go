package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AeroNotix/sockstat/pkg/logging"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func procRoot(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "net"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "net", "sockstat"), []byte(content), 0644))
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestHelp(t *testing.T) {
	for _, args := range [][]string{
		{"--help"},
		{"--json", "--help"},
		{"--proc-root", "/does/not/exist", "--help"},
		{"--help", "--bogus"},
	} {
		out, err := execute(t, args...)
		require.NoError(t, err, "%v", args)

		assert.Contains(t, out, "Usage:")
		assert.Contains(t, out, "--json")
		assert.Contains(t, out, "--help")
		assert.NotContains(t, out, " - ERROR - ")
		assert.NotContains(t, out, "Welcome")
	}
}

func TestUnknownOption(t *testing.T) {
	out, err := execute(t, "--proc-root", "/does/not/exist", "--bogus")
	assert.ErrorIs(t, err, errUnknownArgument)

	assert.Contains(t, out, " - ERROR - Unknown option: --bogus")
	assert.Contains(t, out, "Usage:")
	assert.NotContains(t, out, "not found or not readable")
}

func TestReportArgErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)

	assert.NotPanics(t, func() {
		reportArgError(cmd, logging.New(logging.Info, &buf), errors.New("something else"))
	})
	assert.Contains(t, buf.String(), " - ERROR - something else")
	assert.NotContains(t, buf.String(), "Usage:")
}

func TestMissingValue(t *testing.T) {
	out, err := execute(t, "--log-level")
	assert.ErrorIs(t, err, errMissingValue)
	assert.Contains(t, out, " - ERROR - Missing value for --log-level")
	assert.NotContains(t, out, "Usage:")
}

func TestRunJSON(t *testing.T) {
	root := procRoot(t, "sockets: used 42\nTCP: inuse 7 orphan 0\nUDP: inuse 3\n")
	out, err := execute(t, "--json", "--proc-root", root)
	require.NoError(t, err)

	_, result, found := strings.Cut(out, " - INFO - Socket Summary:\n")
	require.True(t, found, out)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(result), &got))
	assert.Equal(t, map[string]string{"SocketsUsed": "42", "TCPInUse": "7", "UDPInUse": "3"}, got)
}

func TestRunRawQuiet(t *testing.T) {
	root := procRoot(t, "sockets: used 42\n")
	out, err := execute(t, "--proc-root", root, "--log-level", "ERROR")
	require.NoError(t, err)
	assert.Equal(t, "sockets: used 42\n", out)
}

func TestRunFromEnv(t *testing.T) {
	root := procRoot(t, "sockets: used 42\n")
	t.Setenv("SOCKSTAT_PROC_ROOT", root)
	t.Setenv("SOCKSTAT_JSON", "true")

	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, `"SocketsUsed": "42"`)
	assert.Contains(t, out, `"UDPInUse": "N/A"`)
}

func TestRunEmptySource(t *testing.T) {
	out, err := execute(t, "--json", "--proc-root", procRoot(t, ""))
	assert.Error(t, err)
	assert.Contains(t, out, " - ERROR - No data received from ")
	assert.NotContains(t, out, "SocketsUsed")
}

func TestRunSourceUnavailable(t *testing.T) {
	out, err := execute(t, "--proc-root", t.TempDir())
	assert.Error(t, err)
	assert.Contains(t, out, " - ERROR - Error: '")
}

func TestInvalidLogLevelFallsBack(t *testing.T) {
	root := procRoot(t, "sockets: used 42\n")
	out, err := execute(t, "--proc-root", root, "--log-level", "LOUD")
	require.NoError(t, err)

	assert.Contains(t, out, " - WARNING - Invalid LOG_LEVEL: LOUD. Using default: INFO")
	assert.Contains(t, out, " - INFO - Welcome to the Socket Summary Analyzer")
	assert.NotContains(t, out, " - DEBUG - ")
}

func TestBrokenConfigFile(t *testing.T) {
	out, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, out, " - ERROR - failed to read config file")
}

func TestLogFile(t *testing.T) {
	root := procRoot(t, "sockets: used 42\n")
	logFile := filepath.Join(t.TempDir(), "sockstat.log")

	_, err := execute(t, "--proc-root", root, "--log-file", logFile)
	require.NoError(t, err)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Socket Summary:")
	assert.NotContains(t, string(content), "sockets: used 42")
}
