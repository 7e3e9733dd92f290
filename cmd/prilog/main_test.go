package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prilog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runEmit(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("PRILOG_LEVEL", "")
	var stdout, stderr bytes.Buffer
	code := runEmitCommand(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestEmit_Arguments(t *testing.T) {
	code, out, _ := runEmit(t, "", "-log-level", "DEBUG", "hello", "world")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "<6>[stdin:1] hello world\n", out)
}

func TestEmit_StandardInput(t *testing.T) {
	code, out, _ := runEmit(t, "first\nsecond\n", "-level", "ERROR", "-log-level", "WARNING")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "<3>[stdin:1] first\n<3>[stdin:2] second\n", out)
}

func TestEmit_BelowThreshold(t *testing.T) {
	code, out, _ := runEmit(t, "", "-level", "DEBUG", "quiet")
	assert.Equal(t, ExitSuccess, code)
	assert.Empty(t, out, "the build default threshold is ERROR")
}

func TestEmit_EnvironmentThreshold(t *testing.T) {
	var stdout, stderr bytes.Buffer
	t.Setenv("PRILOG_LEVEL", "INFO")
	code := runEmitCommand([]string{"from env"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "<6>[stdin:1] from env\n", stdout.String())
}

func TestEmit_BracesAreLiteral(t *testing.T) {
	_, out, _ := runEmit(t, "", "-level", "CRITICAL", "map {} and {0}")
	assert.Equal(t, "<2>[stdin:1] map {} and {0}\n", out)
}

func TestEmit_FmtMarkersAreLiteral(t *testing.T) {
	_, out, _ := runEmit(t, "%!v(user text)\n", "-level", "ERROR")
	assert.Equal(t, "<3>[stdin:1] %!v(user text)\n", out)
}

func TestEmit_Source(t *testing.T) {
	_, out, _ := runEmit(t, "", "-level", "WARNING", "-log-level", "INFO", "-source", "/srv/app/redfish.cpp:42", "fan failed")
	assert.Equal(t, "<4>[redfish.cpp:42] fan failed\n", out)
}

func TestEmit_UsageErrors(t *testing.T) {
	testCases := [][]string{
		{"-level", "DISABLED", "x"},
		{"-level", "info", "x"},
		{"-source", "nofile", "x"},
		{"-source", "a.c:0", "x"},
		{"-source", "a.c:abc", "x"},
		{"-no-such-flag"},
	}
	for _, args := range testCases {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			code, out, _ := runEmit(t, "", args...)
			assert.Equal(t, ExitUsageError, code)
			assert.Empty(t, out)
		})
	}
}

func TestEmit_ConfigFile(t *testing.T) {
	path := writeConfig(t, "schemaVersion: \"v1.0.0\"\nlevel: DEBUG\nmetrics:\n  enabled: true\n  namespace: clitest\n")
	code, out, errOut := runEmit(t, "one\ntwo\n", "-config", path, "-level", "DEBUG", "-print-metrics")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "<6>[stdin:1] one\n<6>[stdin:2] two\n", out)
	assert.Contains(t, errOut, `clitest_lines_emitted_total{level="DEBUG"} 2`)
}

func TestEmit_InvalidConfigFile(t *testing.T) {
	path := writeConfig(t, "schemaVersion: \"v1.0.0\"\nlevel: loud\n")
	code, out, errOut := runEmit(t, "", "-config", path, "msg")
	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Failed to initialize logger")
}

func TestEmit_PrintMetricsWithoutMetrics(t *testing.T) {
	path := writeConfig(t, "schemaVersion: \"v1.0.0\"\nlevel: INFO\n")
	code, _, errOut := runEmit(t, "", "-config", path, "-print-metrics", "msg")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, errOut, "metrics are not enabled")
}

func TestValidateCommand(t *testing.T) {
	var stderr bytes.Buffer
	valid := writeConfig(t, "schemaVersion: \"v1.0.0\"\nlevel: WARNING\noutput: stderr\n")
	assert.Equal(t, ExitSuccess, runValidateCommand([]string{"-config", valid}, &stderr))
	assert.Equal(t, "Configuration is valid: "+valid+"\n", stderr.String(), "success is a plain message, not a log record")

	stderr.Reset()
	assert.Equal(t, ExitSuccess, runValidateCommand([]string{"-config", valid, "-v"}, &stderr))
	assert.Contains(t, stderr.String(), "<6>[main.go:")
	assert.Contains(t, stderr.String(), "] Configuration validation successful: "+valid+"\n")

	stderr.Reset()
	invalid := writeConfig(t, "schemaVersion: \"v2.0.0\"\nlevel: WARNING\n")
	assert.Equal(t, ExitFailure, runValidateCommand([]string{"-config", invalid}, &stderr))
	assert.NotEmpty(t, stderr.String())

	stderr.Reset()
	assert.Equal(t, ExitUsageError, runValidateCommand(nil, &stderr))
	assert.Contains(t, stderr.String(), "-config flag is required")
}

func TestParseSource(t *testing.T) {
	loc, err := parseSource(`C:\src\main.cpp:7`)
	require.NoError(t, err)
	assert.Equal(t, `C:\src\main.cpp`, loc.File)
	assert.Equal(t, 7, loc.Line)
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	printVersion(&out)
	assert.Contains(t, out.String(), "prilog version dev")
}
