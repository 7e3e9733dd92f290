package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/gxo-labs/prilog/internal/config"
	intmetrics "github.com/gxo-labs/prilog/internal/metrics"
	prierrors "github.com/gxo-labs/prilog/pkg/prilog/v1/errors"
	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"
	"github.com/gxo-labs/prilog/pkg/prilog/v1/render"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetDefault clears the process-wide logger so each test starts from the
// lazy initial state.
func resetDefault(t *testing.T) {
	t.Helper()
	defaultOnce = sync.Once{}
	defaultLogger.Store(nil)
	metricsMu.Lock()
	metricsProvider = nil
	metricsMu.Unlock()
	t.Cleanup(func() {
		defaultOnce = sync.Once{}
		defaultLogger.Store(nil)
	})
}

func callerLine(offset int) string {
	_, file, line, _ := runtime.Caller(1)
	return fmt.Sprintf("%s:%d", filepath.Base(file), line+offset)
}

func TestDefault_LazyFromBuildDefault(t *testing.T) {
	resetDefault(t)
	t.Setenv(config.LevelEnvVar, "")
	assert.Equal(t, prilog.ParseLevel(DefaultLevelName), CurrentLevel())
}

func TestDefault_LazyFromEnv(t *testing.T) {
	resetDefault(t)
	t.Setenv(config.LevelEnvVar, "DEBUG")
	assert.Equal(t, prilog.LevelDebug, CurrentLevel())
	assert.True(t, Enabled(prilog.LevelDebug))
}

func TestInit_PackageFunctionsReportCallSite(t *testing.T) {
	resetDefault(t)
	var out bytes.Buffer
	require.NoError(t, Init("WARNING", WithOutput(&out)))

	Info("hidden")
	Debug("hidden")
	where := callerLine(1)
	Warning("fan {} at {} rpm", 1, 900)
	Error("psu {}", "fault")
	Critical("overtemp")

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "<4>["+where+"] fan 1 at 900 rpm", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "<3>[api_test.go:"))
	assert.True(t, strings.HasSuffix(lines[1], "] psu fault"))
	assert.True(t, strings.HasPrefix(lines[2], "<2>[api_test.go:"))
}

func TestInit_DisabledSilencesEverything(t *testing.T) {
	resetDefault(t)
	var out bytes.Buffer
	require.NoError(t, Init("DISABLED", WithOutput(&out)))

	Critical("a")
	Error("b")
	Warning("c")
	Info("d")
	Debug("e")
	assert.Empty(t, out.String())
}

func TestInit_AfterLazyUseReplacesLogger(t *testing.T) {
	resetDefault(t)
	_ = Default()
	var out bytes.Buffer
	require.NoError(t, Init("INFO", WithOutput(&out)))
	Info("after init")
	assert.Contains(t, out.String(), "] after init\n")
}

func TestSetLevel(t *testing.T) {
	resetDefault(t)
	var out bytes.Buffer
	require.NoError(t, Init("ERROR", WithOutput(&out)))

	Info("before")
	SetLevel(prilog.LevelInfo)
	Info("after")
	assert.Equal(t, prilog.LevelInfo, CurrentLevel())
	assert.NotContains(t, out.String(), "before")
	assert.Contains(t, out.String(), "after")
}

func TestDispatch_ExplicitLocation(t *testing.T) {
	resetDefault(t)
	var out bytes.Buffer
	require.NoError(t, Init("ENABLED", WithOutput(&out)))

	Dispatch(prilog.LevelError, prilog.Location{File: "/a/b/c.cpp", Line: 42}, "x")
	assert.Equal(t, "<3>[c.cpp:42] x\n", out.String())
}

func TestNewLogger_Options(t *testing.T) {
	_, err := NewLogger("INFO", WithOutput(nil))
	var cfgErr *prierrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = NewLogger("INFO", WithMetricsRegistryProvider(nil, ""))
	assert.ErrorAs(t, err, &cfgErr)

	_, err = NewLogger("INFO", WithRenderers(nil))
	assert.ErrorAs(t, err, &cfgErr)

	provider := intmetrics.NewPrometheusRegistryProvider()
	var out bytes.Buffer
	l, err := NewLogger("INFO", WithOutput(&out), WithMetricsRegistryProvider(provider, ""))
	require.NoError(t, err)
	l.Info("counted")

	count, err := testutil.GatherAndCount(provider.Registry(), config.DefaultMetricsNamespace+"_lines_emitted_total")
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	_, err = NewLogger("INFO", WithMetricsRegistryProvider(provider, ""))
	assert.ErrorAs(t, err, &cfgErr, "registering the same namespace twice fails")
}

func TestInitFromConfigFile(t *testing.T) {
	resetDefault(t)
	t.Setenv(config.LevelEnvVar, "")

	path := filepath.Join(t.TempDir(), "prilog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
schemaVersion: "v1.0.0"
level: INFO
metrics:
  enabled: true
  namespace: bmc
`), 0o600))

	var out bytes.Buffer
	require.NoError(t, InitFromConfigFile(path, WithOutput(&out)))
	assert.Equal(t, prilog.LevelInfo, CurrentLevel())

	Info("configured")
	Debug("hidden")
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))

	provider := MetricsRegistryProvider()
	require.NotNil(t, provider)
	count, err := testutil.GatherAndCount(provider.Registry(), "bmc_lines_emitted_total")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestInitFromConfigFile_EnvOverride(t *testing.T) {
	resetDefault(t)
	t.Setenv(config.LevelEnvVar, "CRITICAL")

	path := filepath.Join(t.TempDir(), "prilog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schemaVersion: \"v1\"\nlevel: DEBUG\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, InitFromConfigFile(path, WithOutput(&out)))
	assert.Equal(t, prilog.LevelCritical, CurrentLevel())
	assert.Nil(t, MetricsRegistryProvider())
}

func TestInitFromConfig_Invalid(t *testing.T) {
	resetDefault(t)
	assert.Error(t, InitFromConfig(nil))
	assert.Error(t, InitFromConfig(&config.Config{Level: "loud"}))
	assert.Error(t, InitFromConfigFile(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestNewLogger_WithRenderers(t *testing.T) {
	var out bytes.Buffer
	l, err := NewLogger("DEBUG", WithOutput(&out), WithRenderers(render.Default().Without("string-view")))
	require.NoError(t, err)

	l.Debug("body={}", json.RawMessage(`{"a":1}`))
	assert.True(t, strings.HasSuffix(out.String(), "] body=[123 34 97 34 58 49 125]\n"), "got %q", out.String())
}
