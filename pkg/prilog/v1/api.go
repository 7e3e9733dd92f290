package v1

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gxo-labs/prilog/internal/config"
	"github.com/gxo-labs/prilog/internal/logger"
	intmetrics "github.com/gxo-labs/prilog/internal/metrics"
	prierrors "github.com/gxo-labs/prilog/pkg/prilog/v1/errors"
	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"
	"github.com/gxo-labs/prilog/pkg/prilog/v1/metrics"
	"github.com/gxo-labs/prilog/pkg/prilog/v1/render"
)

// DefaultLevelName is the threshold used when neither Init nor PRILOG_LEVEL
// supplies one. Set it at build time with
//
//	-ldflags "-X github.com/gxo-labs/prilog/pkg/prilog/v1.DefaultLevelName=DEBUG"
var DefaultLevelName = "ERROR"

var (
	defaultOnce   sync.Once
	defaultLogger atomic.Pointer[logger.Logger]
)

// Option is a function type used to configure a logger at creation.
type Option func(*options) error

type options struct {
	loggerOpts []logger.Option
}

// WithOutput is an option to write lines to w instead of standard output.
func WithOutput(w io.Writer) Option {
	return func(o *options) error {
		if w == nil {
			return prierrors.NewConfigError("output writer cannot be nil", nil)
		}
		o.loggerOpts = append(o.loggerOpts, logger.WithOutput(w))
		return nil
	}
}

// WithRenderers is an option to format arguments with reg instead of
// render.Default(), for example render.Default().Without("string-view").
func WithRenderers(reg *render.Registry) Option {
	return func(o *options) error {
		if reg == nil {
			return prierrors.NewConfigError("render registry cannot be nil", nil)
		}
		o.loggerOpts = append(o.loggerOpts, logger.WithRenderers(reg))
		return nil
	}
}

// WithMetricsRegistryProvider is an option to count emitted lines, format
// failures and write errors in the provider's registry under namespace.
func WithMetricsRegistryProvider(provider metrics.RegistryProvider, namespace string) Option {
	return func(o *options) error {
		if provider == nil || provider.Registry() == nil {
			return prierrors.NewConfigError("metrics registry provider cannot be nil", nil)
		}
		if namespace == "" {
			namespace = config.DefaultMetricsNamespace
		}
		collector := intmetrics.NewCollector(namespace)
		if err := collector.Register(provider.Registry()); err != nil {
			return prierrors.NewConfigError("failed to register logger metrics", err)
		}
		o.loggerOpts = append(o.loggerOpts, logger.WithObserver(collector))
		return nil
	}
}

// NewLogger creates a Logger whose threshold is parsed from levelName.
// An unknown name yields a logger with logging disabled, not an error.
func NewLogger(levelName string, opts ...Option) (prilog.Logger, error) {
	l, err := build(levelName, opts)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Init replaces the default logger. Call it once at startup, before starting
// goroutines that log; goroutines started after Init returns see the new
// logger.
func Init(levelName string, opts ...Option) error {
	l, err := build(levelName, opts)
	if err != nil {
		return err
	}
	install(l)
	return nil
}

// InitFromConfigFile loads a YAML configuration and installs the default
// logger it describes. PRILOG_LEVEL, when set, overrides the file's level.
// If the file enables metrics, a new Prometheus registry holds the counters
// and is returned by MetricsRegistryProvider.
func InitFromConfigFile(path string, opts ...Option) error {
	cfg, err := config.LoadConfigFromFile(path)
	if err != nil {
		return err
	}
	return InitFromConfig(cfg, opts...)
}

var (
	metricsMu       sync.Mutex
	metricsProvider metrics.RegistryProvider
)

// InitFromConfig installs the default logger described by cfg.
func InitFromConfig(cfg *config.Config, opts ...Option) error {
	if cfg == nil {
		return prierrors.NewConfigError("configuration cannot be nil", nil)
	}
	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		return errs[0]
	}
	all := []Option{WithOutput(cfg.Writer())}
	var provider metrics.RegistryProvider
	if cfg.MetricsEnabled() {
		provider = intmetrics.NewPrometheusRegistryProvider()
		all = append(all, WithMetricsRegistryProvider(provider, cfg.GetMetricsNamespace()))
	}
	// Options from the caller come last so they can replace the output or
	// the metrics observer chosen by the file.
	all = append(all, opts...)
	if err := Init(config.ResolveLevelName(cfg, DefaultLevelName), all...); err != nil {
		return err
	}
	metricsMu.Lock()
	metricsProvider = provider
	metricsMu.Unlock()
	return nil
}

// MetricsRegistryProvider returns the registry created by InitFromConfig,
// or nil if configuration did not enable metrics.
func MetricsRegistryProvider() metrics.RegistryProvider {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	return metricsProvider
}

func build(levelName string, opts []Option) (*logger.Logger, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return logger.New(levelName, o.loggerOpts...), nil
}

func install(l *logger.Logger) {
	// Mark the lazy initializer as done so it cannot overwrite l.
	defaultOnce.Do(func() {})
	defaultLogger.Store(l)
}

func current() *logger.Logger {
	defaultOnce.Do(func() {
		defaultLogger.Store(logger.New(config.ResolveLevelName(nil, DefaultLevelName)))
	})
	return defaultLogger.Load()
}

// Default returns the process-wide logger. Until Init is called it is built
// from PRILOG_LEVEL or DefaultLevelName and writes to standard output.
func Default() prilog.Logger {
	return current()
}

// SetLevel changes the threshold of the default logger. Goroutines that are
// already logging may observe the previous threshold for an unspecified
// time; prefer configuring the level through Init at startup.
func SetLevel(level prilog.Level) {
	current().SetLevel(level)
}

// CurrentLevel returns the threshold of the default logger.
func CurrentLevel() prilog.Level {
	return current().Level()
}

// Enabled reports whether the default logger emits calls at level.
func Enabled(level prilog.Level) bool {
	return current().Enabled(level)
}

// WithContext returns the default logger annotated with the trace and span
// IDs carried by ctx.
func WithContext(ctx context.Context) prilog.Logger {
	return current().WithContext(ctx)
}

// SlogHandler returns a slog.Handler that writes through the default logger.
func SlogHandler() slog.Handler {
	return logger.NewSlogHandler(current())
}

// Critical logs at LevelCritical using the default logger.
func Critical(template string, args ...any) {
	current().LogDepth(1, prilog.LevelCritical, template, args...)
}

// Error logs at LevelError using the default logger.
func Error(template string, args ...any) {
	current().LogDepth(1, prilog.LevelError, template, args...)
}

// Warning logs at LevelWarning using the default logger.
func Warning(template string, args ...any) {
	current().LogDepth(1, prilog.LevelWarning, template, args...)
}

// Info logs at LevelInfo using the default logger.
func Info(template string, args ...any) {
	current().LogDepth(1, prilog.LevelInfo, template, args...)
}

// Debug logs at LevelDebug using the default logger.
func Debug(template string, args ...any) {
	current().LogDepth(1, prilog.LevelDebug, template, args...)
}

// Dispatch logs at level with an explicit location using the default logger.
func Dispatch(level prilog.Level, loc prilog.Location, template string, args ...any) {
	current().Dispatch(level, loc, template, args...)
}
