package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	prilogv1 "github.com/gxo-labs/prilog/pkg/prilog/v1"
	prierrors "github.com/gxo-labs/prilog/pkg/prilog/v1/errors"
	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"

	"github.com/gxo-labs/prilog/internal/config"
	"github.com/gxo-labs/prilog/internal/logger"

	"github.com/prometheus/common/expfmt"
)

const (
	ExitSuccess         = 0
	ExitFailure         = 1
	ExitUsageError      = 2
	DefaultMessageLevel = "INFO"
	DefaultDiagLevel    = "WARNING"
	// maxLineSize bounds a single stdin line; longer lines are an error.
	maxLineSize = 1 << 20
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "validate" {
		os.Exit(runValidateCommand(os.Args[2:], os.Stderr))
	}
	if len(os.Args) == 2 && (os.Args[1] == "--version" || os.Args[1] == "-version") {
		printVersion(os.Stdout)
		os.Exit(ExitSuccess)
	}
	os.Exit(runEmitCommand(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "prilog version %s\n", version)
	fmt.Fprintf(w, "commit: %s\n", commit)
	fmt.Fprintf(w, "built: %s\n", buildDate)
	fmt.Fprintf(w, "go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func runValidateCommand(args []string, stderr io.Writer) int {
	validateFlags := flag.NewFlagSet("validate", flag.ContinueOnError)
	validateFlags.SetOutput(stderr)
	configPath := validateFlags.String("config", "", "Path to the configuration YAML file to validate (required)")
	verbose := validateFlags.Bool("v", false, "Report progress as well as errors")

	validateFlags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s validate -config <path> [flags...]\n\n", os.Args[0])
		fmt.Fprintln(stderr, "Validates the structure and schema version of a prilog configuration file.")
		fmt.Fprintln(stderr, "\nFlags:")
		validateFlags.PrintDefaults()
	}

	if err := validateFlags.Parse(args); err != nil {
		return ExitUsageError
	}
	if *configPath == "" {
		fmt.Fprintln(stderr, "Error: -config flag is required for validation")
		validateFlags.Usage()
		return ExitUsageError
	}

	log := newDiagLogger(*verbose, stderr)
	log.Info("Validating configuration: {}", *configPath)

	if _, err := config.LoadConfigFromFile(*configPath); err != nil {
		var validationErr *prierrors.ValidationError
		var configErr *prierrors.ConfigError
		if errors.As(err, &validationErr) {
			log.Error("Configuration validation failed:\n{}", validationErr.Error())
		} else if errors.As(err, &configErr) {
			log.Error("Configuration error:\n{}", configErr.Error())
		} else {
			log.Error("Failed to load or validate configuration: {}", err)
		}
		return ExitFailure
	}

	log.Info("Configuration validation successful: {}", *configPath)
	fmt.Fprintf(stderr, "Configuration is valid: %s\n", *configPath)
	return ExitSuccess
}

func runEmitCommand(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	emitFlags := flag.NewFlagSet("prilog", flag.ContinueOnError)
	emitFlags.SetOutput(stderr)
	configPath := emitFlags.String("config", "", "Path to a configuration YAML file")
	logLevel := emitFlags.String("log-level", "", fmt.Sprintf("Threshold override, one of %s", strings.Join(prilog.LevelNames(), ", ")))
	messageLevel := emitFlags.String("level", DefaultMessageLevel, "Severity of the emitted messages (CRITICAL, ERROR, WARNING, INFO, DEBUG)")
	source := emitFlags.String("source", "", "Location to report as file:line (default: the input line)")
	printMetrics := emitFlags.Bool("print-metrics", false, "Print logger metrics to stderr on exit (requires metrics in -config)")
	verbose := emitFlags.Bool("v", false, "Report progress as well as errors")
	versionFlag := emitFlags.Bool("version", false, "Print version information and exit")

	emitFlags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags...] [message...]\n\n", os.Args[0])
		fmt.Fprintln(stderr, "Writes the message, or each line of standard input, as a prilog record.")
		fmt.Fprintln(stderr, "\nFlags:")
		emitFlags.PrintDefaults()
	}

	if err := emitFlags.Parse(args); err != nil {
		return ExitUsageError
	}
	if *versionFlag {
		printVersion(stdout)
		return ExitSuccess
	}

	level := prilog.ParseLevel(*messageLevel)
	if !level.Loggable() {
		fmt.Fprintf(stderr, "Error: -level must be one of CRITICAL, ERROR, WARNING, INFO, DEBUG (got %q)\n", *messageLevel)
		return ExitUsageError
	}
	var fixedLoc *prilog.Location
	if *source != "" {
		loc, err := parseSource(*source)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitUsageError
		}
		fixedLoc = &loc
	}

	log := newDiagLogger(*verbose, stderr)

	var err error
	if *configPath != "" {
		log.Debug("Loading configuration: {}", *configPath)
		err = prilogv1.InitFromConfigFile(*configPath, prilogv1.WithOutput(stdout))
	} else {
		err = prilogv1.Init(config.ResolveLevelName(nil, prilogv1.DefaultLevelName), prilogv1.WithOutput(stdout))
	}
	if err != nil {
		log.Error("Failed to initialize logger: {}", err)
		return ExitFailure
	}
	if *logLevel != "" {
		prilogv1.SetLevel(prilog.ParseLevel(*logLevel))
	}
	log.Debug("Threshold: {}, message level: {}", prilogv1.CurrentLevel(), level)

	emit := func(lineNo int, text string) {
		loc := prilog.Location{File: "stdin", Line: lineNo}
		if fixedLoc != nil {
			loc = *fixedLoc
		}
		// The input is already final text, so it is passed as an argument.
		prilogv1.Dispatch(level, loc, "{}", text)
	}

	exitCode := ExitSuccess
	if emitFlags.NArg() > 0 {
		emit(1, strings.Join(emitFlags.Args(), " "))
	} else {
		scanner := bufio.NewScanner(stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			emit(lineNo, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			log.Error("Failed to read standard input after line {}: {}", lineNo, err)
			exitCode = ExitFailure
		}
		log.Debug("Processed {} input line(s)", lineNo)
	}

	if *printMetrics {
		if err := writeMetrics(stderr); err != nil {
			log.Error("Failed to print metrics: {}", err)
			exitCode = ExitFailure
		}
	}
	return exitCode
}

// newDiagLogger builds the logger for the tool's own messages.
func newDiagLogger(verbose bool, w io.Writer) *logger.Logger {
	level := DefaultDiagLevel
	if verbose {
		level = "DEBUG"
	}
	return logger.New(level, logger.WithOutput(w))
}

// parseSource parses "file:line" with a positive line number.
func parseSource(s string) (prilog.Location, error) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return prilog.Location{}, fmt.Errorf("-source must be file:line, got %q", s)
	}
	line, err := strconv.Atoi(s[i+1:])
	if err != nil || line <= 0 {
		return prilog.Location{}, fmt.Errorf("-source line must be a positive integer, got %q", s[i+1:])
	}
	return prilog.Location{File: s[:i], Line: line}, nil
}

func writeMetrics(w io.Writer) error {
	provider := prilogv1.MetricsRegistryProvider()
	if provider == nil {
		return errors.New("metrics are not enabled in the configuration")
	}
	families, err := provider.Registry().Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
