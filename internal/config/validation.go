package config

import (
	"fmt"
	"regexp"

	prierrors "github.com/gxo-labs/prilog/pkg/prilog/v1/errors"
	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"
)

// Pre-compiled regex for validating the metrics namespace (a Prometheus name prefix).
var namespaceRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateConfig checks a Config built in code or decoded from YAML.
// It repeats the schema's field checks so that configurations which never
// went through LoadConfig are held to the same rules.
func ValidateConfig(c *Config) []error {
	var errs []error

	if c.Level == "" {
		errs = append(errs, prierrors.NewValidationError("'level' is required", nil))
	} else if !isLevelName(c.Level) {
		errs = append(errs, prierrors.NewValidationError(
			fmt.Sprintf("unknown level '%s' (expected one of %v; names are case-sensitive)", c.Level, prilog.LevelNames()), nil))
	}

	if c.Output != "" && c.Output != OutputStdout && c.Output != OutputStderr {
		errs = append(errs, prierrors.NewValidationError(
			fmt.Sprintf("invalid output '%s' (expected '%s' or '%s')", c.Output, OutputStdout, OutputStderr), nil))
	}

	if c.Metrics != nil && c.Metrics.Namespace != "" && !namespaceRegex.MatchString(c.Metrics.Namespace) {
		errs = append(errs, prierrors.NewValidationError(
			fmt.Sprintf("metrics namespace '%s' contains invalid characters (allowed: alphanumeric, underscore; must not start with a digit)", c.Metrics.Namespace), nil))
	}

	return errs
}

func isLevelName(name string) bool {
	for _, n := range prilog.LevelNames() {
		if n == name {
			return true
		}
	}
	return false
}
