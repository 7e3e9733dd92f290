package config

import "os"

// LevelEnvVar names the environment variable that overrides the configured level.
const LevelEnvVar = "PRILOG_LEVEL"

// LevelFromEnv returns the value of PRILOG_LEVEL and whether it is set to a
// non-empty value.
func LevelFromEnv() (string, bool) {
	value, found := os.LookupEnv(LevelEnvVar)
	return value, found && value != ""
}

// ResolveLevelName picks the threshold name to parse, in order of
// precedence: PRILOG_LEVEL, the level in cfg (which may be nil), and
// buildDefault. The name is returned as found; it is not validated here.
func ResolveLevelName(cfg *Config, buildDefault string) string {
	if name, ok := LevelFromEnv(); ok {
		return name
	}
	if cfg != nil && cfg.Level != "" {
		return cfg.Level
	}
	return buildDefault
}
