package config

import (
	"os"
	"regexp"
)

// envVarPattern matches ${VAR_NAME} patterns in config values
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// HasPlaceholder reports whether a value still contains a ${VAR} reference.
func HasPlaceholder(value string) bool {
	return envVarPattern.MatchString(value)
}

// ExpandEnv substitutes ${VAR} and $VAR references that are set in the
// environment. Unset references are left in place so callers can report them.
func ExpandEnv(value string) string {
	return os.Expand(value, func(name string) string {
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return "${" + name + "}"
	})
}
