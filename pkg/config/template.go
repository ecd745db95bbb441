package config

import (
	"os"
	"regexp"
	"strings"
)

// templatePattern matches {{VARIABLE_NAME}} patterns
var templatePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// SubstituteTemplate replaces {{VAR_NAME}} with the environment value.
// Unset or empty variables are left as written.
func SubstituteTemplate(text string) string {
	return templatePattern.ReplaceAllStringFunc(text, func(match string) string {
		varName := strings.TrimSpace(match[2 : len(match)-2])

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match
	})
}
