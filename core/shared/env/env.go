// Package env substitutes {{ env.NAME }} placeholders in configuration values.
package env

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var envVarPattern = regexp.MustCompile(`\{\{\s*env\.(\w+)\s*\}\}`)

// Substitute replaces every {{ env.NAME }} placeholder in value with the
// variable's value. A referenced variable that is not set is an error; a set
// but empty variable substitutes as "".
func Substitute(value string) (string, error) {
	result := value
	seen := make(map[string]bool)

	for _, match := range envVarPattern.FindAllStringSubmatch(value, -1) {
		placeholder, name := match[0], match[1]
		if seen[placeholder] {
			continue
		}
		seen[placeholder] = true

		envValue, exists := os.LookupEnv(name)
		if !exists {
			return "", fmt.Errorf("environment variable '%s' not found", name)
		}
		result = strings.ReplaceAll(result, placeholder, envValue)
	}

	return result, nil
}
