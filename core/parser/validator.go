package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hyperterse/reportdeck/core/config"
	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/logger"
)

var (
	// log is the logger instance for the validator package
	log = logger.New("parser")

	validate = validator.New()

	// name must start with a letter, lowercase only (lower-snake-case or lower-kebab-case)
	namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// ValidationErrors represents a collection of validation errors
type ValidationErrors struct {
	Errors []string
}

// Error implements the error interface
// Returns a simple message since detailed errors are already logged
func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed with %d error(s)", len(ve.Errors))
}

// Validate checks a parsed config after environment substitution.
func Validate(cfg *config.Config) error {
	log.Debugf("Validating configuration")
	var problems []string

	if cfg.Name != "" && !namePattern.MatchString(cfg.Name) {
		problems = append(problems, fmt.Sprintf("name '%s' is invalid. Must start with a letter and be in lower-snake-case or lower-kebab-case (lowercase letters, numbers, hyphens, and underscores only)", cfg.Name))
	}

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fieldErr := range fieldErrs {
			problems = append(problems, describeFieldError(fieldErr))
		}
	}

	if cfg.Database.ConnectionString != "" && cfg.Database.EffectiveConnector() == "" {
		problems = append(problems, "database.connector is required when it cannot be inferred from connection_string")
	}

	if cfg.Server.RateLimit.Enabled() && cfg.Server.RateLimit.Window < 0 {
		problems = append(problems, "server.rate_limit.window must not be negative")
	}

	return report(problems)
}

// ValidateCatalog checks every report has a label and a query. Duplicate
// query text is allowed: such reports share one cached result.
func ValidateCatalog(defs []domain.ReportDefinition) error {
	var problems []string

	if len(defs) == 0 {
		problems = append(problems, "reports is required and should have at least one entry")
	}

	for i, def := range defs {
		if err := def.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("reports[%d] - %v", i, err))
		}
	}

	return report(problems)
}

func report(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	log.PrintValidationErrors(problems)
	return &ValidationErrors{Errors: problems}
}

// describeFieldError renders a validator error using the YAML key path.
func describeFieldError(fe validator.FieldError) string {
	path := yamlPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "oneof":
		return fmt.Sprintf("%s '%v' is invalid. Must be one of: %s", path, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "numeric":
		return fmt.Sprintf("%s '%v' must be numeric", path, fe.Value())
	case "url":
		return fmt.Sprintf("%s '%v' must be a URL", path, fe.Value())
	case "min", "max":
		return fmt.Sprintf("%s '%v' fails %s=%s", path, fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", path, fe.Tag())
	}
}

var yamlKeys = map[string]string{
	"Config":           "",
	"Database":         "database",
	"Connector":        "connector",
	"ConnectionString": "connection_string",
	"Server":           "server",
	"Port":             "port",
	"LogLevel":         "log_level",
	"RateLimit":        "rate_limit",
	"RedisURL":         "redis_url",
	"Requests":         "requests",
}

func yamlPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		key, ok := yamlKeys[part]
		if !ok {
			key = strings.ToLower(part)
		}
		if key != "" {
			out = append(out, key)
		}
	}
	return strings.Join(out, ".")
}
