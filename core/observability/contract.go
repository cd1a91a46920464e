package observability

import (
	"strings"
)

// Span attribute keys.
const (
	AttrReportIndex  = "report.index"
	AttrReportLabel  = "report.label"
	AttrResultStatus = "report.result.status"
	AttrCacheHit     = "report.cache.hit"
	AttrHTTPRoute    = "http.route"
)

var secretKeySubstrings = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"api_key",
	"apikey",
	"authorization",
	"connection_string",
	"dsn",
	"redis_url",
}

// RedactAttributeValue masks values for known-sensitive attribute keys.
func RedactAttributeValue(key string, value string) string {
	lower := strings.ToLower(key)
	for _, needle := range secretKeySubstrings {
		if strings.Contains(lower, needle) {
			return "[REDACTED]"
		}
	}
	return value
}

// MaskConnectionString hides the password of a URL-style connection string.
func MaskConnectionString(connectionString string) string {
	schemeEnd := strings.Index(connectionString, "://")
	at := strings.LastIndex(connectionString, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return connectionString
	}
	userInfo := connectionString[schemeEnd+3 : at]
	user, _, hasPassword := strings.Cut(userInfo, ":")
	if !hasPassword {
		return connectionString
	}
	return connectionString[:schemeEnd+3] + user + ":****" + connectionString[at:]
}
