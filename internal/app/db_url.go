package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes when the config
// toggle asks for it. Connection strings that already carry the parameter
// keep their explicit value, and unparsable input passes through untouched.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}
	if parsed.Query().Has("disable_prepared_binary_result") {
		return raw
	}

	query := parsed.Query()
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// dbNameFromURL pulls the database name out of either a postgres:// URL or a
// key=value DSN, for log and error messages. Empty when it cannot tell.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if parsed, err := url.Parse(trimmed); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	return dsnValue(trimmed, "dbname")
}

func dsnValue(dsn, key string) string {
	prefix := key + "="
	for _, token := range strings.Fields(dsn) {
		if !strings.HasPrefix(token, prefix) {
			continue
		}
		if value := strings.Trim(token[len(prefix):], `"' `); value != "" {
			return value
		}
	}

	return ""
}
