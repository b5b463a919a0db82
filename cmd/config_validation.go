package cmd

import (
	"fmt"
	"net/url"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gjwt "github.com/Laisky/go-utils/v6/jwt"
)

// configGetter retrieves raw configuration values by dotted key path.
type configGetter func(key string) any

// validateStartupConfig validates startup configuration from the shared
// config source, returning an error when any configured value is
// malformed.
func validateStartupConfig() error {
	return validateStartupConfigWithGetter(func(key string) any {
		return gconfig.S.Get(key)
	})
}

func validateStartupConfigWithGetter(get configGetter) error {
	if get == nil {
		return errors.New("config getter is nil")
	}

	validationErrs := make([]string, 0)

	validateOwnerConfig(get, &validationErrs)
	validateContentStoreConfig(get, &validationErrs)
	validateStorageConfig(get, &validationErrs)
	validateAccountsDBConfig(get, &validationErrs)
	validateSessionConfig(get, &validationErrs)

	if len(validationErrs) == 0 {
		return nil
	}

	return errors.Errorf("invalid configuration:\n - %s", strings.Join(validationErrs, "\n - "))
}

// validateOwnerConfig checks the admin gate: the owner email must look
// like an email when set, missing means nobody is owner.
func validateOwnerConfig(get configGetter, errs *[]string) {
	validateOptionalEmail(get, "settings.owner.email", errs)
}

func validateContentStoreConfig(get configGetter, errs *[]string) {
	validateRequiredString(get, "settings.content.project_id", errs)
	validateRequiredString(get, "settings.content.credential_file", errs)
}

func validateStorageConfig(get configGetter, errs *[]string) {
	validateRequiredHost(get, "settings.storage.endpoint", errs)
	validateRequiredString(get, "settings.storage.bucket", errs)
	validateRequiredURL(get, "settings.storage.public_url", errs)
}

func validateAccountsDBConfig(get configGetter, errs *[]string) {
	validateRequiredHost(get, "settings.db.accounts.addr", errs)
	validateRequiredString(get, "settings.db.accounts.db", errs)
}

func validateSessionConfig(get configGetter, errs *[]string) {
	raw := get("settings.secret")
	if raw == nil {
		appendValidationError(errs, "settings.secret: required")
		return
	}
	// HS256 refuses keys below 32 bytes, catch that here instead of at
	// the first sign attempt
	secret, err := parseStrictString(raw)
	if err != nil || len(strings.TrimSpace(secret)) < gjwt.MinHS256SecretLen {
		appendValidationError(errs,
			"settings.secret: must be at least 32 characters")
	}
}

func validateRequiredString(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		appendValidationError(errs, "%s: required", key)
		return
	}
	parsed, err := parseStrictString(raw)
	if err != nil || strings.TrimSpace(parsed) == "" {
		appendValidationError(errs, "%s: must be a non-empty string", key)
	}
}

func validateRequiredHost(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		appendValidationError(errs, "%s: required", key)
		return
	}
	parsed, err := parseStrictString(raw)
	if err != nil || !isValidHost(parsed) {
		appendValidationError(errs, "%s: must be a host without scheme or path", key)
	}
}

func validateRequiredURL(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		appendValidationError(errs, "%s: required", key)
		return
	}
	parsed, err := parseStrictString(raw)
	if err != nil {
		appendValidationError(errs, "%s: must be a string", key)
		return
	}
	u, err := url.Parse(strings.TrimSpace(parsed))
	if err != nil || u.Scheme == "" || u.Host == "" {
		appendValidationError(errs, "%s: must be an absolute URL", key)
	}
}

func validateOptionalEmail(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}
	parsed, err := parseStrictString(raw)
	if err != nil {
		appendValidationError(errs, "%s: must be a string", key)
		return
	}
	trimmed := strings.TrimSpace(parsed)
	if trimmed == "" {
		return
	}
	if !strings.Contains(trimmed, "@") || strings.ContainsAny(trimmed, " \t") {
		appendValidationError(errs, "%s: must be an email address", key)
	}
}

// parseStrictString parses a value as a strict string.
func parseStrictString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", errors.Errorf("unsupported string type %T", value)
	}
}

// isValidHost validates a host string without scheme or path components.
func isValidHost(host string) bool {
	trimmed := strings.TrimSpace(host)
	if trimmed == "" {
		return false
	}
	if strings.Contains(trimmed, "://") || strings.Contains(trimmed, "/") {
		return false
	}
	return true
}

// appendValidationError appends a formatted validation error to the collector.
func appendValidationError(errs *[]string, format string, args ...any) {
	if errs == nil {
		return
	}
	*errs = append(*errs, fmt.Sprintf(format, args...))
}
