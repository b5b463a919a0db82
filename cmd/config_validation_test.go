package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() map[string]any {
	return map[string]any{
		"settings.owner.email":             "owner@studyhub.example",
		"settings.content.project_id":      "studyhub-prod",
		"settings.content.credential_file": "firestore.json",
		"settings.storage.endpoint":        "s3.studyhub.example",
		"settings.storage.bucket":          "studyhub-files",
		"settings.storage.public_url":      "https://files.studyhub.example",
		"settings.db.accounts.addr":        "mongo.studyhub.example:27017",
		"settings.db.accounts.db":          "accounts",
		"settings.secret":                  "0123456789abcdef0123456789abcdef",
	}
}

func getterFor(cfg map[string]any) configGetter {
	return func(key string) any {
		v, ok := cfg[key]
		if !ok {
			return nil
		}
		return v
	}
}

func TestValidateStartupConfigValid(t *testing.T) {
	require.NoError(t, validateStartupConfigWithGetter(getterFor(validConfig())))
}

func TestValidateStartupConfigNilGetter(t *testing.T) {
	require.Error(t, validateStartupConfigWithGetter(nil))
}

func TestValidateStartupConfigOwnerEmail(t *testing.T) {
	cfg := validConfig()
	cfg["settings.owner.email"] = "not an email"
	err := validateStartupConfigWithGetter(getterFor(cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "settings.owner.email")

	// unset owner is allowed: nobody is owner then
	delete(cfg, "settings.owner.email")
	require.NoError(t, validateStartupConfigWithGetter(getterFor(cfg)))
}

func TestValidateStartupConfigStorageEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg["settings.storage.endpoint"] = "https://s3.studyhub.example"
	err := validateStartupConfigWithGetter(getterFor(cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "settings.storage.endpoint")
}

func TestValidateStartupConfigPublicURL(t *testing.T) {
	cfg := validConfig()
	cfg["settings.storage.public_url"] = "files.studyhub.example"
	err := validateStartupConfigWithGetter(getterFor(cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "settings.storage.public_url")
}

func TestValidateStartupConfigSecret(t *testing.T) {
	cfg := validConfig()
	cfg["settings.secret"] = "short"
	err := validateStartupConfigWithGetter(getterFor(cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "settings.secret")

	// 16 characters passes the old floor but not HS256's 32-byte minimum
	cfg["settings.secret"] = "0123456789abcdef"
	err = validateStartupConfigWithGetter(getterFor(cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "settings.secret")

	delete(cfg, "settings.secret")
	err = validateStartupConfigWithGetter(getterFor(cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "settings.secret")
}

func TestValidateStartupConfigMissingContentStore(t *testing.T) {
	cfg := validConfig()
	cfg["settings.content.project_id"] = "   "
	err := validateStartupConfigWithGetter(getterFor(cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "settings.content.project_id")
}
