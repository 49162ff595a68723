package config

import (
	"strings"

	"github.com/randalmurphal/buildnotify/notify"
)

// Application file and environment names.
const (
	AppName             = "buildnotify"
	EnvPrefix           = "BUILDNOTIFY_"
	LocalConfigName     = ".buildnotify.yaml"
	CredentialEnvPrefix = "BUILDNOTIFY_CREDENTIAL_"
)

// Configuration keys.
const (
	KeyBaseURL           = "base_url"
	KeyTeamDomain        = "team_domain"
	KeyToken             = "token"
	KeyTokenCredentialID = "token_credential_id"
	KeyBotUser           = "bot_user"
	KeyRoom              = "room"
	KeyColor             = "color"
	KeyProxyURL          = "proxy_url"
	KeyProxyUser         = "proxy_user"
	KeyProxyPassword     = "proxy_password"
	KeyTimeout           = "timeout"
	KeyCredentialsFile   = "credentials_file"
)

// Keys lists every configuration key in display order.
var Keys = []string{
	KeyBaseURL,
	KeyTeamDomain,
	KeyToken,
	KeyTokenCredentialID,
	KeyBotUser,
	KeyRoom,
	KeyColor,
	KeyProxyURL,
	KeyProxyUser,
	KeyProxyPassword,
	KeyTimeout,
	KeyCredentialsFile,
}

// LocalKeys lists the keys allowed in the repository-local file. The local
// file is usually committed, so secrets and machine paths stay global.
var LocalKeys = []string{
	KeyBaseURL,
	KeyTeamDomain,
	KeyTokenCredentialID,
	KeyBotUser,
	KeyRoom,
	KeyColor,
	KeyTimeout,
}

// Defaults returns the built-in value of every key. Keys without a
// meaningful default are present with an empty value so that environment
// overrides are picked up for them.
func Defaults() map[string]string {
	defaults := make(map[string]string, len(Keys))
	for _, k := range Keys {
		defaults[k] = ""
	}
	defaults[KeyBotUser] = "false"
	defaults[KeyTimeout] = "30s"
	defaults[KeyColor] = notify.DefaultColor
	return defaults
}

// IsKnownKey reports whether key is a configuration key.
func IsKnownKey(key string) bool {
	return contains(Keys, key)
}

// IsSecret reports whether values of key must not be displayed.
func IsSecret(key string) bool {
	return key == KeyToken || key == KeyProxyPassword
}

// Display renders a value for output, masking secrets.
func Display(key, value string) string {
	if value == "" || !IsSecret(key) {
		return value
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-4)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
