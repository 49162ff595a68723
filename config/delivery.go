package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/randalmurphal/buildnotify/auth"
	"github.com/randalmurphal/buildnotify/notify"
	"github.com/randalmurphal/buildnotify/transport"
)

// Settings is the typed view of a resolved configuration.
type Settings struct {
	Delivery        notify.DeliveryConfig
	Client          transport.ClientConfig
	Color           string
	CredentialsFile string
}

// Delivery maps resolved keys onto the dispatcher and transport settings.
func Delivery(c *Resolved) (Settings, error) {
	botUser, err := parseBool(KeyBotUser, c.Get(KeyBotUser))
	if err != nil {
		return Settings{}, err
	}

	timeout := transport.DefaultTimeout
	if raw := strings.TrimSpace(c.Get(KeyTimeout)); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return Settings{}, fmt.Errorf("invalid %s %q: %w", KeyTimeout, raw, err)
		}
		if timeout <= 0 {
			return Settings{}, fmt.Errorf("invalid %s %q: must be positive", KeyTimeout, raw)
		}
	}

	s := Settings{
		Delivery: notify.DeliveryConfig{
			BaseURL:           c.Get(KeyBaseURL),
			TeamDomain:        c.Get(KeyTeamDomain),
			Token:             c.Get(KeyToken),
			TokenCredentialID: c.Get(KeyTokenCredentialID),
			BotUser:           botUser,
			Rooms:             notify.ParseRooms(c.Get(KeyRoom)),
		},
		Client:          transport.ClientConfig{Timeout: timeout},
		Color:           c.Get(KeyColor),
		CredentialsFile: c.Get(KeyCredentialsFile),
	}

	if proxy := c.Get(KeyProxyURL); proxy != "" {
		s.Client.Proxy = &transport.ProxyConfig{
			URL:      proxy,
			Username: c.Get(KeyProxyUser),
			Password: c.Get(KeyProxyPassword),
		}
	}

	return s, nil
}

// Credentials returns the resolver consulted for token credential ids:
// BUILDNOTIFY_CREDENTIAL_* variables first, then the credentials file.
func (s Settings) Credentials() auth.Resolver {
	chain := auth.ChainResolver{auth.NewEnvResolver(CredentialEnvPrefix)}
	if s.CredentialsFile != "" {
		chain = append(chain, auth.NewFileResolver(s.CredentialsFile))
	}
	return chain
}

func parseBool(key, raw string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
