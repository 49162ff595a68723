package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// ProxyConfig describes a forward proxy. Credentials are only sent when
// Username is non-blank.
type ProxyConfig struct {
	// URL of the proxy, e.g. "http://proxy.internal:3128". A bare
	// "host:port" is treated as an http proxy.
	URL string

	Username string
	Password string
}

// ClientConfig holds configuration for NewClient.
type ClientConfig struct {
	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// Proxy routes every request through a forward proxy when set.
	Proxy *ProxyConfig

	// Base is cloned for the client's transport. Defaults to
	// http.DefaultTransport.
	Base *http.Transport
}

// NewClient creates the HTTP client used for notifications. Proxy settings
// are fixed at construction; the returned client is safe for concurrent use.
func NewClient(cfg ClientConfig) (*http.Client, error) {
	base := cfg.Base
	if base == nil {
		base = http.DefaultTransport.(*http.Transport)
	}
	rt := base.Clone()

	if cfg.Proxy != nil && strings.TrimSpace(cfg.Proxy.URL) != "" {
		proxyURL, err := ProxyURL(*cfg.Proxy)
		if err != nil {
			return nil, err
		}
		rt.Proxy = http.ProxyURL(proxyURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{Transport: rt, Timeout: timeout}, nil
}

// ProxyURL parses the proxy address and attaches basic-auth credentials.
// The net/http transport turns URL credentials into a Proxy-Authorization
// header for both plain requests and CONNECT tunnels.
func ProxyURL(cfg ProxyConfig) (*url.URL, error) {
	raw := strings.TrimSpace(cfg.URL)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse proxy url: missing host in %q", cfg.URL)
	}

	if strings.TrimSpace(cfg.Username) != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	} else {
		u.User = nil
	}
	return u, nil
}
