package errors

import (
	"errors"
	"strings"

	"github.com/randalmurphal/buildnotify/transport"
)

// Chat service error codes, as reported in the "error" field of a response.
var (
	authErrorCodes       = []string{"invalid_auth", "not_authed", "token_revoked", "token_expired", "account_inactive"}
	permissionErrorCodes = []string{"missing_scope", "not_in_channel", "restricted_action"}
)

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrNoToken) {
		return true
	}
	return isAuthError(err)
}

// IsPermissionError checks if an error is permission-related.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPermissionDenied) {
		return true
	}
	return isPermissionError(err)
}

// IsConnectionError checks if an error is connection-related.
// This includes TLS errors, timeouts, and network connectivity issues.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConnectionFailed) {
		return true
	}
	return classifyConnection(err) != notConnection
}

// IsNotificationError checks if a notification was not delivered.
func IsNotificationError(err error) bool {
	return err != nil && errors.Is(err, ErrNotificationFailed)
}

func isAuthError(err error) bool {
	if errors.Is(err, transport.ErrUnauthorized) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return containsAny(errStr, authErrorCodes) ||
		strings.Contains(errStr, "unauthorized")
}

func isPermissionError(err error) bool {
	if errors.Is(err, transport.ErrForbidden) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return containsAny(errStr, permissionErrorCodes) ||
		strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "forbidden")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isRateLimited(err error) bool {
	return errors.Is(err, transport.ErrRateLimited) ||
		strings.Contains(strings.ToLower(err.Error()), "ratelimited")
}
