package errors

import "errors"

// Sentinel errors with actionable guidance in the CLI.
var (
	// ErrNotAuthenticated indicates the chat service rejected the token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoToken indicates neither a token nor a token credential is configured.
	ErrNoToken = errors.New("no token configured")

	// ErrPermissionDenied indicates the token lacks a required scope.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConnectionFailed indicates the chat service or proxy is unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrRateLimited indicates the chat service throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotificationFailed indicates at least one room was not notified.
	ErrNotificationFailed = errors.New("notification failed")

	// ErrMissingMessage indicates a send without message text.
	ErrMissingMessage = errors.New("message is required")

	// ErrNotInGitRepo indicates a local config operation outside a repository.
	ErrNotInGitRepo = errors.New("not in a git repository")

	// ErrInvalidConfig indicates a configuration value could not be used.
	ErrInvalidConfig = errors.New("invalid configuration")
)
