package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ErrorMessenger provides the wording of CLI errors.
type ErrorMessenger interface {
	AuthErrorMessage() (message, suggestion string)
	PermissionDeniedMessage() (message, suggestion string)
	NoTokenMessage() (message, suggestion string)
	RateLimitedMessage() (message, suggestion string)

	// The url parameter is the endpoint that could not be reached.
	ConnectionErrorMessage(url string) (message, suggestion string)
	TLSErrorMessage(url string) (message, suggestion string)
	TimeoutErrorMessage(url string) (message, suggestion string)

	NotificationFailedMessage(failedRooms []string) (message, suggestion string)
	MissingMessageMessage() (message, suggestion string)
	NotInGitRepoMessage() (message, suggestion string)
}

// DefaultMessenger provides the buildnotify wording.
type DefaultMessenger struct{}

func (DefaultMessenger) AuthErrorMessage() (string, string) {
	return "The chat service rejected the token.",
		"Check the token or token_credential_id with 'buildnotify check'."
}

func (DefaultMessenger) PermissionDeniedMessage() (string, string) {
	return "The token is not allowed to post here.",
		"Invite the bot to the channel or grant the chat:write scope."
}

func (DefaultMessenger) NoTokenMessage() (string, string) {
	return "No token is configured.",
		"Set one with 'buildnotify config set token <token>' or BUILDNOTIFY_TOKEN."
}

func (DefaultMessenger) RateLimitedMessage() (string, string) {
	return "The chat service is rate limiting requests.",
		"Try again in a minute."
}

func (DefaultMessenger) ConnectionErrorMessage(url string) (string, string) {
	return fmt.Sprintf("Cannot connect to %s", url),
		"Check that:\n  - The team domain or base URL is correct\n  - The proxy settings are correct\n  - Your network connection is working"
}

func (DefaultMessenger) TLSErrorMessage(url string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", url),
		"Check the proxy and the system certificate store."
}

func (DefaultMessenger) TimeoutErrorMessage(url string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", url),
		"Raise the timeout with 'buildnotify config set timeout 60s' or try again."
}

func (DefaultMessenger) NotificationFailedMessage(failedRooms []string) (string, string) {
	if len(failedRooms) == 0 {
		return "The notification was not sent.",
			"Run with --verbose to see the chat service response."
	}
	return fmt.Sprintf("The notification was not delivered to %s.", strings.Join(quoteRooms(failedRooms), ", ")),
		"Run with --verbose to see the chat service response."
}

func (DefaultMessenger) MissingMessageMessage() (string, string) {
	return "No message text given.",
		"Pass the message as an argument: buildnotify send \"Build #42 passed\""
}

func (DefaultMessenger) NotInGitRepoMessage() (string, string) {
	return "Local config can only be changed inside a git repository.",
		"Run the command from the repository or drop --local to use the global config."
}

func quoteRooms(rooms []string) []string {
	quoted := make([]string, len(rooms))
	for i, r := range rooms {
		quoted[i] = fmt.Sprintf("%q", r)
	}
	return quoted
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

func newCLIError(sentinel error, msg, suggestion string) *CLIError {
	return &CLIError{Err: sentinel, Message: msg, Suggestion: suggestion}
}

// WrapAuthError wraps authentication and authorization failures with
// guidance. Other errors are returned unchanged.
func WrapAuthError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}
	messenger := getMessenger(opts)

	switch {
	case isPermissionError(err):
		msg, suggestion := messenger.PermissionDeniedMessage()
		return newCLIError(ErrPermissionDenied, msg, suggestion)
	case isAuthError(err):
		msg, suggestion := messenger.AuthErrorMessage()
		return newCLIError(ErrNotAuthenticated, msg, suggestion)
	case isRateLimited(err):
		msg, suggestion := messenger.RateLimitedMessage()
		return newCLIError(ErrRateLimited, msg, suggestion)
	}
	return err
}

type connectionKind int

const (
	notConnection connectionKind = iota
	unreachable
	tlsFailure
	timedOut
)

func classifyConnection(err error) connectionKind {
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "no such host"),
		strings.Contains(errStr, "network is unreachable"),
		strings.Contains(errStr, "proxyconnect"),
		strings.Contains(errStr, "dial tcp"):
		return unreachable
	case strings.Contains(errStr, "certificate"),
		strings.Contains(errStr, "tls"),
		strings.Contains(errStr, "x509"):
		return tlsFailure
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(errStr, "timeout"),
		strings.Contains(errStr, "deadline exceeded"):
		return timedOut
	}
	return notConnection
}

// WrapConnectionError wraps network failures with guidance naming url.
// Other errors are returned unchanged.
func WrapConnectionError(err error, url string, opts ...Option) error {
	if err == nil {
		return nil
	}
	messenger := getMessenger(opts)

	switch classifyConnection(err) {
	case unreachable:
		msg, suggestion := messenger.ConnectionErrorMessage(url)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	case tlsFailure:
		msg, suggestion := messenger.TLSErrorMessage(url)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	case timedOut:
		msg, suggestion := messenger.TimeoutErrorMessage(url)
		return newCLIError(ErrConnectionFailed, msg, suggestion)
	}
	return err
}

// WrapError applies WrapAuthError, then WrapConnectionError.
func WrapError(err error, url string, opts ...Option) error {
	if err == nil {
		return nil
	}
	if isPermissionError(err) || isAuthError(err) || isRateLimited(err) {
		return WrapAuthError(err, opts...)
	}
	return WrapConnectionError(err, url, opts...)
}

// NewNotificationFailedError reports rooms that were not notified. cause,
// when non-nil, is shown as details.
func NewNotificationFailedError(failedRooms []string, cause error, opts ...Option) error {
	msg, suggestion := getMessenger(opts).NotificationFailedMessage(failedRooms)
	e := newCLIError(ErrNotificationFailed, msg, suggestion)
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// NewNoTokenError creates an error for a missing token.
func NewNoTokenError(opts ...Option) error {
	msg, suggestion := getMessenger(opts).NoTokenMessage()
	return newCLIError(ErrNoToken, msg, suggestion)
}

// NewMissingMessageError creates an error for a send without text.
func NewMissingMessageError(opts ...Option) error {
	msg, suggestion := getMessenger(opts).MissingMessageMessage()
	return newCLIError(ErrMissingMessage, msg, suggestion)
}

// NewNotInGitRepoError creates an error for local config operations outside
// a repository.
func NewNotInGitRepoError(opts ...Option) error {
	msg, suggestion := getMessenger(opts).NotInGitRepoMessage()
	return newCLIError(ErrNotInGitRepo, msg, suggestion)
}

// NewInvalidConfigError wraps a configuration problem.
func NewInvalidConfigError(err error) error {
	return &CLIError{
		Err:        ErrInvalidConfig,
		Message:    "The configuration is invalid.",
		Details:    err.Error(),
		Suggestion: "Inspect it with 'buildnotify config list'.",
	}
}
