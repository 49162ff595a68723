// Package errors provides the user-facing errors of the buildnotify CLI.
//
// CLIError carries a message, optional details and an actionable suggestion,
// and unwraps to one of the sentinels (ErrNotAuthenticated, ErrNoToken,
// ErrPermissionDenied, ErrConnectionFailed, ErrRateLimited,
// ErrNotificationFailed, ErrMissingMessage, ErrNotInGitRepo,
// ErrInvalidConfig).
//
//	id, err := dispatcher.CheckToken(ctx)
//	if err != nil {
//	    return errors.WrapError(err, "https://slack.com/api/")
//	}
//
// Wording is customizable through ErrorMessenger and WithMessenger.
package errors
