package auth

import "errors"

// Credential errors.
var (
	// ErrCredentialNotFound indicates no secret is stored under the reference.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrInvalidCredentialsFile indicates the credentials file could not be parsed.
	ErrInvalidCredentialsFile = errors.New("invalid credentials file")
)
