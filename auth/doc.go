// Package auth resolves the secrets used to authenticate chat notifications.
//
// A notification can carry a plain integration token and, optionally, a
// credential reference. When a reference is configured the Resolver is asked
// for the secret behind it; a miss is not an error and callers fall back to
// the plain token.
//
// Implementations:
//   - StaticResolver: in-memory map, mostly for tests and embedding
//   - EnvResolver: environment variables derived from the reference
//   - FileResolver: YAML file mapping references to secrets
//   - ChainResolver: first hit across several resolvers
//
// # Usage
//
//	creds := auth.ChainResolver{
//	    auth.NewEnvResolver("BUILDNOTIFY_CREDENTIAL_"),
//	    auth.NewFileResolver("~/.config/buildnotify/credentials.yaml"),
//	}
//	secret, err := creds.Lookup(ctx, "slack-ci-token")
//	if errors.Is(err, auth.ErrCredentialNotFound) {
//	    // use the plain token
//	}
//
// # Token Hashing
//
// Tokens are never logged. Use Fingerprint to identify one in diagnostics:
//
//	logger.Debug("posting", "token", auth.Fingerprint(token))
package auth
