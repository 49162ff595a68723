package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Resolver looks up the secret stored under a credential reference.
//
// Lookup returns ErrCredentialNotFound (possibly wrapped) when nothing is
// stored under id. Any other error means the store itself failed.
type Resolver interface {
	Lookup(ctx context.Context, id string) (string, error)
}

// =============================================================================
// StaticResolver
// =============================================================================

// StaticResolver serves secrets from an in-memory map.
type StaticResolver map[string]string

// Lookup implements Resolver.
func (r StaticResolver) Lookup(_ context.Context, id string) (string, error) {
	if secret, ok := r[id]; ok {
		return secret, nil
	}
	return "", fmt.Errorf("%w: %s", ErrCredentialNotFound, id)
}

// =============================================================================
// EnvResolver
// =============================================================================

// EnvResolver reads secrets from environment variables. The variable name is
// Prefix followed by the reference upper-cased, with every character that is
// not a letter or digit replaced by an underscore.
type EnvResolver struct {
	Prefix string

	// Getenv defaults to os.LookupEnv.
	Getenv func(key string) (string, bool)
}

// NewEnvResolver creates an environment resolver with the given prefix.
func NewEnvResolver(prefix string) *EnvResolver {
	return &EnvResolver{Prefix: prefix, Getenv: os.LookupEnv}
}

// VarName returns the environment variable consulted for id.
func (r *EnvResolver) VarName(id string) string {
	var sb strings.Builder
	sb.WriteString(r.Prefix)
	for _, c := range strings.ToUpper(id) {
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			sb.WriteRune(c)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Lookup implements Resolver.
func (r *EnvResolver) Lookup(_ context.Context, id string) (string, error) {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.LookupEnv
	}
	if secret, ok := getenv(r.VarName(id)); ok && secret != "" {
		return secret, nil
	}
	return "", fmt.Errorf("%w: %s", ErrCredentialNotFound, id)
}

// =============================================================================
// FileResolver
// =============================================================================

// FileResolver reads secrets from a YAML file of the form
//
//	slack-ci-token: xoxb-...
//	slack-release-token: T000/B000/XXXX
//
// The file is read on every lookup so rotated secrets are picked up without a
// restart. A missing file holds no credentials.
type FileResolver struct {
	Path string
}

// NewFileResolver creates a resolver for path. A leading "~/" is expanded to
// the user's home directory.
func NewFileResolver(path string) *FileResolver {
	return &FileResolver{Path: expandHome(path)}
}

// Lookup implements Resolver.
func (r *FileResolver) Lookup(_ context.Context, id string) (string, error) {
	if r.Path == "" {
		return "", fmt.Errorf("%w: %s", ErrCredentialNotFound, id)
	}

	data, err := os.ReadFile(r.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrCredentialNotFound, id)
		}
		return "", fmt.Errorf("read credentials %s: %w", r.Path, err)
	}

	var secrets map[string]string
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrInvalidCredentialsFile, r.Path, err)
	}

	if secret, ok := secrets[id]; ok && secret != "" {
		return secret, nil
	}
	return "", fmt.Errorf("%w: %s", ErrCredentialNotFound, id)
}

// =============================================================================
// ChainResolver
// =============================================================================

// ChainResolver tries each resolver in order and returns the first hit.
// Store failures are remembered; if no resolver has the credential, the last
// store failure is returned, otherwise ErrCredentialNotFound.
type ChainResolver []Resolver

// Lookup implements Resolver.
func (c ChainResolver) Lookup(ctx context.Context, id string) (string, error) {
	var lastErr error
	for _, r := range c {
		if r == nil {
			continue
		}
		secret, err := r.Lookup(ctx, id)
		if err == nil {
			return secret, nil
		}
		if !errors.Is(err, ErrCredentialNotFound) {
			lastErr = err
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", fmt.Errorf("%w: %s", ErrCredentialNotFound, id)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
