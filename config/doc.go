// Package config resolves buildnotify settings from layered sources.
//
// Precedence, highest first:
//  1. Command-line flags (ResolveWithFlags)
//  2. BUILDNOTIFY_* environment variables
//  3. .buildnotify.yaml in the git root
//  4. ~/.config/buildnotify/config.yaml
//  5. Built-in defaults
//
// Every resolved value remembers its Source, which `buildnotify config list`
// prints next to the value.
//
//	r := config.NewResolver(config.DefaultResolverConfig())
//	settings, err := config.Delivery(r.Resolve())
//	if err != nil {
//	    return err
//	}
//	d := notify.New(settings.Delivery, notify.WithCredentials(settings.Credentials()))
//
// The local file is meant to be committed and accepts only non-secret keys
// (LocalKeys). Tokens and proxy passwords belong in the global file, the
// environment, or a credentials file referenced by credentials_file.
package config
