package config

// Source indicates where a configuration value came from.
type Source string

// Configuration sources, lowest priority first.
const (
	SourceDefault Source = "default"

	// SourceGlobal is ~/.config/buildnotify/config.yaml.
	SourceGlobal Source = "global"

	// SourceLocal is .buildnotify.yaml in the git root.
	SourceLocal Source = "local"

	// SourceEnv is a BUILDNOTIFY_* environment variable.
	SourceEnv Source = "env"

	SourceFlag Source = "flag"
)
