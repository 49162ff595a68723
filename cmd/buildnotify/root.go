package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/buildnotify/config"
	clierrors "github.com/randalmurphal/buildnotify/errors"
	"github.com/randalmurphal/buildnotify/notify"
	"github.com/randalmurphal/buildnotify/transport"
)

const version = "0.3.0"

// app holds the state shared by all commands.
type app struct {
	out    io.Writer
	errOut io.Writer

	verbose    bool
	jsonOutput bool

	resolverConfig config.ResolverConfig
	saveConfig     config.SaveConfig

	// newClient builds the HTTP transport; replaced in tests.
	newClient func(transport.ClientConfig) (notify.HTTPClient, error)

	// apiURL overrides the Web API base used by check; empty uses the default.
	apiURL string
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		out:            out,
		errOut:         errOut,
		resolverConfig: config.DefaultResolverConfig(),
		saveConfig:     config.DefaultSaveConfig(),
		newClient: func(cfg transport.ClientConfig) (notify.HTTPClient, error) {
			return transport.NewClient(cfg)
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "buildnotify",
		Short: "Post build notifications to chat rooms",
		Long: `buildnotify posts build notifications to one or more chat rooms, either
through an incoming webhook or as a bot user.

Settings come from flags, BUILDNOTIFY_* environment variables,
.buildnotify.yaml in the git root and ~/.config/buildnotify/config.yaml.

Examples:
  buildnotify send "Build #42 passed" --color good --channel "#builds"
  buildnotify send "Deploy finished" --thread-ts 1482960137.003543
  buildnotify check
  buildnotify config set team_domain acme`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log requests and responses")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(newSendCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newConfigCmd(a))

	return root
}

// logger writes to stderr; debug with --verbose, warnings otherwise.
func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
}

func (a *app) resolver() *config.Resolver {
	cfg := a.resolverConfig
	cfg.Logger = a.logger()
	return config.NewResolver(cfg)
}

// dispatcher resolves settings, with flag overrides, into a ready dispatcher.
func (a *app) dispatcher(flags map[string]string) (*notify.Dispatcher, config.Settings, error) {
	settings, err := config.Delivery(a.resolver().ResolveWithFlags(flags))
	if err != nil {
		return nil, config.Settings{}, clierrors.NewInvalidConfigError(err)
	}

	client, err := a.newClient(settings.Client)
	if err != nil {
		return nil, config.Settings{}, clierrors.NewInvalidConfigError(err)
	}

	opts := []notify.Option{
		notify.WithHTTPClient(client),
		notify.WithCredentials(settings.Credentials()),
		notify.WithLogger(a.logger()),
	}
	if a.apiURL != "" {
		opts = append(opts, notify.WithAPIURL(a.apiURL))
	}
	return notify.New(settings.Delivery, opts...), settings, nil
}
