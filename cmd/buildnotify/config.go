package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/buildnotify/config"
	clierrors "github.com/randalmurphal/buildnotify/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change configuration",
		Long: `Show and change buildnotify configuration.

Keys:
  ` + strings.Join(config.Keys, "\n  ") + `

Values set here go to ~/.config/buildnotify/config.yaml, or with --local to
.buildnotify.yaml in the git root (non-secret keys only).`,
	}

	cmd.AddCommand(newConfigListCmd(a))
	cmd.AddCommand(newConfigGetCmd(a))
	cmd.AddCommand(newConfigSetCmd(a))
	cmd.AddCommand(newConfigUnsetCmd(a))

	return cmd
}

type configEntry struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source config.Source `json:"source"`
}

func newConfigListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every key with its value and source",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			resolved := a.resolver().Resolve()

			entries := make([]configEntry, 0, len(config.Keys))
			for _, key := range config.Keys {
				value, source := resolved.GetWithSource(key)
				entries = append(entries, configEntry{
					Key:    key,
					Value:  config.Display(key, value),
					Source: source,
				})
			}

			if a.jsonOutput {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Key, e.Value, e.Source)
			}
			return w.Flush()
		},
	}
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the resolved value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			key := args[0]
			if !config.IsKnownKey(key) {
				return unknownKeyError(key)
			}
			fmt.Fprintln(a.out, a.resolver().Resolve().Get(key))
			return nil
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a key in the global or local config",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !config.IsKnownKey(key) {
				return unknownKeyError(key)
			}

			if local {
				root := a.resolver().GitRoot()
				if root == "" {
					return clierrors.NewNotInGitRepoError()
				}
				if err := a.saveConfig.SaveLocal(root, key, value); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Set %s in local config\n", key)
				return nil
			}

			if err := a.saveConfig.SaveGlobal(key, value); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Set %s in global config\n", key)
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Write to .buildnotify.yaml in the git root")
	return cmd
}

func newConfigUnsetCmd(a *app) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a key from the global or local config",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			key := args[0]
			if local {
				root := a.resolver().GitRoot()
				if root == "" {
					return clierrors.NewNotInGitRepoError()
				}
				if err := a.saveConfig.DeleteLocalKey(root, key); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Removed %s from local config\n", key)
				return nil
			}

			if err := a.saveConfig.DeleteGlobalKey(key); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Removed %s from global config\n", key)
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Remove from .buildnotify.yaml in the git root")
	return cmd
}

func unknownKeyError(key string) error {
	return &clierrors.CLIError{
		Err:        clierrors.ErrInvalidConfig,
		Message:    fmt.Sprintf("Unknown config key %q.", key),
		Suggestion: "Valid keys: " + strings.Join(config.Keys, ", "),
	}
}
