package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/buildnotify/config"
	clierrors "github.com/randalmurphal/buildnotify/errors"
	"github.com/randalmurphal/buildnotify/notify"
)

func newCheckCmd(a *app) *cobra.Command {
	var token, credentialID string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the bot token is accepted",
		Long: `Verify the configured bot token with the Web API auth.test method and
print the team and user it belongs to.

Webhook integration tokens are not Web API tokens and are usually rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, _, err := a.dispatcher(map[string]string{
				config.KeyToken:             token,
				config.KeyTokenCredentialID: credentialID,
			})
			if err != nil {
				return err
			}

			id, err := d.CheckToken(cmd.Context())
			if err != nil {
				if errors.Is(err, notify.ErrNoToken) {
					return clierrors.NewNoTokenError()
				}
				return clierrors.WrapError(err, apiURLOrDefault(a.apiURL))
			}

			if a.jsonOutput {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(id)
			}
			fmt.Fprintf(a.out, "Token OK\n  Team: %s (%s)\n  User: %s (%s)\n", id.Team, id.TeamID, id.User, id.UserID)
			if id.BotID != "" {
				fmt.Fprintf(a.out, "  Bot:  %s\n", id.BotID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Bot token to check instead of the configured one")
	cmd.Flags().StringVar(&credentialID, "token-credential-id", "", "Credential holding the token")

	return cmd
}

func apiURLOrDefault(u string) string {
	if u == "" {
		return notify.DefaultAPIBase
	}
	return u
}
