package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/buildnotify/config"
	clierrors "github.com/randalmurphal/buildnotify/errors"
	"github.com/randalmurphal/buildnotify/notify"
)

type sendOptions struct {
	color             string
	channel           string
	threadTS          string
	replyBroadcast    bool
	token             string
	tokenCredentialID string
	botUser           bool
	baseURL           string
	teamDomain        string
	failOnError       bool
	dryRun            bool
}

// sendResult is the --json output of send.
type sendResult struct {
	notify.Outcome
	PublishID string       `json:"publishId,omitempty"`
	Rooms     []roomResult `json:"rooms,omitempty"`
	DryRun    bool         `json:"dryRun,omitempty"`
}

type roomResult struct {
	Room    string `json:"room"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func newSendCmd(a *app) *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a notification to the configured rooms",
		Long: `Send a notification to every configured room.

A failed notification is reported but does not fail the command unless
--fail-on-error is set. A threaded reply (--thread-ts) can only target a
single room.

Examples:
  buildnotify send "Build #42 passed" --color good
  buildnotify send "Tests flaky" --channel "#qa,#builds" --color warning
  buildnotify send "Deployed" --thread-ts 1482960137.003543 --reply-broadcast
  buildnotify send "Release cut" --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSend(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.color, "color", "", "Attachment color: good, warning (default), danger or a hex value")
	f.StringVar(&opts.channel, "channel", "", "Rooms to notify, separated by commas, semicolons or spaces")
	f.StringVar(&opts.threadTS, "thread-ts", "", "Reply in the thread of this message timestamp")
	f.BoolVar(&opts.replyBroadcast, "reply-broadcast", false, "Also show the threaded reply in the channel")
	f.StringVar(&opts.token, "token", "", "Integration or bot token")
	f.StringVar(&opts.tokenCredentialID, "token-credential-id", "", "Credential holding the token")
	f.BoolVar(&opts.botUser, "bot-user", false, "Post as the bot user through the Web API")
	f.StringVar(&opts.baseURL, "base-url", "", "Webhook base URL; the token is appended")
	f.StringVar(&opts.teamDomain, "team-domain", "", "Team subdomain")
	f.BoolVar(&opts.failOnError, "fail-on-error", false, "Exit non-zero when the notification fails")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Log the notification instead of sending it")

	return cmd
}

func (a *app) runSend(cmd *cobra.Command, args []string, opts *sendOptions) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return clierrors.NewMissingMessageError()
	}

	flags := map[string]string{
		config.KeyRoom:              opts.channel,
		config.KeyToken:             opts.token,
		config.KeyTokenCredentialID: opts.tokenCredentialID,
		config.KeyBaseURL:           opts.baseURL,
		config.KeyTeamDomain:        opts.teamDomain,
		config.KeyColor:             opts.color,
	}
	if cmd.Flags().Changed("bot-user") {
		flags[config.KeyBotUser] = strconv.FormatBool(opts.botUser)
	}

	d, settings, err := a.dispatcher(flags)
	if err != nil {
		return err
	}

	req := notify.Request{
		Message:        args[0],
		Color:          settings.Color,
		ThreadTS:       opts.threadTS,
		ReplyBroadcast: opts.replyBroadcast,
	}

	if opts.dryRun {
		logger := slog.New(slog.NewTextHandler(a.errOut, nil))
		out := notify.NewLogPublisher(logger, d.Config().Rooms).Send(cmd.Context(), req)
		return a.printSend(sendResult{Outcome: out, DryRun: true})
	}

	cfg := d.Config()
	if cfg.Token == "" && cfg.TokenCredentialID == "" && cfg.BaseURL == "" {
		return clierrors.NewNoTokenError()
	}

	report := d.SendDetailed(cmd.Context(), req)
	result := sendResult{Outcome: report.Outcome, PublishID: report.PublishID}
	for _, rr := range report.Rooms {
		r := roomResult{Room: rr.Room, Success: rr.Err == nil}
		if rr.Err != nil {
			r.Error = rr.Err.Error()
		}
		result.Rooms = append(result.Rooms, r)
	}
	if err := a.printSend(result); err != nil {
		return err
	}

	if report.Outcome.Success {
		return nil
	}

	var failed []string
	cause := report.Err
	for _, rr := range report.Failed() {
		failed = append(failed, rr.Room)
		cause = rr.Err
	}
	if opts.failOnError {
		return clierrors.NewNotificationFailedError(failed, cause)
	}
	fmt.Fprintln(a.errOut, "Warning: "+clierrors.NewNotificationFailedError(failed, cause).Error())
	return nil
}

func (a *app) printSend(r sendResult) error {
	if a.jsonOutput {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	switch {
	case r.DryRun:
		fmt.Fprintln(a.out, "Dry run: notification logged, nothing sent")
	case r.Success:
		fmt.Fprintf(a.out, "Sent to %s (ts %s)\n", displayOr(r.Channel, "room"), displayOr(r.TS, "unknown"))
		if r.ThreadTS != "" {
			fmt.Fprintf(a.out, "Thread: %s\n", r.ThreadTS)
		}
	default:
		for _, room := range r.Rooms {
			mark := "✓"
			if !room.Success {
				mark = "✗"
			}
			fmt.Fprintf(a.out, "  %s %s\n", mark, displayOr(room.Room, `""`))
		}
	}
	return nil
}

func displayOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
