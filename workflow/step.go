package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	clierrors "github.com/randalmurphal/buildnotify/errors"
	"github.com/randalmurphal/buildnotify/notify"
)

// SendStep is one notification request from a pipeline. Empty strings mean
// "use the global value".
type SendStep struct {
	Message           string
	Color             string
	Token             string
	TokenCredentialID string
	BotUser           bool
	Channel           string
	BaseURL           string
	TeamDomain        string
	FailOnError       bool
	ThreadTS          string
	ReplyBroadcast    bool
}

// Resolve merges the step over the global delivery configuration.
//
// BaseURL, TeamDomain, TokenCredentialID and Channel fall back to the global
// value individually. Token and BotUser travel together: a step token brings
// the step's BotUser, otherwise both come from global.
func (s SendStep) Resolve(global notify.DeliveryConfig) notify.DeliveryConfig {
	cfg := notify.DeliveryConfig{
		BaseURL:           firstNonEmpty(s.BaseURL, global.BaseURL),
		TeamDomain:        firstNonEmpty(s.TeamDomain, global.TeamDomain),
		TokenCredentialID: firstNonEmpty(s.TokenCredentialID, global.TokenCredentialID),
		Token:             global.Token,
		BotUser:           global.BotUser,
		Rooms:             global.Rooms,
	}
	if s.Token != "" {
		cfg.Token = s.Token
		cfg.BotUser = s.BotUser
	}
	if s.Channel != "" {
		cfg.Rooms = notify.ParseRooms(s.Channel)
	}
	if cfg.BaseURL != "" && !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	return cfg
}

// Request returns the notification carried by the step. The color is
// forwarded as given, including empty.
func (s SendStep) Request() notify.Request {
	return notify.Request{
		Message:        s.Message,
		Color:          s.Color,
		ThreadTS:       s.ThreadTS,
		ReplyBroadcast: s.ReplyBroadcast,
	}
}

// StepRunner executes send steps against shared global settings.
type StepRunner struct {
	Global notify.DeliveryConfig

	// Options are passed to every dispatcher (transport, credentials).
	Options []notify.Option

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Run sends the step and returns its result map: success, channel, threadTs
// and ts on success, an empty map on failure. A failure is an error only when
// the step sets FailOnError.
func (r *StepRunner) Run(ctx context.Context, step SendStep) (map[string]string, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := step.Resolve(r.Global)
	opts := append([]notify.Option{notify.WithLogger(logger)}, r.Options...)
	d := notify.New(cfg, opts...)

	logger.Debug("running send step",
		"team", cfg.TeamDomain,
		"rooms", d.Config().Rooms,
		"mode", d.Mode().String(),
		"color", step.Color,
		"thread_ts", step.ThreadTS,
	)

	out := d.Send(ctx, step.Request())
	if !out.Success {
		if step.FailOnError {
			return out.Map(), fmt.Errorf("%w: rooms %q", clierrors.ErrNotificationFailed, d.Config().Rooms)
		}
		logger.Error("notification failed, continuing", "rooms", d.Config().Rooms)
	}
	return out.Map(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
