package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/randalmurphal/buildnotify/auth"
)

// Identity describes who a token authenticates as.
type Identity struct {
	URL    string `json:"url"`
	Team   string `json:"team"`
	User   string `json:"user"`
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`
	BotID  string `json:"botId,omitempty"`
}

// CheckToken resolves the dispatcher's token and verifies it with the Web
// API auth.test method. It is meaningful for bot tokens; webhook-only
// integration tokens are usually rejected.
func (d *Dispatcher) CheckToken(ctx context.Context) (*Identity, error) {
	logger := d.logger.With("publish_id", newPublishID())
	token := d.tokenToUse(ctx, logger)
	if token == "" {
		return nil, ErrNoToken
	}

	api := slack.New(token,
		slack.OptionHTTPClient(d.client),
		slack.OptionAPIURL(d.apiBase),
	)

	logger.Debug("checking token", "token", auth.Fingerprint(token), "api", d.apiBase)
	resp, err := api.AuthTestContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth test: %w", scrubURLError(err, token))
	}

	return &Identity{
		URL:    resp.URL,
		Team:   resp.Team,
		User:   resp.User,
		TeamID: resp.TeamID,
		UserID: resp.UserID,
		BotID:  resp.BotID,
	}, nil
}
