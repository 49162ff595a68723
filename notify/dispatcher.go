package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/randalmurphal/buildnotify/auth"
	"github.com/randalmurphal/buildnotify/transport"
)

// Endpoint defaults.
const (
	DefaultHost    = "slack.com"
	DefaultAPIBase = "https://slack.com/api/"

	webhookPath    = "/services/hooks/jenkins-ci"
	postMessageAPI = "chat.postMessage"
	serviceName    = "slack"
	formType       = "application/x-www-form-urlencoded"
)

// HTTPClient is the transport the dispatcher sends requests through.
// *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DeliveryConfig describes where and how notifications are delivered. It is
// read-only once handed to New and may back any number of concurrent sends.
type DeliveryConfig struct {
	// BaseURL overrides the webhook endpoint; the token is appended to it.
	// A configured BaseURL always selects webhook mode.
	BaseURL string

	// TeamDomain is the team subdomain used for the default webhook endpoint.
	TeamDomain string

	// Token is the plain integration or bot token.
	Token string

	// TokenCredentialID references a stored secret that, when found, is
	// used instead of Token.
	TokenCredentialID string

	// BotUser selects bot-user API delivery (only without BaseURL).
	BotUser bool

	// Rooms are the destinations, in send order. See ParseRooms.
	Rooms []string
}

// Mode is how a notification is delivered.
type Mode int

// Delivery modes.
const (
	ModeWebhook Mode = iota
	ModeBotUser
)

func (m Mode) String() string {
	if m == ModeBotUser {
		return "bot-user"
	}
	return "webhook"
}

// RoomResult is the delivery result for one room.
type RoomResult struct {
	Room    string
	Outcome Outcome

	// Parsed reports whether the service's response body was read and
	// decoded, i.e. whether Outcome carries identifiers from the service.
	Parsed bool

	// Err says why delivery to this room failed; nil on success.
	Err error
}

// Report is the detailed result of one publish call.
type Report struct {
	// Outcome is the aggregate, identical to what Send returns.
	Outcome Outcome

	// PublishID correlates the log lines of this call.
	PublishID string

	// Rooms holds one entry per attempted room, in send order.
	Rooms []RoomResult

	// Err is set when the call was rejected before any request was sent.
	Err error
}

// Failed returns the rooms whose delivery failed.
func (r Report) Failed() []RoomResult {
	var failed []RoomResult
	for _, rr := range r.Rooms {
		if rr.Err != nil {
			failed = append(failed, rr)
		}
	}
	return failed
}

// =============================================================================
// Dispatcher
// =============================================================================

// Dispatcher publishes notifications to every configured room.
type Dispatcher struct {
	cfg         DeliveryConfig
	client      HTTPClient
	credentials auth.Resolver
	logger      *slog.Logger
	host        string
	apiBase     string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient sets the transport. Defaults to an *http.Client with
// transport.DefaultTimeout.
func WithHTTPClient(c HTTPClient) Option {
	return func(d *Dispatcher) { d.client = c }
}

// WithCredentials sets the resolver consulted for TokenCredentialID.
func WithCredentials(r auth.Resolver) Option {
	return func(d *Dispatcher) { d.credentials = r }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithHost overrides the chat service host used to build webhook URLs.
func WithHost(host string) Option {
	return func(d *Dispatcher) { d.host = host }
}

// WithAPIURL overrides the Web API base URL used in bot-user mode.
func WithAPIURL(base string) Option {
	return func(d *Dispatcher) {
		if base != "" && !strings.HasSuffix(base, "/") {
			base += "/"
		}
		d.apiBase = base
	}
}

// New creates a Dispatcher. A non-empty BaseURL gets a trailing slash, the
// credential reference is trimmed, and an empty room list is treated as a
// single empty-string room (see ParseRooms).
func New(cfg DeliveryConfig, opts ...Option) *Dispatcher {
	if cfg.BaseURL != "" && !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	cfg.TokenCredentialID = strings.TrimSpace(cfg.TokenCredentialID)
	if len(cfg.Rooms) == 0 {
		cfg.Rooms = []string{""}
	} else {
		cfg.Rooms = append([]string(nil), cfg.Rooms...)
	}

	d := &Dispatcher{
		cfg:     cfg,
		host:    DefaultHost,
		apiBase: DefaultAPIBase,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.client == nil {
		d.client = &http.Client{Timeout: transport.DefaultTimeout}
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Config returns a copy of the normalized delivery configuration.
func (d *Dispatcher) Config() DeliveryConfig {
	cfg := d.cfg
	cfg.Rooms = append([]string(nil), d.cfg.Rooms...)
	return cfg
}

// Mode returns the delivery mode. Bot-user mode requires BotUser and no
// BaseURL; everything else is webhook mode.
func (d *Dispatcher) Mode() Mode {
	if d.cfg.BotUser && d.cfg.BaseURL == "" {
		return ModeBotUser
	}
	return ModeWebhook
}

// Publish sends message with the default color and no thread.
func (d *Dispatcher) Publish(ctx context.Context, message string) Outcome {
	return d.PublishColor(ctx, message, DefaultColor)
}

// PublishColor sends message with the given color and no thread.
func (d *Dispatcher) PublishColor(ctx context.Context, message, color string) Outcome {
	return d.PublishThreaded(ctx, message, color, "", false)
}

// PublishThreaded sends message as a reply in the thread threadTS. An empty
// threadTS sends a regular message.
func (d *Dispatcher) PublishThreaded(ctx context.Context, message, color, threadTS string, replyBroadcast bool) Outcome {
	return d.Send(ctx, Request{
		Message:        message,
		Color:          color,
		ThreadTS:       threadTS,
		ReplyBroadcast: replyBroadcast,
	})
}

// Send implements Publisher. The color is forwarded verbatim.
func (d *Dispatcher) Send(ctx context.Context, req Request) Outcome {
	return d.SendDetailed(ctx, req).Outcome
}

// SendDetailed publishes req to every room and reports per-room results.
//
// Rooms are processed sequentially in configured order and independently: a
// failed room does not stop the others. The aggregate succeeds only if every
// room succeeded; its identifiers come from the last room whose response was
// parsed. A threaded request against more than one room is rejected before
// any request is sent.
func (d *Dispatcher) SendDetailed(ctx context.Context, req Request) Report {
	report := Report{
		Outcome:   Outcome{Success: true},
		PublishID: newPublishID(),
	}
	logger := d.logger.With("publish_id", report.PublishID)

	if req.Threaded() && len(d.cfg.Rooms) > 1 {
		logger.Error("cannot send threaded message to more than one room, no messages will be sent",
			"rooms", d.cfg.Rooms,
			"thread_ts", req.ThreadTS,
		)
		report.Outcome.Success = false
		report.Err = ErrThreadMultipleRooms
		return report
	}

	for _, room := range d.cfg.Rooms {
		rr := d.deliver(ctx, logger, req, room)
		if rr.Parsed {
			report.Outcome.Channel = rr.Outcome.Channel
			report.Outcome.ThreadTS = rr.Outcome.ThreadTS
			report.Outcome.TS = rr.Outcome.TS
		}
		if rr.Err != nil {
			report.Outcome.Success = false
		}
		report.Rooms = append(report.Rooms, rr)
	}

	return report
}

// deliver sends req to one room and interprets the response.
func (d *Dispatcher) deliver(ctx context.Context, logger *slog.Logger, req Request, room string) RoomResult {
	result := RoomResult{Room: room}
	token := d.tokenToUse(ctx, logger)

	httpReq, err := d.newRequest(ctx, req, room, token)
	if err != nil {
		logger.Warn("error building notification request", "room", room, "error", err)
		result.Err = err
		return result
	}

	logger.Debug("posting notification",
		"room", room,
		"team", d.cfg.TeamDomain,
		"mode", d.Mode().String(),
		"url", redact(httpReq.URL.String(), token),
		"token", auth.Fingerprint(token),
		"color", req.Color,
		"thread_ts", req.ThreadTS,
		"reply_broadcast", req.ReplyBroadcast,
	)

	resp, err := d.client.Do(httpReq)
	if err != nil {
		err = scrubURLError(err, token)
		logger.Warn("error posting notification", "room", room, "error", err)
		result.Err = fmt.Errorf("post to room %q: %w", room, err)
		return result
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("error reading notification response", "room", room, "error", err)
		result.Err = fmt.Errorf("read response for room %q: %w", room, err)
		return result
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn("notification post may have failed",
			"room", room,
			"status", resp.StatusCode,
			"response", string(body),
		)
		result.Err = transport.NewAPIError(serviceName, resp.StatusCode, room, body)
		return result
	}

	parsed, err := parseResponse(body)
	if err != nil {
		logger.Warn("could not parse notification response",
			"room", room,
			"response", string(body),
			"error", err,
		)
		result.Err = fmt.Errorf("room %q: %w", room, err)
		return result
	}

	result.Parsed = true
	result.Outcome = parsed.outcome()

	// The service answers 200/ok for a reply whose thread lives in another
	// channel; only an echoed thread_ts proves the reply landed.
	if req.Threaded() && result.Outcome.ThreadTS == "" {
		logger.Warn("threaded post did not find the thread; check the original message channel and ts",
			"room", room,
			"thread_ts", req.ThreadTS,
			"channel", result.Outcome.Channel,
		)
		result.Outcome.Success = false
		result.Err = fmt.Errorf("%w: room %q thread_ts %s", ErrThreadNotFound, room, req.ThreadTS)
		return result
	}

	if !parsed.OK {
		logger.Warn("chat service rejected notification",
			"room", room,
			"error", parsed.Error,
		)
		result.Err = fmt.Errorf("%w: room %q: %s", ErrNotOK, room, parsed.Error)
		return result
	}

	logger.Info("notification posted",
		"room", room,
		"channel", result.Outcome.Channel,
		"ts", result.Outcome.TS,
	)
	logger.Debug("notification response", "room", room, "response", string(body))
	return result
}

// tokenToUse resolves the token for one request. A found credential wins
// over the plain token; a miss or a failing store falls back to it.
func (d *Dispatcher) tokenToUse(ctx context.Context, logger *slog.Logger) string {
	if id := d.cfg.TokenCredentialID; id != "" && d.credentials != nil {
		secret, err := d.credentials.Lookup(ctx, id)
		switch {
		case err == nil:
			logger.Debug("using integration token credential", "credential_id", id)
			return secret
		case errors.Is(err, auth.ErrCredentialNotFound):
			logger.Debug("integration token credential not found", "credential_id", id)
		default:
			logger.Warn("error looking up integration token credential",
				"credential_id", id,
				"error", err,
			)
		}
	}

	logger.Debug("using integration token")
	return d.cfg.Token
}

// newRequest builds the HTTP request for one room in the dispatcher's mode.
func (d *Dispatcher) newRequest(ctx context.Context, req Request, room, token string) (*http.Request, error) {
	if d.Mode() == ModeBotUser {
		attachments, err := marshalJSON(ComposeAttachments(req))
		if err != nil {
			return nil, fmt.Errorf("marshal attachments: %w", err)
		}

		// Parameter order is kept stable for readability in logs.
		query := "token=" + url.QueryEscape(token) +
			"&channel=" + url.QueryEscape(room) +
			"&link_names=1" +
			"&as_user=true" +
			"&attachments=" + url.QueryEscape(string(attachments))

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			d.apiBase+postMessageAPI+"?"+query, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", scrubURLError(err, token))
		}
		httpReq.Header.Set("Content-Type", formType)
		return httpReq, nil
	}

	payload, err := marshalJSON(ComposeWebhookPayload(req, room))
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	form := url.Values{"payload": {string(payload)}}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.webhookURL(token), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", scrubURLError(err, token))
	}
	httpReq.Header.Set("Content-Type", formType)
	return httpReq, nil
}

func (d *Dispatcher) webhookURL(token string) string {
	if d.cfg.BaseURL != "" {
		return d.cfg.BaseURL + token
	}
	return "https://" + d.cfg.TeamDomain + "." + d.host + webhookPath + "?token=" + url.QueryEscape(token)
}

// marshalJSON encodes v without HTML escaping so link markup such as
// <https://ci/job/42|#42> reaches the service as written.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// redact replaces every occurrence of token in s with its fingerprint.
func redact(s, token string) string {
	if token == "" {
		return s
	}
	fp := auth.Fingerprint(token)
	s = strings.ReplaceAll(s, token, fp)
	if escaped := url.QueryEscape(token); escaped != token {
		s = strings.ReplaceAll(s, escaped, fp)
	}
	return s
}

// scrubURLError removes the token from the URL carried by a *url.Error while
// keeping the error chain intact.
func scrubURLError(err error, token string) error {
	var ue *url.Error
	if token == "" || !errors.As(err, &ue) {
		return err
	}
	scrubbed := *ue
	scrubbed.URL = redact(ue.URL, token)
	return &scrubbed
}
