package notify

import (
	"context"
)

// =============================================================================
// Notification Types
// =============================================================================

// DefaultColor is the attachment color used by Publish.
const DefaultColor = "warning"

// Request is one logical notification. ThreadTS, when non-empty, makes the
// notification a threaded reply; ReplyBroadcast is only meaningful then.
type Request struct {
	Message        string
	Color          string
	ThreadTS       string
	ReplyBroadcast bool
}

// Threaded reports whether the request is a threaded reply.
func (r Request) Threaded() bool {
	return r.ThreadTS != ""
}

// Outcome is the aggregated result of one publish call.
//
// Channel, ThreadTS and TS are the identifiers echoed by the chat service for
// the last room whose response could be parsed. They are empty when unknown.
// Channel is the service's channel id, not the requested room name.
type Outcome struct {
	Success  bool   `json:"success"`
	Channel  string `json:"channel,omitempty"`
	ThreadTS string `json:"threadTs,omitempty"`
	TS       string `json:"ts,omitempty"`
}

// Result keys used by Outcome.Map.
const (
	SuccessKey  = "success"
	ChannelKey  = "channel"
	ThreadTSKey = "threadTs"
	TSKey       = "ts"
)

// Map renders a successful outcome as a string map. A failed outcome renders
// as an empty map, so "len(m) == 0" means the notification failed.
func (o Outcome) Map() map[string]string {
	m := make(map[string]string, 4)
	if !o.Success {
		return m
	}
	m[SuccessKey] = "true"
	m[ChannelKey] = o.Channel
	m[ThreadTSKey] = o.ThreadTS
	m[TSKey] = o.TS
	return m
}

// =============================================================================
// Publisher Interface
// =============================================================================

// Publisher sends notifications. Send never fails; the outcome says whether
// the notification was delivered.
type Publisher interface {
	Send(ctx context.Context, req Request) Outcome
}

// =============================================================================
// Context Injection
// =============================================================================

type serviceContextKey string

const publisherServiceKey serviceContextKey = "buildnotify.publisher"

// WithPublisher adds a Publisher to the context.
func WithPublisher(ctx context.Context, p Publisher) context.Context {
	return context.WithValue(ctx, publisherServiceKey, p)
}

// PublisherFromContext extracts the Publisher from context.
// Returns nil if no publisher is configured.
func PublisherFromContext(ctx context.Context) Publisher {
	if p, ok := ctx.Value(publisherServiceKey).(Publisher); ok {
		return p
	}
	return nil
}

// MustPublisherFromContext extracts the Publisher or panics.
func MustPublisherFromContext(ctx context.Context) Publisher {
	p := PublisherFromContext(ctx)
	if p == nil {
		panic("buildnotify: Publisher not found in context")
	}
	return p
}
