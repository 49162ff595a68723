// Package notify delivers build-event notifications to chat rooms.
//
// Core types:
//   - Dispatcher: fans one notification out to every configured room
//   - DeliveryConfig: rooms, tokens and delivery mode, built once per target
//   - Request: message, color and optional thread for one notification
//   - Outcome: aggregated result of one publish call
//   - Publisher: interface implemented by Dispatcher, NopPublisher and
//     LogPublisher
//
// Delivery modes:
//   - Webhook: form-encoded POST with a JSON "payload" field to the team's
//     incoming-webhook endpoint, or to BaseURL+token when BaseURL is set
//   - Bot user: chat.postMessage with every parameter in the query string,
//     used only when BotUser is set and no BaseURL is configured
//
// Publishing never returns an error. Every failure (threading rejected for
// multiple rooms, transport error, non-OK status, a threaded reply whose
// thread was not found) is logged and folded into Outcome.Success. Callers
// decide whether a failed notification should fail their own work.
//
// Example usage:
//
//	d := notify.New(notify.DeliveryConfig{
//	    TeamDomain: "acme",
//	    Token:      token,
//	    Rooms:      notify.ParseRooms("#builds,#releases"),
//	}, notify.WithHTTPClient(client))
//
//	out := d.Publish(ctx, "Build #42 succeeded")
//	if !out.Success {
//	    // notification failed; the build itself is unaffected
//	}
package notify
