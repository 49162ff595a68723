// Package buildnotify posts build notifications to chat rooms.
//
// The package is organized into subpackages by concern:
//
//   - notify: Dispatcher fan-out, request composition and response parsing
//   - workflow: Build state and the flowgraph notification node
//   - config: Layered configuration (defaults, global, local, env, flags)
//   - auth: Credential resolution for integration tokens
//   - transport: HTTP client construction and API error classification
//   - errors: User-facing CLI errors with suggestions
//   - testutil: Test utilities and fixtures
//
// The buildnotify command in cmd/buildnotify wraps these for shell use.
//
// # Quick Start
//
//	import (
//	    "github.com/randalmurphal/buildnotify/notify"
//	)
//
//	d := notify.New(notify.DeliveryConfig{
//	    TeamDomain: "acme",
//	    Token:      token,
//	    BotUser:    true,
//	    Rooms:      notify.ParseRooms("#builds, #deploys"),
//	})
//	out := d.Send(ctx, notify.Request{Message: "api-server - #42 Success", Color: "good"})
//	if !out.Success {
//	    // at least one room was not notified
//	}
//
// See individual package documentation for detailed usage.
package buildnotify
