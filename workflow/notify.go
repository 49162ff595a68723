package workflow

import (
	"fmt"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	clierrors "github.com/randalmurphal/buildnotify/errors"
	"github.com/randalmurphal/buildnotify/notify"
)

// NotifyNode publishes the build result through the Publisher in context.
//
// This node is typically placed at the end of a pipeline. If no publisher is
// configured in the context, this is a no-op. Logs go to the logger set with
// WithLogger. A failed notification aborts
// the graph only when state.FailOnError is set.
//
// Prerequisites: state.Job must be set
// Updates: state.Notification, state.Error (on abort)
func NotifyNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireJob); err != nil {
		return state, err
	}

	publisher := notify.PublisherFromContext(ctx)
	if publisher == nil {
		return state, nil
	}

	out := publisher.Send(ctx, notify.Request{
		Message:        BuildMessage(state),
		Color:          ColorFor(state.Status),
		ThreadTS:       state.ThreadTS,
		ReplyBroadcast: state.ReplyBroadcast,
	})
	state.Notification = &out

	if !out.Success {
		if state.FailOnError {
			err := fmt.Errorf("%w: %s #%d", clierrors.ErrNotificationFailed, state.Job, state.BuildNumber)
			state.SetError(err)
			return state, err
		}
		LoggerFromContext(ctx).Warn("build notification failed",
			"run_id", state.RunID,
			"job", state.Job,
			"build", state.BuildNumber,
		)
	}

	return state, nil
}
