// Package workflow connects build pipelines to the notification dispatcher.
//
// Two entry points:
//   - SendStep / StepRunner: a single notification request whose fields
//     override the global settings, returning the result map
//     (success, channel, threadTs, ts) or an empty map on failure
//   - NotifyNode: a flowgraph node that reports a build State through the
//     notify.Publisher stored in the context, logging to the logger set with
//     WithLogger
//
// Example usage:
//
//	runner := &workflow.StepRunner{Global: settings.Delivery}
//	result, err := runner.Run(ctx, workflow.SendStep{
//	    Message:     "Deployed api-server",
//	    Color:       "good",
//	    Channel:     "#deploys",
//	    FailOnError: true,
//	})
//
//	graph := flowgraph.NewGraph[workflow.State]().
//	    AddNode("notify", workflow.NotifyNode).
//	    AddEdge("notify", flowgraph.END).
//	    SetEntry("notify")
package workflow
