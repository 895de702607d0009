package introscreen

import (
	"github.com/bft-labs/introscreen/pkg/host"
	"github.com/bft-labs/introscreen/pkg/lifecycle"
)

// WhileRunning returns a condition that holds while the lifecycle is Running.
func WhileRunning(ctx Context) host.Condition {
	return ctx.Lifecycle().In(lifecycle.Running)
}

// WhileLoading returns a condition that holds while the lifecycle is Loading.
func WhileLoading(ctx Context) host.Condition {
	return ctx.Lifecycle().In(lifecycle.Loading)
}

// WhileFailure returns a condition that holds while the lifecycle is Failure.
func WhileFailure(ctx Context) host.Condition {
	return ctx.Lifecycle().In(lifecycle.Failure)
}

// StartedRunning returns a condition that holds during the tick following
// the transition into Running.
func StartedRunning(ctx Context) host.Condition {
	return ctx.Lifecycle().Entered(lifecycle.Running)
}
