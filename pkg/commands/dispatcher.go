package commands

import (
	"context"

	"github.com/xanadu-labs/coinbot/pkg/errs"
	"github.com/xanadu-labs/coinbot/pkg/logger"
)

// GenericErrorReply is the ephemeral fallback sent when a handler fails
// without producing its own reply.
const GenericErrorReply = "There was an error while executing this command!"

// Dispatcher routes interactions to handlers. The command table is fixed at
// construction; there is no hot reload.
type Dispatcher struct {
	ordered  []Command
	handlers map[string]Handler
}

func NewDispatcher(cmds []Command) *Dispatcher {
	handlers := make(map[string]Handler, len(cmds))
	for _, cmd := range cmds {
		handlers[cmd.Name] = cmd.Handler
	}
	return &Dispatcher{ordered: cmds, handlers: handlers}
}

// Definitions returns the command definitions in table order, for startup
// registration with the platform.
func (d *Dispatcher) Definitions() []Definition {
	defs := make([]Definition, 0, len(d.ordered))
	for _, cmd := range d.ordered {
		defs = append(defs, cmd.Definition)
	}
	return defs
}

// Dispatch resolves and runs the handler for one interaction. Unknown
// command names are ignored: the platform delivers stale commands and
// non-command interaction types. A failing handler is logged and answered
// with exactly one generic ephemeral reply, never propagated.
func (d *Dispatcher) Dispatch(ctx context.Context, ic *Interaction) {
	handler, ok := d.handlers[ic.Command]
	if !ok {
		logger.DebugCF("commands", "Ignoring unknown command", map[string]any{
			"command": ic.Command,
		})
		return
	}

	if err := handler(ctx, ic); err != nil {
		logger.ErrorCF("commands", "Command handler failed", map[string]any{
			"command": ic.Command,
			"user_id": ic.UserID,
			"kind":    errs.KindOf(err).String(),
			"error":   err.Error(),
		})
		if !ic.Replied() {
			if replyErr := ic.ReplyEphemeral(GenericErrorReply); replyErr != nil {
				logger.ErrorCF("commands", "Failed to send error reply", map[string]any{
					"command": ic.Command,
					"error":   replyErr.Error(),
				})
			}
		}
	}
}
