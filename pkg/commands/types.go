// Package commands holds the slash-command table, the handlers behind it,
// and the dispatcher that routes inbound interactions to them.
package commands

import "context"

// Option describes one command parameter as registered with the platform.
type Option struct {
	Name        string
	Description string
	Required    bool
}

// Definition is the platform-facing description of a command. Definitions
// are built once at startup and read-only afterwards.
type Definition struct {
	Name        string
	Description string
	Options     []Option
}

// Handler executes one command invocation. A handler either replies itself
// or returns an error for the dispatcher to convert into the generic reply.
type Handler func(ctx context.Context, ic *Interaction) error

// Command pairs a definition with its handler.
type Command struct {
	Definition
	Handler Handler
}

// Responder delivers the single initial reply for an interaction.
type Responder interface {
	Respond(content string, ephemeral bool) error
}

// Interaction is one inbound command invocation.
type Interaction struct {
	Command string
	UserID  string
	Options map[string]string

	responder Responder
	replied   bool
}

func NewInteraction(command, userID string, options map[string]string, responder Responder) *Interaction {
	return &Interaction{
		Command:   command,
		UserID:    userID,
		Options:   options,
		responder: responder,
	}
}

// Option returns the supplied value for an option name, or "" when absent.
func (ic *Interaction) Option(name string) string {
	return ic.Options[name]
}

// Replied reports whether a reply has already been attempted. The platform
// accepts at most one initial reply per interaction.
func (ic *Interaction) Replied() bool {
	return ic.replied
}

func (ic *Interaction) Reply(content string) error {
	return ic.respond(content, false)
}

func (ic *Interaction) ReplyEphemeral(content string) error {
	return ic.respond(content, true)
}

func (ic *Interaction) respond(content string, ephemeral bool) error {
	if ic.replied {
		return nil
	}
	ic.replied = true
	return ic.responder.Respond(content, ephemeral)
}
