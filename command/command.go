// Package command implements the bot's chat commands.
//
// Authorization is the caller's responsibility: the dispatcher checks the
// sender's role against each command's threshold before invoking its Func.
// Handlers themselves report only parsing and lookup failures, and per the
// bot's low-noise policy most of those are logged rather than spoken.
package command

import (
	"context"
)

// Invocation is a command invocation. An Invocation and its fields must not
// be modified or retained by any command.
type Invocation struct {
	// Author is the login name of the user who sent the command.
	Author string
	// Args is the raw argument text after the command token.
	Args string
	// Reply sends a message in response to the invocation.
	Reply func(ctx context.Context, text string)
}

// Func executes a command.
type Func func(ctx context.Context, robo *Robot, call *Invocation)
