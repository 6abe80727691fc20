package main

import (
	"context"
	"log/slog"
	"strings"

	"gitlab.com/zephyrtronium/tmi"

	"github.com/zephyrtronium/thelist/command"
	"github.com/zephyrtronium/thelist/message"
	"github.com/zephyrtronium/thelist/role"
)

// tmiMessage processes a PRIVMSG from TMI.
func (robo *Robot) tmiMessage(ctx context.Context, send chan<- *tmi.Message, msg *tmi.Message) {
	defer func() {
		// A handler bug must not take down the message loop.
		if v := recover(); v != nil {
			slog.ErrorContext(ctx, "panic in message handler", slog.Any("recover", v))
		}
	}()
	robo.metrics.TMIMsgsCount.Observe(1)
	m := message.FromTMI(msg)
	name, args, ok := parseCommand(robo.prefix, m.Text)
	if !ok {
		return
	}
	c := findCommand(chatCommands, name)
	if c == nil {
		return
	}
	if !robo.roles.Allowed(m.Sender, c.min) {
		// Intentionally no reply. Anyone can type the command prefix; only
		// people in the registry get a reaction of any kind.
		robo.metrics.UnauthorizedCount.Observe(1)
		slog.InfoContext(ctx, "unauthorized command",
			slog.String("name", c.name),
			slog.String("from", m.Sender),
		)
		return
	}
	robo.metrics.CommandCount.Observe(1, c.name)
	slog.InfoContext(ctx, "command",
		slog.String("name", c.name),
		slog.String("from", m.Sender),
		slog.String("args", args),
	)
	r := command.Robot{
		Log:      slog.Default(),
		Roles:    robo.roles,
		Players:  robo.players,
		Channels: robo.channels,
		Store:    robo.store,
		Metrics:  robo.metrics,
		Emotes:   robo.emotes,
		Join: func(ctx context.Context, ls []string) {
			robo.joinChannels(ctx, send, ls)
		},
		Part: func(ctx context.Context, ls []string) {
			robo.partChannels(ctx, send, ls)
		},
	}
	inv := command.Invocation{
		Author: m.Sender,
		Args:   args,
		Reply: func(ctx context.Context, text string) {
			robo.sendTMI(ctx, send, message.Format("", m.To, "%s", text))
		},
	}
	c.fn(ctx, &r, &inv)
}

// parseCommand splits a chat line into a command name and its raw argument
// text. A line that doesn't start with the command prefix is not a command.
func parseCommand(prefix, text string) (name, args string, ok bool) {
	text = strings.TrimSpace(text)
	text, ok = strings.CutPrefix(text, prefix)
	if !ok {
		return "", "", false
	}
	name, args, _ = strings.Cut(text, " ")
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(args), true
}

type chatCommand struct {
	// name is the primary name of the command.
	name string
	// aliases are pure synonyms for name.
	aliases []string
	// min is the least role allowed to use the command.
	min role.Role
	// fn is the handler.
	fn command.Func
}

// findCommand finds the command with the given name or alias. Names are
// case-sensitive as typed.
func findCommand(cmds []chatCommand, name string) *chatCommand {
	for i := range cmds {
		c := &cmds[i]
		if c.name == name {
			return c
		}
		for _, a := range c.aliases {
			if a == name {
				return c
			}
		}
	}
	return nil
}

var chatCommands = []chatCommand{
	{name: "info", aliases: []string{"i"}, min: role.User, fn: command.Info},
	{name: "add", aliases: []string{"a"}, min: role.Admin, fn: command.Add},
	{name: "edit", aliases: []string{"e"}, min: role.Admin, fn: command.Edit},
	{name: "delete", aliases: []string{"del", "d"}, min: role.Admin, fn: command.Delete},
	{name: "listplayers", aliases: []string{"lp"}, min: role.Admin, fn: command.ListPlayers},
	{name: "adduser", aliases: []string{"addusers", "au"}, min: role.Admin, fn: command.Grant(role.User)},
	{name: "deluser", aliases: []string{"delusers", "du"}, min: role.Admin, fn: command.Revoke(role.User)},
	{name: "addadmin", aliases: []string{"addadmins", "aa"}, min: role.SuperAdmin, fn: command.Grant(role.Admin)},
	{name: "deladmin", aliases: []string{"deladmins", "da"}, min: role.SuperAdmin, fn: command.Revoke(role.Admin)},
	{name: "addsuperadmin", aliases: []string{"addsuperadmins", "asa"}, min: role.SuperAdmin, fn: command.Grant(role.SuperAdmin)},
	{name: "delsuperadmin", aliases: []string{"delsuperadmins", "dsa"}, min: role.SuperAdmin, fn: command.Revoke(role.SuperAdmin)},
	{name: "addchannel", aliases: []string{"addchannels", "ac"}, min: role.SuperAdmin, fn: command.JoinChannels},
	{name: "delchannel", aliases: []string{"delchannels", "dc"}, min: role.SuperAdmin, fn: command.PartChannels},
	{name: "listchannels", aliases: []string{"lc"}, min: role.SuperAdmin, fn: command.ListChannels},
}
