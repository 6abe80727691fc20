package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zephyrtronium/thelist/role"
)

// Grant returns a command that grants a role to each named user.
// Args: "<name...>". Each name is processed independently; names that already
// hold the role or a higher one are skipped, and only the names actually
// granted are reported. No grants at all means no reply.
func Grant(r role.Role) Func {
	return func(ctx context.Context, robo *Robot, call *Invocation) {
		var granted []string
		for _, name := range strings.Fields(call.Args) {
			if !robo.Roles.Add(name, r) {
				robo.Log.InfoContext(ctx, "grant skipped",
					slog.String("author", call.Author),
					slog.String("name", name),
					slog.String("role", r.String()),
				)
				continue
			}
			granted = append(granted, strings.ToLower(name))
		}
		if len(granted) == 0 {
			return
		}
		if !robo.persist(ctx, "roles", func() error { return robo.Store.SaveRoles(robo.Roles) }) {
			return
		}
		robo.Log.InfoContext(ctx, "granted roles",
			slog.String("author", call.Author),
			slog.String("role", r.String()),
			slog.Any("names", granted),
		)
		call.Reply(ctx, fmt.Sprintf("Added users with permission level '%v': %s", r, strings.Join(granted, ", ")))
	}
}

// Revoke returns a command that revokes a role from each named user.
// Args: "<name...>". Only names holding exactly the role are affected;
// revoking "admin" never demotes a super-admin.
func Revoke(r role.Role) Func {
	return func(ctx context.Context, robo *Robot, call *Invocation) {
		var revoked []string
		for _, name := range strings.Fields(call.Args) {
			if !robo.Roles.Remove(name, r) {
				robo.Log.InfoContext(ctx, "revoke skipped",
					slog.String("author", call.Author),
					slog.String("name", name),
					slog.String("role", r.String()),
				)
				continue
			}
			revoked = append(revoked, strings.ToLower(name))
		}
		if len(revoked) == 0 {
			return
		}
		if !robo.persist(ctx, "roles", func() error { return robo.Store.SaveRoles(robo.Roles) }) {
			return
		}
		robo.Log.InfoContext(ctx, "revoked roles",
			slog.String("author", call.Author),
			slog.String("role", r.String()),
			slog.Any("names", revoked),
		)
		call.Reply(ctx, fmt.Sprintf("Removed users with permission level '%v': %s", r, strings.Join(revoked, ", ")))
	}
}

// JoinChannels adds channels to the joined set and asks the transport to join
// the new ones. Args: "<channel...>"; already-joined channels are skipped.
func JoinChannels(ctx context.Context, robo *Robot, call *Invocation) {
	added := robo.Channels.Add(strings.Fields(call.Args))
	if len(added) == 0 {
		robo.Log.InfoContext(ctx, "no new channels",
			slog.String("author", call.Author),
			slog.String("args", call.Args),
		)
		return
	}
	if !robo.persist(ctx, "channels", func() error { return robo.Store.SaveChannels(robo.Channels) }) {
		return
	}
	if robo.Join != nil {
		robo.Join(ctx, added)
	}
	robo.Log.InfoContext(ctx, "added channels",
		slog.String("author", call.Author),
		slog.Any("channels", added),
	)
	call.Reply(ctx, fmt.Sprintf("Added new channels: %s", strings.Join(added, ", ")))
}

// PartChannels removes channels from the joined set and asks the transport to
// leave them. Args: "<channel...>"; channels not in the set are skipped.
func PartChannels(ctx context.Context, robo *Robot, call *Invocation) {
	removed := robo.Channels.Remove(strings.Fields(call.Args))
	if len(removed) == 0 {
		robo.Log.InfoContext(ctx, "no channels to delete",
			slog.String("author", call.Author),
			slog.String("args", call.Args),
		)
		return
	}
	if !robo.persist(ctx, "channels", func() error { return robo.Store.SaveChannels(robo.Channels) }) {
		return
	}
	if robo.Part != nil {
		robo.Part(ctx, removed)
	}
	robo.Log.InfoContext(ctx, "deleted channels",
		slog.String("author", call.Author),
		slog.Any("channels", removed),
	)
	call.Reply(ctx, fmt.Sprintf("Deleted channels: %s", strings.Join(removed, ", ")))
}

// ListChannels names every channel the bot is configured to join.
func ListChannels(ctx context.Context, robo *Robot, call *Invocation) {
	names := robo.Channels.Names()
	if len(names) == 0 {
		call.Reply(ctx, "I'm not configured to join any channels")
		return
	}
	call.Reply(ctx, fmt.Sprintf("I'm joined to: %s", strings.Join(names, ", ")))
}
