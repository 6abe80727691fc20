package command

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/zephyrtronium/thelist/player"
)

// Add appends an information entry to a player's record, creating the record
// on first use. Args: "<player> <text...>".
func Add(ctx context.Context, robo *Robot, call *Invocation) {
	n, err := robo.Players.Add(call.Author, call.Args)
	if err != nil {
		// Malformed commands are dropped with only a log line.
		// TODO(zeph): reply with a usage hint instead
		robo.Log.InfoContext(ctx, "add dropped",
			slog.String("author", call.Author),
			slog.String("args", call.Args),
			slog.Any("err", err),
		)
		return
	}
	subject := subjectOf(call.Args)
	if !robo.persist(ctx, "players", func() error { return robo.Store.SavePlayers(robo.Players) }) {
		return
	}
	robo.Log.InfoContext(ctx, "added information",
		slog.String("author", call.Author),
		slog.String("player", subject),
		slog.Int("count", n),
	)
	call.Reply(ctx, fmt.Sprintf("Added #%d information for player '%s'%s", n, subject, robo.emote()))
}

// Edit replaces the text of one information entry in place, recording the
// editor and time and leaving the creation attribution untouched.
// Args: "<player> <index> <text...>".
func Edit(ctx context.Context, robo *Robot, call *Invocation) {
	subject, index, err := robo.Players.Edit(call.Author, call.Args)
	if err != nil {
		robo.Log.InfoContext(ctx, "edit dropped",
			slog.String("author", call.Author),
			slog.String("args", call.Args),
			slog.Any("err", err),
		)
		return
	}
	if !robo.persist(ctx, "players", func() error { return robo.Store.SavePlayers(robo.Players) }) {
		return
	}
	robo.Log.InfoContext(ctx, "edited information",
		slog.String("author", call.Author),
		slog.String("player", subject),
		slog.Int("index", index),
	)
	call.Reply(ctx, fmt.Sprintf("Edited information at index '%d' for player '%s'%s", index, subject, robo.emote()))
}

// Delete removes a player's entire record. Args: "<player>"; anything after
// the player name is ignored. Deleting an unknown player is answered, not
// dropped, since the sender usually wants to know it was already gone.
func Delete(ctx context.Context, robo *Robot, call *Invocation) {
	p, err := robo.Players.Delete(call.Args)
	subject := subjectOf(call.Args)
	switch {
	case err == nil: // do nothing
	case err == player.ErrNotFound:
		call.Reply(ctx, fmt.Sprintf("There was no information about player '%s'", subject))
		return
	default:
		robo.Log.InfoContext(ctx, "delete dropped",
			slog.String("author", call.Author),
			slog.String("args", call.Args),
			slog.Any("err", err),
		)
		return
	}
	if !robo.persist(ctx, "players", func() error { return robo.Store.SavePlayers(robo.Players) }) {
		return
	}
	robo.Log.InfoContext(ctx, "deleted information",
		slog.String("author", call.Author),
		slog.String("player", subject),
		slog.Int("entries", p.Len()),
	)
	call.Reply(ctx, fmt.Sprintf("Removed all information about player '%s'%s", subject, robo.emote()))
}

// Info fetches one entry or all entries about a player.
// Args: "<player> [index]". The index may be negative to count from the end.
func Info(ctx context.Context, robo *Robot, call *Invocation) {
	fields := strings.Fields(call.Args)
	if len(fields) == 0 {
		robo.Log.InfoContext(ctx, "info dropped", slog.String("author", call.Author), slog.Any("err", player.ErrNoSubject))
		return
	}
	subject := strings.ToLower(fields[0])
	if len(fields) > 1 {
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			robo.Log.InfoContext(ctx, "info dropped",
				slog.String("author", call.Author),
				slog.String("index", fields[1]),
				slog.Any("err", player.ErrNotANumber),
			)
			return
		}
		e, err := robo.Players.At(subject, index)
		if err != nil {
			call.Reply(ctx, fmt.Sprintf("There is no entry %d for player '%s'", index, subject))
			return
		}
		call.Reply(ctx, fmt.Sprintf("Player '%s' (%d): %s", subject, index, detailed(&e)))
		return
	}
	all := robo.Players.All(subject)
	switch len(all) {
	case 0:
		call.Reply(ctx, fmt.Sprintf("There was no information about player '%s'", subject))
	case 1:
		call.Reply(ctx, fmt.Sprintf("Player '%s': %s", subject, all[0].Text))
	default:
		ls := make([]string, len(all))
		for i, e := range all {
			ls[i] = fmt.Sprintf("%d) '%s'", i, e.Text)
		}
		call.Reply(ctx, fmt.Sprintf("Player '%s': %s", subject, strings.Join(ls, " | ")))
	}
}

// ListPlayers names every player the bot has information about.
func ListPlayers(ctx context.Context, robo *Robot, call *Invocation) {
	names := robo.Players.Names()
	if len(names) == 0 {
		call.Reply(ctx, "I don't know any players yet")
		return
	}
	call.Reply(ctx, fmt.Sprintf("I know about: %s", strings.Join(names, ", ")))
}

func detailed(e *player.Entry) string {
	name, at := e.Attribution()
	return fmt.Sprintf("'%s' was last modified by '%s' on %s", e.Text, name, at.UTC().Format(time.RFC1123))
}

// subjectOf extracts the normalized subject from raw command arguments whose
// first token is the subject name. It is only meaningful after the store
// accepted the same arguments.
func subjectOf(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
