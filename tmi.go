package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gitlab.com/zephyrtronium/tmi"

	"github.com/zephyrtronium/thelist/message"
)

// tmiLoop handles messages from TMI. Commands are processed inline, one at a
// time: each mutation and its persistence complete before the next message is
// looked at, so no reply is ever observable ahead of the write it confirms.
func (robo *Robot) tmiLoop(ctx context.Context, send chan<- *tmi.Message, recv <-chan *tmi.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-recv:
			if !ok {
				return
			}
			switch msg.Command {
			case "PRIVMSG":
				robo.tmiMessage(ctx, send, msg)
			case "WHISPER":
				// nothing yet
			case "NOTICE":
				// nothing yet
			case "GLOBALUSERSTATE":
				slog.InfoContext(ctx, "connected to TMI", slog.String("GLOBALUSERSTATE", msg.Tags))
			case "366": // End NAMES
				if len(msg.Params) > 1 {
					slog.InfoContext(ctx, "joined channel", slog.String("channel", msg.Params[1]))
				}
			case "376": // End MOTD
				go robo.joinTwitch(ctx, send)
			}
		}
	}
}

// joinTwitch joins every channel in the channel set.
func (robo *Robot) joinTwitch(ctx context.Context, send chan<- *tmi.Message) {
	robo.joinChannels(ctx, send, robo.channels.Names())
}

// joinChannels joins the given channels in bursts.
func (robo *Robot) joinChannels(ctx context.Context, send chan<- *tmi.Message, ls []string) {
	burst := 20
	for len(ls) > 0 {
		l := ls[:min(burst, len(ls))]
		ls = ls[len(l):]
		msg := tmi.Message{
			Command: "JOIN",
			Params:  []string{strings.Join(l, ",")},
		}
		select {
		case <-ctx.Done():
			return
		case send <- &msg:
			// do nothing
		}
		if len(ls) > 0 {
			// Per https://dev.twitch.tv/docs/irc/#rate-limits we get 20 join
			// attempts per ten seconds. Use a slightly longer delay to ensure
			// we don't get globaled by clock drift.
			time.Sleep(11 * time.Second)
		}
	}
}

// partChannels leaves the given channels.
func (robo *Robot) partChannels(ctx context.Context, send chan<- *tmi.Message, ls []string) {
	if len(ls) == 0 {
		return
	}
	msg := tmi.Message{
		Command: "PART",
		Params:  []string{strings.Join(ls, ",")},
	}
	select {
	case <-ctx.Done():
	case send <- &msg:
	}
}

// sendTMI sends a message to TMI after waiting for the global rate limit.
func (robo *Robot) sendTMI(ctx context.Context, send chan<- *tmi.Message, msg message.Sent) {
	if err := robo.tmi.rate.Wait(ctx); err != nil {
		return
	}
	resp := message.ToTMI(msg)
	select {
	case <-ctx.Done():
		return
	case send <- resp:
	}
}
