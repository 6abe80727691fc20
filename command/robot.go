package command

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"gitlab.com/zephyrtronium/pick"

	"github.com/zephyrtronium/thelist/channel"
	"github.com/zephyrtronium/thelist/metrics"
	"github.com/zephyrtronium/thelist/player"
	"github.com/zephyrtronium/thelist/role"
	"github.com/zephyrtronium/thelist/store"
)

// Robot is the bot state as is visible to commands.
type Robot struct {
	Log      *slog.Logger
	Roles    *role.Registry
	Players  *player.Store
	Channels *channel.Set
	// Store persists the aggregates. Every mutating command saves its whole
	// aggregate before replying, so that a reply is never observable ahead of
	// the write it confirms.
	Store *store.Dir
	// Metrics may be nil outside the served bot.
	Metrics *metrics.Metrics
	// Join and Part ask the transport to enter or leave channels. Either may
	// be nil when there is no live connection.
	Join func(ctx context.Context, channels []string)
	Part func(ctx context.Context, channels []string)
	// Emotes is the distribution of emotes appended to confirmations.
	// A nil distribution or an empty pick appends nothing.
	Emotes *pick.Dist[string]
}

// persist saves an aggregate and reports whether the save succeeded. On
// failure the caller must not reply; the in-memory mutation stands, the error
// is logged, and the process lives on.
func (robo *Robot) persist(ctx context.Context, name string, save func() error) bool {
	start := time.Now()
	err := save()
	if robo.Metrics != nil {
		robo.Metrics.SaveLatency.Observe(time.Since(start).Seconds(), name)
	}
	if err != nil {
		robo.Log.ErrorContext(ctx, "couldn't persist aggregate",
			slog.String("aggregate", name),
			slog.Any("err", err),
		)
		return false
	}
	return true
}

func (robo *Robot) emote() string {
	if robo.Emotes == nil {
		return ""
	}
	e := robo.Emotes.Pick(rand.Uint32())
	if e == "" {
		return ""
	}
	return " " + e
}
