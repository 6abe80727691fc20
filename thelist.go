package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"gitlab.com/zephyrtronium/pick"
	"gitlab.com/zephyrtronium/tmi"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/zephyrtronium/thelist/channel"
	"github.com/zephyrtronium/thelist/metrics"
	"github.com/zephyrtronium/thelist/player"
	"github.com/zephyrtronium/thelist/role"
	"github.com/zephyrtronium/thelist/store"
)

// Robot is the bot's overall state: the three persisted aggregates, the
// persistence store, and the TMI client.
type Robot struct {
	// roles is the role registry.
	roles *role.Registry
	// players is the player information store.
	players *player.Store
	// channels is the set of channels to join.
	channels *channel.Set
	// store persists the aggregates.
	store *store.Dir
	// prefix is the command prefix.
	prefix string
	// emotes is the distribution of emotes appended to confirmations.
	emotes *pick.Dist[string]
	// metrics are a number of observers for monitoring the bot.
	metrics *metrics.Metrics
	// tmi is the bot's TMI connection settings.
	tmi *client
}

// client is the bot's chat connection settings.
type client struct {
	// me is the bot's login name.
	me string
	// pass is the IRC connection password.
	pass string
	// rate limits sends to TMI.
	rate *rate.Limiter
}

// New loads the aggregates from the configured data directory and assembles
// the bot. Absent documents load as empty aggregates, so a fresh data
// directory is a working, if useless, bot; run init to seed the first
// super-admin.
func New(cfg *Config, mets *metrics.Metrics) (*Robot, error) {
	st := store.New(cfg.Data)
	channels, err := st.LoadChannels()
	if err != nil {
		return nil, fmt.Errorf("couldn't load channels: %w", err)
	}
	roles, err := st.LoadRoles()
	if err != nil {
		return nil, fmt.Errorf("couldn't load roles: %w", err)
	}
	players, err := st.LoadPlayers()
	if err != nil {
		return nil, fmt.Errorf("couldn't load players: %w", err)
	}
	robo := &Robot{
		roles:    roles,
		players:  players,
		channels: channels,
		store:    st,
		prefix:   cfg.Prefix,
		metrics:  mets,
	}
	if len(cfg.Emotes) > 0 {
		robo.emotes = pick.New(pick.FromMap(cfg.Emotes))
	}
	if cfg.TMI.Nick != "" {
		pass, err := os.ReadFile(cfg.TMI.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("couldn't read TMI token: %w", err)
		}
		robo.tmi = &client{
			me:   strings.ToLower(cfg.TMI.Nick),
			pass: strings.TrimSpace(string(pass)),
			rate: rate.NewLimiter(rate.Every(fseconds(cfg.TMI.Rate.Every)), cfg.TMI.Rate.Num),
		}
	}
	return robo, nil
}

// Run runs the bot until the context is closed.
func (robo *Robot) Run(ctx context.Context, listen string) error {
	group, ctx := errgroup.WithContext(ctx)
	if listen != "" {
		group.Go(func() error {
			mux := http.NewServeMux()
			return robo.api(ctx, listen, mux, robo.metrics.Collectors())
		})
	}
	if robo.tmi != nil {
		group.Go(func() error { return robo.twitch(ctx) })
	}
	err := group.Wait()
	if err == context.Canceled {
		// The first error being context canceled means we are shutting down
		// normally in response to a sigint.
		err = nil
	}
	return err
}

func (robo *Robot) twitch(ctx context.Context) error {
	cfg := tmi.ConnectConfig{
		Dial:         new(tls.Dialer).DialContext,
		RetryWait:    tmi.RetryList(true, 0, time.Second, time.Minute, 5*time.Minute),
		Nick:         robo.tmi.me,
		Pass:         "oauth:" + strings.TrimPrefix(robo.tmi.pass, "oauth:"),
		Capabilities: []string{"twitch.tv/commands", "twitch.tv/tags"},
		Timeout:      300 * time.Second,
	}
	send := make(chan *tmi.Message, 1)
	recv := make(chan *tmi.Message, 8) // 8 is enough for on-connect msgs
	go robo.tmiLoop(ctx, send, recv)
	tmi.Connect(ctx, cfg, tmi.Log(log.Default(), false), send, recv)
	return ctx.Err()
}
