package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Load loads a Config from TOML.
func Load(r io.Reader) (*Config, *toml.MetaData, error) {
	cfg := Config{
		Prefix: "!",
		TMI: ClientCfg{
			// Twitch allows 20 messages per 30 seconds for regular accounts.
			Rate: Rate{Every: 1.5, Num: 20},
		},
	}
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't decode config: %w", err)
	}
	expandcfg(&cfg, os.Getenv)
	return &cfg, &md, nil
}

// Config is the marshaled structure of the bot's configuration.
type Config struct {
	// Data is the directory holding the persisted aggregates: channels.json,
	// roles.json, and players.json.
	Data string `toml:"data"`
	// Prefix is the command prefix. The default is "!".
	Prefix string `toml:"prefix"`
	// HTTP is the debug and metrics server configuration.
	HTTP HTTPCfg `toml:"http"`
	// TMI is the configuration for connecting to Twitch chat.
	TMI ClientCfg `toml:"tmi"`
	// Emotes is the emotes and their weights appended to confirmation
	// replies. An empty emote name weights replies with nothing appended.
	Emotes map[string]int `toml:"emotes"`
}

// HTTPCfg is the HTTP server configuration.
type HTTPCfg struct {
	// Listen is the address on which to serve metrics, pprof, and the
	// read-only player API. The server has no authentication; bind it to
	// localhost. Empty disables the server.
	Listen string `toml:"listen"`
}

// ClientCfg is the configuration for connecting to TMI.
type ClientCfg struct {
	// Nick is the bot's login name.
	Nick string `toml:"nick"`
	// TokenFile is the path to a file containing the IRC pass token,
	// used verbatim as the connection password.
	TokenFile string `toml:"token"`
	// Rate is the global rate limit for sending messages.
	Rate Rate `toml:"rate"`
}

// Rate is a rate limit configuration.
type Rate struct {
	Every float64 `toml:"every"`
	Num   int     `toml:"num"`
}

func fseconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func expandcfg(cfg *Config, expand func(s string) string) {
	fields := []*string{
		&cfg.Data,
		&cfg.HTTP.Listen,
		&cfg.TMI.Nick,
		&cfg.TMI.TokenFile,
	}
	for _, f := range fields {
		*f = os.Expand(*f, expand)
	}
}
