package main_test

import (
	_ "embed"
	"strings"
	"testing"

	main "github.com/zephyrtronium/thelist"
)

//go:embed example.toml
var exampleToml string

func eqcase[T comparable](t *testing.T, name string, val T, eq T) {
	t.Helper()
	if val != eq {
		t.Errorf("wrong %s: want %#v, got %#v", name, eq, val)
	}
}

func TestExampleConfig(t *testing.T) {
	cfg, _, err := main.Load(strings.NewReader(exampleToml))
	if err != nil {
		t.Errorf("failed to load example.toml: %v", err)
	}

	eqcase(t, "Data", cfg.Data, `/var/thelist/data`)
	eqcase(t, "Prefix", cfg.Prefix, `!`)
	eqcase(t, "HTTP.Listen", cfg.HTTP.Listen, `localhost:4959`)
	eqcase(t, "TMI.Nick", cfg.TMI.Nick, `thelist`)
	eqcase(t, "TMI.Rate.Every", cfg.TMI.Rate.Every, 1.5)
	eqcase(t, "TMI.Rate.Num", cfg.TMI.Rate.Num, 20)
	eqcase(t, "Emotes[``]", cfg.Emotes[``], 4)
	eqcase(t, "Emotes[`( ͡° ͜ʖ ͡°)`]", cfg.Emotes[`( ͡° ͜ʖ ͡°)`], 1)
	eqcase(t, "Emotes[`B)`]", cfg.Emotes[`B)`], 1)
	if !strings.Contains(cfg.TMI.TokenFile, "/.thelist/token") {
		t.Errorf("wrong TMI.TokenFile: %q does not contain %q", cfg.TMI.TokenFile, "/.thelist/token")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg, md, err := main.Load(strings.NewReader("data = '/tmp/thelist'\n"))
	if err != nil {
		t.Fatalf("failed to load minimal config: %v", err)
	}
	eqcase(t, "Prefix", cfg.Prefix, `!`)
	eqcase(t, "TMI.Rate.Every", cfg.TMI.Rate.Every, 1.5)
	eqcase(t, "TMI.Rate.Num", cfg.TMI.Rate.Num, 20)
	if md.IsDefined("tmi") {
		t.Errorf("tmi defined in minimal config")
	}
	if md.IsDefined("http") {
		t.Errorf("http defined in minimal config")
	}
}
