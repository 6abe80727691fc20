// Package store persists the bot's aggregates as JSON documents.
//
// Each aggregate (channels, roles, players) is one pretty-printed document
// in the data directory, rewritten in full after every successful mutation.
// The documents are human-readable and reloadable across restarts, and their
// shapes match the bot's historical data files.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/zephyrtronium/thelist/channel"
	"github.com/zephyrtronium/thelist/player"
	"github.com/zephyrtronium/thelist/role"
)

// Dir is a data directory holding one document per aggregate.
type Dir struct {
	path string
}

// New creates a store rooted at path. The directory is created on first save.
func New(path string) *Dir {
	return &Dir{path: path}
}

// Filenames of the aggregate documents within the data directory.
const (
	channelsFile = "channels.json"
	rolesFile    = "roles.json"
	playersFile  = "players.json"
)

type channelsDoc struct {
	Channels []string `json:"channels"`
}

type roleEntry struct {
	Type role.Role `json:"type"`
}

type rolesDoc struct {
	Users map[string]roleEntry `json:"users"`
}

type playersDoc struct {
	Players map[string]*player.Record `json:"players"`
}

// LoadChannels loads the channel set. An absent document is an empty set.
func (d *Dir) LoadChannels() (*channel.Set, error) {
	var doc channelsDoc
	if err := d.load(channelsFile, &doc); err != nil {
		return nil, err
	}
	return channel.New(doc.Channels...), nil
}

// SaveChannels rewrites the channels document.
func (d *Dir) SaveChannels(s *channel.Set) error {
	return d.save(channelsFile, &channelsDoc{Channels: s.Names()})
}

// LoadRoles loads the role registry. An absent document is an empty registry.
func (d *Dir) LoadRoles() (*role.Registry, error) {
	var doc rolesDoc
	if err := d.load(rolesFile, &doc); err != nil {
		return nil, err
	}
	users := make(map[string]role.Role, len(doc.Users))
	for name, e := range doc.Users {
		users[name] = e.Type
	}
	g := role.New()
	g.Replace(users)
	return g, nil
}

// SaveRoles rewrites the roles document.
func (d *Dir) SaveRoles(g *role.Registry) error {
	doc := rolesDoc{Users: make(map[string]roleEntry, g.Len())}
	for name, r := range g.All() {
		doc.Users[name] = roleEntry{Type: r}
	}
	return d.save(rolesFile, &doc)
}

// LoadPlayers loads the player store. An absent document is an empty store.
func (d *Dir) LoadPlayers() (*player.Store, error) {
	var doc playersDoc
	if err := d.load(playersFile, &doc); err != nil {
		return nil, err
	}
	s := player.New()
	s.Replace(doc.Players)
	return s, nil
}

// SavePlayers rewrites the players document.
func (d *Dir) SavePlayers(s *player.Store) error {
	return d.save(playersFile, &playersDoc{Players: s.Snapshot()})
}

func (d *Dir) load(name string, doc any) error {
	b, err := os.ReadFile(filepath.Join(d.path, name))
	switch {
	case err == nil: // do nothing
	case os.IsNotExist(err):
		return nil
	default:
		return fmt.Errorf("couldn't read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, doc); err != nil {
		return fmt.Errorf("couldn't decode %s: %w", name, err)
	}
	return nil
}

// save writes the document to a temporary file and renames it into place, so
// a crash mid-write never leaves a truncated document.
func (d *Dir) save(name string, doc any) error {
	b, err := json.Marshal(doc, jsontext.WithIndent("    "))
	if err != nil {
		return fmt.Errorf("couldn't encode %s: %w", name, err)
	}
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("couldn't create data directory: %w", err)
	}
	file := filepath.Join(d.path, name)
	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("couldn't write %s: %w", name, err)
	}
	if err := os.Rename(tmp, file); err != nil {
		return fmt.Errorf("couldn't replace %s: %w", name, err)
	}
	return nil
}
