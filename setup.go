package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/zephyrtronium/thelist/role"
	"github.com/zephyrtronium/thelist/store"
)

// cliInit interactively seeds the channel and role documents so the bot has
// somewhere to sit and someone to listen to on its first run. Existing
// documents are loaded first, so init never discards entries.
func cliInit(ctx context.Context, cmd *cli.Command) error {
	slog.SetDefault(loggerFromFlags(cmd))
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("couldn't load .env: %w", err)
	}
	r, err := os.Open(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("couldn't open config file: %w", err)
	}
	cfg, _, err := Load(r)
	if err != nil {
		return fmt.Errorf("couldn't load config: %w", err)
	}
	r.Close()

	st := store.New(cfg.Data)
	channels, err := st.LoadChannels()
	if err != nil {
		return fmt.Errorf("couldn't load channels: %w", err)
	}
	roles, err := st.LoadRoles()
	if err != nil {
		return fmt.Errorf("couldn't load roles: %w", err)
	}

	scan := bufio.NewScanner(os.Stdin)
	chans, err := prompt(scan, "Channels to join (space-separated, e.g. #bocchi):")
	if err != nil {
		return err
	}
	for i, ch := range chans {
		if !strings.HasPrefix(ch, "#") {
			chans[i] = "#" + ch
		}
	}
	supers, err := prompt(scan, "Super-admin login names (space-separated):")
	if err != nil {
		return err
	}

	added := channels.Add(chans)
	for _, name := range supers {
		if !roles.Add(name, role.SuperAdmin) {
			fmt.Printf("%s is already a super-admin\n", name)
		}
	}
	if err := st.SaveChannels(channels); err != nil {
		return fmt.Errorf("couldn't save channels: %w", err)
	}
	if err := st.SaveRoles(roles); err != nil {
		return fmt.Errorf("couldn't save roles: %w", err)
	}
	fmt.Printf("added channels %v; %s now has %d entries\n", added, cfg.Data, roles.Len())
	return nil
}

// prompt prints a prompt and reads one line of whitespace-separated names.
func prompt(scan *bufio.Scanner, msg string) ([]string, error) {
	fmt.Println(msg)
	if !scan.Scan() {
		if err := scan.Err(); err != nil {
			return nil, fmt.Errorf("couldn't read input: %w", err)
		}
		return nil, nil
	}
	return strings.Fields(scan.Text()), nil
}
