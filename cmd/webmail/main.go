package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/webmail/internal/api"
	"github.com/nhle/webmail/internal/app"
	"github.com/nhle/webmail/internal/auth"
	"github.com/nhle/webmail/internal/credential"
	"github.com/nhle/webmail/internal/engine"
	"github.com/nhle/webmail/internal/model"
	"github.com/nhle/webmail/internal/store"
)

func main() {
	configPathFlag := flag.String("config", "", "Path to YAML configuration file (default: ~/.config/webmail/config.yaml)")
	dbPathFlag := flag.String("db", "", "Path to the local database (default: ~/.config/webmail/webmail.db)")
	debugFlag := flag.Bool("debug", false, "Write debug logs to webmail.log")
	flag.Parse()

	configPath := *configPathFlag
	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	if *debugFlag {
		f, err := tea.LogToFile("webmail.log", "webmail")
		if err != nil {
			log.Fatalf("Could not open log file: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(os.Stderr)
	}

	dbPath := *dbPathFlag
	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		log.Fatalf("Could not open database at %s: %v", dbPath, err)
	}
	defer s.Close()

	creds := credential.NewKeyring()
	flow := auth.NewFlow(cfg.OAuth)
	refresher := auth.NewTokenRefresher(cfg.OAuth)

	timeout := time.Duration(cfg.API.TimeoutSec) * time.Second
	client := api.NewClient(cfg.API.BaseURL, creds, refresher, timeout)

	deps := app.Deps{
		Store:   s,
		Creds:   creds,
		Client:  client,
		Fetcher: engine.NewFetcher(client, timeout),
		Mutator: engine.NewMutator(client, timeout),
		Flow:    flow,
	}

	root := app.New(deps, startFolder(s))

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// defaultDBPath returns ~/.config/webmail/webmail.db, falling back to the
// working directory when the home directory is unknown.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "webmail.db"
	}
	return filepath.Join(home, ".config", "webmail", "webmail.db")
}

// startFolder restores the folder the user last had open.
func startFolder(s store.Store) model.Folder {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	value, err := s.GetSetting(ctx, store.SettingLastFolder)
	if err != nil || value == "" {
		return model.FolderInbox
	}

	for _, f := range model.Folders {
		if string(f) == value {
			return f
		}
	}
	return model.FolderInbox
}
