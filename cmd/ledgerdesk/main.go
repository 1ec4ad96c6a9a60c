package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okaya/ledgerdesk/internal/api"
	"github.com/okaya/ledgerdesk/internal/config"
	"github.com/okaya/ledgerdesk/internal/export"
	"github.com/okaya/ledgerdesk/internal/filter"
	"github.com/okaya/ledgerdesk/internal/journal"
	"github.com/okaya/ledgerdesk/internal/ledger"
	"github.com/okaya/ledgerdesk/internal/refdata"
	"github.com/okaya/ledgerdesk/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client, err := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	if cfg.Auth.Email != "" {
		password := cfg.Password()
		if password == "" {
			log.Fatalf("login: password env %s is empty", cfg.Auth.PasswordEnv)
		}
		if err := client.Login(ctx, cfg.Auth.Email, password); err != nil {
			log.Fatalf("login: %v", err)
		}
	}

	// local journal (export quota stamps + activity trail); optional
	var store *journal.Store
	if cfg.Journal.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0o755); err != nil {
			log.Fatalf("mkdir journal dir: %v", err)
		}
		if err := journal.RunMigrations(cfg.Journal.Path, "internal/journal/migrations"); err != nil {
			log.Fatalf("migrate journal: %v", err)
		}
		db, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			log.Fatalf("open journal: %v", err)
		}
		defer db.Close()
		store = journal.NewStore(db)
	}

	caps := cfg.SessionCapabilities()

	profileDir, err := filter.DefaultDir()
	if err != nil {
		log.Fatalf("profile dir: %v", err)
	}
	profiles := filter.NewStore(profileDir)

	refs, err := refdata.Load(ctx, client)
	if err != nil {
		log.Printf("warn: reference lists unavailable: %v", err)
	}

	var activity ledger.ActivityLogger
	var stamps export.StampStore
	if store != nil {
		activity = store
		stamps = store
	}
	records := ledger.New(client, caps, activity)
	exports := export.New(caps, client, stamps)

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		log.Printf("warn: using local timezone due to load failure: %v", err)
		loc = time.Local
	}

	p := tea.NewProgram(tui.New(ctx, cfg, tui.Deps{
		API:      client,
		Records:  records,
		Exports:  exports,
		Profiles: profiles,
		Refs:     refs,
	}, loc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
