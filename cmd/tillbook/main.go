package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kavaroom/tillbook/internal/config"
	"github.com/kavaroom/tillbook/internal/sales"
	"github.com/kavaroom/tillbook/internal/state"
	"github.com/kavaroom/tillbook/internal/store"
	"github.com/kavaroom/tillbook/internal/tui"
)

func main() {
	ephemeral := flag.Bool("ephemeral", false, "run with in-memory storage, nothing written to disk")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var kv store.KV
	if *ephemeral {
		kv = store.NewMemory()
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			log.Fatalf("mkdir db dir: %v", err)
		}
		db, err := store.Open(cfg.Database.Path)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()
		if err := store.Migrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		kv = store.NewSQLite(db)
	}

	st := state.Load(ctx, kv)
	svc := sales.New(st)

	p := tea.NewProgram(tui.New(ctx, cfg, st, svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
