package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jask/paintingdb/internal/app"
	"github.com/jask/paintingdb/internal/config"
	"github.com/jask/paintingdb/internal/service"
	"github.com/jask/paintingdb/internal/tui"
)

func main() {
	ctx := context.Background()

	flags := config.Flags("paintingdb")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flags)
			return
		}
		log.Fatalf("flags: %v", err)
	}
	if help, _ := flags.GetBool("help"); help {
		printHelp(flags)
		return
	}

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if path, ok, err := config.SaveRequested(flags, cfg); ok {
		if err != nil {
			log.Fatalf("write config: %v", err)
		}
		fmt.Printf("config written to %s\n", path)
		return
	}

	ac, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer ac.Close()

	if reset, _ := flags.GetBool("reset"); reset {
		maintenance := &service.MaintenanceService{DB: ac.DB, Logger: ac.Logger}
		st, err := maintenance.Reseed(ctx)
		if err != nil {
			log.Fatalf("reset: %v", err)
		}
		ac.Logger.Info().Str("component", "app").Int("painters", st.Painters).Int("paintings", st.Paintings).Msg("catalogue reseeded")
	}

	parentList, childList := tui.NewScrollList(), tui.NewScrollList()
	result := tui.NewResultLabel()
	chain, err := app.BuildChain(ctx, ac, app.Views{Parent: parentList, Child: childList, Result: result})
	if err != nil {
		log.Fatalf("build browser: %v", err)
	}

	b := cfg.Browser
	model := tui.New(ctx, ac.Logger, []tui.Pane{
		{Title: b.Parent.Title, List: parentList, Selector: chain.Parent},
		{Title: b.Child.Title, List: childList, Selector: chain.Child},
	}, result, b.Result.Title)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
	ac.Logger.Info().Str("component", "app").Msg("closing database connection")
}

func printHelp(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `paintingdb: browse painters and their paintings.

Usage: paintingdb [flags]

Configuration is read from $PAINTINGDB_CONFIG or ~/.config/paintingdb/config.toml;
PAINTINGDB_* environment variables override it and flags override both.

Flags:
%s`, flags.FlagUsages())
}
