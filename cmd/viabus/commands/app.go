// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/viabus-travel/viabus/cmd/viabus/cli"
	"github.com/viabus-travel/viabus/lib/booking"
	"github.com/viabus-travel/viabus/lib/bookingui"
	"github.com/viabus-travel/viabus/lib/config"
	"github.com/viabus-travel/viabus/lib/inventory"
	"github.com/viabus-travel/viabus/lib/seathold"
	"github.com/viabus-travel/viabus/lib/seatlayout"
	"github.com/viabus-travel/viabus/lib/seatpoll"
	"github.com/viabus-travel/viabus/lib/session"
)

// appOptions are the flags shared by every command that starts the
// booking TUI.
type appOptions struct {
	configPath string
	logOutput  string
	noColor    bool
}

func (o *appOptions) bind(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.configPath, "config", "", "path to viabus.yaml (default: $VIABUS_CONFIG)")
	flagSet.StringVar(&o.logOutput, "log-output", "", "append JSON log records to this file")
	flagSet.BoolVar(&o.noColor, "no-color", false, "disable colored output")
}

// loadConfig resolves the configuration in precedence order: --config
// flag, VIABUS_CONFIG environment variable, built-in defaults. The
// result is validated before use.
func (o appOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case o.configPath != "":
		cfg, err = config.LoadFile(o.configPath)
	case os.Getenv("VIABUS_CONFIG") != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runBookingApp builds the full object graph and runs the TUI until
// the user quits. A non-empty tripID skips the search page and opens
// that trip's seat map directly.
func runBookingApp(opts appOptions, query booking.TripQuery, filters booking.TripFilters, tripID string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	requestTimeout, err := cfg.RequestTimeout()
	if err != nil {
		return fmt.Errorf("config: inventory.request_timeout: %w", err)
	}
	pollInterval, err := cfg.PollInterval()
	if err != nil {
		return fmt.Errorf("config: polling.interval: %w", err)
	}

	logger, closeLog, err := cli.NewProgramLogger(opts.logOutput)
	if err != nil {
		return err
	}
	defer closeLog()

	if opts.noColor {
		lipgloss.DefaultRenderer().SetColorProfile(termenv.Ascii)
	}

	client, err := inventory.NewClient(inventory.ClientConfig{
		BaseURL:    cfg.Inventory.BaseURL,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		Logger:     logger.With("component", "inventory"),
	})
	if err != nil {
		return err
	}

	var catalog *seatlayout.Catalog
	if cfg.Layout.CatalogFile != "" {
		catalog, err = seatlayout.LoadCatalog(cfg.Layout.CatalogFile)
		if err != nil {
			return err
		}
	}

	store := session.New()
	coordinator, err := seathold.New(seathold.Config{
		Store:     store,
		Inventory: client,
		Logger:    logger.With("component", "seathold"),
	})
	if err != nil {
		return err
	}
	defer coordinator.Close()

	poller, err := seatpoll.New(seatpoll.Config{
		Fetch:        coordinator.RefreshAvailability,
		Interval:     pollInterval,
		FetchOnStart: cfg.Polling.FetchOnStart,
		Logger:       logger.With("component", "seatpoll"),
	})
	if err != nil {
		return err
	}
	defer poller.Close()

	model := bookingui.NewModel(bookingui.Config{
		Store:       store,
		Inventory:   client,
		Coordinator: coordinator,
		Poller:      poller,
		Catalog:     catalog,
		Query:       query,
		Filters:     filters,
		TripID:      tripID,
		Logger:      logger.With("component", "bookingui"),
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("viabus: TUI terminated: %w", err)
	}
	return nil
}
