package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"logscout/internal/config"
	"logscout/internal/eventbus"
	"logscout/internal/logging"
	"logscout/internal/search"
	"logscout/internal/ui"
)

func main() {
	app := &cli.Command{
		Name:  "logscout",
		Usage: "Search a log service from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path (default: " + config.DefaultPath() + ")",
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "Base URL of the search service",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from this file",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return run(ctx, c, cfg)
		},
		Commands: []*cli.Command{
			demoCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "logscout: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers the config file, the environment and the flags
func loadConfig(c *cli.Command) (*config.Config, error) {
	if err := config.LoadEnvFile(c.String("env-file")); err != nil {
		return nil, err
	}

	configSvc := config.NewConfigService()
	if c.IsSet("config") {
		configSvc = config.NewConfigServiceAt(c.String("config"))
	}
	cfg, err := configSvc.Load()
	if err != nil {
		if cfg == nil {
			return nil, err
		}
		// Defaults are usable even when they could not be written out
		fmt.Fprintf(os.Stderr, "logscout: %v\n", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if c.IsSet("endpoint") {
		cfg.Endpoint = c.String("endpoint")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(c *cli.Command, cfg *config.Config) (zerolog.Logger, io.Closer, error) {
	return logging.Setup(logging.Options{
		File:  cfg.LogFile,
		Level: cfg.LogLevel,
		Debug: c.Bool("debug"),
	})
}

func run(ctx context.Context, c *cli.Command, cfg *config.Config) error {
	logger, closer, err := setupLogging(c, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	return runUI(ctx, cfg, logger)
}

// runUI wires the search client, the event bus and the Bubble Tea program
func runUI(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New(logger)
	defer bus.Close()
	unsubscribe := subscribeEventLog(bus, logger)
	defer unsubscribe()

	client, err := search.NewClient(cfg.Endpoint,
		search.WithTimeout(cfg.RequestTimeout.Duration),
		search.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info().Str("endpoint", cfg.Endpoint).Dur("timeout", cfg.RequestTimeout.Duration).Msg("starting logscout")

	model := ui.NewModel(ctx, cfg, client, bus, logger)
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UISettings.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)
	model.SetProgram(p)

	if _, err := p.Run(); err != nil {
		// A signal cancels the context, which kills the program
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info().Msg("interrupted")
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info().Msg("bye")
	return nil
}
