package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"logscout/internal/search/searchtest"
)

// demoCommand serves generated records from an in-process search service
func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Browse generated log records served locally",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address for the local search service",
				Value: "127.0.0.1:0",
			},
			&cli.IntFlag{
				Name:  "records",
				Usage: "Number of records to generate",
				Value: 500,
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Seed for the record generator",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "serve-only",
				Usage: "Only run the search service and print its URL",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			logger, closer, err := setupLogging(c, cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			fake := searchtest.New(
				searchtest.WithLogger(logger),
				searchtest.WithNullForEmpty(false),
				searchtest.WithEntries(searchtest.Generate(int(c.Int("records")), c.Int64("seed"), time.Now())...),
			)
			baseURL, shutdown, err := fake.Start(c.String("addr"))
			if err != nil {
				return err
			}
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(sctx); err != nil {
					logger.Error().Err(err).Msg("search service shutdown")
				}
			}()
			logger.Info().Str("url", baseURL).Int("records", fake.Len()).Msg("demo search service listening")

			if c.Bool("serve-only") {
				fmt.Println(baseURL)
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				<-ctx.Done()
				return nil
			}

			cfg.Endpoint = baseURL
			return runUI(ctx, cfg, logger)
		},
	}
}
