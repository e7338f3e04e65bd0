// Command devserver serves the SPA shell, its assets and the demo
// counter endpoints.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcrobe/hashspa/devserver"
)

func newRootCmd() *cobra.Command {
	cfg := devserver.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "devserver",
		Short:         "Serve the hashspa demo application",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cfg.Dev)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return devserver.New(cfg, logger).Start(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	f.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "directory served under /public/")
	f.StringVar(&cfg.SourceDir, "source", cfg.SourceDir, "directory served under /source/")
	f.StringVar(&cfg.LogDir, "logdir", cfg.LogDir, "directory for client logs posted to /yoru")
	f.StringVar(&cfg.Title, "title", cfg.Title, "shell page title")
	f.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "counter stream interval")
	f.Float64Var(&cfg.RateRPS, "rate", cfg.RateRPS, "POST requests per second per client (0 disables)")
	f.IntVar(&cfg.RateBurst, "burst", cfg.RateBurst, "POST burst per client")
	f.BoolVar(&cfg.Dev, "dev", cfg.Dev, "development logging")

	return cmd
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
