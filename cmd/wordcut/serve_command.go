package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wordcut/internal/daemon"
	"wordcut/internal/logging"
	"wordcut/internal/preflight"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var skipChecks bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wordcut daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := logging.NewForDir(cfg.Paths.LogDir, cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			if !skipChecks {
				results := preflight.RunAll(signalCtx, cfg)
				for _, r := range results {
					if !r.Passed {
						logger.Error("preflight check failed", "check", r.Name, "detail", r.Detail)
					}
				}
				if !preflight.Passed(results) {
					return fmt.Errorf("preflight checks failed; run `wordcut status` for details")
				}
			}

			d, err := daemon.Bootstrap(cfg, logger)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Start(signalCtx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wordcut daemon listening on %s\n", cfg.Paths.APIBind)

			done := make(chan error, 1)
			go func() { done <- d.Wait() }()

			select {
			case <-signalCtx.Done():
				logger.Info("wordcut daemon shutting down")
				d.Stop()
				return nil
			case err := <-done:
				d.Stop()
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Skip preflight checks at startup")
	return cmd
}
