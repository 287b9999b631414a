package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wordcut/internal/client"
	"wordcut/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and environment health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)

			daemonUp := false
			daemonDetail := ""
			cl, err := ctx.apiClient()
			if err == nil {
				health, herr := cl.Health(cmd.Context())
				switch {
				case herr == nil:
					daemonUp = true
					daemonDetail = fmt.Sprintf("version %s, up %s", health.Version, (time.Duration(health.UptimeS) * time.Second).String())
				case client.IsDaemonUnavailable(herr):
					daemonDetail = fmt.Sprintf("not reachable at %s", ctx.apiAddress())
				default:
					daemonDetail = herr.Error()
				}
			} else {
				daemonDetail = err.Error()
			}

			if asJSON {
				type resultJSON struct {
					Name   string `json:"name"`
					Passed bool   `json:"passed"`
					Detail string `json:"detail"`
				}
				payload := struct {
					DaemonRunning bool         `json:"daemonRunning"`
					DaemonDetail  string       `json:"daemonDetail"`
					Checks        []resultJSON `json:"checks"`
				}{DaemonRunning: daemonUp, DaemonDetail: daemonDetail}
				for _, r := range results {
					payload.Checks = append(payload.Checks, resultJSON{Name: r.Name, Passed: r.Passed, Detail: r.Detail})
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Daemon", colorize) {
				fmt.Fprintln(out, line)
			}
			kind := statusError
			if daemonUp {
				kind = statusOK
			}
			fmt.Fprintln(out, renderStatusLine("API", kind, daemonDetail, colorize))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}
