package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wordcut/internal/client"
)

const exportPollInterval = 500 * time.Millisecond

func newExportCommand(ctx *commandContext) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "export <project-id>",
		Short: "Export the collapsed timeline to a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(cl *client.Client) error {
				jobID, err := cl.StartExport(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Export job %s started\n", jobID)
				if !wait {
					fmt.Fprintf(out, "Poll with `wordcut export status %s`\n", jobID)
					return nil
				}
				return pollExport(cmd, cl, jobID)
			})
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", true, "Block until the export finishes")
	cmd.AddCommand(newExportStatusCommand(ctx))
	return cmd
}

func newExportStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the status of an export job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(cl *client.Client) error {
				status, err := cl.ExportStatus(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, status)
			})
		},
	}
}

func pollExport(cmd *cobra.Command, cl *client.Client, jobID string) error {
	out := cmd.OutOrStdout()
	lastMessage := ""
	for {
		status, err := cl.ExportStatus(cmd.Context(), jobID)
		if err != nil {
			return err
		}
		switch status.Type {
		case "done":
			fmt.Fprintf(out, "Export complete: %s\n", status.OutputPath)
			return nil
		case "error":
			return fmt.Errorf("export failed: %s", status.Message)
		default:
			if status.Message != lastMessage {
				fmt.Fprintf(out, "  %3.0f%% %s\n", status.Percent, status.Message)
				lastMessage = status.Message
			}
		}

		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-time.After(exportPollInterval):
		}
	}
}
