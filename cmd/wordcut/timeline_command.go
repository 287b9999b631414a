package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wordcut/internal/client"
	"wordcut/internal/timeline"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "timeline <project-id>",
		Short: "Show the collapsed timeline preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(cl *client.Client) error {
				tl, err := cl.Timeline(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, tl)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Collapsed duration: %.2fs", tl.TotalDuration)
				if len(tl.DeletedRanges) > 0 {
					removed := 0.0
					for _, r := range tl.DeletedRanges {
						removed += r.Duration()
					}
					fmt.Fprintf(out, " (%.2fs removed)", removed)
				}
				fmt.Fprintln(out)

				if len(tl.ScriptTrack.Items) == 0 {
					fmt.Fprintln(out, "No script items; transcribe the project first")
					return nil
				}
				rows := make([][]string, 0, len(tl.ScriptTrack.Items))
				for _, item := range tl.ScriptTrack.Items {
					label := item.Data.Text
					if item.Type == timeline.TypePause {
						label = fmt.Sprintf("(pause %.2fs)", item.End-item.Start)
					}
					rows = append(rows, []string{
						fmt.Sprintf("%.2f", item.Start),
						fmt.Sprintf("%.2f", item.End),
						string(item.Type),
						label,
					})
				}
				table := renderTable(
					[]string{"Start", "End", "Type", "Text"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft},
				)
				fmt.Fprintln(out, table)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	return cmd
}
