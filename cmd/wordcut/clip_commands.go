package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wordcut/internal/api"
	"wordcut/internal/client"
	"wordcut/internal/config"
)

func newClipCommand(ctx *commandContext) *cobra.Command {
	clipCmd := &cobra.Command{
		Use:   "clip",
		Short: "Manage project clips",
	}

	clipCmd.AddCommand(newClipAddCommand(ctx))

	return clipCmd
}

func newClipAddCommand(ctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add <project-id> <media-file>",
		Short: "Register a media file as a project clip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("inspect media file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory, expected a media file", path)
			}

			return ctx.withClient(func(cl *client.Client) error {
				clip, err := cl.AddClip(cmd.Context(), args[0], api.AddClipRequest{
					SourcePath: path,
					Title:      title,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added clip %s (%s, %.2fs)\n", clip.Title, clip.ID, clip.Duration)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Display title for the clip (derived from the filename when empty)")
	return cmd
}
