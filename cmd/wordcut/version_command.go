package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wordcut/internal/api"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the wordcut version",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "wordcut %s\n", api.Version)
			return nil
		},
	}
}
