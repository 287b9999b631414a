package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"wordcut/internal/api"
	"wordcut/internal/client"
	"wordcut/internal/transcribe"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var model string
	var language string
	var cuda bool
	var all bool

	cmd := &cobra.Command{
		Use:   "transcribe <project-id>",
		Short: "Transcribe project clips with WhisperX and attach the words",
		Long: "Runs WhisperX locally over clips that have no transcript yet and " +
			"uploads the resulting words and silence segments to the daemon. " +
			"Use --all to retranscribe clips that already have words.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if model == "" {
				model = cfg.Transcription.WhisperXModel
			}
			if language == "" {
				language = cfg.Transcription.Language
			}
			if !cmd.Flags().Changed("cuda") {
				cuda = cfg.Transcription.CUDAEnabled
			}

			service := transcribe.NewService(transcribe.Config{
				Model:          model,
				CUDAEnabled:    cuda,
				Language:       language,
				SilenceNoiseDB: cfg.Transcription.SilenceNoiseDB,
			}, cfg.Media.FFmpegBinary)

			return ctx.withClient(func(cl *client.Client) error {
				p, err := cl.GetProject(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(p.Clips) == 0 {
					return fmt.Errorf("project %s has no clips", p.ID)
				}

				workDir := filepath.Join(cfg.Paths.StagingDir, p.ID)
				out := cmd.OutOrStdout()
				var failures int

				for i, clip := range p.Clips {
					if len(clip.Words) > 0 && !all {
						fmt.Fprintf(out, "Skipping %s (already transcribed)\n", clip.Title)
						continue
					}

					fmt.Fprintf(out, "Transcribing %s with %s...\n", clip.Title, service.Model())
					words, silences, err := service.ProcessClip(cmd.Context(), clip, i, workDir)
					if err != nil {
						failures++
						fmt.Fprintf(out, "  failed: %v\n", err)
						continue
					}

					_, err = cl.AttachTranscript(cmd.Context(), p.ID, clip.ID, api.TranscriptRequest{
						Words:           words,
						SilenceSegments: silences,
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "  %d words, %d silence segments\n", len(words), len(silences))
				}

				if failures > 0 {
					return fmt.Errorf("%d clip(s) failed to transcribe", failures)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "WhisperX model (defaults to the configured model)")
	cmd.Flags().StringVar(&language, "language", "", "Transcription language (defaults to the configured language)")
	cmd.Flags().BoolVar(&cuda, "cuda", false, "Use CUDA acceleration")
	cmd.Flags().BoolVar(&all, "all", false, "Retranscribe clips that already have words")
	return cmd
}
