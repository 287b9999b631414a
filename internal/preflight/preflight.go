package preflight

import (
	"context"

	"wordcut/internal/config"
	"wordcut/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// MinFreeBytes is the free-space floor for the staging and output
// directories. Lossless cutting doubles a clip's footprint while segments
// exist, so a thin margin fails exports midway.
const MinFreeBytes = 2 << 30

// RunAll executes every applicable preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckDiskSpace("Staging disk space", cfg.Paths.StagingDir, MinFreeBytes))
	results = append(results, CheckDiskSpace("Output disk space", cfg.Paths.OutputDir, MinFreeBytes))

	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Command
		}
		if status.Optional && !status.Available {
			// Optional tools are reported but never block startup.
			result.Passed = true
		}
		results = append(results, result)
	}
	return results
}

// Passed reports whether every result succeeded.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// CheckSystemDeps evaluates the external binaries the daemon and CLI need.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Media.FFmpegBinary,
			Description: "Required for cutting and audio extraction",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Media.FFprobeBinary,
			Description: "Required for clip inspection",
		},
		{
			Name:        "uvx",
			Command:     "uvx",
			Description: "Required for WhisperX transcription",
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}
