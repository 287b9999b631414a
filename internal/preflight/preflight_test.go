package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wordcut/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Staging directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
	if !strings.Contains(result.Detail, "read/write ok") {
		t.Fatalf("unexpected detail: %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("Staging directory", filepath.Join(t.TempDir(), "missing"))
	if result.Passed {
		t.Fatalf("expected failure, got %+v", result)
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("Output directory", file)
	if result.Passed {
		t.Fatalf("expected failure, got %+v", result)
	}
	if !strings.Contains(result.Detail, "not a directory") {
		t.Fatalf("unexpected detail: %q", result.Detail)
	}
}

func TestCheckDiskSpace(t *testing.T) {
	dir := t.TempDir()

	result := CheckDiskSpace("Staging disk space", dir, 1)
	if !result.Passed {
		t.Fatalf("expected pass with 1-byte minimum, got %+v", result)
	}
	if !strings.Contains(result.Detail, "GiB free") {
		t.Fatalf("unexpected detail: %q", result.Detail)
	}

	result = CheckDiskSpace("Staging disk space", filepath.Join(dir, "missing"), 1)
	if result.Passed {
		t.Fatalf("expected statfs failure, got %+v", result)
	}
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	ffmpeg := filepath.Join(binDir, "ffmpeg")
	if err := os.WriteFile(ffmpeg, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Paths.StagingDir = dir
	cfg.Paths.OutputDir = dir
	cfg.Media.FFmpegBinary = ffmpeg
	cfg.Media.FFprobeBinary = filepath.Join(binDir, "no-such-ffprobe")

	results := RunAll(context.Background(), &cfg)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if Passed(results) {
		t.Fatal("expected overall failure with missing ffprobe")
	}

	byName := make(map[string]Result, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}
	if !byName["FFmpeg"].Passed {
		t.Fatalf("expected FFmpeg to pass: %+v", byName["FFmpeg"])
	}
	if byName["FFprobe"].Passed {
		t.Fatalf("expected FFprobe to fail: %+v", byName["FFprobe"])
	}
	if !byName["Staging directory"].Passed {
		t.Fatalf("expected staging directory to pass: %+v", byName["Staging directory"])
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
}
