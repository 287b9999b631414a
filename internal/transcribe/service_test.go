package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wordcut/internal/project"
)

const sampleWhisperJSON = `{
  "segments": [
    {
      "text": "hello world",
      "start": 0.1,
      "end": 1.4,
      "words": [
        {"word": "hello", "start": 0.1, "end": 0.6},
        {"word": "world", "start": 0.8, "end": 1.4},
        {"word": "7"}
      ]
    }
  ]
}`

func TestLoadWordsAssignsClipQualifiedIDs(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "audio.json")
	if err := os.WriteFile(jsonPath, []byte(sampleWhisperJSON), 0o644); err != nil {
		t.Fatalf("write json: %v", err)
	}

	words, err := LoadWords(jsonPath, "clip-a", 2)
	if err != nil {
		t.Fatalf("LoadWords returned error: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if words[0].ID != "clip-a-w0" || words[1].ID != "clip-a-w1" {
		t.Fatalf("unexpected ids: %q %q", words[0].ID, words[1].ID)
	}
	if words[1].ClipIndex != 2 {
		t.Fatalf("unexpected clip index: %d", words[1].ClipIndex)
	}
	// Unaligned token inherits the previous word's end time.
	if words[2].Start != 1.4 || words[2].End != 1.4 {
		t.Fatalf("unexpected unaligned word times: %v-%v", words[2].Start, words[2].End)
	}
}

func TestProcessClipRunsExtractTranscribeAndSilence(t *testing.T) {
	workDir := t.TempDir()
	svc := NewService(Config{Model: "small", Language: "en", SilenceNoiseDB: -30}, "ffmpeg")

	var commands [][]string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		commands = append(commands, append([]string{name}, args...))
		switch name {
		case "ffmpeg":
			if contains(args, "-af") {
				return []byte("[silencedetect @ 0x1] silence_start: 2.5\n[silencedetect @ 0x1] silence_end: 3.2 | silence_duration: 0.7\n"), nil
			}
			return nil, nil
		case UVXCommand:
			for i, arg := range args {
				if arg == "--output_dir" {
					jsonPath := filepath.Join(args[i+1], "audio.json")
					return nil, os.WriteFile(jsonPath, []byte(sampleWhisperJSON), 0o644)
				}
			}
			t.Fatal("uvx invoked without --output_dir")
		}
		t.Fatalf("unexpected command %q", name)
		return nil, nil
	})

	clip := project.Clip{ID: "clip-a", SourcePath: "/media/clip-a.mp4"}
	words, silences, err := svc.ProcessClip(context.Background(), clip, 0, workDir)
	if err != nil {
		t.Fatalf("ProcessClip returned error: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if len(silences) != 1 {
		t.Fatalf("expected 1 silence, got %d", len(silences))
	}
	if silences[0].ID != "s0" || silences[0].Start != 2.5 {
		t.Fatalf("unexpected silence: %+v", silences[0])
	}
	if len(commands) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(commands))
	}
	extract := commands[0]
	if extract[0] != "ffmpeg" || !contains(extract, "-ar") {
		t.Fatalf("unexpected extract command: %v", extract)
	}
	whisper := commands[1]
	if whisper[0] != UVXCommand || !contains(whisper, "small") {
		t.Fatalf("unexpected whisperx command: %v", whisper)
	}
	if !contains(whisper, "--language") || !contains(whisper, "en") {
		t.Fatalf("expected language args, got %v", whisper)
	}
}

func TestProcessClipsContinuesPastFailures(t *testing.T) {
	workDir := t.TempDir()
	svc := NewService(Config{SilenceNoiseDB: -30}, "ffmpeg")
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if name == "ffmpeg" && contains(args, "bad.mp4") {
			return []byte("No such file or directory"), errors.New("exit status 1")
		}
		if name == UVXCommand {
			for i, arg := range args {
				if arg == "--output_dir" {
					jsonPath := filepath.Join(args[i+1], "audio.json")
					return nil, os.WriteFile(jsonPath, []byte(sampleWhisperJSON), 0o644)
				}
			}
		}
		if name == "ffmpeg" && contains(args, "-af") {
			return nil, nil
		}
		return nil, nil
	})

	clips := []project.Clip{
		{ID: "bad", SourcePath: "bad.mp4"},
		{ID: "good", SourcePath: "good.mp4"},
	}
	results := svc.ProcessClips(context.Background(), clips, workDir)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Fatal("expected error for failing clip")
	}
	if !strings.Contains(results[0].Err.Error(), "No such file") {
		t.Fatalf("expected tool output in error, got %v", results[0].Err)
	}
	if results[1].Err != nil {
		t.Fatalf("expected second clip to succeed, got %v", results[1].Err)
	}
	if len(results[1].Words) == 0 {
		t.Fatal("expected words for second clip")
	}
}

func TestParseSilences(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []project.SilenceSegment
	}{
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
		{
			name: "two segments",
			output: "[silencedetect @ 0x55] silence_start: 0\n" +
				"[silencedetect @ 0x55] silence_end: 0.8 | silence_duration: 0.8\n" +
				"frame=  100 fps=0.0\n" +
				"[silencedetect @ 0x55] silence_start: 4.25\n" +
				"[silencedetect @ 0x55] silence_end: 5 | silence_duration: 0.75\n",
			want: []project.SilenceSegment{
				{ID: "s0", Start: 0, End: 0.8, Duration: 0.8},
				{ID: "s1", Start: 4.25, End: 5, Duration: 0.75},
			},
		},
		{
			name:   "trailing open silence dropped",
			output: "[silencedetect @ 0x55] silence_start: 9.1\n",
			want:   nil,
		},
		{
			name: "end without start ignored",
			output: "[silencedetect @ 0x55] silence_end: 1.0 | silence_duration: 1.0\n" +
				"[silencedetect @ 0x55] silence_start: 2.0\n" +
				"[silencedetect @ 0x55] silence_end: 2.6 | silence_duration: 0.6\n",
			want: []project.SilenceSegment{
				{ID: "s0", Start: 2.0, End: 2.6, Duration: 0.6},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseSilences(tc.output)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d segments, got %d: %+v", len(tc.want), len(got), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("segment %d: got %+v want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func contains(args []string, want string) bool {
	for _, arg := range args {
		if arg == want {
			return true
		}
	}
	return false
}
