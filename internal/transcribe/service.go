package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"wordcut/internal/project"
	"wordcut/internal/services"
)

// WhisperX invocation constants.
const (
	DefaultModel   = "large-v3-turbo"
	CUDAIndexURL   = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL   = "https://pypi.org/simple"
	BatchSize      = "4"
	OutputFormat   = "json"
	CPUDevice      = "cpu"
	CUDADevice     = "cuda"
	CPUComputeType = "float32"
	UVXCommand     = "uvx"
)

// Config captures runtime settings for transcription.
type Config struct {
	// Model is the WhisperX model to use (e.g. "large-v3-turbo").
	Model string
	// CUDAEnabled enables GPU acceleration.
	CUDAEnabled bool
	// Language is the ISO-639-1 transcription language.
	Language string
	// SilenceNoiseDB is the silencedetect noise floor in decibels.
	SilenceNoiseDB float64
	// SilenceMinDuration is the minimum silence length reported, seconds.
	SilenceMinDuration float64
}

// runner executes an external command and returns its combined output.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Service provides WhisperX transcription and silence detection.
type Service struct {
	cfg          Config
	ffmpegBinary string
	run          runner
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config, ffmpegBinary string) *Service {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	if cfg.SilenceMinDuration <= 0 {
		cfg.SilenceMinDuration = 0.3
	}
	return &Service{cfg: cfg, ffmpegBinary: ffmpegBinary, run: runCommand}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(run func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	s.run = run
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// ClipResult holds the outcome of transcribing a single clip.
type ClipResult struct {
	ClipID   string
	Words    []project.Word
	Silences []project.SilenceSegment
	Err      error
}

// ProcessClips transcribes every clip in order. A clip that fails records its
// error in the result and processing continues with the next clip.
func (s *Service) ProcessClips(ctx context.Context, clips []project.Clip, workDir string) []ClipResult {
	results := make([]ClipResult, 0, len(clips))
	for i, clip := range clips {
		result := ClipResult{ClipID: clip.ID}
		clipCtx := services.WithClipID(ctx, clip.ID)
		words, silences, err := s.ProcessClip(clipCtx, clip, i, workDir)
		if err != nil {
			result.Err = err
		} else {
			result.Words = words
			result.Silences = silences
		}
		results = append(results, result)
		if ctx.Err() != nil {
			break
		}
	}
	return results
}

// ProcessClip extracts audio, transcribes it, and detects silences for one
// clip. Word ids are clip-qualified so they stay unique across the project.
func (s *Service) ProcessClip(ctx context.Context, clip project.Clip, clipIndex int, workDir string) ([]project.Word, []project.SilenceSegment, error) {
	if clip.SourcePath == "" {
		return nil, nil, services.Wrap(services.ErrValidation, "transcribe", "process", "clip has no source path", nil)
	}
	clipWork := filepath.Join(workDir, clip.ID)
	if err := os.MkdirAll(clipWork, 0o755); err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "transcribe", "process", "create work dir", err)
	}

	audioPath := filepath.Join(clipWork, "audio.wav")
	if err := s.extractAudio(ctx, clip.SourcePath, audioPath); err != nil {
		return nil, nil, err
	}

	words, err := s.transcribeAudio(ctx, audioPath, clipWork, clip.ID, clipIndex)
	if err != nil {
		return nil, nil, err
	}

	silences, err := s.DetectSilences(ctx, clip.SourcePath)
	if err != nil {
		return nil, nil, err
	}
	return words, silences, nil
}

// extractAudio produces a mono 16 kHz WAV suitable for WhisperX.
func (s *Service) extractAudio(ctx context.Context, source, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	if output, err := s.run(ctx, s.ffmpegBinary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "transcribe", "extract audio",
			strings.TrimSpace(string(output)), err)
	}
	return nil
}

// transcribeAudio invokes WhisperX and loads the word-level JSON it writes.
func (s *Service) transcribeAudio(ctx context.Context, audioPath, outputDir, clipID string, clipIndex int) ([]project.Word, error) {
	args := s.buildWhisperXArgs(audioPath, outputDir)
	if output, err := s.run(ctx, UVXCommand, args...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "whisperx",
			strings.TrimSpace(string(output)), err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	words, err := LoadWords(jsonPath, clipID, clipIndex)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "whisperx", "read transcript", err)
	}
	return words, nil
}

// buildWhisperXArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildWhisperXArgs(source, outputDir string) []string {
	args := make([]string, 0, 24)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
	)

	if lang := strings.TrimSpace(s.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}
	return args
}

// whisperWord mirrors WhisperX word entries in the JSON output.
type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type whisperSegment struct {
	Text  string        `json:"text"`
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Words []whisperWord `json:"words"`
}

type whisperPayload struct {
	Segments []whisperSegment `json:"segments"`
}

// LoadWords reads a WhisperX JSON file and flattens its segments into
// clip-local words. Ids are derived from the clip id and word position.
// WhisperX omits timestamps for unalignable tokens (digits, symbols); those
// inherit the previous word's end so the track stays monotonic.
func LoadWords(jsonPath, clipID string, clipIndex int) ([]project.Word, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload whisperPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}

	var words []project.Word
	cursor := 0.0
	for _, seg := range payload.Segments {
		for _, w := range seg.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			start, end := w.Start, w.End
			if end <= 0 && start <= 0 {
				start, end = cursor, cursor
			}
			if end < start {
				end = start
			}
			cursor = end
			words = append(words, project.Word{
				ID:        fmt.Sprintf("%s-w%d", clipID, len(words)),
				Text:      text,
				Start:     start,
				End:       end,
				ClipIndex: clipIndex,
			})
		}
	}
	return words, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking
	// WhisperX checkpoint loading. Force legacy behavior.
	if name == UVXCommand && os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	return cmd.CombinedOutput()
}
