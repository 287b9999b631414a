package config

const (
	defaultStagingDir      = "~/.local/share/wordcut/staging"
	defaultOutputDir       = "~/.local/share/wordcut/exports"
	defaultLogDir          = "~/.local/share/wordcut/logs"
	defaultAPIBind         = "127.0.0.1:7519"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultWhisperXModel   = "large-v3-turbo"
	defaultLanguage        = "en"
	defaultSilenceNoiseDB  = -30.0
	defaultPauseThreshold  = 0.3
	defaultSnapGrid        = 0.1
	defaultMinItemDuration = 0.1
	defaultTrackHeight     = 64.0
	defaultFPS             = 30.0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			APIBind:    defaultAPIBind,
		},
		Media: Media{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Transcription: Transcription{
			WhisperXModel:  defaultWhisperXModel,
			Language:       defaultLanguage,
			SilenceNoiseDB: defaultSilenceNoiseDB,
		},
		Editor: Editor{
			PauseThreshold:  defaultPauseThreshold,
			SnapGrid:        defaultSnapGrid,
			MinItemDuration: defaultMinItemDuration,
			TrackHeight:     defaultTrackHeight,
			FPS:             defaultFPS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
