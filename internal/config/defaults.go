package config

const (
	defaultWorkDir        = "~/.local/share/recast/work"
	defaultLogDir         = "~/.local/share/recast/logs"
	defaultStateDir       = "~/.local/share/recast/state"
	defaultSourceLanguage = "en"
	defaultTargetLanguage = "nl"
	defaultWhisperBinary  = "whisper-cli"
	defaultOllamaBaseURL  = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
	defaultChunkLimit     = 500
	defaultEspeakBinary   = "espeak"
	defaultPicoBinary     = "pico2wave"
	defaultSayBinary      = "say"
	defaultPythonBinary   = "python"
	defaultFFmpegBinary   = "ffmpeg"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Job: Job{
			SourceLanguage: defaultSourceLanguage,
			TargetLanguage: defaultTargetLanguage,
		},
		Whisper: Whisper{
			Binary: defaultWhisperBinary,
		},
		Ollama: Ollama{
			BaseURL: defaultOllamaBaseURL,
			Model:   defaultOllamaModel,
		},
		TTS: TTS{
			ChunkLimit:   defaultChunkLimit,
			EspeakBinary: defaultEspeakBinary,
			PicoBinary:   defaultPicoBinary,
			SayBinary:    defaultSayBinary,
			PythonBinary: defaultPythonBinary,
		},
		Media: Media{
			FFmpegBinary: defaultFFmpegBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
