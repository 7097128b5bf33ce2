package config

const (
	defaultStorePath       = "~/.local/share/texmorph/tables.db"
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
	defaultEasing          = "inOutCubic"
	defaultDurationSeconds = 1.2
	defaultPreviewWidth    = 960
	defaultPreviewHeight   = 540
	defaultPreviewTitle    = "texmorph preview"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Store: Store{
			Path: defaultStorePath,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Morph: Morph{
			Easing:          defaultEasing,
			DurationSeconds: defaultDurationSeconds,
		},
		Preview: Preview{
			Width:  defaultPreviewWidth,
			Height: defaultPreviewHeight,
			Title:  defaultPreviewTitle,
		},
	}
}
