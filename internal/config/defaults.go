package config

const (
	defaultConfigPath  = "~/.config/scriptsync/config.toml"
	defaultDataDir     = "~/.local/share/scriptsync"
	defaultLogDir      = "~/.local/share/scriptsync/logs"
	defaultScriptDir   = "~/scriptsync/scripts"
	defaultSubtitleDir = "~/scriptsync/subtitles"
	defaultVideoDir    = "~/scriptsync/videos"
	defaultClipDir     = "~/scriptsync/clips"

	defaultMinRatio             = 0.61
	defaultLookaheadWindow      = 100
	defaultMaxGroupSize         = 8
	defaultMaxGapSeconds        = 2.5
	defaultNearCertainRatio     = 0.95
	defaultSpeakerOverrideRatio = 0.85
	defaultShortPhraseWords     = 2
	maxGroupSizeLimit           = 64

	defaultLogSpeaker    = "PICARD"
	defaultPaddingBefore = 0.1
	defaultPaddingAfter  = 0.1

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
			ScriptDir:   defaultScriptDir,
			SubtitleDir: defaultSubtitleDir,
			VideoDir:    defaultVideoDir,
			ClipDir:     defaultClipDir,
		},
		Matching: Matching{
			MinRatio:             defaultMinRatio,
			LookaheadWindow:      defaultLookaheadWindow,
			MaxGroupSize:         defaultMaxGroupSize,
			MaxGapSeconds:        defaultMaxGapSeconds,
			NearCertainRatio:     defaultNearCertainRatio,
			SpeakerOverrideRatio: defaultSpeakerOverrideRatio,
			ShortPhraseWords:     defaultShortPhraseWords,
		},
		Script: Script{
			LogPhrases: []string{"captain's log"},
			LogSpeaker: defaultLogSpeaker,
			SpeakerAliases: map[string]string{
				"ETHAN/JEAN-LUC": "ETHAN",
				"JEAN-LUC":       "ETHAN",
			},
		},
		Clips: Clips{
			PaddingBefore:  defaultPaddingBefore,
			PaddingAfter:   defaultPaddingAfter,
			WriteSubtitles: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
