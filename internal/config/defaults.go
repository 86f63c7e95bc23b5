package config

const (
	defaultDataDir            = "~/.local/share/dugout"
	defaultAudioDir           = "~/.local/share/dugout/audio"
	defaultLibraryDir         = "~/baseball"
	defaultLogDir             = "~/.local/share/dugout/logs"
	defaultYouTubeEndpoint    = ""
	defaultScoreboardBaseURL  = "https://site.api.espn.com/apis/site/v2/sports/baseball/mlb/scoreboard"
	defaultRequestTimeout     = 30
	defaultDownloaderBinary   = "yt-dlp"
	defaultDownloadTimeout    = 3600
	defaultSubtitleFormat     = "ttml"
	defaultChannelWorkers     = 2
	defaultPlaylistWorkers    = 4
	defaultVideoWorkers       = 4
	defaultMetadataRetrievers = 2
	defaultEventWorkers       = 2
	defaultDownloadWorkers    = 2
	defaultMinDurationMinutes = 75
	defaultSelectionLimit     = 1000
	defaultLogFormat          = "auto"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			AudioDir:   defaultAudioDir,
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		API: API{
			ScoreboardBaseURL: defaultScoreboardBaseURL,
			RequestTimeout:    defaultRequestTimeout,
		},
		Downloader: Downloader{
			Binary:         defaultDownloaderBinary,
			TimeoutSeconds: defaultDownloadTimeout,
			SubtitleLangs:  []string{"en", "en-orig"},
			SubtitleFormat: defaultSubtitleFormat,
			WriteInfoJSON:  true,
		},
		Workers: Workers{
			Channel:          defaultChannelWorkers,
			Playlist:         defaultPlaylistWorkers,
			Video:            defaultVideoWorkers,
			MetadataRetrieve: defaultMetadataRetrievers,
			Event:            defaultEventWorkers,
			Download:         defaultDownloadWorkers,
		},
		Filters: Filters{
			MinDurationMinutes: defaultMinDurationMinutes,
			SelectionLimit:     defaultSelectionLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
