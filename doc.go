// Package configr loads an application's TOML configuration file with a single
// call, creating the file on first run.
//
// The file lives at <base>/<app-slug>/config.toml, where base is the OS user
// config directory (XDG_CONFIG_HOME or ~/.config on Linux, %AppData% on
// Windows, ~/Library/Application Support on macOS) or a caller-supplied
// directory, and app-slug is the lowercased application name with whitespace
// replaced by hyphens ("Bot App" becomes "bot-app").
//
// When the file is missing, its directories are created and a blank value of
// the configuration type is written to it: either every field as an empty
// placeholder, or the type's declared defaults. An existing file is never
// overwritten. Every load re-reads the file; nothing is cached.
//
// Configuration types supply their blank values by implementing FillEmpty and
// FillDefaults on a pointer receiver:
//
//	type BotConfig struct {
//	    BotUsername string `toml:"bot_username"`
//	    Channel     string `toml:"channel"`
//	}
//
//	func (c *BotConfig) FillEmpty()    { *c = BotConfig{} }
//	func (c *BotConfig) FillDefaults() { *c = BotConfig{Channel: "#general"} }
//
//	cfg, err := configr.Load[BotConfig]("bot app", true)
//
// For more control, build a Loader:
//
//	l := configr.New("bot app",
//	    configr.WithDir[BotConfig]("$HOME/.bot"),
//	    configr.WithTemplate[BotConfig](false),
//	    configr.WithStrict[BotConfig](),
//	    configr.WithStreams[BotConfig](streams.Slog(logger, slog.LevelInfo, slog.LevelWarn)),
//	)
//	cfg, path, created, err := l.Load()
//
// Failures wrap one of the exported Err* categories; decoding failures are
// reported as *ParseError with the file position when the codec provides it.
package configr
