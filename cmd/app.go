package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/jfmyers9/skipboi/internal/config"
	"github.com/jfmyers9/skipboi/internal/music"
	"github.com/jfmyers9/skipboi/internal/osascript"
	"github.com/rs/zerolog"
)

// App carries what every command needs. Client and Notify are built on
// first use when left nil, after flags have been parsed.
type App struct {
	Config  *config.Config
	Version string
	Client  music.Client
	Notify  func(title, message string) error

	logLevel string // --log-level, overrides Config.LogLevel
	logger   *zerolog.Logger
	stderr   io.Writer
}

func (a *App) log() *zerolog.Logger {
	if a.logger == nil {
		level := a.Config.LogLevel
		if a.logLevel != "" {
			level = a.logLevel
		}
		out := a.stderr
		if out == nil {
			out = os.Stderr
		}
		logger := setupLogger(out, level)
		a.logger = &logger
	}
	return a.logger
}

func (a *App) client() music.Client {
	if a.Client == nil {
		logger := *a.log()
		runner := osascript.NewExec(a.Config.OsascriptPath, a.Config.Timeout, logger)
		a.Client = music.NewAppleScriptClient(runner, music.Options{
			VolumeStep: a.Config.VolumeStep,
			Shortcuts:  a.Config.AirPods.Shortcuts(),
		}, logger)
	}
	return a.Client
}

// printTrack writes the now playing block, or the nothing-playing line when
// track is nil. Query errors are logged and treated as nothing playing.
func (a *App) printTrack(w io.Writer, track *music.TrackInfo, err error) {
	if err != nil {
		a.log().Warn().Err(err).Msg("Failed to get track info")
	}

	if track == nil {
		fmt.Fprintln(w, "❌ No track currently playing")
		return
	}

	fmt.Fprintln(w, "🎵 Now Playing:")
	fmt.Fprintf(w, "   Title:  %s\n", track.Title)
	fmt.Fprintf(w, "   Artist: %s\n", track.Artist)
	fmt.Fprintf(w, "   Album:  %s\n", track.Album)

	a.notify(track)
}

// notify posts a desktop notification when enabled in config
func (a *App) notify(track *music.TrackInfo) {
	if !a.Config.Notify {
		return
	}

	send := a.Notify
	if send == nil {
		send = func(title, message string) error {
			return beeep.Notify(title, message, "")
		}
	}

	message := track.Artist
	if track.Album != "" {
		message += " - " + track.Album
	}
	if err := send(track.Title, message); err != nil {
		a.log().Warn().Err(err).Msg("Failed to send notification")
	}
}

// setupLogger creates a console logger on w at the given level
func setupLogger(w io.Writer, logLevel string) zerolog.Logger {
	level := zerolog.WarnLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
