package music

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jfmyers9/skipboi/internal/osascript"
	"github.com/rs/zerolog"
)

// DefaultVolumeStep is how far VolumeUp and VolumeDown move the output volume
const DefaultVolumeStep = 10

// trackSeparator joins title, artist and album in the track query.
// ASCII unit separator; it should never appear in track metadata.
const trackSeparator = "\x1f"

// playerScript is a fixed script and the action it performs, for errors
type playerScript struct {
	source string
	action string
}

// playerScripts maps each player operation to its fixed script.
// Nothing is ever spliced into these strings.
var playerScripts = map[Operation]playerScript{
	Play:            {`tell application "Music" to play`, "start playback"},
	Pause:           {`tell application "Music" to pause`, "pause playback"},
	TogglePlayPause: {`tell application "Music" to playpause`, "toggle play/pause"},
	NextTrack:       {`tell application "Music" to next track`, "skip to next track"},
	PreviousTrack:   {`tell application "Music" to previous track`, "go to previous track"},
	ShuffleOn:       {`tell application "Music" to set shuffle enabled to true`, "enable shuffle"},
	ShuffleOff:      {`tell application "Music" to set shuffle enabled to false`, "disable shuffle"},
	RepeatOff:       {`tell application "Music" to set song repeat to off`, "turn off repeat"},
	RepeatOne:       {`tell application "Music" to set song repeat to one`, "repeat the current track"},
	RepeatAll:       {`tell application "Music" to set song repeat to all`, "repeat all tracks"},
	Mute:            {`set volume output muted true`, "mute output"},
	Unmute:          {`set volume output muted false`, "unmute output"},
}

const (
	getVolumeScript = `output volume of (get volume settings)`

	setVolumeScript = `on run argv
	set volume output volume (item 1 of argv as integer)
end run`

	runShortcutScript = `on run argv
	tell application "Shortcuts" to run shortcut (item 1 of argv)
end run`

	// Checks System Events first so the query never launches Music
	currentTrackScript = `tell application "System Events"
	if not ((name of processes) contains "Music") then
		return "not_running"
	end if
end tell
tell application "Music"
	if player state is stopped then
		return "stopped"
	end if
	set sep to character id 31
	return (name of current track) & sep & (artist of current track) & sep & (album of current track)
end tell`
)

// Options configures an AppleScriptClient
type Options struct {
	VolumeStep int                    // Step for VolumeUp/VolumeDown (default 10)
	Shortcuts  map[AirPodsMode]string // Overrides for DefaultShortcuts
}

// AppleScriptClient implements the Client interface using AppleScript to
// drive Apple Music, the system volume and the Shortcuts app
type AppleScriptClient struct {
	runner    osascript.Runner
	step      int
	shortcuts map[AirPodsMode]string
	logger    zerolog.Logger
}

// NewAppleScriptClient creates a new AppleScript-based music client
func NewAppleScriptClient(runner osascript.Runner, opts Options, logger zerolog.Logger) *AppleScriptClient {
	step := opts.VolumeStep
	if step <= 0 {
		step = DefaultVolumeStep
	}

	shortcuts := make(map[AirPodsMode]string, len(DefaultShortcuts))
	for mode, name := range DefaultShortcuts {
		shortcuts[mode] = name
	}
	for mode, name := range opts.Shortcuts {
		if name != "" {
			shortcuts[mode] = name
		}
	}

	return &AppleScriptClient{
		runner:    runner,
		step:      step,
		shortcuts: shortcuts,
		logger:    logger.With().Str("component", "music").Logger(),
	}
}

// Execute performs op against Music, the system volume or Shortcuts
func (c *AppleScriptClient) Execute(ctx context.Context, op Operation) error {
	c.logger.Debug().Stringer("op", op).Msg("Executing operation")

	switch op {
	case VolumeUp:
		return c.adjustVolume(ctx, c.step)
	case VolumeDown:
		return c.adjustVolume(ctx, -c.step)
	}

	if mode, ok := op.AirPodsMode(); ok {
		return c.runShortcut(ctx, mode)
	}

	script, ok := playerScripts[op]
	if !ok {
		return fmt.Errorf("unsupported operation %d", int(op))
	}

	if _, err := c.runner.Run(ctx, script.source); err != nil {
		return fmt.Errorf("failed to %s: %w", script.action, err)
	}
	return nil
}

// adjustVolume reads the output volume, moves it by delta and writes it back.
// Two separate calls: a concurrent writer between them is overwritten.
func (c *AppleScriptClient) adjustVolume(ctx context.Context, delta int) error {
	out, err := c.runner.Run(ctx, getVolumeScript)
	if err != nil {
		return fmt.Errorf("failed to read output volume: %w", err)
	}

	current, err := strconv.Atoi(out)
	if err != nil {
		// "missing value" when the output device has no volume control
		return &osascript.ScriptError{
			Kind:    osascript.KindExecution,
			Message: fmt.Sprintf("output volume unavailable (got %q)", out),
		}
	}

	level := clampVolume(current + delta)
	c.logger.Debug().Int("from", current).Int("to", level).Msg("Setting output volume")

	if _, err := c.runner.Run(ctx, setVolumeScript, strconv.Itoa(level)); err != nil {
		return fmt.Errorf("failed to set output volume: %w", err)
	}
	return nil
}

// clampVolume bounds level to the 0-100 range accepted by set volume
func clampVolume(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

func (c *AppleScriptClient) runShortcut(ctx context.Context, mode AirPodsMode) error {
	name := c.shortcuts[mode]
	if _, err := c.runner.Run(ctx, runShortcutScript, name); err != nil {
		return &ShortcutError{Mode: mode, Name: name, Err: err}
	}
	return nil
}

// CurrentTrack returns the track loaded in Apple Music.
// Returns nil when Music is not running, stopped, or the reply is malformed.
func (c *AppleScriptClient) CurrentTrack(ctx context.Context) (*TrackInfo, error) {
	out, err := c.runner.Run(ctx, currentTrackScript)
	if err != nil {
		return nil, fmt.Errorf("failed to get track info: %w", err)
	}

	if out == "" || out == "not_running" || out == "stopped" {
		c.logger.Debug().Str("reply", out).Msg("Nothing playing")
		return nil, nil
	}

	track, err := ParseTrackInfo(out)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Discarding track info")
		return nil, nil
	}
	return track, nil
}

// ParseTrackInfo splits the track query reply into its three fields.
// Any other field count is ErrMalformedTrackInfo, never a partial value.
func ParseTrackInfo(output string) (*TrackInfo, error) {
	parts := strings.Split(output, trackSeparator)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformedTrackInfo, len(parts))
	}

	return &TrackInfo{
		Title:  strings.TrimSpace(parts[0]),
		Artist: strings.TrimSpace(parts[1]),
		Album:  strings.TrimSpace(parts[2]),
	}, nil
}
