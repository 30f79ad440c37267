package music

import (
	"context"
	"time"
)

// TrackInfo describes the item currently loaded in the player
type TrackInfo struct {
	Title  string // Track name
	Artist string // Artist name
	Album  string // Album name
}

// Operation is a command understood by a Client.
// The set is closed: every value maps to a fixed script.
type Operation int

const (
	Play Operation = iota
	Pause
	TogglePlayPause
	NextTrack
	PreviousTrack
	ShuffleOn
	ShuffleOff
	RepeatOff
	RepeatOne
	RepeatAll
	VolumeUp
	VolumeDown
	Mute
	Unmute
	AirPodsCycle
	AirPodsTransparency
	AirPodsAdaptive
	AirPodsNoiseCancellation
	AirPodsOff
)

var operationNames = map[Operation]string{
	Play:                     "play",
	Pause:                    "pause",
	TogglePlayPause:          "playpause",
	NextTrack:                "next track",
	PreviousTrack:            "previous track",
	ShuffleOn:                "shuffle on",
	ShuffleOff:               "shuffle off",
	RepeatOff:                "repeat off",
	RepeatOne:                "repeat one",
	RepeatAll:                "repeat all",
	VolumeUp:                 "volume up",
	VolumeDown:               "volume down",
	Mute:                     "mute",
	Unmute:                   "unmute",
	AirPodsCycle:             "airpods cycle",
	AirPodsTransparency:      "airpods transparency",
	AirPodsAdaptive:          "airpods adaptive",
	AirPodsNoiseCancellation: "airpods noise cancellation",
	AirPodsOff:               "airpods off",
}

// String returns a human-readable representation of the Operation
func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "unknown"
}

// AirPodsMode reports which noise control mode o selects, if any
func (o Operation) AirPodsMode() (AirPodsMode, bool) {
	if o < AirPodsCycle || o > AirPodsOff {
		return 0, false
	}
	return AirPodsMode(o - AirPodsCycle), true
}

// AirPodsMode is an AirPods noise control mode
type AirPodsMode int

const (
	ModeCycle AirPodsMode = iota
	ModeTransparency
	ModeAdaptive
	ModeNoiseCancellation
	ModeOff
)

// AirPods returns the Operation that switches AirPods to mode
func AirPods(mode AirPodsMode) Operation {
	return AirPodsCycle + Operation(mode)
}

// String returns a human-readable representation of the AirPodsMode
func (m AirPodsMode) String() string {
	switch m {
	case ModeCycle:
		return "cycle"
	case ModeTransparency:
		return "transparency"
	case ModeAdaptive:
		return "adaptive"
	case ModeNoiseCancellation:
		return "noise cancellation"
	case ModeOff:
		return "off"
	default:
		return "unknown"
	}
}

// DefaultShortcuts are the Shortcuts automations run for each AirPods mode
var DefaultShortcuts = map[AirPodsMode]string{
	ModeCycle:             "AirPods Cycle Modes",
	ModeTransparency:      "AirPods Transparency",
	ModeAdaptive:          "AirPods Adaptive",
	ModeNoiseCancellation: "AirPods Noise Cancellation",
	ModeOff:               "AirPods Off",
}

// Client defines the interface for driving the music player and system audio
type Client interface {
	// Execute performs op, returning an error if the host rejected it
	Execute(ctx context.Context, op Operation) error

	// CurrentTrack returns the loaded track, or nil if nothing is playing
	CurrentTrack(ctx context.Context) (*TrackInfo, error)
}

// TrackAfter waits delay for the player to settle and then queries the
// current track. The wait is a fixed heuristic; a slow player can still
// report the previous track.
func TrackAfter(ctx context.Context, c Client, delay time.Duration) (*TrackInfo, error) {
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return c.CurrentTrack(ctx)
}
