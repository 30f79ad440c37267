package commands

import (
	"strings"

	"github.com/jfmyers9/skipboi/internal/music"
)

// AirPodsFlag is a modifier accepted after the airpods command
type AirPodsFlag struct {
	Short   string // e.g. "-t"
	Long    string // e.g. "--transparency"
	Mode    music.AirPodsMode
	Usage   string
	Message string
}

var airPodsFlags = []AirPodsFlag{
	{Short: "-t", Long: "--transparency", Mode: music.ModeTransparency, Usage: "Toggle Transparency mode", Message: "🎧 AirPods Transparency mode toggled"},
	{Short: "-a", Long: "--adaptive", Mode: music.ModeAdaptive, Usage: "Toggle Adaptive mode", Message: "🎧 AirPods Adaptive mode toggled"},
	{Short: "-n", Long: "--noise-cancellation", Mode: music.ModeNoiseCancellation, Usage: "Toggle Noise Cancellation mode", Message: "🎧 AirPods Noise Cancellation toggled"},
	{Short: "-o", Long: "--off", Mode: music.ModeOff, Usage: "Turn off Noise Control", Message: "🎧 AirPods Noise Control turned off"},
}

// AirPodsFlags returns the accepted modifiers in display order
func AirPodsFlags() []AirPodsFlag {
	out := make([]AirPodsFlag, len(airPodsFlags))
	copy(out, airPodsFlags)
	return out
}

// ResolveAirPodsFlag returns the mode selected by flag.
// Flags are case-sensitive, like any other command line flag.
func ResolveAirPodsFlag(flag string) (music.AirPodsMode, bool) {
	for _, f := range airPodsFlags {
		if flag == f.Short || flag == f.Long {
			return f.Mode, true
		}
	}
	return 0, false
}

// ResolveAirPods turns the arguments following "airpods" into an operation.
// No arguments cycles modes; more than one is rejected.
func ResolveAirPods(args []string) (music.Operation, error) {
	switch len(args) {
	case 0:
		return music.AirPods(music.ModeCycle), nil
	case 1:
		mode, ok := ResolveAirPodsFlag(args[0])
		if !ok {
			return 0, &UnknownFlagError{Flag: args[0]}
		}
		return music.AirPods(mode), nil
	default:
		return 0, &UnknownFlagError{Flag: strings.Join(args, " ")}
	}
}

// AirPodsMessage returns the confirmation printed after switching to mode
func AirPodsMessage(mode music.AirPodsMode) string {
	for _, f := range airPodsFlags {
		if f.Mode == mode {
			return f.Message
		}
	}
	e, _ := ForOperation(music.AirPods(mode))
	return e.Message
}

// validFlags renders the modifiers as "-t/--transparency, ..."
func validFlags() string {
	parts := make([]string, 0, len(airPodsFlags))
	for _, f := range airPodsFlags {
		parts = append(parts, f.Short+"/"+f.Long)
	}
	return strings.Join(parts, ", ")
}
