// Package commands maps the words typed on the command line to music
// operations.
//
// The table is built once at init and never modified. Lookups are exact
// after lowercasing: there is no prefix matching or abbreviation expansion.
package commands

import (
	"strings"

	"github.com/jfmyers9/skipboi/internal/music"
)

// Entry describes one command and every alias that selects it
type Entry struct {
	Name      string          // Canonical command name
	Aliases   []string        // Additional names
	Op        music.Operation // Operation to execute
	Short     string          // One-line description for usage text
	Message   string          // Printed after the operation succeeds
	ShowTrack bool            // Print the current track afterwards
}

var entries = []Entry{
	{Name: "play", Op: music.Play, Short: "Start playing the current track", Message: "▶️  Playing"},
	{Name: "pause", Op: music.Pause, Short: "Pause the current track", Message: "⏸️  Paused"},
	{Name: "playpause", Aliases: []string{"toggle"}, Op: music.TogglePlayPause, Short: "Toggle between play and pause", Message: "⏯️  Toggled playback"},
	{Name: "next", Aliases: []string{"skip", "forward"}, Op: music.NextTrack, Short: "Skip to the next track", Message: "⏭️  Next track", ShowTrack: true},
	{Name: "previous", Aliases: []string{"prev", "back", "backward"}, Op: music.PreviousTrack, Short: "Go to the previous track", Message: "⏮️  Previous track", ShowTrack: true},
	{Name: "shuffle", Op: music.ShuffleOn, Short: "Enable shuffle mode", Message: "🔀 Shuffle enabled"},
	{Name: "shuffle-off", Aliases: []string{"shuffleoff", "noshuffle"}, Op: music.ShuffleOff, Short: "Disable shuffle mode", Message: "➡️  Shuffle disabled"},
	{Name: "repeat", Op: music.RepeatAll, Short: "Enable repeat all mode", Message: "🔁 Repeat all enabled"},
	{Name: "repeat-one", Aliases: []string{"repeatone", "repeat1"}, Op: music.RepeatOne, Short: "Enable repeat one mode", Message: "🔂 Repeat one enabled"},
	{Name: "repeat-off", Aliases: []string{"repeatoff", "norepeat"}, Op: music.RepeatOff, Short: "Disable repeat mode", Message: "➡️  Repeat disabled"},
	{Name: "volume-up", Aliases: []string{"volumeup", "volup", "louder"}, Op: music.VolumeUp, Short: "Increase system volume", Message: "🔊 Volume increased"},
	{Name: "volume-down", Aliases: []string{"volumedown", "voldown", "quieter"}, Op: music.VolumeDown, Short: "Decrease system volume", Message: "🔉 Volume decreased"},
	{Name: "mute", Op: music.Mute, Short: "Mute system audio", Message: "🔇 Muted"},
	{Name: "unmute", Op: music.Unmute, Short: "Unmute system audio", Message: "🔊 Unmuted"},
	{Name: "airpods", Op: music.AirPodsCycle, Short: "Cycle through AirPods noise control modes", Message: "🎧 AirPods mode cycled"},
}

var (
	byAlias = make(map[string]Entry)
	byOp    = make(map[music.Operation]Entry)
)

func init() {
	for _, e := range entries {
		byOp[e.Op] = e
		for _, name := range e.Names() {
			if _, dup := byAlias[name]; dup {
				panic("commands: duplicate alias " + name)
			}
			byAlias[name] = e
		}
	}
}

// Names returns the canonical name followed by the aliases
func (e Entry) Names() []string {
	return append([]string{e.Name}, e.Aliases...)
}

// Entries returns the table in display order
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Resolve returns the Operation selected by token, ignoring case
func Resolve(token string) (music.Operation, bool) {
	e, ok := Lookup(token)
	return e.Op, ok
}

// Lookup returns the table entry selected by token, ignoring case
func Lookup(token string) (Entry, bool) {
	e, ok := byAlias[strings.ToLower(token)]
	return e, ok
}

// ForOperation returns the entry that owns op
func ForOperation(op music.Operation) (Entry, bool) {
	e, ok := byOp[op]
	return e, ok
}
