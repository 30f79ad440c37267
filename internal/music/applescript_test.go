package music

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jfmyers9/skipboi/internal/osascript"
	"github.com/rs/zerolog"
)

type call struct {
	script string
	args   []string
}

// fakeRunner records scripts and replies from a queue
type fakeRunner struct {
	calls   []call
	replies []string
	errs    []error
}

func (f *fakeRunner) Run(ctx context.Context, script string, args ...string) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, call{script: script, args: args})

	var reply string
	var err error
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return reply, err
}

func newTestClient(r *fakeRunner, opts Options) *AppleScriptClient {
	return NewAppleScriptClient(r, opts, zerolog.Nop())
}

// TestAppleScriptClient_Integration runs the track query against the real
// Music app. Requires macOS.
func TestAppleScriptClient_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if runtime.GOOS != "darwin" {
		t.Skip("Skipping integration test: osascript requires macOS")
	}

	client := NewAppleScriptClient(osascript.NewExec("", 0, zerolog.Nop()), Options{}, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	track, err := client.CurrentTrack(ctx)
	if err != nil {
		t.Fatalf("CurrentTrack() failed: %v", err)
	}
	if track == nil {
		t.Log("No track currently playing (Music not running or stopped)")
		return
	}
	if track.Title == "" {
		t.Error("Track title is empty")
	}
	t.Logf("Current track: %s / %s / %s", track.Title, track.Artist, track.Album)
}

func TestExecute_PlayerScripts(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{Play, `tell application "Music" to play`},
		{Pause, `tell application "Music" to pause`},
		{TogglePlayPause, `tell application "Music" to playpause`},
		{NextTrack, `tell application "Music" to next track`},
		{PreviousTrack, `tell application "Music" to previous track`},
		{ShuffleOn, `tell application "Music" to set shuffle enabled to true`},
		{ShuffleOff, `tell application "Music" to set shuffle enabled to false`},
		{RepeatOff, `tell application "Music" to set song repeat to off`},
		{RepeatOne, `tell application "Music" to set song repeat to one`},
		{RepeatAll, `tell application "Music" to set song repeat to all`},
		{Mute, `set volume output muted true`},
		{Unmute, `set volume output muted false`},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			r := &fakeRunner{}
			if err := newTestClient(r, Options{}).Execute(context.Background(), tt.op); err != nil {
				t.Fatalf("Execute(%v) unexpected error: %v", tt.op, err)
			}
			if len(r.calls) != 1 {
				t.Fatalf("expected 1 script, got %d", len(r.calls))
			}
			if r.calls[0].script != tt.want {
				t.Errorf("script = %q, want %q", r.calls[0].script, tt.want)
			}
			if len(r.calls[0].args) != 0 {
				t.Errorf("args = %v, want none", r.calls[0].args)
			}
		})
	}
}

func TestExecute_Volume(t *testing.T) {
	tests := []struct {
		name    string
		op      Operation
		step    int
		current string
		want    string
	}{
		{"up", VolumeUp, 0, "40", "50"},
		{"down", VolumeDown, 0, "40", "30"},
		{"up clamps at 100", VolumeUp, 0, "95", "100"},
		{"up from 100 stays", VolumeUp, 0, "100", "100"},
		{"down clamps at 0", VolumeDown, 0, "5", "0"},
		{"down from 0 stays", VolumeDown, 0, "0", "0"},
		{"custom step", VolumeUp, 25, "50", "75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{replies: []string{tt.current, ""}}
			c := newTestClient(r, Options{VolumeStep: tt.step})

			if err := c.Execute(context.Background(), tt.op); err != nil {
				t.Fatalf("Execute() unexpected error: %v", err)
			}
			if len(r.calls) != 2 {
				t.Fatalf("expected read and write, got %d calls", len(r.calls))
			}
			if r.calls[0].script != getVolumeScript {
				t.Errorf("first script = %q, want volume read", r.calls[0].script)
			}
			write := r.calls[1]
			if write.script != setVolumeScript {
				t.Errorf("second script = %q, want volume write", write.script)
			}
			if len(write.args) != 1 || write.args[0] != tt.want {
				t.Errorf("write args = %v, want [%s]", write.args, tt.want)
			}
		})
	}

	t.Run("missing value", func(t *testing.T) {
		r := &fakeRunner{replies: []string{"missing value"}}
		err := newTestClient(r, Options{}).Execute(context.Background(), VolumeUp)
		if !errors.Is(err, osascript.ErrExecution) {
			t.Errorf("Execute() error = %v, want execution error", err)
		}
		if len(r.calls) != 1 {
			t.Errorf("volume must not be written after a failed read, got %d calls", len(r.calls))
		}
	})

	t.Run("read fails", func(t *testing.T) {
		r := &fakeRunner{errs: []error{&osascript.ScriptError{Kind: osascript.KindExecution, Message: "denied"}}}
		err := newTestClient(r, Options{}).Execute(context.Background(), VolumeDown)
		if !errors.Is(err, osascript.ErrExecution) {
			t.Errorf("Execute() error = %v, want execution error", err)
		}
	})
}

func TestClampVolume(t *testing.T) {
	for in, want := range map[int]int{-20: 0, -1: 0, 0: 0, 55: 55, 100: 100, 101: 100, 200: 100} {
		if got := clampVolume(in); got != want {
			t.Errorf("clampVolume(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestExecute_AirPods(t *testing.T) {
	t.Run("default shortcut names", func(t *testing.T) {
		for mode, name := range DefaultShortcuts {
			r := &fakeRunner{}
			if err := newTestClient(r, Options{}).Execute(context.Background(), AirPods(mode)); err != nil {
				t.Fatalf("Execute(%v) unexpected error: %v", mode, err)
			}
			if r.calls[0].script != runShortcutScript {
				t.Errorf("script = %q, want shortcut runner", r.calls[0].script)
			}
			if len(r.calls[0].args) != 1 || r.calls[0].args[0] != name {
				t.Errorf("args = %v, want [%s]", r.calls[0].args, name)
			}
		}
	})

	t.Run("override", func(t *testing.T) {
		r := &fakeRunner{}
		c := newTestClient(r, Options{Shortcuts: map[AirPodsMode]string{ModeOff: "Buds Off", ModeAdaptive: ""}})

		_ = c.Execute(context.Background(), AirPodsOff)
		_ = c.Execute(context.Background(), AirPodsAdaptive)

		if got := r.calls[0].args[0]; got != "Buds Off" {
			t.Errorf("off shortcut = %q, want %q", got, "Buds Off")
		}
		if got := r.calls[1].args[0]; got != "AirPods Adaptive" {
			t.Errorf("empty override should keep default, got %q", got)
		}
	})

	t.Run("failure carries hint", func(t *testing.T) {
		r := &fakeRunner{errs: []error{&osascript.ScriptError{Kind: osascript.KindExecution, Number: -1728}}}
		err := newTestClient(r, Options{}).Execute(context.Background(), AirPodsTransparency)

		var se *ShortcutError
		if !errors.As(err, &se) {
			t.Fatalf("Execute() error = %v, want *ShortcutError", err)
		}
		if se.Name != "AirPods Transparency" || se.Mode != ModeTransparency {
			t.Errorf("ShortcutError = %+v", se)
		}
		if !strings.Contains(se.Hint(), "Shortcuts app") {
			t.Errorf("Hint() = %q, want setup instructions", se.Hint())
		}
		if !errors.Is(err, osascript.ErrExecution) {
			t.Error("ShortcutError should unwrap to the script error")
		}
	})
}

func TestExecute_Errors(t *testing.T) {
	t.Run("compile failure propagates", func(t *testing.T) {
		r := &fakeRunner{errs: []error{&osascript.ScriptError{Kind: osascript.KindCompile, Number: -2741}}}
		err := newTestClient(r, Options{}).Execute(context.Background(), Play)
		if !errors.Is(err, osascript.ErrCompile) {
			t.Errorf("Execute() error = %v, want compile error", err)
		}
	})

	t.Run("message names the action", func(t *testing.T) {
		r := &fakeRunner{errs: []error{&osascript.ScriptError{Kind: osascript.KindExecution, Number: -600}}}
		err := newTestClient(r, Options{}).Execute(context.Background(), NextTrack)
		if err == nil || !strings.HasPrefix(err.Error(), "failed to skip to next track: ") {
			t.Errorf("Execute() error = %v, want it to describe the action", err)
		}
		if !errors.Is(err, osascript.ErrExecution) {
			t.Errorf("Execute() error = %v, want execution error", err)
		}
	})

	t.Run("every player script names its action", func(t *testing.T) {
		for op, script := range playerScripts {
			if script.action == "" || script.source == "" {
				t.Errorf("%v: source = %q, action = %q", op, script.source, script.action)
			}
		}
	})

	t.Run("unknown operation", func(t *testing.T) {
		r := &fakeRunner{}
		if err := newTestClient(r, Options{}).Execute(context.Background(), Operation(999)); err == nil {
			t.Error("Execute() expected error for unknown operation")
		}
		if len(r.calls) != 0 {
			t.Error("no script should run for an unknown operation")
		}
	})
}

func TestCurrentTrack(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  *TrackInfo
	}{
		{
			name:  "playing",
			reply: "Bohemian Rhapsody\x1fQueen\x1fA Night at the Opera",
			want:  &TrackInfo{Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera"},
		},
		{
			name:  "pipes in metadata are fine",
			reply: "A|B\x1fC|D\x1fE",
			want:  &TrackInfo{Title: "A|B", Artist: "C|D", Album: "E"},
		},
		{name: "not running", reply: "not_running"},
		{name: "stopped", reply: "stopped"},
		{name: "empty", reply: ""},
		{name: "separator in metadata", reply: "A\x1fB\x1fC\x1fD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{replies: []string{tt.reply}}
			got, err := newTestClient(r, Options{}).CurrentTrack(context.Background())
			if err != nil {
				t.Fatalf("CurrentTrack() unexpected error: %v", err)
			}
			if tt.want == nil {
				if got != nil {
					t.Errorf("CurrentTrack() = %+v, want nil", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("CurrentTrack() = %+v, want %+v", got, tt.want)
			}
		})
	}

	t.Run("script error", func(t *testing.T) {
		r := &fakeRunner{errs: []error{&osascript.ScriptError{Kind: osascript.KindExecution}}}
		if _, err := newTestClient(r, Options{}).CurrentTrack(context.Background()); err == nil {
			t.Error("CurrentTrack() expected error")
		}
	})
}

func TestParseTrackInfo(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TrackInfo
		wantErr bool
	}{
		{
			name:  "valid",
			input: "Stairway to Heaven\x1fLed Zeppelin\x1fLed Zeppelin IV",
			want:  TrackInfo{Title: "Stairway to Heaven", Artist: "Led Zeppelin", Album: "Led Zeppelin IV"},
		},
		{
			name:  "empty album",
			input: "Test Track\x1fTest Artist\x1f",
			want:  TrackInfo{Title: "Test Track", Artist: "Test Artist"},
		},
		{
			name:  "special characters",
			input: "Don't Stop Believin'\x1fJourney\x1fEscape",
			want:  TrackInfo{Title: "Don't Stop Believin'", Artist: "Journey", Album: "Escape"},
		},
		{name: "no separators", input: "Track", wantErr: true},
		{name: "one separator", input: "Track\x1fArtist", wantErr: true},
		{name: "three separators", input: "Track\x1fArtist\x1fAlbum\x1fExtra", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTrackInfo(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedTrackInfo) {
					t.Errorf("ParseTrackInfo() error = %v, want ErrMalformedTrackInfo", err)
				}
				if got != nil {
					t.Errorf("ParseTrackInfo() = %+v, want nil", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTrackInfo() unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("ParseTrackInfo() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestTrackAfter(t *testing.T) {
	t.Run("waits then queries", func(t *testing.T) {
		r := &fakeRunner{replies: []string{"T\x1fA\x1fB"}}
		start := time.Now()

		track, err := TrackAfter(context.Background(), newTestClient(r, Options{}), 20*time.Millisecond)
		if err != nil {
			t.Fatalf("TrackAfter() unexpected error: %v", err)
		}
		if time.Since(start) < 20*time.Millisecond {
			t.Error("TrackAfter() returned before the delay elapsed")
		}
		if track == nil || track.Title != "T" {
			t.Errorf("TrackAfter() = %+v", track)
		}
	})

	t.Run("cancelled during wait", func(t *testing.T) {
		r := &fakeRunner{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := TrackAfter(ctx, newTestClient(r, Options{}), time.Hour); !errors.Is(err, context.Canceled) {
			t.Errorf("TrackAfter() error = %v, want context.Canceled", err)
		}
		if len(r.calls) != 0 {
			t.Error("query must not run after cancellation")
		}
	})
}

func TestOperation(t *testing.T) {
	for _, mode := range []AirPodsMode{ModeCycle, ModeTransparency, ModeAdaptive, ModeNoiseCancellation, ModeOff} {
		got, ok := AirPods(mode).AirPodsMode()
		if !ok || got != mode {
			t.Errorf("AirPods(%v).AirPodsMode() = %v, %v", mode, got, ok)
		}
	}

	if _, ok := NextTrack.AirPodsMode(); ok {
		t.Error("NextTrack should not be an AirPods operation")
	}
	if got := NextTrack.String(); got != "next track" {
		t.Errorf("NextTrack.String() = %q", got)
	}
	if got := Operation(-1).String(); got != "unknown" {
		t.Errorf("Operation(-1).String() = %q", got)
	}
	if got := AirPodsMode(99).String(); got != "unknown" {
		t.Errorf("AirPodsMode(99).String() = %q", got)
	}
}
