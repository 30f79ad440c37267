package music

import (
	"errors"
	"fmt"
)

// ErrMalformedTrackInfo is returned when the track query output does not
// split into exactly title, artist and album. Callers treat it as "nothing
// playing".
var ErrMalformedTrackInfo = errors.New("malformed track info")

// ShortcutError wraps a failure to run an AirPods Shortcuts automation
type ShortcutError struct {
	Mode AirPodsMode
	Name string // Shortcut name that was run
	Err  error
}

// Error returns the error message.
func (e *ShortcutError) Error() string {
	return fmt.Sprintf("failed to run shortcut %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying script error.
func (e *ShortcutError) Unwrap() error {
	return e.Err
}

// Hint explains how to fix the most common cause of the failure.
func (e *ShortcutError) Hint() string {
	return fmt.Sprintf(`Note: This feature requires a shortcut named %q in the Shortcuts app.
   Please see the README for instructions on setting up AirPods shortcuts.`, e.Name)
}
