package osascript

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies where in the scripting pipeline a failure happened
type Kind int

const (
	KindExecution Kind = iota // Script ran but the target rejected it
	KindCompile               // Script text did not compile
)

// String returns a human-readable representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindCompile:
		return "compile"
	case KindExecution:
		return "execution"
	default:
		return "unknown"
	}
}

// ScriptError is returned by Runner implementations when a script fails.
//
// Use errors.Is with ErrCompile or ErrExecution to branch on the kind
// without caring about the message or error number.
type ScriptError struct {
	Kind    Kind
	Number  int    // AppleScript error number, 0 if unknown
	Message string // Error text reported by the host
}

// Error returns the error message.
func (e *ScriptError) Error() string {
	if e.Number != 0 {
		return fmt.Sprintf("applescript %s error %d: %s", e.Kind, e.Number, e.Message)
	}
	return fmt.Sprintf("applescript %s error: %s", e.Kind, e.Message)
}

// Is matches any *ScriptError of the same Kind.
func (e *ScriptError) Is(target error) bool {
	t, ok := target.(*ScriptError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrCompile   = &ScriptError{Kind: KindCompile}
	ErrExecution = &ScriptError{Kind: KindExecution}
)

// AppleScript error numbers that come with a hint.
const (
	ErrNumApplicationNotRunning = -600
	ErrNumNotAuthorized         = -1743
	ErrNumUserCanceled          = -128
)

// Hint returns advice for error numbers the user can act on, or "".
func (e *ScriptError) Hint() string {
	switch e.Number {
	case ErrNumNotAuthorized:
		return "Allow your terminal to control Music in System Settings > Privacy & Security > Automation."
	case ErrNumApplicationNotRunning:
		return "The target application could not be launched. Check that Music is installed."
	case ErrNumUserCanceled:
		return "The request was canceled."
	default:
		return ""
	}
}

// osascript reports failures on stderr as
//
//	0:12: syntax error: Expected end of line but found identifier. (-2741)
//	29:51: execution error: Music got an error: ... (-1728)
var stderrPattern = regexp.MustCompile(`(?s)^(?:\d+:\d+:\s*)?(syntax|execution) error:\s*(.*?)\s*(?:\((-?\d+)\))?\s*$`)

// parseError turns osascript's stderr into a ScriptError
func parseError(stderr string) *ScriptError {
	text := strings.TrimSpace(stderr)

	m := stderrPattern.FindStringSubmatch(text)
	if m == nil {
		if text == "" {
			text = "osascript exited with a non-zero status"
		}
		return &ScriptError{Kind: KindExecution, Message: text}
	}

	kind := KindExecution
	if m[1] == "syntax" {
		kind = KindCompile
	}

	num := 0
	if m[3] != "" {
		num, _ = strconv.Atoi(m[3])
	}

	return &ScriptError{Kind: kind, Number: num, Message: m[2]}
}
