package commands

import "fmt"

// UnknownCommandError is returned for a token that is not in the table
type UnknownCommandError struct {
	Command     string
	Suggestions []string
}

// Error returns the error message.
func (e *UnknownCommandError) Error() string {
	msg := fmt.Sprintf("unknown command '%s'", e.Command)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean '%s'?)", e.Suggestions[0])
	}
	return msg
}

// UnknownFlagError is returned for an unrecognized airpods modifier
type UnknownFlagError struct {
	Flag string
}

// Error returns the error message.
func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("unknown AirPods flag '%s'", e.Flag)
}

// ValidFlags lists the modifiers the airpods command accepts.
func (e *UnknownFlagError) ValidFlags() string {
	return "Valid flags: " + validFlags()
}
