package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jfmyers9/skipboi/internal/commands"
	"github.com/mattn/go-runewidth"
)

const usageColumn = 36

var usageExamples = [][2]string{
	{"skipboi play", "Start playing"},
	{"skipboi next", "Skip to next track"},
	{"skipboi current", "Show current track info"},
	{"skipboi pause", "Pause playback"},
	{"skipboi shuffle", "Enable shuffle"},
	{"skipboi repeat-one", "Enable repeat one"},
	{"skipboi volume-up", "Increase volume"},
	{"skipboi mute", "Mute audio"},
	{"skipboi airpods", "Cycle AirPods modes"},
	{"skipboi airpods -t", "Toggle Transparency mode"},
	{"skipboi version", "Show version"},
}

// writeUsage prints the top level help, listing every alias from the table
func writeUsage(w io.Writer) {
	fmt.Fprintln(w, "skipboi - A simple macOS CLI for controlling Apple Music and AirPods")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "    skipboi <command> [options]")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Music Commands:")
	var airpods commands.Entry
	for _, e := range commands.Entries() {
		if _, ok := e.Op.AirPodsMode(); ok {
			airpods = e
			continue
		}
		usageLine(w, strings.Join(e.Names(), ", "), e.Short)
	}
	usageLine(w, "current, now, nowplaying, info", "Show current track information")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "AirPods Commands:")
	usageLine(w, airpods.Name, airpods.Short)
	for _, f := range commands.AirPodsFlags() {
		usageLine(w, fmt.Sprintf("%s %s, %s", airpods.Name, f.Short, f.Long), f.Usage)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other Commands:")
	usageLine(w, "version, -v, --version", "Show version information")
	usageLine(w, "help, -h, --help", "Show this help message")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	for _, ex := range usageExamples {
		usageLine(w, ex[0], "# "+ex[1])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Note: AirPods commands require shortcuts to be set up in the Shortcuts app.")
	fmt.Fprintln(w, "      See the README for detailed instructions on setting up AirPods shortcuts.")
}

// usageLine writes an indented name column followed by its description
func usageLine(w io.Writer, names, desc string) {
	col := runewidth.FillRight(names, usageColumn)
	if runewidth.StringWidth(names) >= usageColumn {
		col = names + "  "
	}
	fmt.Fprintf(w, "    %s%s\n", col, desc)
}
