/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/jfmyers9/skipboi/internal/music"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// newCurrentCmd builds the command that shows the current track
func newCurrentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "current",
		Aliases: []string{"now", "nowplaying", "info"},
		Short:   "Show current track information",
		Long: `Query Apple Music and display the current track.

With --format, the track is rendered through a Go template instead.
Available fields: .Title, .Artist, .Album

--width pads or truncates the formatted line to a fixed display width,
which keeps tmux status lines and other status bars from jumping around.
Defaults for both can be set in ~/.config/skipboi/config.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCurrent(cmd, app)
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	cmd.Flags().IntP("width", "w", 0, "Fixed output width for --format (0=disabled, overrides config)")

	return cmd
}

func runCurrent(cmd *cobra.Command, app *App) error {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = app.Config.OutputFormat
	}

	width, _ := cmd.Flags().GetInt("width")
	if width == 0 {
		width = app.Config.OutputWidth
	}

	// Validate the template before touching the player
	var tmpl *template.Template
	if format != "" {
		var err error
		if tmpl, err = template.New("output").Parse(format); err != nil {
			return fmt.Errorf("invalid template: %w", err)
		}
	}

	track, err := app.client().CurrentTrack(cmd.Context())
	out := cmd.OutOrStdout()

	if tmpl == nil {
		app.printTrack(out, track, err)
		return nil
	}

	if err != nil {
		app.log().Warn().Err(err).Msg("Failed to get track info")
	}
	if track == nil {
		// Keep status bars stable: print nothing rather than the error line
		if width > 0 {
			fmt.Fprintln(out, padToWidth("", width))
		}
		return nil
	}

	line, err := formatTrack(track, tmpl)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Fprintln(out, padToWidth(line, width))
	app.notify(track)
	return nil
}

// formatTrack applies the template to the track data
func formatTrack(track *music.TrackInfo, tmpl *template.Template) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, track); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Wide runes can leave truncation one column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	}

	return runewidth.FillRight(text, width)
}
