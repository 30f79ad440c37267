package cmd

import (
	"fmt"
	"strings"

	"github.com/jfmyers9/skipboi/internal/commands"
	"github.com/jfmyers9/skipboi/internal/music"
	"github.com/spf13/cobra"
)

// newOperationCmd builds the command for one table entry
func newOperationCmd(app *App, e commands.Entry) *cobra.Command {
	long := e.Short + "."
	if e.ShowTrack {
		long += "\n\nAfter the change settles, the new track is shown."
	}

	return &cobra.Command{
		Use:     e.Name,
		Aliases: e.Aliases,
		Short:   e.Short,
		Long:    long,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := app.client()
			if err := client.Execute(cmd.Context(), e.Op); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, e.Message)

			if e.ShowTrack {
				track, err := music.TrackAfter(cmd.Context(), client, app.Config.SettleDelay)
				app.printTrack(out, track, err)
			}
			return nil
		},
	}
}

// newAirPodsCmd builds the airpods command. Its modifiers are resolved
// through the command table rather than cobra flags so that an unknown
// one is reported with the list of valid modifiers.
func newAirPodsCmd(app *App, e commands.Entry) *cobra.Command {
	var lines []string
	for _, f := range commands.AirPodsFlags() {
		lines = append(lines, fmt.Sprintf("  %s, %-22s %s", f.Short, f.Long, f.Usage))
	}

	return &cobra.Command{
		Use:     e.Name + " [-t|-a|-n|-o]",
		Aliases: e.Aliases,
		Short:   e.Short,
		Long: `Switch AirPods noise control by running a Shortcuts automation.

Without a flag, cycles through the modes. Flags:
` + strings.Join(lines, "\n") + `

Requires the matching shortcuts to be set up in the Shortcuts app.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, help := splitAirPodsArgs(app, args)
			if help {
				return cmd.Help()
			}

			op, err := commands.ResolveAirPods(mods)
			if err != nil {
				return err
			}

			if err := app.client().Execute(cmd.Context(), op); err != nil {
				return err
			}

			mode, _ := op.AirPodsMode()
			fmt.Fprintln(cmd.OutOrStdout(), commands.AirPodsMessage(mode))
			return nil
		},
	}
}

// splitAirPodsArgs pulls help and --log-level out of the raw airpods
// arguments, since flag parsing is disabled for that command.
func splitAirPodsArgs(app *App, args []string) (mods []string, help bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			help = true
		case arg == "--log-level" && i+1 < len(args):
			app.logLevel = args[i+1]
			i++
		case strings.HasPrefix(arg, "--log-level="):
			app.logLevel = strings.TrimPrefix(arg, "--log-level=")
		default:
			mods = append(mods, arg)
		}
	}
	return mods, help
}
