/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jfmyers9/skipboi/internal/commands"
	"github.com/jfmyers9/skipboi/internal/config"
	"github.com/jfmyers9/skipboi/internal/music"
	"github.com/jfmyers9/skipboi/internal/osascript"
	"github.com/jfmyers9/skipboi/internal/version"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	buildVersion = "dev"
	commit       = "unknown"
	buildDate    = "unknown"
)

// flagError marks a flag the command line parser rejected
type flagError struct {
	err error
}

func (e *flagError) Error() string { return e.err.Error() }
func (e *flagError) Unwrap() error { return e.err }

// NewRootCmd builds the command tree. Every music command is generated
// from the command table.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "skipboi <command> [flags]",
		Short: "A simple macOS CLI for controlling Apple Music and AirPods",
		Long: `skipboi controls Apple Music, the system volume and AirPods noise control
from the command line using AppleScript.

Each invocation runs one command and exits non-zero if it failed.`,
		Version:       app.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return &commands.UnknownCommandError{
				Command:     args[0],
				Suggestions: cmd.SuggestionsFor(args[0]),
			}
		},
	}

	root.SetVersionTemplate("skipboi {{.Version}}\n")
	root.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &flagError{err: err}
	})
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(c *cobra.Command, args []string) {
		if c != root {
			defaultHelp(c, args)
			return
		}
		writeUsage(c.OutOrStdout())
	})

	for _, e := range commands.Entries() {
		if _, ok := e.Op.AirPodsMode(); ok {
			root.AddCommand(newAirPodsCmd(app, e))
			continue
		}
		root.AddCommand(newOperationCmd(app, e))
	}
	root.AddCommand(newCurrentCmd(app))
	root.AddCommand(newVersionCmd(app))

	return root
}

// Execute runs the CLI and exits with its status code.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Run loads configuration, resolves the version once and runs args.
// It returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	app := &App{
		Config:  cfg,
		Version: version.Resolve(buildVersion),
		stderr:  stderr,
	}
	return run(ctx, app, args, stdout, stderr)
}

func run(ctx context.Context, app *App, args []string, stdout, stderr io.Writer) int {
	if app.stderr == nil {
		app.stderr = stderr
	}

	// cobra falls back to os.Args when given nil
	if args == nil {
		args = []string{}
	}

	args = canonicalArgs(args)

	var err error
	if word, ok := commandWord(args); ok && isCompletionRequest(word) {
		// cobra injects its hidden completion command on demand
		err = &commands.UnknownCommandError{Command: word}
	} else {
		root := NewRootCmd(app)
		root.SetOut(stdout)
		root.SetErr(stderr)
		root.SetArgs(args)
		err = root.ExecuteContext(ctx)
	}
	if err == nil {
		return 0
	}

	fmt.Fprintln(stderr, "Error:", err)

	var (
		unknownCmd  *commands.UnknownCommandError
		unknownFlag *commands.UnknownFlagError
		shortcutErr *music.ShortcutError
		scriptErr   *osascript.ScriptError
		flagErr     *flagError
	)
	switch {
	case errors.As(err, &unknownCmd), errors.As(err, &flagErr):
		fmt.Fprintln(stdout)
		writeUsage(stdout)
	case errors.As(err, &unknownFlag):
		fmt.Fprintln(stderr, unknownFlag.ValidFlags())
	case errors.As(err, &shortcutErr):
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "⚠️  "+shortcutErr.Hint())
	case errors.As(err, &scriptErr) && scriptErr.Hint() != "":
		fmt.Fprintln(stderr, scriptErr.Hint())
	}

	return 1
}

// canonicalArgs lowercases the command token and maps any alias to its
// canonical name, so the command tree only ever sees table names.
// Leading flags, such as --log-level and its value, are skipped.
func canonicalArgs(args []string) []string {
	i, ok := commandIndex(args)
	if !ok {
		return args
	}

	out := make([]string, len(args))
	copy(out, args)

	out[i] = strings.ToLower(out[i])
	if e, ok := commands.Lookup(out[i]); ok {
		out[i] = e.Name
	}
	return out
}

// commandIndex returns the position of the first non-flag argument
func commandIndex(args []string) (int, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return 0, false
		case arg == "--log-level":
			i++
		case strings.HasPrefix(arg, "-"):
		default:
			return i, true
		}
	}
	return 0, false
}

func commandWord(args []string) (string, bool) {
	i, ok := commandIndex(args)
	if !ok {
		return "", false
	}
	return args[i], true
}

func isCompletionRequest(word string) bool {
	return word == cobra.ShellCompRequestCmd || word == cobra.ShellCompNoDescRequestCmd
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "skipboi %s\n", app.Version)
			app.log().Debug().
				Str("commit", commit).
				Str("built", buildDate).
				Msg("Build info")
		},
	}
}
