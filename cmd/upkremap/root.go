// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the values of the root command's flags. Only flags the user
// actually set override configuration.
type rootFlags struct {
	configPath     string
	verbose        bool
	suffix         string
	failFast       bool
	maxAttempts    int
	rewritePayload bool
	jobs           int
	report         string
	confirm        bool
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "upkremap [flags] <archive>...",
		Short: "Give the assets of Unity packages fresh GUIDs",
		Long: TitleStyle.Render("upkremap") + SubtitleStyle.Render(" - Give the assets of Unity packages fresh GUIDs") + `

upkremap rewrites every asset GUID inside a .unitypackage, keeping references
between the package's assets intact. References to assets outside the package
are preserved and reported as warnings. The result is written next to the
input as <name>-remapped.unitypackage; the input is never modified.

` + SubtitleStyle.Render("Examples:") + `
  upkremap Props.unitypackage                Remap one package
  upkremap -j 4 --fail-fast *.unitypackage   Remap many, stop at the first failure
  upkremap --report json Props.unitypackage  Also write a JSON remap report
  upkremap config show                       Show the effective configuration`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemap(cmd, app, flags, args)
		},
	}

	flags.bind(root)

	root.AddCommand(newConfigCommand(app, flags))

	return root
}

// bind registers the flags on cmd.
func (f *rootFlags) bind(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default is <user config dir>/upkremap/config.cue)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug diagnostics")

	fs := cmd.Flags()
	fs.StringVar(&f.suffix, "suffix", "", "suffix inserted before the output extension (default \"-remapped\")")
	fs.BoolVar(&f.failFast, "fail-fast", false, "stop at the first failed package")
	fs.IntVar(&f.maxAttempts, "max-attempts", 0, "cap on GUID generation passes per package")
	fs.BoolVar(&f.rewritePayload, "rewrite-payload", false, "also rewrite GUIDs inside text asset payloads")
	fs.IntVarP(&f.jobs, "jobs", "j", 0, "packages processed concurrently")
	fs.StringVar(&f.report, "report", "", "write a remap report: none, toml, yaml or json")
	fs.BoolVar(&f.confirm, "confirm", false, "ask before keeping each written package")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	root := NewRootCommand(NewApp(Dependencies{}))
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(int(exitStatus(err)))
	}
}
