// Package cli defines Cobra command definitions for the bandhu CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sohamshirke10/recruiter-bandhu/internal/tui"
	"github.com/sohamshirke10/recruiter-bandhu/internal/tui/app"
)

var (
	backendFlag string
	version     = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "bandhu",
	Short: "Recruiting assistant for screening candidate datasets",
	Long: `Bandhu talks to the recruiting backend to screen candidates.
Upload a job description and a candidate CSV, then ask questions about
the pool, review insights, and export reports.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		env, err := newEnv(true)
		if err != nil {
			return err
		}
		defer env.Close()

		return tui.Run(app.New(env.Store, env.Client))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Backend URL override")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(freeformCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(jdCmd)
	rootCmd.AddCommand(candidateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(logCmd)
}
