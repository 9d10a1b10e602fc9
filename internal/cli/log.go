// log.go implements the "bandhu log" command for inspecting events.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logLimit int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent events from the local activity log",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().IntVar(&logLimit, "limit", 20, "Number of events to show")
}

func runLog(cmd *cobra.Command, args []string) error {
	env, err := newEnv(false)
	if err != nil {
		return err
	}
	defer env.Close()

	events, err := env.Logger.ReadAll()
	if err != nil {
		return fmt.Errorf("reading event log: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No events yet.")
		return nil
	}

	start := 0
	if logLimit > 0 && len(events) > logLimit {
		start = len(events) - logLimit
	}

	for _, e := range events[start:] {
		line := fmt.Sprintf("%s  %-18s", e.Time.Local().Format("2006-01-02 15:04:05"), e.Event)
		if e.DatasetRef != "" {
			line += "  " + e.DatasetRef
		}
		if e.Query != "" {
			line += "  " + truncate(e.Query, 60)
		}
		if e.Error != "" {
			line += "  error: " + truncate(e.Error, 60)
		}
		fmt.Println(line)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
