// export.go implements the "bandhu export" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sohamshirke10/recruiter-bandhu/internal/export"
	"github.com/sohamshirke10/recruiter-bandhu/internal/insights"
	"github.com/sohamshirke10/recruiter-bandhu/internal/log"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Export a dataset and its charts to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output path (defaults to <table>.xlsx)")
}

func runExport(cmd *cobra.Command, args []string) error {
	env, err := newEnv(true)
	if err != nil {
		return err
	}
	defer env.Close()

	tableName := args[0]
	snap, err := env.Client.TableSnapshot(cmd.Context(), tableName)
	if err != nil {
		return fmt.Errorf("fetching dataset: %w", err)
	}

	out := exportOut
	if out == "" {
		out = tableName + ".xlsx"
	}

	charts := insights.Derive(snap)
	if err := export.Workbook(snap, charts, out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	env.Logger.Append(log.LogEvent{
		Event:      log.EventExportWritten,
		DatasetRef: tableName,
		Charts:     len(charts),
		Path:       out,
	})

	fmt.Printf("Wrote %s (%d candidates, %d charts)\n", out, len(snap.Rows), len(charts))
	return nil
}
