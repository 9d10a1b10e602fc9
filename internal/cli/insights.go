// insights.go implements the "bandhu insights" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sohamshirke10/recruiter-bandhu/internal/insights"
	"github.com/sohamshirke10/recruiter-bandhu/internal/log"
	"github.com/sohamshirke10/recruiter-bandhu/internal/tui/views"
)

var insightsCmd = &cobra.Command{
	Use:   "insights <table>",
	Short: "Show charts derived from a candidate dataset",
	Long: `Fetch the dataset and derive charts from recognizable columns:
score distribution, top skills, experience ranges, and education level.`,
	Args: cobra.ExactArgs(1),
	RunE: runInsights,
}

func runInsights(cmd *cobra.Command, args []string) error {
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

	charts := insights.Derive(snap)
	env.Logger.Append(log.LogEvent{
		Event:      log.EventInsightsViewed,
		DatasetRef: tableName,
		Charts:     len(charts),
	})

	if len(charts) == 0 {
		fmt.Println("No recognizable columns to chart in this dataset.")
		return nil
	}

	fmt.Println(views.RenderCharts(charts))
	return nil
}
