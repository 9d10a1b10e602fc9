// new.go implements the "bandhu new" command for uploading a dataset.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	newJDPath  string
	newCSVPath string
)

var newCmd = &cobra.Command{
	Use:   "new <role-name>",
	Short: "Start a screening session from a JD and candidate CSV",
	Long: `Upload a job description PDF and a candidate CSV for the given
role. The backend scores every candidate against the JD and the new
session becomes available for questions, insights, and export.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newJDPath, "jd", "", "Job description PDF")
	newCmd.Flags().StringVar(&newCSVPath, "csv", "", "Candidate CSV")
	newCmd.MarkFlagRequired("jd")
	newCmd.MarkFlagRequired("csv")
}

func runNew(cmd *cobra.Command, args []string) error {
	env, err := newEnv(true)
	if err != nil {
		return err
	}
	defer env.Close()

	sess, err := env.Store.NewTableSession(cmd.Context(), args[0], newJDPath, newCSVPath)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	fmt.Printf("Session ready: %s\n", sess.Title)
	fmt.Printf("Dataset: %s\n", sess.DatasetRef)
	fmt.Printf("Ask away: bandhu ask --table %s \"who are the top candidates?\"\n", sess.DatasetRef)
	return nil
}
