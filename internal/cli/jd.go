// jd.go implements the "bandhu jd" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var jdCmd = &cobra.Command{
	Use:   "jd <table>",
	Short: "Show the job description behind a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runJD,
}

func runJD(cmd *cobra.Command, args []string) error {
	env, err := newEnv(true)
	if err != nil {
		return err
	}
	defer env.Close()

	text, err := env.Client.JobDescription(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching job description: %w", err)
	}

	fmt.Println(text)
	return nil
}
