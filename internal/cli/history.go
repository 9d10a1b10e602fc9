// history.go implements the "bandhu history" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <table>",
	Short: "Show the server-side transcript for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := newEnv(true)
	if err != nil {
		return err
	}
	defer env.Close()

	pairs, err := env.Client.ChatHistory(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}

	if len(pairs) == 0 {
		fmt.Println("No conversation yet for this dataset.")
		return nil
	}

	for i, qa := range pairs {
		fmt.Printf("Q: %s\n", qa.Question)
		fmt.Printf("A: %s\n", qa.Answer)
		if i < len(pairs)-1 {
			fmt.Println()
		}
	}
	return nil
}
