// ask.go implements the "bandhu ask" command for one-shot questions.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askTable string

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask a question about a candidate dataset",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askTable, "table", "", "Dataset table name (defaults to the newest session)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	env, err := newEnv(true)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.Store.Bootstrap(cmd.Context()); err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	sess, err := resolveTableSession(env.Store, askTable)
	if err != nil {
		return err
	}
	if err := env.Store.SetActive(cmd.Context(), sess.ID); err != nil {
		return fmt.Errorf("opening session: %w", err)
	}

	question := strings.Join(args, " ")
	followups, err := env.Store.Send(cmd.Context(), sess.ID, question)
	if err != nil {
		return err
	}

	msgs := sess.Messages
	if len(msgs) > 0 {
		fmt.Println(msgs[len(msgs)-1].Content)
	}

	if len(followups) > 0 {
		fmt.Println()
		fmt.Println("Suggested followups:")
		for _, f := range followups {
			fmt.Printf("  - %s\n", f)
		}
	}

	return nil
}
