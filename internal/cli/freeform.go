// freeform.go implements the "bandhu freeform" command.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var freeformCmd = &cobra.Command{
	Use:   "freeform <name> <prompt...>",
	Short: "Chat without a dataset, with the transcript saved locally",
	Long: `Send a prompt in a named freeform session. The conversation is
stored on this machine and reloaded whenever the same name is used, so
recent exchanges travel with the prompt as context.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFreeform,
}

func runFreeform(cmd *cobra.Command, args []string) error {
	env, err := newEnv(true)
	if err != nil {
		return err
	}
	defer env.Close()

	sess, err := env.Store.NewFreeformSession(args[0])
	if err != nil {
		return fmt.Errorf("opening freeform session: %w", err)
	}

	prompt := strings.Join(args[1:], " ")
	if _, err := env.Store.Send(cmd.Context(), sess.ID, prompt); err != nil {
		return err
	}

	msgs := sess.Messages
	if len(msgs) > 0 {
		fmt.Println(msgs[len(msgs)-1].Content)
	}
	return nil
}
