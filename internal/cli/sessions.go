// sessions.go implements the "bandhu sessions" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sohamshirke10/recruiter-bandhu/internal/chat"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List screening sessions and saved freeform chats",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func runSessions(cmd *cobra.Command, args []string) error {
	env, err := newEnv(true)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.Store.Bootstrap(cmd.Context()); err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	sessions := env.Store.Sessions()
	if len(sessions) == 0 {
		fmt.Println("No screening sessions yet. Start one with: bandhu new")
	} else {
		fmt.Println("Screening sessions:")
		for _, s := range sessions {
			fmt.Printf("  %-30s  %s  %s\n",
				s.Title,
				s.CreatedAt.Format("Jan 02, 2006 15:04"),
				s.DatasetRef,
			)
		}
	}

	names, err := env.Transcripts.Names()
	if err != nil {
		return fmt.Errorf("listing freeform chats: %w", err)
	}
	if len(names) > 0 {
		fmt.Println()
		fmt.Println("Freeform chats:")
		for _, n := range names {
			fmt.Printf("  %s\n", n)
		}
	}

	return nil
}

// resolveTableSession finds the table-bound session for --table, or the
// newest one when the flag is empty.
func resolveTableSession(store *chat.Store, tableName string) (*chat.Session, error) {
	sessions := store.Sessions()

	if tableName == "" {
		for _, s := range sessions {
			if s.Kind == chat.KindTableBound {
				return s, nil
			}
		}
		return nil, fmt.Errorf("no screening sessions; start one with: bandhu new")
	}

	for _, s := range sessions {
		if s.Kind == chat.KindTableBound && s.DatasetRef == tableName {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no session for table %q; run: bandhu sessions", tableName)
}
