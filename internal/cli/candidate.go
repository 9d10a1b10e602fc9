// candidate.go implements the "bandhu candidate" command.
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var candidateCmd = &cobra.Command{
	Use:   "candidate <name>",
	Short: "Show a single candidate's profile",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCandidate,
}

func runCandidate(cmd *cobra.Command, args []string) error {
	env, err := newEnv(true)
	if err != nil {
		return err
	}
	defer env.Close()

	name := strings.Join(args, " ")
	profile, err := env.Client.Candidate(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("fetching candidate: %w", err)
	}

	if len(profile) == 0 {
		fmt.Printf("No profile found for %q.\n", name)
		return nil
	}

	keys := make([]string, 0, len(profile))
	width := 0
	for k := range profile {
		keys = append(keys, k)
		if len(k) > width {
			width = len(k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-*s  %v\n", width, k, profile[k])
	}
	return nil
}
