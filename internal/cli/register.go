// register.go implements the "bandhu register" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sohamshirke10/recruiter-bandhu/internal/log"
)

var registerCompany string

var registerCmd = &cobra.Command{
	Use:   "register <user-id>",
	Short: "Create an account on the recruiting backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerCompany, "company", "", "Company name for the new account")
	registerCmd.MarkFlagRequired("company")
}

func runRegister(cmd *cobra.Command, args []string) error {
	env, err := newEnv(false)
	if err != nil {
		return err
	}
	defer env.Close()

	userID := args[0]

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := env.Client.Register(cmd.Context(), registerCompany, userID, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	env.Cfg.User.Company = registerCompany
	if err := env.saveConfig(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	env.Logger.Append(log.LogEvent{Event: log.EventRegister, UserID: userID})

	fmt.Printf("Registered %s (%s). Log in with: bandhu login %s\n", userID, registerCompany, userID)
	return nil
}
