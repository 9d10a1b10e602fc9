// login.go implements the "bandhu login" and "bandhu logout" commands.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sohamshirke10/recruiter-bandhu/internal/log"
)

var loginCmd = &cobra.Command{
	Use:   "login <user-id>",
	Short: "Log in to the recruiting backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved user identity",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func runLogin(cmd *cobra.Command, args []string) error {
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

	if err := env.Client.Login(cmd.Context(), userID, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	env.Cfg.User.ID = userID
	if err := env.saveConfig(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	env.Logger.Append(log.LogEvent{Event: log.EventLogin, UserID: userID})

	fmt.Printf("Logged in as %s\n", userID)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	env, err := newEnv(false)
	if err != nil {
		return err
	}
	defer env.Close()

	if env.Cfg.User.ID == "" {
		fmt.Println("Not logged in.")
		return nil
	}

	userID := env.Cfg.User.ID
	env.Cfg.User.ID = ""
	env.Cfg.User.Company = ""
	if err := env.saveConfig(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	env.Logger.Append(log.LogEvent{Event: log.EventLogout, UserID: userID})

	fmt.Println("Logged out.")
	return nil
}

// readPassword prompts without echoing when stdin is a terminal, and
// falls back to a plain line read otherwise (pipes, CI).
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
