package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in to the inference server",
	Long: `Logs in to the inference server and stores the access token in
~/.leafdoctor/session.json for later commands.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register [email]",
	Short: "Create an account on the inference server",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.Clear(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	email, password, err := promptCredentials(args)
	if err != nil {
		return err
	}

	client := newAPIClient(cfg)
	token, err := client.Login(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := session.Save(&session.Session{AccessToken: token.AccessToken, Email: email}); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	fmt.Printf("Logged in as %s.\n", email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	email, password, err := promptCredentials(args)
	if err != nil {
		return err
	}

	client := newAPIClient(cfg)
	token, err := client.Register(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := session.Save(&session.Session{AccessToken: token.AccessToken, Email: email}); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	fmt.Printf("Account created. Logged in as %s.\n", email)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := requireToken()
	if err != nil {
		return err
	}

	client := newAPIClient(cfg)
	user, err := client.Me(context.Background(), token)
	if err != nil {
		return fmt.Errorf("fetching account: %w", err)
	}

	fmt.Printf("Logged in as %s (id %d) on %s\n", user.Email, user.ID, cfg.ServerURL)
	return nil
}

// promptCredentials takes the email from args when given, otherwise
// prompts for it, and always prompts for the password with masking.
func promptCredentials(args []string) (email, password string, err error) {
	if len(args) == 1 {
		email = strings.TrimSpace(args[0])
	} else {
		prompt := promptui.Prompt{
			Label: "Email",
			Validate: func(s string) error {
				if !strings.Contains(s, "@") {
					return fmt.Errorf("enter a valid email address")
				}
				return nil
			},
		}
		email, err = prompt.Run()
		if err != nil {
			return "", "", err
		}
	}

	passPrompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(s string) error {
			if len(s) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}
			return nil
		},
	}
	password, err = passPrompt.Run()
	if err != nil {
		return "", "", err
	}

	return email, password, nil
}
