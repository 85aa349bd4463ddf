package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server reachability and session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Printf("Inference server: %s\n", cfg.ServerURL)

		client := newAPIClient(cfg)
		if err := client.Health(context.Background()); err != nil {
			fmt.Printf("  Status: unreachable (%v)\n", err)
		} else {
			fmt.Println("  Status: ok")
		}

		sess, err := session.Load()
		if err != nil {
			return fmt.Errorf("reading session: %w", err)
		}
		if sess.LoggedIn() {
			fmt.Printf("Session: logged in as %s\n", sess.Email)
		} else {
			fmt.Println("Session: not logged in")
		}

		database, journal, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		count, err := journal.CountToday(context.Background(), time.Now())
		if err != nil {
			return fmt.Errorf("reading journal: %w", err)
		}
		fmt.Printf("Diagnoses today: %d\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
