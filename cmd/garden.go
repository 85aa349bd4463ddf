package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/history"
	"github.com/leafdoctor/leafdoctor/internal/render"
)

var gardenCmd = &cobra.Command{
	Use:   "garden",
	Short: "Manage your saved diagnoses",
	Long:  `Lists and manages the diagnoses saved to your garden on the inference server.`,
	RunE:  runGardenList,
}

var gardenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved diagnoses",
	RunE:  runGardenList,
}

var gardenRemoveCmd = &cobra.Command{
	Use:     "remove <diagnosis-id>",
	Aliases: []string{"delete"},
	Short:   "Remove a diagnosis from your garden",
	Args:    cobra.ExactArgs(1),
	RunE:    runGardenRemove,
}

func init() {
	gardenCmd.PersistentFlags().Bool("local", false, "show the local diagnosis journal instead of the server garden")
	gardenListCmd.Flags().Int("limit", 0, "limit the number of local entries shown")
	gardenListCmd.Flags().Duration("since", 0, "only local entries newer than this (e.g. 72h)")
	gardenCmd.AddCommand(gardenListCmd)
	gardenCmd.AddCommand(gardenRemoveCmd)
	rootCmd.AddCommand(gardenCmd)
}

func runGardenList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	local, _ := cmd.Flags().GetBool("local")
	if local {
		limit, _ := cmd.Flags().GetInt("limit")
		since, _ := cmd.Flags().GetDuration("since")

		database, journal, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		filter := history.Filter{Limit: limit}
		if since > 0 {
			filter.Since = time.Now().Add(-since)
		}
		entries, err := journal.List(context.Background(), filter)
		if err != nil {
			return fmt.Errorf("listing journal: %w", err)
		}
		render.LocalTable(os.Stdout, entries)
		return nil
	}

	token, err := requireToken()
	if err != nil {
		return err
	}

	client := newAPIClient(cfg)
	records, err := client.MyGarden(context.Background(), token)
	if err != nil {
		return fmt.Errorf("listing garden: %w", err)
	}
	render.GardenTable(os.Stdout, records)
	return nil
}

func runGardenRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	local, _ := cmd.Flags().GetBool("local")
	if local {
		database, journal, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := journal.Delete(context.Background(), args[0]); err != nil {
			return fmt.Errorf("removing local entry: %w", err)
		}
		fmt.Println("Removed from the local journal.")
		return nil
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid diagnosis id %q", args[0])
	}

	token, err := requireToken()
	if err != nil {
		return err
	}

	client := newAPIClient(cfg)
	if err := client.DeleteDiagnosis(context.Background(), token, id); err != nil {
		return fmt.Errorf("removing diagnosis: %w", err)
	}
	fmt.Printf("Removed diagnosis %d from your garden.\n", id)
	return nil
}
