package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/history"
	"github.com/leafdoctor/leafdoctor/internal/render"
	"github.com/leafdoctor/leafdoctor/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [journal-id]",
	Short: "Generate a PDF report from a past diagnosis",
	Long: `Generates a PDF report from an entry in the local diagnosis journal.
With no id, reports the most recent diagnosis. List journal ids with
` + "`leafdoctor garden list --local`" + `.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("out", "", "output directory (default: current directory)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, journal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := context.Background()

	var entry *history.Entry
	if len(args) == 1 {
		entry, err = journal.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("reading journal: %w", err)
		}
		if entry == nil {
			return fmt.Errorf("no journal entry with id %s", args[0])
		}
	} else {
		entries, err := journal.List(ctx, history.Filter{Limit: 1})
		if err != nil {
			return fmt.Errorf("reading journal: %w", err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("the journal is empty; run `leafdoctor diagnose` first")
		}
		entry = &entries[0]
	}

	outDir, _ := cmd.Flags().GetString("out")
	path := filepath.Join(outDir, report.DefaultFilename(entry.ImagePath, entry.CreatedAt))

	err = report.WriteFile(path, report.Report{
		Title:       render.PrettyLabel(entry.DiseaseName),
		ImagePath:   entry.ImagePath,
		GeneratedAt: time.Now(),
		Predictions: entry.Predictions,
		Advice:      entry.Advice,
	})
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Printf("Report written to %s\n", path)
	return nil
}
