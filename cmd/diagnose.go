package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/history"
	"github.com/leafdoctor/leafdoctor/internal/progress"
	"github.com/leafdoctor/leafdoctor/internal/render"
	"github.com/leafdoctor/leafdoctor/internal/report"
	"github.com/leafdoctor/leafdoctor/internal/scan"
	"github.com/leafdoctor/leafdoctor/internal/session"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <image-or-directory>",
	Short: "Diagnose plant leaf photos",
	Long: `Uploads a leaf photo to the inference server and prints the ranked
disease predictions with care advice. Given a directory, diagnoses
every image in it.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().Bool("save", false, "save the diagnosis to your garden (requires login)")
	diagnoseCmd.Flags().Bool("report", false, "write a PDF report next to the image")
	diagnoseCmd.Flags().String("report-out", "", "directory for PDF reports (implies --report)")
	diagnoseCmd.Flags().Int("top", 0, "show the top N predictions (overrides config)")
	diagnoseCmd.Flags().StringSlice("include", nil, "glob patterns to include in batch mode (e.g. 'tomato/**')")
	diagnoseCmd.Flags().StringSlice("exclude", nil, "glob patterns to exclude in batch mode")
	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	save, _ := cmd.Flags().GetBool("save")
	if !cmd.Flags().Changed("save") {
		save = cfg.SaveByDefault
	}
	makeReport, _ := cmd.Flags().GetBool("report")
	reportOut, _ := cmd.Flags().GetString("report-out")
	if reportOut != "" {
		makeReport = true
	}
	topK, _ := cmd.Flags().GetInt("top")
	if topK <= 0 {
		topK = cfg.TopK
	}
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	token := session.Token()
	if save && token == "" {
		return fmt.Errorf("--save requires an account; run `leafdoctor login` first")
	}

	images, err := scan.Images(args[0], scan.Options{Include: include, Exclude: exclude})
	if err != nil {
		return err
	}
	if len(images) == 0 {
		fmt.Println("No images found.")
		return nil
	}

	client := newAPIClient(cfg)
	database, journal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	opts := diagnoseOptions{
		save:       save,
		token:      token,
		topK:       topK,
		makeReport: makeReport,
		reportOut:  reportOut,
	}

	if len(images) == 1 {
		return diagnoseOne(client, journal, images[0], opts)
	}
	return diagnoseBatch(client, journal, images, opts)
}

type diagnoseOptions struct {
	save       bool
	token      string
	topK       int
	makeReport bool
	reportOut  string
}

// diagnoseOne uploads a single image and prints the full result.
func diagnoseOne(client *api.Client, journal *history.Store, imagePath string, opts diagnoseOptions) error {
	ctx := context.Background()

	result, err := predictFile(ctx, client, imagePath, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Diagnosis for %s:\n\n", filepath.Base(imagePath))
	render.Predictions(os.Stdout, result.TopPredictions, opts.topK, plain)

	if result.Advice != "" {
		fmt.Println("\nCare advice:")
		advice := render.StripMarkdown(result.Advice)
		delay := render.DefaultTypeDelay
		if plain {
			delay = 0
		}
		tw := &render.Typewriter{Writer: os.Stdout, Delay: delay}
		tw.Reveal(advice)
		fmt.Println()
	}

	if _, err := journalResult(ctx, journal, imagePath, result, opts.save); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record diagnosis locally: %v\n", err)
	}
	if opts.save {
		fmt.Println("\nSaved to your garden.")
	}

	if opts.makeReport {
		path, err := writeReport(imagePath, result, opts.reportOut)
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Report written to %s\n", path)
	}

	return nil
}

// diagnoseBatch uploads each image in turn with a progress bar, then
// prints a summary table.
func diagnoseBatch(client *api.Client, journal *history.Store, images []string, opts diagnoseOptions) error {
	ctx := context.Background()

	reporter := progress.NewReporter()
	reporter.Start(len(images))

	type batchRow struct {
		image  string
		result *api.PredictResult
		err    error
	}

	rows := make([]batchRow, 0, len(images))
	for i, imagePath := range images {
		reporter.Update(i, filepath.Base(imagePath))

		result, err := predictFile(ctx, client, imagePath, opts)
		if err == nil {
			if _, jerr := journalResult(ctx, journal, imagePath, result, opts.save); jerr != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not record %s locally: %v\n", imagePath, jerr)
			}
			if opts.makeReport {
				if _, rerr := writeReport(imagePath, result, opts.reportOut); rerr != nil {
					fmt.Fprintf(os.Stderr, "Warning: report for %s failed: %v\n", imagePath, rerr)
				}
			}
		}
		rows = append(rows, batchRow{image: imagePath, result: result, err: err})
		reporter.Update(i+1, filepath.Base(imagePath))
	}
	reporter.Finish()

	failed := 0
	fmt.Printf("%-30s %-40s %s\n", "IMAGE", "DIAGNOSIS", "CONF")
	for _, row := range rows {
		name := filepath.Base(row.image)
		if row.err != nil {
			failed++
			fmt.Printf("%-30s %s\n", name, "FAILED: "+row.err.Error())
			continue
		}
		if len(row.result.TopPredictions) == 0 {
			fmt.Printf("%-30s %s\n", name, "no predictions")
			continue
		}
		top := row.result.TopPredictions[0]
		fmt.Printf("%-30s %-40s %s\n", name, render.PrettyLabel(top.ClassName), render.Percent(top.ConfidenceScore))
	}

	fmt.Printf("\n%d diagnosed, %d failed.\n", len(rows)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(rows))
	}
	return nil
}

func predictFile(ctx context.Context, client *api.Client, imagePath string, opts diagnoseOptions) (*api.PredictResult, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", imagePath, err)
	}
	defer f.Close()

	result, err := client.Predict(ctx, imagePath, f, api.PredictOptions{
		Save:  opts.save,
		Token: opts.token,
	})
	if err != nil {
		return nil, fmt.Errorf("diagnosing %s: %w", filepath.Base(imagePath), err)
	}
	return result, nil
}

func journalResult(ctx context.Context, journal *history.Store, imagePath string, result *api.PredictResult, saved bool) (*history.Entry, error) {
	if len(result.TopPredictions) == 0 {
		return nil, nil
	}
	top := result.TopPredictions[0]
	return journal.Record(ctx, history.Entry{
		ImagePath:   imagePath,
		DiseaseName: top.ClassName,
		Confidence:  top.ConfidenceScore,
		Predictions: result.TopPredictions,
		Advice:      result.Advice,
		SavedRemote: saved,
	})
}

func writeReport(imagePath string, result *api.PredictResult, outDir string) (string, error) {
	name := report.DefaultFilename(imagePath, time.Now())
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(imagePath)
	}
	path := filepath.Join(dir, name)

	title := "Diagnosis"
	if len(result.TopPredictions) > 0 {
		title = render.PrettyLabel(result.TopPredictions[0].ClassName)
	}

	err := report.WriteFile(path, report.Report{
		Title:       title,
		ImagePath:   imagePath,
		GeneratedAt: time.Now(),
		Predictions: result.TopPredictions,
		Advice:      result.Advice,
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
