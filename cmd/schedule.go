package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/render"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage watering schedules",
	Long:  `Lists and manages watering reminders for the plants in your garden.`,
	RunE:  runScheduleList,
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watering schedules with due dates",
	RunE:  runScheduleList,
}

var scheduleSetCmd = &cobra.Command{
	Use:   "set <diagnosis-id>",
	Short: "Set a watering schedule for a garden plant",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleSet,
}

var scheduleWaterCmd = &cobra.Command{
	Use:   "water <diagnosis-id>",
	Short: "Mark a plant as watered today",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleWater,
}

func init() {
	scheduleSetCmd.Flags().Int("days", 3, "watering interval in days")
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleSetCmd)
	scheduleCmd.AddCommand(scheduleWaterCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	token, err := requireToken()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := newAPIClient(cfg)

	schedules, err := client.Schedules(ctx, token)
	if err != nil {
		return fmt.Errorf("listing schedules: %w", err)
	}

	// Pair each schedule with its garden record for plant names. A
	// failed garden fetch still lists the schedules.
	byID := map[int64]*api.Diagnosis{}
	if records, err := client.MyGarden(ctx, token); err == nil {
		for i := range records {
			byID[records[i].ID] = &records[i]
		}
	}

	rows := make([]render.ScheduleRow, 0, len(schedules))
	for _, s := range schedules {
		rows = append(rows, render.ScheduleRow{Schedule: s, Diagnosis: byID[s.DiagnosisID]})
	}
	render.ScheduleTable(os.Stdout, rows, time.Now())
	return nil
}

func runScheduleSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	token, err := requireToken()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid diagnosis id %q", args[0])
	}
	days, _ := cmd.Flags().GetInt("days")
	if days <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	client := newAPIClient(cfg)
	schedule, err := client.CreateSchedule(context.Background(), token, id, days)
	if err != nil {
		return fmt.Errorf("setting schedule: %w", err)
	}

	fmt.Printf("Watering every %d day(s) for diagnosis %d.\n", schedule.WaterIntervalDays, schedule.DiagnosisID)
	if next, err := schedule.NextWatering(); err == nil {
		fmt.Printf("Next watering due %s.\n", next.Format("2006-01-02"))
	}
	return nil
}

func runScheduleWater(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	token, err := requireToken()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid diagnosis id %q", args[0])
	}

	client := newAPIClient(cfg)
	if err := client.WaterPlant(context.Background(), token, id); err != nil {
		return fmt.Errorf("recording watering: %w", err)
	}

	fmt.Printf("Marked diagnosis %d as watered today.\n", id)
	return nil
}
