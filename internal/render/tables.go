package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/history"
)

// GardenTable writes the remote "My Garden" records as a table.
func GardenTable(w io.Writer, records []api.Diagnosis) {
	if len(records) == 0 {
		fmt.Fprintln(w, "Your garden is empty. Diagnose a leaf with --save to add one.")
		return
	}

	fmt.Fprintf(w, "%-6s %-40s %-10s %s\n", "ID", "DIAGNOSIS", "CONF", "DATE")
	for _, r := range records {
		conf := r.Confidence
		if v, err := strconv.ParseFloat(r.Confidence, 64); err == nil {
			conf = Percent(v)
		}
		fmt.Fprintf(w, "%-6d %-40s %-10s %s\n", r.ID, PrettyLabel(r.DiseaseName), conf, r.Timestamp)
	}
}

// LocalTable writes journal entries as a table.
func LocalTable(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No local diagnoses yet. Run: leafdoctor diagnose path/to/leaf.jpg")
		return
	}

	fmt.Fprintf(w, "%-36s %-40s %-6s %-6s %s\n", "ID", "DIAGNOSIS", "CONF", "SAVED", "DATE")
	for _, e := range entries {
		saved := "-"
		if e.SavedRemote {
			saved = "yes"
		}
		fmt.Fprintf(w, "%-36s %-40s %-6s %-6s %s\n",
			e.ID, PrettyLabel(e.DiseaseName), Percent(e.Confidence), saved,
			e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

// ScheduleRow pairs a schedule with its garden record for display.
type ScheduleRow struct {
	Schedule  api.Schedule
	Diagnosis *api.Diagnosis
}

// ScheduleTable writes watering schedules with due-date status.
func ScheduleTable(w io.Writer, rows []ScheduleRow, now time.Time) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No watering schedules. Set one with: leafdoctor schedule set <diagnosis-id> --days N")
		return
	}

	fmt.Fprintf(w, "%-8s %-35s %-10s %-14s %-14s %s\n",
		"DIAG", "PLANT", "INTERVAL", "LAST WATERED", "NEXT", "STATUS")
	for _, row := range rows {
		plant := "(deleted diagnosis)"
		if row.Diagnosis != nil {
			plant = PrettyLabel(row.Diagnosis.DiseaseName)
		}

		next := "-"
		status := ""
		if n, err := row.Schedule.NextWatering(); err == nil {
			next = n.Format("2006-01-02")
			if row.Schedule.Overdue(now) {
				status = "OVERDUE"
			}
		}

		fmt.Fprintf(w, "%-8d %-35s %-10s %-14s %-14s %s\n",
			row.Schedule.DiagnosisID, plant,
			fmt.Sprintf("%dd", row.Schedule.WaterIntervalDays),
			row.Schedule.LastWateredDate, next, status)
	}
}
