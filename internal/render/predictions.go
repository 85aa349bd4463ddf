package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leafdoctor/leafdoctor/internal/api"
)

const barWidth = 30

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	healthyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	diseaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Bar renders a fixed-width confidence bar for a 0..1 score.
func Bar(confidence float64) string {
	filled := int(math.Round(confidence * barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// Predictions writes the ranked prediction rows exactly in the order
// received. topK limits how many rows are shown (0 means all); plain
// disables styling.
func Predictions(w io.Writer, preds []api.Prediction, topK int, plain bool) {
	if len(preds) == 0 {
		fmt.Fprintln(w, "No predictions returned.")
		return
	}
	if topK > 0 && len(preds) > topK {
		preds = preds[:topK]
	}

	for i, p := range preds {
		label := PrettyLabel(p.ClassName)
		percent := Percent(p.ConfidenceScore)
		bar := Bar(p.ConfidenceScore)

		if plain {
			fmt.Fprintf(w, "%d. %-45s %4s  %s\n", i+1, label, percent, bar)
			continue
		}

		style := diseaseStyle
		if IsHealthy(p.ClassName) {
			style = healthyStyle
		}
		if i == 0 {
			label = labelStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		fmt.Fprintf(w, "%d. %-45s %4s  %s\n", i+1, label, style.Render(percent), barStyle.Render(bar))
	}
}
