// Package render turns backend responses into terminal output: prettified
// labels, confidence bars, tables and the typewriter advice reveal.
package render

import (
	"fmt"
	"math"
	"strings"
)

// PrettyLabel converts a raw model class label like
// "Tomato___Early_blight" into "Tomato — Early blight". Labels that don't
// follow the plant___condition convention (e.g. "Uncertain Diagnosis")
// pass through with underscores cleaned up.
func PrettyLabel(class string) string {
	parts := strings.SplitN(class, "___", 2)
	for i, p := range parts {
		p = strings.ReplaceAll(p, "_", " ")
		parts[i] = strings.Join(strings.Fields(p), " ")
	}
	if len(parts) == 2 && parts[1] != "" {
		return parts[0] + " — " + parts[1]
	}
	return parts[0]
}

// IsHealthy reports whether a class label names a healthy plant.
func IsHealthy(class string) bool {
	return strings.Contains(strings.ToLower(class), "healthy")
}

// Percent formats a 0..1 confidence score as a rounded percentage.
func Percent(confidence float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(confidence*100)))
}
