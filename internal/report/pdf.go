// Package report generates PDF diagnosis reports.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/render"
)

// Report holds everything that goes into a diagnosis PDF.
type Report struct {
	Title       string
	ImagePath   string
	GeneratedAt time.Time
	Predictions []api.Prediction
	Advice      string
}

// Write renders the report as a single-page PDF to w.
func Write(w io.Writer, r Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("LeafDoctor Diagnosis Report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "LeafDoctor Diagnosis Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	if r.ImagePath != "" {
		pdf.CellFormat(0, 6, "Image: "+filepath.Base(r.ImagePath), "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if img := embeddableImage(r.ImagePath); img != "" {
		pdf.ImageOptions(r.ImagePath, 10, pdf.GetY(), 80, 0, true,
			fpdf.ImageOptions{ImageType: img, ReadDpi: true}, 0, "")
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Diagnosis", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range r.Predictions {
		label := render.PrettyLabel(p.ClassName)
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 11)
		} else {
			pdf.SetFont("Helvetica", "", 11)
		}
		pdf.CellFormat(120, 7, fmt.Sprintf("%d. %s", i+1, label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, render.Percent(p.ConfidenceScore), "", 1, "R", false, 0, "")
		drawConfidenceBar(pdf, p.ConfidenceScore)
	}
	pdf.Ln(4)

	if r.Advice != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, "Care Advice", "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		advice := render.StripMarkdown(r.Advice)
		for _, line := range strings.Split(advice, "\n") {
			if strings.TrimSpace(line) == "" {
				pdf.Ln(3)
				continue
			}
			pdf.MultiCell(0, 6, line, "", "L", false)
		}
	}

	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(0, 6, "Generated by LeafDoctor. Advice is informational and not a substitute for professional agronomy.", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

// WriteFile renders the report to path, creating parent directories.
func WriteFile(path string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Write(f, r); err != nil {
		return err
	}
	return f.Close()
}

// DefaultFilename derives a report filename from the image name and time.
func DefaultFilename(imagePath string, t time.Time) string {
	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	if base == "" || base == "." {
		base = "diagnosis"
	}
	return fmt.Sprintf("%s-report-%s.pdf", base, t.Format("20060102-150405"))
}

func drawConfidenceBar(pdf *fpdf.Fpdf, confidence float64) {
	const width = 120.0
	x, y := pdf.GetX(), pdf.GetY()
	pdf.SetFillColor(230, 230, 230)
	pdf.Rect(x, y, width, 3, "F")
	if confidence > 1 {
		confidence = 1
	}
	if confidence > 0 {
		pdf.SetFillColor(76, 175, 80)
		pdf.Rect(x, y, width*confidence, 3, "F")
	}
	pdf.Ln(6)
}

// embeddableImage returns the fpdf image type for path, or "" when the
// file is missing or not a format fpdf can embed.
func embeddableImage(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	}
	return ""
}
