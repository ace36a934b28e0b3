// Package export renders the task list as JSON, CSV or PDF.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"task-manager/internal/domain"
)

// Supported formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Lister is the part of the repository an Exporter reads from
type Lister interface {
	ListAll(ctx context.Context) ([]*domain.Task, error)
}

type Exporter struct {
	tasks Lister
	style domain.StatusStyle
}

// NewExporter creates an exporter. style picks the completion vocabulary used in the PDF.
func NewExporter(tasks Lister, style domain.StatusStyle) *Exporter {
	return &Exporter{tasks: tasks, style: style}
}

// Export writes every stored task to w in format.
func (e *Exporter) Export(ctx context.Context, format string, w io.Writer) error {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case FormatJSON, FormatCSV, FormatPDF:
	default:
		return fmt.Errorf("unknown format %q (want json, csv or pdf)", format)
	}

	tasks, err := e.tasks.ListAll(ctx)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	default:
		return e.writePDF(w, tasks)
	}
}

func writeJSON(w io.Writer, tasks []*domain.Task) error {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

func writeCSV(w io.Writer, tasks []*domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "due_date", "completed"}); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write([]string{t.Name(), t.DueDate(), strconv.FormatBool(t.IsCompleted())}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *Exporter) writePDF(w io.Writer, tasks []*domain.Task) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Task Report", false)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.Cell(40, 6, "No tasks.")
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, t := range tasks {
		pdf.MultiCell(0, 6, tr(t.Summary(e.style)), "0", "L", false)
	}
	return pdf.Output(w)
}
