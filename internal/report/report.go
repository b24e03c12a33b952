// Run report rendering: CSV for spreadsheets, a summaries text file for
// reading, and an HTML/PDF view of the whole batch.

package report

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"time"

	"go-scroop-automation/internal/pipeline"
)

//go:embed report.html.tmpl
var reportTemplateRaw string

// parsed once at package init, reused every run
var reportTemplate = template.Must(template.New("report").Parse(reportTemplateRaw))

const timestampFormat = "01-02-2006_03-04-PM"

// Filename returns a timestamped output file name like the run artifacts
// the pipeline has always produced.
func Filename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format(timestampFormat), ext)
}

// WriteCSV writes one row per rated job, highest rating first (jobs arrive
// pre-sorted from the pipeline).
func WriteCSV(path string, jobs []pipeline.RatedJob) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv report: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"Timestamp", "Job Match Rating", "Link"}); err != nil {
		return err
	}
	now := time.Now().Format(timestampFormat)
	for _, job := range jobs {
		if err := w.Write([]string{now, fmt.Sprintf("%d", job.Rating), job.URL}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteSummaries writes the full summaries of jobs rated at or above
// threshold.
func WriteSummaries(path string, jobs []pipeline.RatedJob, threshold int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary report: %w", err)
	}
	defer file.Close()

	for _, job := range jobs {
		if job.Rating < threshold {
			continue
		}
		if _, err := fmt.Fprintf(file, "%d -- %s\nJob Description:\n%s\n\n\n\n", job.Rating, job.URL, job.Summary); err != nil {
			return err
		}
	}
	return nil
}

type reportData struct {
	Date string
	Jobs []pipeline.RatedJob
}

// RenderHTML renders the batch as a standalone HTML document.
func RenderHTML(jobs []pipeline.RatedJob) (string, error) {
	var buf bytes.Buffer
	data := reportData{
		Date: time.Now().Format("01-02-2006"),
		Jobs: jobs,
	}
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.String(), nil
}
