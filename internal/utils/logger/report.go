package logger

import (
	"fmt"
	"os"
	"path/filepath"
)

// StagedReport records the package archives staged by one download run so
// callers can audit what went into a filesystem after the fact.
type StagedReport struct {
	Title string
	Items []string
}

// Write appends the report to staged-<title>.txt inside dir, one archive
// per line, with a blank separator line per run.
func (r *StagedReport) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating report path: %w", err)
	}

	title := r.Title
	if title == "" {
		title = "untitled"
	}
	safeTitle := ""
	for _, c := range title {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			safeTitle += string(c)
		} else {
			safeTitle += "_"
		}
	}

	reportPath := filepath.Join(dir, fmt.Sprintf("staged-%s.txt", safeTitle))
	f, err := os.OpenFile(reportPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening report file: %w", err)
	}
	defer f.Close()

	for _, item := range r.Items {
		if _, err := fmt.Fprintln(f, item); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	if _, err := fmt.Fprintln(f); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
