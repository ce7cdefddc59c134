package harness

import (
	_ "embed"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReportPlaceholder marks where the error rows go in a report template.
const ReportPlaceholder = "<!--error-placeholder-->"

const reportFilePrefix = "build-report-"

// DefaultReportTemplate is used when no template file is configured.
//
//go:embed report_template.html
var DefaultReportTemplate string

// LoadReportTemplate reads a template file, or returns DefaultReportTemplate if path is empty.
func LoadReportTemplate(path string) (string, error) {
	if path == "" {
		return DefaultReportTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read report template: %w", err)
	}
	template := string(data)
	if !strings.Contains(template, ReportPlaceholder) {
		return "", fmt.Errorf("report template %s does not contain %s", path, ReportPlaceholder)
	}
	return template, nil
}

// FormatRow renders one record as a table row. The columns are always backend, test name,
// description and screenshot link, in that order.
func FormatRow(r ErrorRecord) string {
	link := ""
	if r.ScreenshotPath != "" {
		escaped := html.EscapeString(r.ScreenshotPath)
		link = fmt.Sprintf(`<a href="%s">%s</a>`, escaped, html.EscapeString(filepath.Base(r.ScreenshotPath)))
	}
	return fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td class="description">%s</td><td>%s</td></tr>`,
		html.EscapeString(r.Backend.String()),
		html.EscapeString(r.TestName),
		html.EscapeString(r.Description),
		link,
	) + "\n"
}

// RenderReport substitutes the rows for all records into the template's placeholder.
func RenderReport(records []ErrorRecord, template string) (string, error) {
	if !strings.Contains(template, ReportPlaceholder) {
		return "", fmt.Errorf("report template does not contain %s", ReportPlaceholder)
	}
	var rows strings.Builder
	for _, r := range records {
		rows.WriteString(FormatRow(r))
	}
	return strings.Replace(template, ReportPlaceholder, rows.String(), 1), nil
}

// WriteReport stores a rendered report in dir and returns the path of the new file.
func WriteReport(dir, content string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create log directory: %w", err)
	}
	path := filepath.Join(dir, reportFilePrefix+now.Format(timestampLayout)+".html")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("could not write report: %w", err)
	}
	return path, nil
}
