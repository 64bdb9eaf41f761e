package application

import (
	"bytes"
	"io"
	"strings"
	"time"
)

const (
	CSVContentType = "text/csv"
	CSVFileName    = "applications.csv"
)

var csvHeader = []string{
	"Full Name",
	"Email",
	"Phone Number",
	"LinkedIn Profile",
	"Portfolio Website",
	"Job Position",
	"Status",
	"Submitted At",
}

// isoMillis matches the millisecond UTC timestamps of the export format
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// WriteCSV writes the export: a fixed header and one fully quoted line per
// application, lines joined by \n
func WriteCSV(w io.Writer, apps []AdminApplication) error {
	lines := make([]string, 0, len(apps)+1)
	lines = append(lines, strings.Join(csvHeader, ","))

	for _, app := range apps {
		fields := []string{
			app.FullName,
			string(app.Email),
			app.PhoneNumber,
			app.LinkedinProfile,
			app.PortfolioWebsite,
			string(app.JobPosition),
			string(app.Status),
			exportTime(app.SubmittedAt),
		}
		for i, f := range fields {
			fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// ExportCSV renders the applications as a CSV blob
func ExportCSV(apps []AdminApplication) (*Blob, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, apps); err != nil {
		return nil, err
	}
	return &Blob{ContentType: CSVContentType, FileName: CSVFileName, Data: buf.Bytes()}, nil
}

func exportTime(t time.Time) string { return t.UTC().Format(isoMillis) }
