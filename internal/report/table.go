// Package report renders check results as Markdown and reads them back.
package report

import (
	"strings"
	"time"

	"github.com/axellelanca/refcheck/internal/extract"
	"github.com/axellelanca/refcheck/internal/models"
)

// TimeLayout is the format of the Last Checked column.
const TimeLayout = "2006-01-02 15:04:05"

const tableHeader = "| URL | Status | Last Checked |\n|-----|--------|--------------|\n"

// RenderTable renders one row per result, in order.
func RenderTable(results []models.LinkStatus) string {
	var b strings.Builder
	b.WriteString(tableHeader)
	for _, r := range results {
		b.WriteString("| ")
		b.WriteString(r.URL)
		b.WriteString(" | ")
		b.WriteString(string(r.Status))
		b.WriteString(" | ")
		b.WriteString(r.LastChecked.Format(TimeLayout))
		b.WriteString(" |\n")
	}
	return b.String()
}

// ParseTable reads back rows written by RenderTable. Rows whose URL cell holds
// no referral link are skipped; an unreadable timestamp leaves LastChecked zero.
func ParseTable(text string) []models.LinkStatus {
	results := []models.LinkStatus{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := strings.Split(strings.Trim(line, "|"), "|")
		if len(cells) < 3 {
			continue
		}
		links := extract.Links(cells[0])
		if len(links) == 0 {
			continue
		}

		entry := models.LinkStatus{
			URL:    links[0],
			Code:   extract.Code(links[0]),
			Status: models.ParseStatus(strings.TrimSpace(cells[1])),
		}
		if ts, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(cells[2]), time.Local); err == nil {
			entry.LastChecked = ts
		}
		results = append(results, entry)
	}
	return results
}
