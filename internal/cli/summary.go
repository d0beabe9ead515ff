package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/appraise/internal/deletion"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// AppraisalCounts is what a classification pass reports to the operator.
type AppraisalCounts struct {
	ByCategory  map[model.Category]int
	DeleteLog   string
	CheckLog    string
	Records     int
	Matched     int
	CheckRows   int
	SkippedRows int
}

func summaryLine(label string, value any) string {
	return fmt.Sprintf("%s %v", SubtleStyle.Render(fmt.Sprintf("%-20s", label+":")), value)
}

// RenderAppraisalSummary renders classification counts in a box.
func RenderAppraisalSummary(c AppraisalCounts) string {
	lines := []string{
		summaryLine("Records read", c.Records),
		summaryLine("Matched", c.Matched),
		summaryLine("Near misses", c.CheckRows),
	}
	if c.SkippedRows > 0 {
		lines = append(lines, WarningStyle.Render(summaryLine("Malformed rows", c.SkippedRows)))
	}

	lines = append(lines, "", HeaderStyle.Render("By category"))
	for _, category := range categoriesToShow(c.ByCategory) {
		lines = append(lines, summaryLine("  "+category.String(), c.ByCategory[category]))
	}

	if c.DeleteLog != "" {
		lines = append(lines, "", summaryLine("Delete log", c.DeleteLog))
	}
	if c.CheckLog != "" {
		lines = append(lines, summaryLine("Check log", c.CheckLog))
	}

	return RenderBox("Appraisal", strings.Join(lines, "\n"))
}

// RenderDeletionSummary renders the outcome of a deletion pass. Unrecognized
// paths are highlighted because they need a manual look.
func RenderDeletionSummary(s deletion.Summary, auditPath string) string {
	unrecognized := summaryLine("Unrecognized paths", s.Unrecognized)
	if s.Unrecognized > 0 {
		unrecognized = WarningStyle.Render(unrecognized)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		summaryLine("Records", s.Records),
		SuccessStyle.Render(summaryLine("Deleted", s.Deleted)),
		summaryLine("Not found", s.NotFound),
		unrecognized,
		summaryLine("Form letters kept", s.FormLettersKept),
		summaryLine("Blank references", s.SkippedBlank),
		summaryLine("Space freed", formatBytes(s.BytesDeleted)),
		"",
		summaryLine("Audit log", auditPath),
	)

	return RenderBox(ShredIcon+" Deletion", content)
}

// categoriesToShow lists the built-in categories, then any configured ones.
func categoriesToShow(counts map[model.Category]int) []model.Category {
	categories := model.AllCategories()
	known := make(map[model.Category]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}

	var extra []model.Category
	for c := range counts {
		if !known[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(categories, extra...)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
