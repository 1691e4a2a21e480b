package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/biztrace/pkg/validation"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	summaryStyle = lipgloss.NewStyle().Bold(true)
)

// renderReport renders a cross-layer validation result as styled text.
// Errors and warnings are all listed; nothing aborts early.
func renderReport(businessTitle string, result *validation.Result) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Cross-layer validation: %s", businessTitle)))
	sb.WriteString("\n\n")

	if len(result.Issues) == 0 {
		sb.WriteString(okStyle.Render("No issues found"))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, issue := range result.Errors() {
		sb.WriteString(errorStyle.Render("ERROR"))
		sb.WriteString("  " + issue.Message + "\n")
		sb.WriteString(detailStyle.Render(issueDetail(issue)))
		sb.WriteString("\n")
	}
	for _, issue := range result.Warnings() {
		sb.WriteString(warnStyle.Render("WARN"))
		sb.WriteString("   " + issue.Message + "\n")
		sb.WriteString(detailStyle.Render(issueDetail(issue)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	verdict := okStyle.Render("VALID")
	if !result.IsValid {
		verdict = errorStyle.Render("INVALID")
	}
	sb.WriteString(summaryStyle.Render(fmt.Sprintf("%d error(s), %d warning(s) - ",
		len(result.Errors()), len(result.Warnings()))))
	sb.WriteString(verdict)
	sb.WriteString("\n")

	return sb.String()
}

func issueDetail(issue validation.Issue) string {
	parts := []string{"       layer=" + issue.Layer}
	if issue.Field != "" {
		parts = append(parts, "field="+issue.Field)
	}
	if issue.EntityID != "" {
		parts = append(parts, "entity="+issue.EntityID)
	}
	return strings.Join(parts, " ")
}
