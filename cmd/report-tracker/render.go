package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/report-tracker/pkg/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)

	statusColors = map[string]lipgloss.Color{
		string(report.StatusPending):    lipgloss.Color("3"),
		string(report.StatusInProgress): lipgloss.Color("4"),
		string(report.StatusCompleted):  lipgloss.Color("2"),
		string(report.StatusCancelled):  lipgloss.Color("1"),
		string(report.SubmissionYes):    lipgloss.Color("2"),
		string(report.SubmissionNo):     lipgloss.Color("1"),
	}
)

var tableHeaders = []string{"ID", "SRO/BT", "SELLER", "APPLICANT", "BANK", "STATUS", "CHEQUE", "DOCS", "LOAN", "CREATED", "UPDATED"}

// statusColumns are the table columns colored by value
var statusColumns = map[int]bool{5: true, 6: true, 7: true}

func tableRow(r report.Report) []string {
	created := report.FormatTime(r.CreatedAt)
	if created == "" {
		created = r.DateText
	}
	return []string{
		r.ID,
		orDash(r.RegistrationRef),
		r.SellerName,
		r.ApplicantName,
		r.BankName,
		orDash(string(r.Status)),
		orDash(string(r.ChequeStatus)),
		orDash(string(r.DocumentStatus)),
		orDash(r.LoanNumber),
		orDash(created),
		orDash(report.FormatTime(r.UpdatedAt)),
	}
}

// renderTable writes reports as aligned columns. Widths are measured on the
// plain text so styling does not shift columns.
func renderTable(w io.Writer, reports []report.Report) {
	rows := make([][]string, 0, len(reports))
	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range reports {
		row := tableRow(r)
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
		rows = append(rows, row)
	}

	line := func(cells []string, style func(col int, cell string) lipgloss.Style) string {
		out := make([]string, len(cells))
		for i, cell := range cells {
			out[i] = style(i, cell).Width(widths[i] + 2).Render(cell)
		}
		return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, out...), " ")
	}

	fmt.Fprintln(w, line(tableHeaders, func(int, string) lipgloss.Style { return cellStyle.Inherit(headerStyle) }))
	for _, row := range rows {
		fmt.Fprintln(w, line(row, func(col int, cell string) lipgloss.Style {
			if c, ok := statusColors[strings.ToLower(cell)]; ok && statusColumns[col] {
				return cellStyle.Foreground(c)
			}
			return cellStyle
		}))
	}
}

// detailLabels line up with tableRow
var detailLabels = []string{"ID", "SRO/BT", "Seller", "Applicant", "Bank", "Status", "Cheque", "Documents", "Loan Number", "Created", "Last updated"}

// renderDetail writes every field of one report on its own line
func renderDetail(w io.Writer, r report.Report) {
	width := 0
	for _, l := range detailLabels {
		width = max(width, lipgloss.Width(l)+1)
	}
	for i, value := range tableRow(r) {
		label := headerStyle.Width(width + 1).Render(detailLabels[i] + ":")
		style := lipgloss.NewStyle()
		if c, ok := statusColors[strings.ToLower(value)]; ok && statusColumns[i] {
			style = style.Foreground(c)
		}
		fmt.Fprintln(w, strings.TrimRight(label+style.Render(value), " "))
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
