package report

import (
	"fmt"
	"net/url"
	"strings"
)

// Group holds the reports of one bank in input order
type Group struct {
	BankName string
	Reports  []Report
}

// GroupByBank partitions reports by exact bank name. Groups come out in the
// order their bank is first seen.
func GroupByBank(reports []Report) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, r := range reports {
		i, ok := index[r.BankName]
		if !ok {
			i = len(groups)
			index[r.BankName] = i
			groups = append(groups, Group{BankName: r.BankName})
		}
		groups[i].Reports = append(groups[i].Reports, r)
	}
	return groups
}

// Summary renders the grouped digest shared with other people. Dates are
// printed as the sheet holds them. The output depends only on the input order.
func Summary(reports []Report) string {
	var lines []string
	for _, g := range GroupByBank(reports) {
		lines = append(lines, fmt.Sprintf("🏦 *%s*", g.BankName))
		for i, r := range g.Reports {
			lines = append(lines, fmt.Sprintf("%d) Applicant: %s\n    Date: %s,\n    SRO/BT: %s\n    Loan Number: %s",
				i+1,
				orDefault(r.ApplicantName, "N/A"),
				orDefault(orText(r.DateText, FormatTime(r.CreatedAt)), "N/A"),
				orDefault(r.RegistrationRef, "N/A"),
				orDefault(r.LoanNumber, "--"),
			))
		}
		lines = append(lines, "")
	}
	lines = append(lines, fmt.Sprintf("Total Files -- %d", len(reports)))
	return strings.Join(lines, "\n")
}

// ShareURL builds the messaging deep link carrying message as pre-filled text
func ShareURL(base, message string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid share url %q: %w", base, err)
	}
	q := u.Query()
	q.Set("text", message)
	u.RawQuery = strings.ReplaceAll(q.Encode(), "+", "%20")
	return u.String(), nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
