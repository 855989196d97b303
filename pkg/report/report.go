package report

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the format the sheet uses for Date and Update_Time, in local time
const TimeLayout = "2006-01-02 15:04:05"

// Status is the processing state of a report
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists the accepted Status values in display order
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// Submission tracks whether a cheque or the documents were handed in
type Submission string

const (
	SubmissionYes     Submission = "yes"
	SubmissionNo      Submission = "no"
	SubmissionPending Submission = "pending"
)

// Submissions lists the accepted Submission values in display order
var Submissions = []Submission{SubmissionYes, SubmissionNo, SubmissionPending}

// Report represents a single transaction report as stored in the sheet.
// Enumeration fields hold the stored value verbatim; comparisons on them are
// case-insensitive.
type Report struct {
	ID              string
	RegistrationRef string // SRO or BT number
	SellerName      string
	ApplicantName   string
	BankName        string
	Status          Status
	ChequeStatus    Submission
	DocumentStatus  Submission
	LoanNumber      string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DateText is the Date cell exactly as the sheet returned it
	DateText string
}

// row is the flat wire shape of a report.
type row struct {
	ID             flexString `json:"ID"`
	SRO            flexString `json:"SRO"`
	SellerName     flexString `json:"Seller_Name"`
	ApplicantName  flexString `json:"Applicant_Borrower_Name"`
	BankName       flexString `json:"Bank_Name"`
	Status         flexString `json:"Status"`
	ChequeStatus   flexString `json:"Cheque_Status"`
	DocumentStatus flexString `json:"Document_Status"`
	Date           flexString `json:"Date"`
	UpdateTime     flexString `json:"Update_Time"`
	LoanNumber     flexString `json:"Loan_number"`
}

// MarshalJSON encodes the report as a sheet row
func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(row{
		ID:             flexString(r.ID),
		SRO:            flexString(r.RegistrationRef),
		SellerName:     flexString(r.SellerName),
		ApplicantName:  flexString(r.ApplicantName),
		BankName:       flexString(r.BankName),
		Status:         flexString(r.Status),
		ChequeStatus:   flexString(r.ChequeStatus),
		DocumentStatus: flexString(r.DocumentStatus),
		Date:           flexString(orText(FormatTime(r.CreatedAt), r.DateText)),
		UpdateTime:     flexString(FormatTime(r.UpdatedAt)),
		LoanNumber:     flexString(r.LoanNumber),
	})
}

// UnmarshalJSON decodes a sheet row. Timestamps that cannot be parsed are
// left as the zero time so date filters exclude the report. A missing or
// earlier Update_Time is raised to the creation time.
func (r *Report) UnmarshalJSON(data []byte) error {
	var w row
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	created, _ := ParseTime(string(w.Date), time.Local)
	updated, _ := ParseTime(string(w.UpdateTime), time.Local)
	*r = Report{
		ID:              string(w.ID),
		RegistrationRef: string(w.SRO),
		SellerName:      string(w.SellerName),
		ApplicantName:   string(w.ApplicantName),
		BankName:        string(w.BankName),
		Status:          Status(w.Status),
		ChequeStatus:    Submission(w.ChequeStatus),
		DocumentStatus:  Submission(w.DocumentStatus),
		LoanNumber:      string(w.LoanNumber),
		CreatedAt:       created,
		UpdatedAt:       updated,
		DateText:        string(w.Date),
	}
	r.UpdatedAt = NotBefore(r.UpdatedAt, r.CreatedAt)
	return nil
}

// NotBefore returns t, or floor when t is earlier
func NotBefore(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}
	return t
}

func orText(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// FormatTime renders t in the sheet layout. The zero time renders empty.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

var fallbackLayouts = []string{TimeLayout, "2006-01-02", time.RFC3339}

// ParseTime parses a sheet timestamp in loc. Date-only and RFC 3339 values
// written by hand into the sheet are accepted too.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range fallbackLayouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// flexString accepts both JSON strings and numbers; sheet cells holding
// digits only may come back as numbers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var b bool
		if berr := json.Unmarshal(data, &b); berr != nil {
			return err
		}
		*s = flexString(strconv.FormatBool(b))
		return nil
	}
	*s = flexString(n.String())
	return nil
}
