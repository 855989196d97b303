package report

import (
	"fmt"
	"strings"
	"time"
)

// Field names one of the report attributes that may change after creation
type Field int

const (
	FieldStatus Field = iota + 1
	FieldChequeStatus
	FieldDocumentStatus
	FieldLoanNumber
)

// Fields lists every mutable field
var Fields = []Field{FieldStatus, FieldChequeStatus, FieldDocumentStatus, FieldLoanNumber}

// ValidationError reports a rejected input, scoped to the field it concerns
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (f Field) String() string {
	switch f {
	case FieldStatus:
		return "status"
	case FieldChequeStatus:
		return "cheque_status"
	case FieldDocumentStatus:
		return "document_status"
	case FieldLoanNumber:
		return "loan_number"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Column returns the sheet column backing the field
func (f Field) Column() string {
	switch f {
	case FieldStatus:
		return "Status"
	case FieldChequeStatus:
		return "Cheque_Status"
	case FieldDocumentStatus:
		return "Document_Status"
	case FieldLoanNumber:
		return "Loan_number"
	}
	return ""
}

// ParseField resolves a field by its snake_case name, kebab-case name,
// camelCase name or sheet column. Matching ignores case.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	switch key {
	case "status":
		return FieldStatus, nil
	case "chequestatus", "cheque":
		return FieldChequeStatus, nil
	case "documentstatus", "document":
		return FieldDocumentStatus, nil
	case "loannumber", "loan":
		return FieldLoanNumber, nil
	}
	return 0, &ValidationError{Field: "field", Message: fmt.Sprintf("%q is not an editable field", name)}
}

// Normalize checks value against the field's domain and returns the form
// written to the sheet. Enumerations are lowercased; loan numbers are kept
// exactly as given.
func (f Field) Normalize(value string) (string, error) {
	switch f {
	case FieldStatus:
		for _, s := range Statuses {
			if strings.EqualFold(value, string(s)) {
				return string(s), nil
			}
		}
		return "", &ValidationError{Field: f.String(), Message: fmt.Sprintf("%q is not one of %v", value, Statuses)}
	case FieldChequeStatus, FieldDocumentStatus:
		for _, s := range Submissions {
			if strings.EqualFold(value, string(s)) {
				return string(s), nil
			}
		}
		return "", &ValidationError{Field: f.String(), Message: fmt.Sprintf("%q is not one of %v", value, Submissions)}
	case FieldLoanNumber:
		return value, nil
	}
	return "", &ValidationError{Field: "field", Message: fmt.Sprintf("%v is not an editable field", f)}
}

// Value returns the current value of the field on r
func (f Field) Value(r Report) string {
	switch f {
	case FieldStatus:
		return string(r.Status)
	case FieldChequeStatus:
		return string(r.ChequeStatus)
	case FieldDocumentStatus:
		return string(r.DocumentStatus)
	case FieldLoanNumber:
		return r.LoanNumber
	}
	return ""
}

// Apply returns a copy of r with the field set to value and UpdatedAt moved
// to at. UpdatedAt never goes before CreatedAt.
func (f Field) Apply(r Report, value string, at time.Time) Report {
	switch f {
	case FieldStatus:
		r.Status = Status(value)
	case FieldChequeStatus:
		r.ChequeStatus = Submission(value)
	case FieldDocumentStatus:
		r.DocumentStatus = Submission(value)
	case FieldLoanNumber:
		r.LoanNumber = value
	}
	r.UpdatedAt = NotBefore(at, r.CreatedAt)
	return r
}
