package report

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// PendingValue is what a new report carries in every status column
const PendingValue = "Pending"

// IncrementID asks the sheet to assign the next row id
const IncrementID = "INCREMENT"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("name"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Draft holds the user input for a report that does not exist yet
type Draft struct {
	RegistrationRef string `name:"registration_ref"`
	SellerName      string `name:"seller_name" validate:"required"`
	ApplicantName   string `name:"applicant_name" validate:"required"`
	BankName        string `name:"bank_name" validate:"required"`
}

// Validate checks the draft before anything is sent. Blank values count as
// missing. When banks is non-empty BankName must be one of them.
func (d Draft) Validate(banks []string) error {
	d = d.trimmed()
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{Field: fe.Field(), Message: fmt.Sprintf("%s is required", strings.ReplaceAll(fe.Field(), "_", " "))}
		}
		return fmt.Errorf("failed to validate report: %w", err)
	}
	if len(banks) == 0 {
		return nil
	}
	for _, b := range banks {
		if b == d.BankName {
			return nil
		}
	}
	return &ValidationError{Field: "bank_name", Message: fmt.Sprintf("%q is not a known bank", d.BankName)}
}

// Report builds the row to create with the defaults a new report gets
func (d Draft) Report(now time.Time) Report {
	d = d.trimmed()
	return Report{
		ID:              IncrementID,
		RegistrationRef: d.RegistrationRef,
		SellerName:      d.SellerName,
		ApplicantName:   d.ApplicantName,
		BankName:        d.BankName,
		Status:          PendingValue,
		ChequeStatus:    PendingValue,
		DocumentStatus:  PendingValue,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (d Draft) trimmed() Draft {
	return Draft{
		RegistrationRef: strings.TrimSpace(d.RegistrationRef),
		SellerName:      strings.TrimSpace(d.SellerName),
		ApplicantName:   strings.TrimSpace(d.ApplicantName),
		BankName:        strings.TrimSpace(d.BankName),
	}
}
