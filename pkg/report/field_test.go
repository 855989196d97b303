package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := map[string]Field{
		"status":          FieldStatus,
		"Status":          FieldStatus,
		"cheque_status":   FieldChequeStatus,
		"Cheque_Status":   FieldChequeStatus,
		"documentStatus":  FieldDocumentStatus,
		"document-status": FieldDocumentStatus,
		"Loan_number":     FieldLoanNumber,
		"loan":            FieldLoanNumber,
	}
	for name, want := range tests {
		got, err := ParseField(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseField("Bank_Name")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "field", verr.Field)
}

func TestField_Normalize(t *testing.T) {
	v, err := FieldStatus.Normalize("In-Progress")
	require.NoError(t, err)
	assert.Equal(t, "in-progress", v)

	v, err = FieldChequeStatus.Normalize("YES")
	require.NoError(t, err)
	assert.Equal(t, "yes", v)

	_, err = FieldDocumentStatus.Normalize("maybe")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "document_status", verr.Field)

	v, err = FieldLoanNumber.Normalize(" LN 42 ")
	require.NoError(t, err)
	assert.Equal(t, " LN 42 ", v)

	_, err = Field(0).Normalize("x")
	assert.Error(t, err)
}

func TestField_Apply(t *testing.T) {
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	r := Report{ID: "1", Status: "Pending", CreatedAt: created, UpdatedAt: created}

	later := created.Add(time.Hour)
	got := FieldStatus.Apply(r, "completed", later)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, later, got.UpdatedAt)
	assert.Equal(t, Status("Pending"), r.Status, "original must be untouched")

	got = FieldLoanNumber.Apply(r, "LN-9", created.Add(-time.Hour))
	assert.Equal(t, "LN-9", got.LoanNumber)
	assert.Equal(t, created, got.UpdatedAt)

	for _, f := range Fields {
		assert.NotEmpty(t, f.Column())
		assert.Equal(t, "v", f.Value(f.Apply(r, "v", later)))
	}
}
