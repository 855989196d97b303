package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMainFunction(t *testing.T) {
	// Test that rootCmd is defined and has expected properties
	assert.NotNil(t, rootCmd, "rootCmd should be defined")
	assert.Equal(t, "report-tracker", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "transaction reports")
	assert.Contains(t, rootCmd.Long, "Report Tracker")

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "show", "create", "set", "loan", "delete", "share"}, names)
}

const sheetRows = `[
	{"ID":"1","SRO":"101","Seller_Name":"Acme Corp","Applicant_Borrower_Name":"Ravi","Bank_Name":"HDFC Home Loans","Status":"Pending","Cheque_Status":"Pending","Document_Status":"yes","Date":"2025-03-01 10:00:00","Update_Time":"2025-03-01 10:00:00","Loan_number":""},
	{"ID":"2","SRO":"102","Seller_Name":"Globex","Applicant_Borrower_Name":"Anita","Bank_Name":"SBI Home Loans","Status":"completed","Cheque_Status":"yes","Document_Status":"yes","Date":"2025-03-02 11:00:00","Update_Time":"2025-03-02 11:00:00","Loan_number":"LN-7"},
	{"ID":"3","SRO":"","Seller_Name":"Initech","Applicant_Borrower_Name":"Manoj","Bank_Name":"HDFC Home Loans","Status":"in-progress","Cheque_Status":"no","Document_Status":"pending","Date":"2025-03-03 12:00:00","Update_Time":"2025-03-03 12:00:00","Loan_number":""}
]`

type fakeSheet struct {
	mu       sync.Mutex
	requests []string
	bodies   []map[string]any
}

func (f *fakeSheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	if r.Body != nil {
		var body map[string]any
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &body)
			f.bodies = append(f.bodies, body)
		}
	}
	switch r.Method {
	case http.MethodGet:
		io.WriteString(w, sheetRows)
	case http.MethodPost:
		io.WriteString(w, `{"created":1}`)
	case http.MethodPatch:
		io.WriteString(w, `{"updated":1}`)
	case http.MethodDelete:
		io.WriteString(w, `{"deleted":1}`)
	}
}

func (f *fakeSheet) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// run executes a fresh command tree against a fake sheet
func run(t *testing.T, args ...string) (string, *fakeSheet, error) {
	t.Helper()
	fake := &fakeSheet{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := fmt.Sprintf(`
banks = ["HDFC Home Loans", "SBI Home Loans"]

[api]
base_url = %q

[log]
level = "error"
`, srv.URL+"/api/v1/test")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err := cmd.Execute()
	return out.String(), fake, err
}

func TestListCommand(t *testing.T) {
	out, fake, err := run(t, "list", "--bank", "HDFC Home Loans")
	require.NoError(t, err)

	assert.Contains(t, out, "Showing 2 of 3 reports (1 filters)")
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "Initech")
	assert.NotContains(t, out, "Globex")
	assert.Equal(t, []string{"GET /api/v1/test"}, fake.methods())
}

func TestListCommand_BadFilter(t *testing.T) {
	_, fake, err := run(t, "list", "--status", "archived")
	assert.Error(t, err)
	assert.Empty(t, fake.methods())
}

func TestShowCommand(t *testing.T) {
	out, fake, err := run(t, "show", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Seller:")
	assert.Contains(t, out, "Globex")
	assert.Contains(t, out, "SBI Home Loans")
	assert.Contains(t, out, "LN-7")
	assert.Contains(t, out, "2025-03-02 11:00:00")
	assert.NotContains(t, out, "Acme Corp")
	assert.Equal(t, []string{"GET /api/v1/test"}, fake.methods())

	_, _, err = run(t, "show", "99")
	assert.ErrorContains(t, err, "report 99: report not found")
}

func TestShareCommand(t *testing.T) {
	out, _, err := run(t, "share", "--search", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "🏦 *HDFC Home Loans*")
	assert.Contains(t, out, "Loan Number: LN-7")
	assert.Contains(t, out, "Total Files -- 3")

	out, _, err = run(t, "share", "--cheque", "yes", "--link")
	require.NoError(t, err)
	assert.Contains(t, out, "https://wa.me/?text=")
	assert.Contains(t, out, "Total%20Files%20--%201")
}

func TestSetCommand(t *testing.T) {
	out, fake, err := run(t, "set", "1", "Status", "Completed")
	require.NoError(t, err)

	assert.Contains(t, out, `Report 1: status = "completed"`)
	assert.Equal(t, []string{"GET /api/v1/test", "PATCH /api/v1/test/ID/1"}, fake.methods())
	require.Len(t, fake.bodies, 1)
	data := fake.bodies[0]["data"].(map[string]any)
	assert.Equal(t, "completed", data["Status"])
	assert.NotEmpty(t, data["Update_Time"])
}

func TestLoanCommand(t *testing.T) {
	out, fake, err := run(t, "loan", "2", "LN-7")
	require.NoError(t, err)
	assert.Contains(t, out, "loan number unchanged")
	assert.Equal(t, []string{"GET /api/v1/test"}, fake.methods())

	out, fake, err = run(t, "loan", "2", "LN-42")
	require.NoError(t, err)
	assert.Contains(t, out, `loan number = "LN-42"`)
	assert.Equal(t, []string{"GET /api/v1/test", "PATCH /api/v1/test/ID/2"}, fake.methods())
}

func TestDeleteCommand(t *testing.T) {
	out, fake, err := run(t, "delete", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Seller: Initech")
	assert.Equal(t, []string{"GET /api/v1/test", "DELETE /api/v1/test/ID/3"}, fake.methods())

	_, fake, err = run(t, "delete", "99")
	assert.ErrorContains(t, err, "report not found")
	assert.Equal(t, []string{"GET /api/v1/test"}, fake.methods())
}

func TestCreateCommand(t *testing.T) {
	out, fake, err := run(t, "create", "--seller", "Seller", "--applicant", "Buyer", "--bank", "SBI Home Loans", "--ref", "555")
	require.NoError(t, err)
	assert.Contains(t, out, "Report created successfully!")
	assert.Equal(t, []string{"POST /api/v1/test"}, fake.methods())

	_, fake, err = run(t, "create", "--seller", "Seller", "--bank", "SBI Home Loans")
	assert.ErrorContains(t, err, "applicant")
	assert.Empty(t, fake.methods())
}
