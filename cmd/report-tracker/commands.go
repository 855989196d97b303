package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/report-tracker/internal/store"
	"github.com/example/report-tracker/pkg/report"
)

// filterFlags are the filter options shared by list and share
type filterFlags struct {
	date     string
	bank     string
	status   string
	cheque   string
	document string
	search   string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.date, "date", "", "created within: today, yesterday, last7days, last30days, thisMonth, lastMonth")
	fs.StringVar(&f.bank, "bank", "", "exact bank name")
	fs.StringVar(&f.status, "status", "", "pending, in-progress, completed or cancelled")
	fs.StringVar(&f.cheque, "cheque", "", "cheque submitted: yes, no or pending")
	fs.StringVar(&f.document, "document", "", "documents submitted: yes, no or pending")
	fs.StringVar(&f.search, "search", "", "text to look for in seller, applicant, bank and SRO/BT")
}

func (f *filterFlags) criteria() (report.Criteria, error) {
	dr, err := report.ParseDateRange(f.date)
	if err != nil {
		return report.Criteria{}, err
	}
	c := report.Criteria{DateRange: dr, BankName: f.bank, SearchText: f.search}

	enums := []struct {
		field report.Field
		raw   string
		set   func(string)
	}{
		{report.FieldStatus, f.status, func(v string) { c.Status = report.Status(v) }},
		{report.FieldChequeStatus, f.cheque, func(v string) { c.ChequeStatus = report.Submission(v) }},
		{report.FieldDocumentStatus, f.document, func(v string) { c.DocumentStatus = report.Submission(v) }},
	}
	for _, e := range enums {
		if e.raw == "" {
			continue
		}
		v, err := e.field.Normalize(e.raw)
		if err != nil {
			return report.Criteria{}, err
		}
		e.set(v)
	}
	return c, nil
}

func newListCmd() *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := filters.criteria()
			if err != nil {
				return err
			}
			a, err := setup(cmd, true)
			if err != nil {
				return err
			}
			view := a.store.View(c)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Showing %d of %d reports", len(view), a.store.Len())
			if n := c.Active(); n > 0 {
				fmt.Fprintf(out, " (%d filters)", n)
			}
			fmt.Fprintln(out)
			if len(view) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			renderTable(out, view)
			return nil
		},
	}
	filters.bind(cmd)
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of one report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, true)
			if err != nil {
				return err
			}
			r, ok := a.store.Get(args[0])
			if !ok {
				return fmt.Errorf("report %s: %w", args[0], store.ErrNotFound)
			}
			renderDetail(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func newCreateCmd() *cobra.Command {
	var d report.Draft
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, false)
			if err != nil {
				return err
			}
			if err := a.store.Create(cmd.Context(), d); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Report created successfully!")
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&d.RegistrationRef, "ref", "", "SRO or BT number")
	fs.StringVar(&d.SellerName, "seller", "", "seller name (required)")
	fs.StringVar(&d.ApplicantName, "applicant", "", "applicant or borrower name (required)")
	fs.StringVar(&d.BankName, "bank", "", "bank name, one of the configured banks (required)")
	return cmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <field> <value>",
		Short: "Update the status, cheque_status, document_status or loan_number of a report",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := report.ParseField(args[1])
			if err != nil {
				return err
			}
			a, err := setup(cmd, true)
			if err != nil {
				return err
			}
			if err := a.store.ApplyFieldPatch(cmd.Context(), args[0], field, args[2]); err != nil {
				return err
			}
			r, _ := a.store.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Report %s: %s = %q\n", args[0], field, field.Value(r))
			return nil
		},
	}
}

func newLoanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loan <id> <loan number>",
		Short: "Set the loan number of a report",
		Long: `Set the loan number of a report. An empty value clears it. Nothing is sent
when the loan number is unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, true)
			if err != nil {
				return err
			}
			draft, err := a.store.LoanDraft(args[0])
			if err != nil {
				return fmt.Errorf("report %s: %w", args[0], err)
			}
			draft.Set(args[1])
			if !draft.Dirty() {
				fmt.Fprintf(cmd.OutOrStdout(), "Report %s: loan number unchanged\n", args[0])
				return nil
			}
			if err := draft.Commit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report %s: loan number = %q\n", args[0], draft.Confirmed())
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, true)
			if err != nil {
				return err
			}
			r, _ := a.store.Get(args[0])
			if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report deleted successfully.\nSRO: %s\nSeller: %s\nApplicant: %s\n",
				r.RegistrationRef, r.SellerName, r.ApplicantName)
			return nil
		},
	}
}

func newShareCmd() *cobra.Command {
	var (
		filters filterFlags
		link    bool
	)
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a bank-grouped summary of the matching reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := filters.criteria()
			if err != nil {
				return err
			}
			a, err := setup(cmd, true)
			if err != nil {
				return err
			}
			message := report.Summary(a.store.View(c))
			if !link {
				fmt.Fprintln(cmd.OutOrStdout(), message)
				return nil
			}
			u, err := report.ShareURL(a.cfg.Share.BaseURL, message)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
	filters.bind(cmd)
	cmd.Flags().BoolVar(&link, "link", false, "print a messaging link with the summary pre-filled")
	return cmd
}
