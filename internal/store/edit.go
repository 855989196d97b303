package store

import (
	"context"

	"github.com/example/report-tracker/pkg/report"
)

// Edit is a pending change to one field of one report. The shadow value can
// be changed freely; nothing reaches the sheet until Commit, which sends the
// whole value at once.
type Edit struct {
	store     *Store
	id        string
	field     report.Field
	confirmed string
	value     string
}

// Begin starts an edit of field on the report with the given id
func (s *Store) Begin(id string, field report.Field) (*Edit, error) {
	r, ok := s.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	v := field.Value(r)
	return &Edit{store: s, id: id, field: field, confirmed: v, value: v}, nil
}

// LoanDraft starts an edit of the loan number
func (s *Store) LoanDraft(id string) (*Edit, error) {
	return s.Begin(id, report.FieldLoanNumber)
}

// Set replaces the shadow value
func (e *Edit) Set(value string) { e.value = value }

// Value returns the shadow value
func (e *Edit) Value() string { return e.value }

// Confirmed returns the last value the sheet accepted
func (e *Edit) Confirmed() string { return e.confirmed }

// Dirty reports whether the shadow value differs from the confirmed one
func (e *Edit) Dirty() bool { return e.value != e.confirmed }

// Discard reverts the shadow value
func (e *Edit) Discard() { e.value = e.confirmed }

// Commit applies the shadow value through the store. An unchanged value is
// not sent. On failure the shadow value reverts to the confirmed one.
func (e *Edit) Commit(ctx context.Context) error {
	if !e.Dirty() {
		return nil
	}
	if err := e.store.ApplyFieldPatch(ctx, e.id, e.field, e.value); err != nil {
		e.value = e.confirmed
		return err
	}
	if r, ok := e.store.Get(e.id); ok {
		e.confirmed = e.field.Value(r)
	} else {
		e.confirmed = e.value
	}
	e.value = e.confirmed
	return nil
}
