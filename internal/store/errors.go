package store

import (
	"errors"
	"fmt"

	"github.com/example/report-tracker/pkg/report"
)

// ErrNotFound means the id is not in the loaded reports
var ErrNotFound = errors.New("report not found")

// FetchError is a failed bulk read. The previously loaded reports are kept.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("failed to fetch reports: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// PatchError is a failed single-field update. The local report is unchanged.
type PatchError struct {
	ID    string
	Field report.Field
	Err   error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("failed to update %s of report %s: %v", e.Field, e.ID, e.Err)
}
func (e *PatchError) Unwrap() error { return e.Err }

// DeleteError is a failed delete. The local report is unchanged.
type DeleteError struct {
	ID  string
	Err error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete report %s: %v", e.ID, e.Err)
}
func (e *DeleteError) Unwrap() error { return e.Err }
