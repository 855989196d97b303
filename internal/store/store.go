// Package store keeps the canonical in-memory list of reports and mirrors
// every change to the sheet before committing it locally.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/report-tracker/pkg/report"
)

// Sheet is the remote table the reports live in
type Sheet interface {
	List(ctx context.Context) ([]report.Report, error)
	Create(ctx context.Context, r report.Report) error
	Update(ctx context.Context, id string, values map[string]string) error
	Delete(ctx context.Context, id string) error
}

// Store owns the loaded reports. Filtered views are computed from it on
// demand and never stored.
type Store struct {
	sheet Sheet
	log   logrus.FieldLogger
	now   func() time.Time
	banks []string

	mu      sync.Mutex
	reports []report.Report
	loads   uint64
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithBanks restricts new reports to the given bank names
func WithBanks(banks []string) Option {
	return func(s *Store) { s.banks = append([]string(nil), banks...) }
}

// New returns an empty store backed by sheet
func New(sheet Sheet, log logrus.FieldLogger, opts ...Option) *Store {
	s := &Store{sheet: sheet, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces every report with a fresh read of the sheet. On failure the
// current reports are kept and a *FetchError is returned.
func (s *Store) Load(ctx context.Context) error {
	fetched, err := s.sheet.List(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to load reports")
		return &FetchError{Err: err}
	}

	reports := make([]report.Report, 0, len(fetched))
	seen := make(map[string]bool, len(fetched))
	for _, r := range fetched {
		if r.ID != "" && seen[r.ID] {
			s.log.WithField("id", r.ID).Warn("duplicate report id, keeping first row")
			continue
		}
		seen[r.ID] = true
		r.UpdatedAt = report.NotBefore(r.UpdatedAt, r.CreatedAt)
		reports = append(reports, r)
	}

	s.mu.Lock()
	s.reports = reports
	s.loads++
	s.mu.Unlock()

	s.log.WithField("count", len(reports)).Info("reports loaded")
	return nil
}

// Create validates d and appends it to the sheet. The id is assigned
// remotely, so the report shows up locally after the next Load.
func (s *Store) Create(ctx context.Context, d report.Draft) error {
	if err := d.Validate(s.banks); err != nil {
		return err
	}
	r := d.Report(s.now().Truncate(time.Second))
	if err := s.sheet.Create(ctx, r); err != nil {
		s.log.WithError(err).WithField("bank", r.BankName).Error("failed to create report")
		return fmt.Errorf("failed to create report: %w", err)
	}
	s.log.WithField("bank", r.BankName).Info("report created")
	return nil
}

// Delete removes the report remotely and then locally. Unknown ids fail
// with ErrNotFound without contacting the sheet.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, ok := s.Get(id); !ok {
		return &DeleteError{ID: id, Err: ErrNotFound}
	}

	log := s.log.WithField("id", id)
	if err := s.sheet.Delete(ctx, id); err != nil {
		log.WithError(err).Error("failed to delete report")
		return &DeleteError{ID: id, Err: err}
	}

	s.mu.Lock()
	if i := s.index(id); i >= 0 {
		s.reports = append(s.reports[:i:i], s.reports[i+1:]...)
	}
	s.mu.Unlock()

	log.Info("report deleted")
	return nil
}

// ApplyFieldPatch sets one field of one report, remotely first. Update_Time
// is written along with the field. The local report only changes once the
// sheet accepted the update.
//
// When a Load completed while the update was in flight, the result is
// applied to the reloaded report only if that report's UpdatedAt is older
// than this update; otherwise the reload already reflects it or a later edit.
func (s *Store) ApplyFieldPatch(ctx context.Context, id string, field report.Field, value string) error {
	value, err := field.Normalize(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return &PatchError{ID: id, Field: field, Err: ErrNotFound}
	}
	created := s.reports[i].CreatedAt
	loads := s.loads
	s.mu.Unlock()

	at := report.NotBefore(s.now().Truncate(time.Second), created)

	log := s.log.WithFields(logrus.Fields{"id": id, "field": field.String()})
	values := map[string]string{
		field.Column(): value,
		"Update_Time":  report.FormatTime(at),
	}
	if err := s.sheet.Update(ctx, id, values); err != nil {
		log.WithError(err).Error("failed to update report")
		return &PatchError{ID: id, Field: field, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i = s.index(id)
	if i < 0 {
		log.Warn("report disappeared during update")
		return nil
	}
	current := s.reports[i]
	if s.loads != loads && !current.UpdatedAt.Before(at) {
		log.Debug("reload already carries this update")
		return nil
	}
	s.reports[i] = field.Apply(current, value, at)
	log.Info("report updated")
	return nil
}

// View returns the reports matching c, computed from the full list
func (s *Store) View(c report.Criteria) []report.Report {
	return report.Filter(s.Reports(), c, s.now())
}

// Reports returns a copy of every loaded report
func (s *Store) Reports() []report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]report.Report(nil), s.reports...)
}

// Len returns how many reports are loaded
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}

// Get returns the report with the given id
func (s *Store) Get(id string) (report.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.reports[i], true
	}
	return report.Report{}, false
}

// Banks returns the distinct bank names of the loaded reports in the order
// they first appear
func (s *Store) Banks() []string {
	var banks []string
	for _, g := range report.GroupByBank(s.Reports()) {
		if g.BankName != "" {
			banks = append(banks, g.BankName)
		}
	}
	return banks
}

// index must be called with mu held
func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range s.reports {
		if r.ID == id {
			return i
		}
	}
	return -1
}
