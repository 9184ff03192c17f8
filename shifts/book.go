/*
Package shifts is the stateful layer over the payroll engine.

PURPOSE:
  A Book owns a shift log and its workplace policy table. It resolves the
  policy for each shift, assigns IDs, persists records and runs bulk edits
  atomically. All arithmetic is delegated to package payroll.

OPERATIONS:
  Preview        Compute without saving
  Add            Compute, assign an ID, save
  Duplicate      Copy a record to another date under a new ID
  BulkEdit       Change workplace/wage/memo/busy on many records, re-price
  Check          Consistency scan over the whole log
  Summary        Totals and income limit for a period

BULK EDIT SEMANTICS:
  Edits touch money only. Hours, padding and breaks stay as they were
  computed, and Recompute prices the record with the (possibly new)
  workplace's rates. Either every record is saved or none is.

DUPLICATE SEMANTICS:
  Only Date and ID change. Derived fields are copied as is, even when the
  wage history would give the new date a different wage.

SEE ALSO:
  - payroll/calculator.go: ComputePay / Recompute
  - payroll/store.go: Store interfaces
  - api/handlers.go: HTTP surface
*/
package shifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warp/shift-payroll/payroll"
)

// Book is the shift log for one worker.
type Book struct {
	store    payroll.TxStore
	log      *zap.Logger
	patterns map[string]payroll.ShiftPattern
	newID    func() string
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(b *Book) { b.log = log }
}

// WithPatterns sets the named shift presets available to AddPattern.
func WithPatterns(patterns map[string]payroll.ShiftPattern) Option {
	return func(b *Book) { b.patterns = patterns }
}

// WithIDGenerator replaces uuid.NewString, for tests.
func WithIDGenerator(fn func() string) Option {
	return func(b *Book) { b.newID = fn }
}

func NewBook(store payroll.TxStore, opts ...Option) *Book {
	b := &Book{
		store: store,
		log:   zap.NewNop(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// =============================================================================
// SINGLE SHIFT
// =============================================================================

// Preview computes the record for in without saving it. The ID is empty.
func (b *Book) Preview(ctx context.Context, in payroll.ShiftInput) (payroll.ShiftRecord, error) {
	policy, err := b.policy(ctx, b.store, in.Workplace)
	if err != nil {
		return payroll.ShiftRecord{}, err
	}
	return payroll.ComputePay(in, policy)
}

// Add computes and saves a new shift.
func (b *Book) Add(ctx context.Context, in payroll.ShiftInput) (payroll.ShiftRecord, error) {
	rec, err := b.Preview(ctx, in)
	if err != nil {
		return payroll.ShiftRecord{}, err
	}
	rec.ID = b.newID()
	if err := b.store.SaveShift(ctx, rec); err != nil {
		return payroll.ShiftRecord{}, fmt.Errorf("failed to save shift: %w", err)
	}
	b.log.Info("shift added",
		zap.String("id", rec.ID),
		zap.String("workplace", rec.Workplace),
		zap.String("date", payroll.FormatDate(rec.Date)),
		zap.Int64("pay", rec.Pay),
	)
	return rec, nil
}

// Patterns returns the configured shift presets.
func (b *Book) Patterns() map[string]payroll.ShiftPattern {
	return b.patterns
}

// AddPattern adds a shift from a named preset on date.
func (b *Book) AddPattern(ctx context.Context, name string, date time.Time) (payroll.ShiftRecord, error) {
	p, ok := b.patterns[name]
	if !ok {
		return payroll.ShiftRecord{}, fmt.Errorf("%w: %q", ErrPatternNotFound, name)
	}
	return b.Add(ctx, p.Input(date))
}

func (b *Book) Get(ctx context.Context, id string) (payroll.ShiftRecord, error) {
	return b.store.GetShift(ctx, id)
}

// List returns stored shifts in the order they were added.
func (b *Book) List(ctx context.Context, filter payroll.ShiftFilter) ([]payroll.ShiftRecord, error) {
	return b.store.ListShifts(ctx, filter)
}

func (b *Book) Delete(ctx context.Context, id string) error {
	if err := b.store.DeleteShift(ctx, id); err != nil {
		return err
	}
	b.log.Info("shift deleted", zap.String("id", id))
	return nil
}

// DeleteMany removes every listed shift or none of them. An unknown ID
// aborts the whole delete.
func (b *Book) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	err := b.store.WithTx(ctx, func(tx payroll.Store) error {
		for _, id := range ids {
			if err := tx.DeleteShift(ctx, id); err != nil {
				return fmt.Errorf("shift %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	b.log.Info("shifts deleted", zap.Int("shifts", len(ids)))
	return len(ids), nil
}

// Duplicate copies shift id to date under a new ID.
func (b *Book) Duplicate(ctx context.Context, id string, date time.Time) (payroll.ShiftRecord, error) {
	src, err := b.store.GetShift(ctx, id)
	if err != nil {
		return payroll.ShiftRecord{}, err
	}
	dup := src
	dup.ID = b.newID()
	dup.Date = payroll.DateOf(date)
	if err := b.store.SaveShift(ctx, dup); err != nil {
		return payroll.ShiftRecord{}, fmt.Errorf("failed to save duplicate: %w", err)
	}
	b.log.Info("shift duplicated",
		zap.String("source", id),
		zap.String("id", dup.ID),
		zap.String("date", payroll.FormatDate(dup.Date)),
	)
	return dup, nil
}

// =============================================================================
// BULK EDIT
// =============================================================================

// Edit lists the fields a bulk edit changes. Nil fields are left alone.
type Edit struct {
	Workplace *string
	Wage      *int64 // ignored unless positive
	Memo      *string
	Busy      *bool
}

func (e Edit) empty() bool {
	return e.Workplace == nil && (e.Wage == nil || *e.Wage <= 0) && e.Memo == nil && e.Busy == nil
}

// BulkEdit applies edit to every shift in ids and re-prices them. An
// unknown ID aborts the whole edit.
func (b *Book) BulkEdit(ctx context.Context, ids []string, edit Edit) ([]payroll.ShiftRecord, error) {
	if len(ids) == 0 || edit.empty() {
		return nil, nil
	}

	var updated []payroll.ShiftRecord
	err := b.store.WithTx(ctx, func(tx payroll.Store) error {
		updated = updated[:0]
		for _, id := range ids {
			rec, err := tx.GetShift(ctx, id)
			if err != nil {
				return fmt.Errorf("shift %s: %w", id, err)
			}
			if edit.Workplace != nil {
				rec.Workplace = *edit.Workplace
			}
			if edit.Wage != nil && *edit.Wage > 0 {
				rec.Wage = *edit.Wage
			}
			if edit.Memo != nil {
				rec.Memo = *edit.Memo
			}
			if edit.Busy != nil {
				rec.Busy = *edit.Busy
			}

			policy, err := b.policy(ctx, tx, rec.Workplace)
			if err != nil {
				return err
			}
			updated = append(updated, payroll.Recompute(rec, policy))
		}
		return tx.SaveShifts(ctx, updated)
	})
	if err != nil {
		return nil, err
	}
	b.log.Info("bulk edit applied", zap.Int("shifts", len(updated)))
	return updated, nil
}

// =============================================================================
// REPORTS
// =============================================================================

// Check runs the consistency scan over every stored shift.
func (b *Book) Check(ctx context.Context) ([]payroll.Issue, error) {
	all, err := b.store.ListShifts(ctx, payroll.ShiftFilter{})
	if err != nil {
		return nil, err
	}
	issues := payroll.Check(all)
	if len(issues) > 0 {
		b.log.Warn("shift log has issues", zap.Int("count", len(issues)))
	}
	return issues, nil
}

// Summary aggregates the shifts inside opts.Period.
func (b *Book) Summary(ctx context.Context, opts payroll.SummaryOptions) (payroll.Summary, error) {
	shifts, err := b.store.ListShifts(ctx, payroll.ShiftFilter{Period: opts.Period})
	if err != nil {
		return payroll.Summary{}, err
	}
	return payroll.Summarize(shifts, opts), nil
}

// =============================================================================
// WORKPLACES
// =============================================================================

func (b *Book) Workplaces(ctx context.Context) (payroll.Workplaces, error) {
	return b.store.ListWorkplaces(ctx)
}

func (b *Book) Workplace(ctx context.Context, name string) (payroll.WorkplacePolicy, error) {
	return b.store.GetWorkplace(ctx, name)
}

// SaveWorkplace creates or replaces a policy. Stored shifts keep their
// figures until they are bulk edited.
func (b *Book) SaveWorkplace(ctx context.Context, policy payroll.WorkplacePolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	if err := b.store.SaveWorkplace(ctx, policy); err != nil {
		return err
	}
	b.log.Info("workplace saved", zap.String("workplace", policy.Name))
	return nil
}

func (b *Book) DeleteWorkplace(ctx context.Context, name string) error {
	if err := b.store.DeleteWorkplace(ctx, name); err != nil {
		return err
	}
	b.log.Info("workplace deleted", zap.String("workplace", name))
	return nil
}

// policy resolves name against the stored table, falling back to the
// Unconfigured policy for names nobody configured.
func (b *Book) policy(ctx context.Context, s payroll.WorkplaceStore, name string) (payroll.WorkplacePolicy, error) {
	p, err := s.GetWorkplace(ctx, name)
	if errors.Is(err, payroll.ErrWorkplaceNotFound) {
		b.log.Debug("no policy for workplace, using defaults", zap.String("workplace", name))
		return payroll.Unconfigured(name), nil
	}
	if err != nil {
		return payroll.WorkplacePolicy{}, fmt.Errorf("failed to load workplace %q: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}
