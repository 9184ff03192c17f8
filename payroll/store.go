/*
store.go - Persistence interfaces for shifts and workplace policies

PURPOSE:
  The engine never stores anything itself. These interfaces describe what
  the calling layer (shifts.Book) needs from storage: a shift log that keeps
  insertion order and a runtime-editable workplace policy table.

KEY INTERFACES:
  ShiftStore:     Shift records, keyed by ID, listed in insertion order
  WorkplaceStore: Workplace policies, keyed by name
  TxStore:        Both, plus atomic multi-write

ORDERING:
  ListShifts returns records in the order they were first saved. Replacing
  a record (same ID) keeps its position. Check reports findings in this
  order, so stores must preserve it.

IMPLEMENTATIONS:
  - payroll/store/memory.go: In-memory for tests and the CLI
  - store/sqlite/sqlite.go:  SQLite for the server

SEE ALSO:
  - shifts/book.go: Uses these interfaces
*/
package payroll

import "context"

// ShiftFilter narrows ListShifts. Zero values match everything.
type ShiftFilter struct {
	Period    Period
	Workplace string
}

// Matches reports whether rec passes the filter.
func (f ShiftFilter) Matches(rec ShiftRecord) bool {
	if f.Workplace != "" && rec.Workplace != f.Workplace {
		return false
	}
	return f.Period.Contains(rec.Date)
}

// ShiftStore persists shift records.
type ShiftStore interface {
	// SaveShift inserts rec, or replaces the record with the same ID.
	SaveShift(ctx context.Context, rec ShiftRecord) error

	// SaveShifts saves every record or none.
	SaveShifts(ctx context.Context, recs []ShiftRecord) error

	// GetShift returns ErrShiftNotFound for unknown IDs.
	GetShift(ctx context.Context, id string) (ShiftRecord, error)

	// ListShifts returns matching records in insertion order.
	ListShifts(ctx context.Context, filter ShiftFilter) ([]ShiftRecord, error)

	// DeleteShift returns ErrShiftNotFound for unknown IDs.
	DeleteShift(ctx context.Context, id string) error
}

// WorkplaceStore persists the workplace policy table.
type WorkplaceStore interface {
	SaveWorkplace(ctx context.Context, policy WorkplacePolicy) error

	// GetWorkplace returns ErrWorkplaceNotFound for unknown names.
	GetWorkplace(ctx context.Context, name string) (WorkplacePolicy, error)

	ListWorkplaces(ctx context.Context) (Workplaces, error)

	// DeleteWorkplace returns ErrWorkplaceNotFound for unknown names.
	DeleteWorkplace(ctx context.Context, name string) error
}

// Store is a shift log together with its policy table.
type Store interface {
	ShiftStore
	WorkplaceStore
}

// TxStore wraps Store with transaction support.
type TxStore interface {
	Store

	// WithTx executes fn within a transaction.
	// If fn returns error, every write made through the inner Store is
	// rolled back.
	WithTx(ctx context.Context, fn func(Store) error) error
}
