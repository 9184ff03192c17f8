/*
Package sqlite provides a SQLite-backed implementation of the payroll
storage interfaces.

PURPOSE:
  Implements payroll.TxStore (shift log plus workplace policy table) using
  SQLite, so the server keeps its data between restarts.

INTERFACES IMPLEMENTED:
  payroll.ShiftStore:     Shift records in insertion order
  payroll.WorkplaceStore: Workplace policies as JSON config
  payroll.TxStore:        Atomic multi-write (bulk edits)

KEY TABLES:
  shifts:     One row per shift record. seq keeps insertion order; an
              upsert on id keeps the original seq.
  workplaces: Workplace name -> policy JSON (factory.WorkplaceJSON),
              versioned like a config table.

INDEXES:
  - idx_shifts_date:      Period filters and summaries
  - idx_shifts_workplace: Per-workplace listing

CONCURRENCY:
  Uses sync.RWMutex for thread-safety and a single connection, which also
  keeps ":memory:" databases from splitting across pooled connections.

WAL MODE:
  File databases are opened with WAL (Write-Ahead Logging).

USAGE:
  store, err := sqlite.New("./payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  book := shifts.NewBook(store)

SEE ALSO:
  - payroll/store.go: Interface definitions
  - payroll/store/memory.go: In-memory implementation for testing
  - factory/workplace.go: Policy JSON encoding
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/shift-payroll/factory"
	"github.com/warp/shift-payroll/payroll"
)

// Store implements payroll.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
	q  queries
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, q: queries{db: db, wf: factory.NewWorkplaceFactory()}}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shifts (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		workplace TEXT NOT NULL,
		date TEXT NOT NULL,
		start_clock TEXT NOT NULL,
		end_clock TEXT NOT NULL,
		wage INTEGER NOT NULL,
		manual_break_min INTEGER NOT NULL DEFAULT 0,
		busy INTEGER NOT NULL DEFAULT 0,
		transport INTEGER NOT NULL DEFAULT 0,
		memo TEXT NOT NULL DEFAULT '',
		pre_minutes INTEGER NOT NULL DEFAULT 0,
		post_minutes INTEGER NOT NULL DEFAULT 0,
		total_hours_raw REAL NOT NULL,
		break_minutes INTEGER NOT NULL,
		work_hours REAL NOT NULL,
		night_hours REAL NOT NULL,
		early_hours REAL NOT NULL,
		base_pay INTEGER NOT NULL,
		night_bonus INTEGER NOT NULL,
		early_bonus INTEGER NOT NULL,
		busy_bonus INTEGER NOT NULL,
		pay INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts(date);
	CREATE INDEX IF NOT EXISTS idx_shifts_workplace ON shifts(workplace);

	CREATE TABLE IF NOT EXISTS workplaces (
		name TEXT PRIMARY KEY,
		config_json TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SHIFT STORE (payroll.ShiftStore interface)
// =============================================================================

func (s *Store) SaveShift(ctx context.Context, rec payroll.ShiftRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.saveShift(ctx, rec)
}

// SaveShifts saves all records in one transaction.
func (s *Store) SaveShifts(ctx context.Context, recs []payroll.ShiftRecord) error {
	return s.WithTx(ctx, func(tx payroll.Store) error {
		return tx.SaveShifts(ctx, recs)
	})
}

func (s *Store) GetShift(ctx context.Context, id string) (payroll.ShiftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.q.getShift(ctx, id)
}

func (s *Store) ListShifts(ctx context.Context, filter payroll.ShiftFilter) ([]payroll.ShiftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.q.listShifts(ctx, filter)
}

func (s *Store) DeleteShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.deleteShift(ctx, id)
}

// =============================================================================
// WORKPLACE STORE (payroll.WorkplaceStore interface)
// =============================================================================

func (s *Store) SaveWorkplace(ctx context.Context, policy payroll.WorkplacePolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.saveWorkplace(ctx, policy)
}

func (s *Store) GetWorkplace(ctx context.Context, name string) (payroll.WorkplacePolicy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.q.getWorkplace(ctx, name)
}

func (s *Store) ListWorkplaces(ctx context.Context) (payroll.Workplaces, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.q.listWorkplaces(ctx)
}

func (s *Store) DeleteWorkplace(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.deleteWorkplace(ctx, name)
}

// =============================================================================
// TRANSACTIONAL STORE (payroll.TxStore interface)
// =============================================================================

// WithTx executes a function within a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(store payroll.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{q: queries{db: sqlTx, wf: s.q.wf}}); err != nil {
		return err
	}

	return sqlTx.Commit()
}

// txStore runs every call on the open transaction. The parent lock is
// already held.
type txStore struct {
	q queries
}

func (ts *txStore) SaveShift(ctx context.Context, rec payroll.ShiftRecord) error {
	return ts.q.saveShift(ctx, rec)
}

func (ts *txStore) SaveShifts(ctx context.Context, recs []payroll.ShiftRecord) error {
	for _, rec := range recs {
		if err := ts.q.saveShift(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (ts *txStore) GetShift(ctx context.Context, id string) (payroll.ShiftRecord, error) {
	return ts.q.getShift(ctx, id)
}

func (ts *txStore) ListShifts(ctx context.Context, filter payroll.ShiftFilter) ([]payroll.ShiftRecord, error) {
	return ts.q.listShifts(ctx, filter)
}

func (ts *txStore) DeleteShift(ctx context.Context, id string) error {
	return ts.q.deleteShift(ctx, id)
}

func (ts *txStore) SaveWorkplace(ctx context.Context, policy payroll.WorkplacePolicy) error {
	return ts.q.saveWorkplace(ctx, policy)
}

func (ts *txStore) GetWorkplace(ctx context.Context, name string) (payroll.WorkplacePolicy, error) {
	return ts.q.getWorkplace(ctx, name)
}

func (ts *txStore) ListWorkplaces(ctx context.Context) (payroll.Workplaces, error) {
	return ts.q.listWorkplaces(ctx)
}

func (ts *txStore) DeleteWorkplace(ctx context.Context, name string) error {
	return ts.q.deleteWorkplace(ctx, name)
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"shifts", "workplaces"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// QUERIES - Shared by Store and txStore
// =============================================================================

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db querier
	wf *factory.WorkplaceFactory
}

const shiftColumns = `id, workplace, date, start_clock, end_clock, wage, manual_break_min, busy,
	transport, memo, pre_minutes, post_minutes, total_hours_raw, break_minutes,
	work_hours, night_hours, early_hours, base_pay, night_bonus, early_bonus, busy_bonus, pay`

func (q queries) saveShift(ctx context.Context, r payroll.ShiftRecord) error {
	query := `
		INSERT INTO shifts (` + shiftColumns + `, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			workplace = excluded.workplace,
			date = excluded.date,
			start_clock = excluded.start_clock,
			end_clock = excluded.end_clock,
			wage = excluded.wage,
			manual_break_min = excluded.manual_break_min,
			busy = excluded.busy,
			transport = excluded.transport,
			memo = excluded.memo,
			pre_minutes = excluded.pre_minutes,
			post_minutes = excluded.post_minutes,
			total_hours_raw = excluded.total_hours_raw,
			break_minutes = excluded.break_minutes,
			work_hours = excluded.work_hours,
			night_hours = excluded.night_hours,
			early_hours = excluded.early_hours,
			base_pay = excluded.base_pay,
			night_bonus = excluded.night_bonus,
			early_bonus = excluded.early_bonus,
			busy_bonus = excluded.busy_bonus,
			pay = excluded.pay,
			updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := q.db.ExecContext(ctx, query,
		r.ID, r.Workplace, payroll.FormatDate(r.Date), r.Start, r.End,
		r.Wage, r.ManualBreakMinutes, r.Busy, r.Transport, r.Memo,
		r.PreMinutes, r.PostMinutes, r.TotalHoursRaw, r.BreakMinutes,
		r.WorkHours, r.NightHours, r.EarlyHours,
		r.BasePay, r.NightBonus, r.EarlyBonus, r.BusyBonus, r.Pay,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save shift %s: %w", r.ID, err)
	}
	return nil
}

func (q queries) getShift(ctx context.Context, id string) (payroll.ShiftRecord, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+shiftColumns+" FROM shifts WHERE id = ?", id)
	rec, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return payroll.ShiftRecord{}, payroll.ErrShiftNotFound
	}
	return rec, err
}

func (q queries) listShifts(ctx context.Context, f payroll.ShiftFilter) ([]payroll.ShiftRecord, error) {
	var from, to string
	if !f.Period.Start.IsZero() {
		from = payroll.FormatDate(f.Period.Start)
	}
	if !f.Period.End.IsZero() {
		to = payroll.FormatDate(f.Period.End)
	}

	rows, err := q.db.QueryContext(ctx, `
		SELECT `+shiftColumns+` FROM shifts
		WHERE (? = '' OR workplace = ?)
		  AND (? = '' OR date >= ?)
		  AND (? = '' OR date <= ?)
		ORDER BY seq`,
		f.Workplace, f.Workplace, from, from, to, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var out []payroll.ShiftRecord
	for rows.Next() {
		rec, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (q queries) deleteShift(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM shifts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete shift %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return payroll.ErrShiftNotFound
	}
	return nil
}

func (q queries) saveWorkplace(ctx context.Context, policy payroll.WorkplacePolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	configJSON, err := q.wf.Marshal(policy)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO workplaces (name, config_json, version, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			config_json = excluded.config_json,
			version = workplaces.version + 1,
			updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := q.db.ExecContext(ctx, query, policy.Name, configJSON, now, now); err != nil {
		return fmt.Errorf("failed to save workplace %q: %w", policy.Name, err)
	}
	return nil
}

func (q queries) getWorkplace(ctx context.Context, name string) (payroll.WorkplacePolicy, error) {
	var configJSON string
	err := q.db.QueryRowContext(ctx, "SELECT config_json FROM workplaces WHERE name = ?", name).Scan(&configJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return payroll.WorkplacePolicy{}, payroll.ErrWorkplaceNotFound
	}
	if err != nil {
		return payroll.WorkplacePolicy{}, err
	}
	return q.wf.ParseWorkplace(name, configJSON)
}

func (q queries) listWorkplaces(ctx context.Context) (payroll.Workplaces, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT name, config_json FROM workplaces ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(payroll.Workplaces)
	for rows.Next() {
		var name, configJSON string
		if err := rows.Scan(&name, &configJSON); err != nil {
			return nil, err
		}
		policy, err := q.wf.ParseWorkplace(name, configJSON)
		if err != nil {
			return nil, err
		}
		out[name] = policy
	}
	return out, rows.Err()
}

func (q queries) deleteWorkplace(ctx context.Context, name string) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM workplaces WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete workplace %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return payroll.ErrWorkplaceNotFound
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanShift(row scanner) (payroll.ShiftRecord, error) {
	var r payroll.ShiftRecord
	var date string
	err := row.Scan(
		&r.ID, &r.Workplace, &date, &r.Start, &r.End,
		&r.Wage, &r.ManualBreakMinutes, &r.Busy, &r.Transport, &r.Memo,
		&r.PreMinutes, &r.PostMinutes, &r.TotalHoursRaw, &r.BreakMinutes,
		&r.WorkHours, &r.NightHours, &r.EarlyHours,
		&r.BasePay, &r.NightBonus, &r.EarlyBonus, &r.BusyBonus, &r.Pay,
	)
	if err != nil {
		return payroll.ShiftRecord{}, err
	}
	if r.Date, err = payroll.ParseDate(date); err != nil {
		return payroll.ShiftRecord{}, err
	}
	return r, nil
}
