/*
book_test.go - Tests for the shift book

Tests for:
- Add / Preview / Get / Delete
- Duplicate keeps derived figures
- BulkEdit re-prices atomically
- Check and Summary over the stored log
*/
package shifts_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/warp/shift-payroll/factory"
	"github.com/warp/shift-payroll/payroll"
	"github.com/warp/shift-payroll/payroll/store"
	"github.com/warp/shift-payroll/shifts"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

func newBook(t *testing.T) *shifts.Book {
	t.Helper()
	ctx := context.Background()
	settings := factory.DefaultSettings()

	mem := store.NewMemory()
	for _, name := range settings.Workplaces.Names() {
		require.NoError(t, mem.SaveWorkplace(ctx, settings.Workplaces[name]))
	}

	n := 0
	return shifts.NewBook(mem,
		shifts.WithLogger(zaptest.NewLogger(t)),
		shifts.WithPatterns(settings.Patterns),
		shifts.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("shift-%d", n)
		}),
	)
}

func shift(workplace string, day int, start, end string) payroll.ShiftInput {
	return payroll.ShiftInput{
		Workplace: workplace,
		Date:      payroll.NewDate(2025, time.May, day),
		Start:     payroll.MustParseClock(start),
		End:       payroll.MustParseClock(end),
	}
}

// =============================================================================
// SINGLE SHIFT
// =============================================================================

func TestBook_AddUsesStoredPolicy(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)

	// GIVEN: cafe pads 10/5, 15 min break from 4h, wage 1220 since 2025-04-01
	// WHEN: Adding 18:00-23:00 on 2025-05-01
	rec, err := book.Add(ctx, shift("cafe", 1, "18:00", "23:00"))
	require.NoError(t, err)

	// THEN: The record is priced and stored
	assert.Equal(t, "shift-1", rec.ID)
	assert.Equal(t, int64(1220), rec.Wage)
	assert.Equal(t, 15, rec.BreakMinutes)
	assert.Equal(t, int64(6100), rec.BasePay)

	got, err := book.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestBook_PreviewDoesNotSave(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)

	rec, err := book.Preview(ctx, shift("cafe", 1, "18:00", "23:00"))
	require.NoError(t, err)
	assert.Empty(t, rec.ID)

	list, err := book.List(ctx, payroll.ShiftFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBook_AddUnknownWorkplaceUsesBaseline(t *testing.T) {
	rec, err := newBook(t).Add(context.Background(), shift("warehouse", 1, "09:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, payroll.DefaultWage, rec.Wage)
	assert.Equal(t, int64(3300), rec.Pay)

	late, err := newBook(t).Add(context.Background(), shift("warehouse", 1, "20:00", "23:30"))
	require.NoError(t, err)
	assert.Zero(t, late.NightHours, "no settings means no night hours")
	assert.Equal(t, int64(3850), late.Pay)
}

func TestBook_AddRejectsInvalidInterval(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)

	_, err := book.Add(ctx, shift("school", 1, "22:00", "02:00"))
	assert.ErrorIs(t, err, payroll.ErrInvalidInterval)

	list, err := book.List(ctx, payroll.ShiftFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBook_AddPattern(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)

	rec, err := book.AddPattern(ctx, "cafe:18-close", payroll.NewDate(2025, time.May, 2))
	require.NoError(t, err)
	assert.Equal(t, "18:00", rec.Start)
	assert.Equal(t, "22:30", rec.End)
	assert.Equal(t, int64(1310), rec.Wage)
	assert.Equal(t, 15, rec.BreakMinutes)
	assert.Equal(t, int64(640), rec.Transport)

	_, err = book.AddPattern(ctx, "nope", payroll.NewDate(2025, time.May, 2))
	assert.ErrorIs(t, err, shifts.ErrPatternNotFound)
}

func TestBook_Delete(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)

	rec, err := book.Add(ctx, shift("cafe", 1, "10:00", "12:00"))
	require.NoError(t, err)

	require.NoError(t, book.Delete(ctx, rec.ID))
	_, err = book.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)
	assert.ErrorIs(t, book.Delete(ctx, rec.ID), payroll.ErrShiftNotFound)
}

func TestBook_DuplicateCopiesFigures(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)

	// GIVEN: A shift priced at the 2025-04 wage
	src, err := book.Add(ctx, shift("cafe", 1, "18:00", "23:00"))
	require.NoError(t, err)

	// WHEN: Duplicating it past the 2025-10-01 raise
	dup, err := book.Duplicate(ctx, src.ID, payroll.NewDate(2025, time.October, 5))
	require.NoError(t, err)

	// THEN: Only ID and date change
	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, payroll.NewDate(2025, time.October, 5), dup.Date)
	assert.Equal(t, src.Wage, dup.Wage)
	assert.Equal(t, src.Pay, dup.Pay)

	list, err := book.List(ctx, payroll.ShiftFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = book.Duplicate(ctx, "missing", payroll.NewDate(2025, time.May, 1))
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)
}

// =============================================================================
// BULK EDIT
// =============================================================================

func TestBook_BulkEditReprices(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)

	a, err := book.Add(ctx, shift("school", 1, "18:00", "22:00"))
	require.NoError(t, err)
	b, err := book.Add(ctx, shift("school", 2, "18:00", "22:00"))
	require.NoError(t, err)

	// WHEN: Moving both to cafe at 1500/h, busy
	wp, wage, busy, memo := "cafe", int64(1500), true, "moved"
	updated, err := book.BulkEdit(ctx, []string{a.ID, b.ID}, shifts.Edit{
		Workplace: &wp, Wage: &wage, Busy: &busy, Memo: &memo,
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)

	// THEN: Hours stay as computed for school (no padding), money uses cafe rates
	for _, rec := range updated {
		assert.Equal(t, "cafe", rec.Workplace)
		assert.Equal(t, "moved", rec.Memo)
		assert.InDelta(t, 4.0, rec.TotalHoursRaw, 1e-9)
		assert.Equal(t, int64(6000), rec.BasePay)
		assert.Equal(t, int64(800), rec.BusyBonus)
		assert.Equal(t, int64(6800), rec.Pay)
	}

	stored, err := book.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, updated[0], stored)
}

func TestBook_DeleteMany(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)
	a, err := book.Add(ctx, shift("school", 1, "18:00", "22:00"))
	require.NoError(t, err)
	b, err := book.Add(ctx, shift("school", 2, "18:00", "22:00"))
	require.NoError(t, err)
	c, err := book.Add(ctx, shift("school", 3, "18:00", "22:00"))
	require.NoError(t, err)

	// WHEN: One ID in the selection is unknown
	_, err = book.DeleteMany(ctx, []string{a.ID, "missing"})

	// THEN: Nothing is deleted
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)
	list, err := book.List(ctx, payroll.ShiftFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	// WHEN: All IDs exist
	n, err := book.DeleteMany(ctx, []string{a.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// THEN: Only the unselected shift remains
	list, err = book.List(ctx, payroll.ShiftFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	n, err = book.DeleteMany(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBook_BulkEditIgnoresNonPositiveWage(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)
	rec, err := book.Add(ctx, shift("school", 1, "18:00", "22:00"))
	require.NoError(t, err)

	zero := int64(0)
	memo := "note"
	updated, err := book.BulkEdit(ctx, []string{rec.ID}, shifts.Edit{Wage: &zero, Memo: &memo})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, rec.Wage, updated[0].Wage)
	assert.Equal(t, rec.Pay, updated[0].Pay)
}

func TestBook_BulkEditIsAtomic(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)
	rec, err := book.Add(ctx, shift("school", 1, "18:00", "22:00"))
	require.NoError(t, err)

	wage := int64(2000)
	_, err = book.BulkEdit(ctx, []string{rec.ID, "missing"}, shifts.Edit{Wage: &wage})
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)

	stored, err := book.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Wage, stored.Wage, "nothing was saved")
}

// =============================================================================
// REPORTS
// =============================================================================

func TestBook_CheckFindsOverlap(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)

	_, err := book.Add(ctx, shift("school", 1, "18:00", "22:00"))
	require.NoError(t, err)
	_, err = book.Add(ctx, shift("school", 1, "21:00", "23:00"))
	require.NoError(t, err)

	issues, err := book.Check(ctx)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, payroll.IssueOverlap, issues[0].Kind)
}

func TestBook_Summary(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)

	_, err := book.Add(ctx, shift("school", 1, "18:00", "22:00"))
	require.NoError(t, err)
	_, err = book.AddPattern(ctx, "cafe:18-close", payroll.NewDate(2025, time.June, 3))
	require.NoError(t, err)

	sum, err := book.Summary(ctx, payroll.SummaryOptions{
		Period:      payroll.Period{Start: payroll.NewDate(2025, time.June, 1)},
		IncomeLimit: payroll.DefaultIncomeLimit,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Shifts)
	assert.Equal(t, int64(640), sum.TotalTransport)
}

// =============================================================================
// WORKPLACES
// =============================================================================

func TestBook_Workplaces(t *testing.T) {
	ctx := context.Background()
	book := newBook(t)

	p := payroll.Baseline("bakery")
	p.DefaultWage = 1250
	require.NoError(t, book.SaveWorkplace(ctx, p))

	got, err := book.Workplace(ctx, "bakery")
	require.NoError(t, err)
	assert.Equal(t, int64(1250), got.DefaultWage)

	rec, err := book.Add(ctx, shift("bakery", 1, "06:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1250), rec.Wage)

	bad := payroll.Baseline("bad")
	bad.EarlyStartHour = -1
	assert.ErrorIs(t, book.SaveWorkplace(ctx, bad), payroll.ErrInvalidPolicy)

	require.NoError(t, book.DeleteWorkplace(ctx, "bakery"))
	all, err := book.Workplaces(ctx)
	require.NoError(t, err)
	assert.NotContains(t, all, "bakery")
}
