package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-payroll/payroll"
	"github.com/warp/shift-payroll/payroll/store"
)

func rec(id string, day int) payroll.ShiftRecord {
	return payroll.ShiftRecord{ID: id, Workplace: "cafe", Date: payroll.NewDate(2025, time.May, day), Start: "10:00", End: "12:00"}
}

func TestMemory_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.SaveShift(ctx, rec("b", 3)))
	require.NoError(t, m.SaveShift(ctx, rec("a", 1)))
	require.NoError(t, m.SaveShift(ctx, rec("c", 2)))

	// replacing keeps the position
	updated := rec("b", 3)
	updated.Memo = "edited"
	require.NoError(t, m.SaveShift(ctx, updated))

	list, err := m.ListShifts(ctx, payroll.ShiftFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "edited", list[0].Memo)
	assert.Equal(t, "a", list[1].ID)

	require.NoError(t, m.DeleteShift(ctx, "b"))
	got, err := m.GetShift(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "c", got.ID)

	assert.ErrorIs(t, m.DeleteShift(ctx, "b"), payroll.ErrShiftNotFound)
}

func TestMemory_Filter(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveShifts(ctx, []payroll.ShiftRecord{rec("a", 1), rec("b", 10), rec("c", 20)}))

	list, err := m.ListShifts(ctx, payroll.ShiftFilter{Period: payroll.Period{
		Start: payroll.NewDate(2025, time.May, 5),
		End:   payroll.NewDate(2025, time.May, 15),
	}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)

	list, err = m.ListShifts(ctx, payroll.ShiftFilter{Workplace: "school"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemory_WithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	require.NoError(t, m.SaveShift(ctx, rec("a", 1)))

	boom := errors.New("boom")
	err := m.WithTx(ctx, func(tx payroll.Store) error {
		if err := tx.SaveShift(ctx, rec("b", 2)); err != nil {
			return err
		}
		if err := tx.DeleteShift(ctx, "a"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := m.ListShifts(ctx, payroll.ShiftFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
}

func TestMemory_Workplaces(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	_, err := m.GetWorkplace(ctx, "cafe")
	assert.ErrorIs(t, err, payroll.ErrWorkplaceNotFound)

	require.NoError(t, m.SaveWorkplace(ctx, payroll.Baseline("cafe")))

	bad := payroll.Baseline("bad")
	bad.NightEndHour = 30
	assert.ErrorIs(t, m.SaveWorkplace(ctx, bad), payroll.ErrInvalidPolicy)

	wp, err := m.ListWorkplaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cafe"}, wp.Names())

	require.NoError(t, m.DeleteWorkplace(ctx, "cafe"))
	assert.ErrorIs(t, m.DeleteWorkplace(ctx, "cafe"), payroll.ErrWorkplaceNotFound)
}
