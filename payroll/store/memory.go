// Package store provides in-memory payroll.TxStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/shift-payroll/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	state memoryState
}

type memoryState struct {
	shifts     []payroll.ShiftRecord
	index      map[string]int
	workplaces map[string]payroll.WorkplacePolicy
}

func NewMemory() *Memory {
	return &Memory{state: newMemoryState()}
}

func newMemoryState() memoryState {
	return memoryState{
		index:      make(map[string]int),
		workplaces: make(map[string]payroll.WorkplacePolicy),
	}
}

// =============================================================================
// SHIFTS
// =============================================================================

func (m *Memory) SaveShift(_ context.Context, rec payroll.ShiftRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.saveShift(rec)
	return nil
}

// SaveShifts saves all records under one lock.
func (m *Memory) SaveShifts(_ context.Context, recs []payroll.ShiftRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range recs {
		m.state.saveShift(rec)
	}
	return nil
}

func (m *Memory) GetShift(_ context.Context, id string) (payroll.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.getShift(id)
}

func (m *Memory) ListShifts(_ context.Context, filter payroll.ShiftFilter) ([]payroll.ShiftRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.listShifts(filter), nil
}

func (m *Memory) DeleteShift(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.deleteShift(id)
}

// =============================================================================
// WORKPLACES
// =============================================================================

func (m *Memory) SaveWorkplace(_ context.Context, p payroll.WorkplacePolicy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.workplaces[p.Name] = p
	return nil
}

func (m *Memory) GetWorkplace(_ context.Context, name string) (payroll.WorkplacePolicy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.state.workplaces[name]
	if !ok {
		return payroll.WorkplacePolicy{}, payroll.ErrWorkplaceNotFound
	}
	return p, nil
}

func (m *Memory) ListWorkplaces(_ context.Context) (payroll.Workplaces, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(payroll.Workplaces, len(m.state.workplaces))
	for k, v := range m.state.workplaces {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) DeleteWorkplace(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.workplaces[name]; !ok {
		return payroll.ErrWorkplaceNotFound
	}
	delete(m.state.workplaces, name)
	return nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx runs fn against the live state and restores a snapshot if fn fails.
func (m *Memory) WithTx(_ context.Context, fn func(payroll.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(&txView{state: &m.state}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

// txView is the Store handed to WithTx callbacks. The parent lock is
// already held.
type txView struct {
	state *memoryState
}

func (tv *txView) SaveShift(_ context.Context, rec payroll.ShiftRecord) error {
	tv.state.saveShift(rec)
	return nil
}

func (tv *txView) SaveShifts(_ context.Context, recs []payroll.ShiftRecord) error {
	for _, rec := range recs {
		tv.state.saveShift(rec)
	}
	return nil
}

func (tv *txView) GetShift(_ context.Context, id string) (payroll.ShiftRecord, error) {
	return tv.state.getShift(id)
}

func (tv *txView) ListShifts(_ context.Context, filter payroll.ShiftFilter) ([]payroll.ShiftRecord, error) {
	return tv.state.listShifts(filter), nil
}

func (tv *txView) DeleteShift(_ context.Context, id string) error {
	return tv.state.deleteShift(id)
}

func (tv *txView) SaveWorkplace(_ context.Context, p payroll.WorkplacePolicy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	tv.state.workplaces[p.Name] = p
	return nil
}

func (tv *txView) GetWorkplace(_ context.Context, name string) (payroll.WorkplacePolicy, error) {
	p, ok := tv.state.workplaces[name]
	if !ok {
		return payroll.WorkplacePolicy{}, payroll.ErrWorkplaceNotFound
	}
	return p, nil
}

func (tv *txView) ListWorkplaces(_ context.Context) (payroll.Workplaces, error) {
	out := make(payroll.Workplaces, len(tv.state.workplaces))
	for k, v := range tv.state.workplaces {
		out[k] = v
	}
	return out, nil
}

func (tv *txView) DeleteWorkplace(_ context.Context, name string) error {
	if _, ok := tv.state.workplaces[name]; !ok {
		return payroll.ErrWorkplaceNotFound
	}
	delete(tv.state.workplaces, name)
	return nil
}

// =============================================================================
// STATE HELPERS (caller holds the lock)
// =============================================================================

func (s *memoryState) saveShift(rec payroll.ShiftRecord) {
	if i, ok := s.index[rec.ID]; ok {
		s.shifts[i] = rec
		return
	}
	s.index[rec.ID] = len(s.shifts)
	s.shifts = append(s.shifts, rec)
}

func (s *memoryState) getShift(id string) (payroll.ShiftRecord, error) {
	i, ok := s.index[id]
	if !ok {
		return payroll.ShiftRecord{}, payroll.ErrShiftNotFound
	}
	return s.shifts[i], nil
}

func (s *memoryState) listShifts(filter payroll.ShiftFilter) []payroll.ShiftRecord {
	var out []payroll.ShiftRecord
	for _, rec := range s.shifts {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (s *memoryState) deleteShift(id string) error {
	i, ok := s.index[id]
	if !ok {
		return payroll.ErrShiftNotFound
	}
	s.shifts = append(s.shifts[:i], s.shifts[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.shifts); j++ {
		s.index[s.shifts[j].ID] = j
	}
	return nil
}

func (s *memoryState) clone() memoryState {
	c := memoryState{
		shifts:     append([]payroll.ShiftRecord(nil), s.shifts...),
		index:      make(map[string]int, len(s.index)),
		workplaces: make(map[string]payroll.WorkplacePolicy, len(s.workplaces)),
	}
	for k, v := range s.index {
		c.index[k] = v
	}
	for k, v := range s.workplaces {
		c.workplaces[k] = v
	}
	return c
}

// Reset drops every shift and workplace.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = newMemoryState()
	return nil
}
